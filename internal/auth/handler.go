package auth

import (
	"strings"

	"stocktrack-backend/internal/config"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Handler serves login and account endpoints. The inventory layer never
// sees any of this; it only receives an opaque changedBy string.
type Handler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}

type RegisterAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register-admin — bootstrap endpoint, only usable while
// no admin account exists yet.
func (h *Handler) RegisterAdmin(c *fiber.Ctx) error {
	var body RegisterAdminRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))

	if body.Email == "" || body.Password == "" || body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required.")
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count)
	if count > 0 {
		return fiber.NewError(fiber.StatusForbidden, "An admin account already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Password could not be hashed.")
	}

	user := models.User{
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "User could not be created.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}

// POST /api/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var body LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))

	var user models.User
	if err := h.db.Where("email = ?", body.Email).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Email or password is incorrect.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Email or password is incorrect.")
	}

	token, err := GenerateToken(h.cfg.JWTSecret, &user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created.")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GET /api/auth/me
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "User information is missing.")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "User not found.")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

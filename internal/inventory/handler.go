package inventory

import (
	"bytes"
	"strconv"

	"stocktrack-backend/internal/auth"
	"stocktrack-backend/internal/errs"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler adapts HTTP requests to service calls. It holds no business
// rules of its own.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type productRequest struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Status   string  `json:"status"`
	Stock    *int    `json:"stock"`
	Image    *string `json:"image"`
}

func (r productRequest) toInput() ProductInput {
	input := ProductInput{
		Name:     r.Name,
		Unit:     r.Unit,
		Category: r.Category,
		Brand:    r.Brand,
		Status:   r.Status,
		Image:    r.Image,
	}
	if r.Stock != nil {
		input.Stock = strconv.Itoa(*r.Stock)
	}
	return input
}

// GET /api/products?page&limit&search&sort&order
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	params := ListParams{
		Page:   c.QueryInt("page", defaultPage),
		Limit:  c.QueryInt("limit", defaultLimit),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}

	page, err := h.service.GetProducts(params)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(page)
}

// POST /api/products
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var body productRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	product, err := h.service.CreateProduct(body.toInput())
	if err != nil {
		return mapServiceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// PUT /api/products/:id
func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var body productRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")
	}

	changedBy := auth.UserEmail(c)
	product, err := h.service.UpdateProduct(id, body.toInput(), changedBy)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(product)
}

// DELETE /api/products/:id
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return mapServiceError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/products/import — multipart field "file" holding the CSV.
func (h *Handler) ImportProducts(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "CSV file is required.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "CSV file could not be opened.")
	}
	defer file.Close()

	rows, err := ReadProductRows(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "CSV file could not be parsed.")
	}

	result, err := h.service.ImportProducts(rows)
	if err != nil {
		return mapServiceError(err)
	}

	h.logger.Info("csv import finished",
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicates", len(result.Duplicates)))

	return c.JSON(result)
}

// GET /api/products/export
func (h *Handler) ExportProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return mapServiceError(err)
	}

	var buf bytes.Buffer
	if err := WriteProductsCSV(&buf, products); err != nil {
		return mapServiceError(err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Send(buf.Bytes())
}

// GET /api/products/:id/history
func (h *Handler) GetProductHistory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	logs, err := h.service.GetProductHistory(id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(logs)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid product id.")
	}
	return uint(id), nil
}

// mapServiceError translates the use-case error taxonomy to HTTP once,
// here at the boundary. Anything unclassified bubbles to the central
// error handler as a 500.
func mapServiceError(err error) error {
	switch {
	case errs.IsValidation(err), errs.IsConflict(err):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errs.IsNotFound(err):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}

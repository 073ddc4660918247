package main

import (
	"log"
	"strings"

	"stocktrack-backend/internal/audit"
	"stocktrack-backend/internal/auth"
	"stocktrack-backend/internal/config"
	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/inventory"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	cfg, warnings, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	productRepo := inventory.NewGormRepository(db)
	logRepo := inventory.NewGormLogRepository(db)
	transactor := inventory.NewGormTransactor(db)

	auditService := audit.NewService(productRepo, logRepo)
	auditHandler := audit.NewHandler(auditService)

	productService := inventory.NewService(productRepo, auditService, transactor, logger)
	productHandler := inventory.NewHandler(productService, logger)

	authHandler := auth.NewHandler(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error.",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", authHandler.RegisterAdmin)
	api.Post("/auth/login", authHandler.Login)

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)

	// Product catalog, readable by any authenticated user
	protected.Get("/products", productHandler.ListProducts)
	protected.Get("/products/export", productHandler.ExportProducts)
	protected.Get("/products/:id/history", productHandler.GetProductHistory)
	protected.Get("/inventory-logs", auditHandler.ListRecentLogs)

	// Mutations require the admin role
	adminOnly := protected.Group("")
	adminOnly.Use(auth.RequireRole(models.RoleAdmin))
	adminOnly.Post("/products", productHandler.CreateProduct)
	adminOnly.Put("/products/:id", productHandler.UpdateProduct)
	adminOnly.Delete("/products/:id", productHandler.DeleteProduct)
	adminOnly.Post("/products/import", productHandler.ImportProducts)

	logger.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

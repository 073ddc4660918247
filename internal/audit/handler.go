package audit

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /api/inventory-logs?limit
func (h *Handler) ListRecentLogs(c *fiber.Ctx) error {
	logs, err := h.service.ListRecent(c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return c.JSON(logs)
}

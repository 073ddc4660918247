// Package audit exposes the stock-change audit trail.
package audit

import (
	"fmt"

	"stocktrack-backend/internal/errs"
	"stocktrack-backend/internal/models"
)

// ProductFinder is the slice of the product repository the audit
// service needs for existence checks.
type ProductFinder interface {
	FindByID(id uint) (*models.Product, error)
}

// LogStore reads inventory logs. Logs are append-only; there is no
// update or direct delete path here.
type LogStore interface {
	FindLogsByProductID(productID uint) ([]models.InventoryLog, error)
	FindRecent(limit int) ([]models.InventoryLog, error)
}

type Service struct {
	products ProductFinder
	logs     LogStore
}

func NewService(products ProductFinder, logs LogStore) *Service {
	return &Service{products: products, logs: logs}
}

// GetProductHistory returns the product's stock-change logs, newest
// first. A missing product is a NotFoundError, not an empty list.
func (s *Service) GetProductHistory(productID uint) ([]models.InventoryLog, error) {
	product, err := s.products.FindByID(productID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	if product == nil {
		return nil, errs.NotFound("Product not found.")
	}

	logs, err := s.logs.FindLogsByProductID(productID)
	if err != nil {
		return nil, fmt.Errorf("load inventory logs: %w", err)
	}
	return logs, nil
}

// ListRecent returns the latest stock changes across all products.
func (s *Service) ListRecent(limit int) ([]models.InventoryLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	logs, err := s.logs.FindRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("load inventory logs: %w", err)
	}
	return logs, nil
}

package audit

import (
	"testing"

	"stocktrack-backend/internal/errs"
	"stocktrack-backend/internal/models"
)

type stubFinder struct {
	product *models.Product
}

func (s *stubFinder) FindByID(id uint) (*models.Product, error) {
	if s.product != nil && s.product.ID == id {
		return s.product, nil
	}
	return nil, nil
}

type stubLogs struct {
	logs        []models.InventoryLog
	recentLimit int
}

func (s *stubLogs) FindLogsByProductID(productID uint) ([]models.InventoryLog, error) {
	var out []models.InventoryLog
	for _, l := range s.logs {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubLogs) FindRecent(limit int) ([]models.InventoryLog, error) {
	s.recentLimit = limit
	return s.logs, nil
}

func TestGetProductHistoryMissingProduct(t *testing.T) {
	svc := NewService(&stubFinder{}, &stubLogs{})

	_, err := svc.GetProductHistory(99)
	if !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err.Error() != "Product not found." {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestGetProductHistoryReturnsProductLogs(t *testing.T) {
	finder := &stubFinder{product: &models.Product{ID: 7, Name: "Rice"}}
	logs := &stubLogs{logs: []models.InventoryLog{
		{ID: 1, ProductID: 7, OldStock: 1, NewStock: 2},
		{ID: 2, ProductID: 8, OldStock: 5, NewStock: 6},
	}}
	svc := NewService(finder, logs)

	got, err := svc.GetProductHistory(7)
	if err != nil {
		t.Fatalf("GetProductHistory: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 7 {
		t.Errorf("unexpected logs: %+v", got)
	}
}

func TestListRecentClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, 50},
		{"negative falls back to default", -3, 50},
		{"over cap falls back to default", 1000, 50},
		{"in range passes through", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &stubLogs{}
			svc := NewService(&stubFinder{}, logs)
			if _, err := svc.ListRecent(tt.limit); err != nil {
				t.Fatalf("ListRecent: %v", err)
			}
			if logs.recentLimit != tt.want {
				t.Errorf("limit = %d, want %d", logs.recentLimit, tt.want)
			}
		})
	}
}

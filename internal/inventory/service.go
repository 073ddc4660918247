package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"stocktrack-backend/internal/errs"
	"stocktrack-backend/internal/models"

	"go.uber.org/zap"
)

// Repository is the product storage contract consumed by the service.
type Repository interface {
	FindAll(filter ListFilter) ([]models.Product, error)
	// FindByID and FindByName return (nil, nil) when no row matches.
	FindByID(id uint) (*models.Product, error)
	FindByName(name string) (*models.Product, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Count(searchName string) (int64, error)
	Delete(id uint) error
}

// LogRepository is the append-only inventory log contract.
type LogRepository interface {
	CreateLog(log *models.InventoryLog) error
	FindLogsByProductID(productID uint) ([]models.InventoryLog, error)
	DeleteLogsByProductID(productID uint) error
}

// Transactor runs fn against transactional repository instances; either
// everything fn writes is committed or nothing is.
type Transactor interface {
	Transact(fn func(products Repository, logs LogRepository) error) error
}

// HistoryProvider serves the audit-trail read path (the audit package's
// service in production).
type HistoryProvider interface {
	GetProductHistory(productID uint) ([]models.InventoryLog, error)
}

// ProductInput is one unvalidated product payload, as it arrives from an
// API request body or a CSV row. Stock stays a raw string until
// ValidateProduct parses it.
type ProductInput struct {
	Name     string
	Unit     string
	Category string
	Brand    string
	Status   string
	Stock    string
	Image    *string
}

// requiredFields is the immutable required-field rule set for create,
// update and import validation.
var requiredFields = []struct {
	name string
	get  func(ProductInput) string
}{
	{"name", func(in ProductInput) string { return in.Name }},
	{"unit", func(in ProductInput) string { return in.Unit }},
	{"category", func(in ProductInput) string { return in.Category }},
	{"brand", func(in ProductInput) string { return in.Brand }},
	{"status", func(in ProductInput) string { return in.Status }},
}

// sortableColumns is the allow-list of client-facing sort fields mapped
// to their database columns.
var sortableColumns = map[string]string{
	"name":      "name",
	"stock":     "stock",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ValidateProduct checks the required fields and parses the stock value.
// It is pure and must run before any repository mutation.
func ValidateProduct(input ProductInput) (int, error) {
	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(input)) == "" {
			return 0, errs.Validation(fmt.Sprintf("Product field '%s' is required.", f.name))
		}
	}

	stock, err := strconv.Atoi(strings.TrimSpace(input.Stock))
	if err != nil || stock < 0 {
		return 0, errs.Validation("Stock must be a non-negative number.")
	}

	return stock, nil
}

// DuplicateProduct identifies an import row whose name matched an
// existing product.
type DuplicateProduct struct {
	Name       string `json:"name"`
	ExistingID uint   `json:"existingId"`
}

// ImportResult tallies one bulk import. Added + Skipped always equals
// the number of input rows.
type ImportResult struct {
	Added      int                `json:"added"`
	Skipped    int                `json:"skipped"`
	Duplicates []DuplicateProduct `json:"duplicates"`
}

// ListParams are the raw query parameters for GetProducts.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
}

type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

type ProductPage struct {
	Data       []models.Product `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// ListFilter is the repository-level query filter. Limit and Offset are
// applied only when both are set; otherwise the full set is returned.
type ListFilter struct {
	SearchName string
	SortColumn string // validated database column, empty for default ordering
	SortOrder  string // "ASC" or "DESC"
	Limit      *int
	Offset     *int
}

// Service enforces the product business rules. It never touches storage
// directly, only through the repository contracts.
type Service struct {
	products Repository
	history  HistoryProvider
	tx       Transactor
	logger   *zap.Logger
}

func NewService(products Repository, history HistoryProvider, tx Transactor, logger *zap.Logger) *Service {
	return &Service{products: products, history: history, tx: tx, logger: logger}
}

// CreateProduct validates the input, rejects duplicate names and
// inserts the product.
func (s *Service) CreateProduct(input ProductInput) (*models.Product, error) {
	stock, err := ValidateProduct(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.products.FindByName(strings.TrimSpace(input.Name))
	if err != nil {
		return nil, fmt.Errorf("look up product by name: %w", err)
	}
	if existing != nil {
		return nil, errs.Conflict(fmt.Sprintf("Product name '%s' already exists.", strings.TrimSpace(input.Name)))
	}

	p := productFromInput(input, stock)
	if err := s.products.Create(p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// UpdateProduct applies a full-overwrite update. When the stock value
// changes, exactly one inventory log row is written in the same
// transaction as the update.
func (s *Service) UpdateProduct(id uint, input ProductInput, changedBy string) (*models.Product, error) {
	stock, err := ValidateProduct(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.products.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	if existing == nil {
		return nil, errs.NotFound("Product not found.")
	}

	name := strings.TrimSpace(input.Name)
	byName, err := s.products.FindByName(name)
	if err != nil {
		return nil, fmt.Errorf("look up product by name: %w", err)
	}
	if byName != nil && byName.ID != id {
		return nil, errs.Conflict(fmt.Sprintf("Product name '%s' already exists.", name))
	}

	oldStock := existing.Stock

	err = s.tx.Transact(func(products Repository, logs LogRepository) error {
		if oldStock != stock {
			entry := &models.InventoryLog{
				ProductID: id,
				OldStock:  oldStock,
				NewStock:  stock,
				ChangedBy: changedBy,
			}
			if entry.ChangedBy == "" {
				entry.ChangedBy = "system"
			}
			if err := logs.CreateLog(entry); err != nil {
				return fmt.Errorf("write inventory log: %w", err)
			}
		}

		applyInput(existing, input, stock)
		if err := products.Update(existing); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteProduct removes the product and its inventory logs in one
// transaction.
func (s *Service) DeleteProduct(id uint) error {
	existing, err := s.products.FindByID(id)
	if err != nil {
		return fmt.Errorf("load product %d: %w", id, err)
	}
	if existing == nil {
		return errs.NotFound("Product not found.")
	}

	return s.tx.Transact(func(products Repository, logs LogRepository) error {
		if err := logs.DeleteLogsByProductID(id); err != nil {
			return fmt.Errorf("delete inventory logs: %w", err)
		}
		if err := products.Delete(id); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}

// GetProducts returns one page of products plus pagination metadata.
// The count query applies the same name filter, independent of paging.
func (s *Service) GetProducts(params ListParams) (*ProductPage, error) {
	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	filter := ListFilter{
		SearchName: params.Search,
		Limit:      &limit,
		Offset:     &offset,
	}
	if col, ok := sortableColumns[params.Sort]; ok {
		filter.SortColumn = col
		filter.SortOrder = "ASC"
		if strings.EqualFold(params.Order, "DESC") {
			filter.SortOrder = "DESC"
		}
	}

	products, err := s.products.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := s.products.Count(params.Search)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ProductPage{
		Data: products,
		Pagination: Pagination{
			TotalItems:  total,
			TotalPages:  totalPages,
			CurrentPage: page,
			Limit:       limit,
		},
	}, nil
}

// GetAllProducts returns the unfiltered, unpaginated listing (export path).
func (s *Service) GetAllProducts() ([]models.Product, error) {
	products, err := s.products.FindAll(ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ImportProducts reconciles a batch of raw CSV rows. Each row is handled
// independently: a bad row is counted and logged, never aborts the batch.
func (s *Service) ImportProducts(rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{Duplicates: []DuplicateProduct{}}

	for i, row := range rows {
		input := inputFromRow(row)

		stock, err := ValidateProduct(input)
		if err != nil {
			result.Skipped++
			s.logger.Warn("import row skipped",
				zap.Int("row", i+1),
				zap.String("reason", err.Error()))
			continue
		}

		name := strings.TrimSpace(input.Name)
		existing, err := s.products.FindByName(name)
		if err != nil {
			return nil, fmt.Errorf("look up product by name: %w", err)
		}
		if existing != nil {
			result.Skipped++
			result.Duplicates = append(result.Duplicates, DuplicateProduct{
				Name:       name,
				ExistingID: existing.ID,
			})
			continue
		}

		if err := s.products.Create(productFromInput(input, stock)); err != nil {
			result.Skipped++
			s.logger.Warn("import row failed to persist",
				zap.Int("row", i+1),
				zap.String("name", name),
				zap.Error(err))
			continue
		}
		result.Added++
	}

	return result, nil
}

// GetProductHistory returns the product's inventory logs, newest first.
// The existence check and ordering live in the audit service.
func (s *Service) GetProductHistory(productID uint) ([]models.InventoryLog, error) {
	return s.history.GetProductHistory(productID)
}

func productFromInput(input ProductInput, stock int) *models.Product {
	return &models.Product{
		Name:     strings.TrimSpace(input.Name),
		Unit:     strings.TrimSpace(input.Unit),
		Category: strings.TrimSpace(input.Category),
		Brand:    strings.TrimSpace(input.Brand),
		Status:   strings.TrimSpace(input.Status),
		Stock:    stock,
		Image:    normalizeImage(input.Image),
	}
}

// applyInput overwrites every product field from the input (full
// overwrite, not a merge).
func applyInput(p *models.Product, input ProductInput, stock int) {
	p.Name = strings.TrimSpace(input.Name)
	p.Unit = strings.TrimSpace(input.Unit)
	p.Category = strings.TrimSpace(input.Category)
	p.Brand = strings.TrimSpace(input.Brand)
	p.Status = strings.TrimSpace(input.Status)
	p.Stock = stock
	p.Image = normalizeImage(input.Image)
}

func normalizeImage(image *string) *string {
	if image == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*image)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// inputFromRow maps a CSV row (lower-cased, trimmed headers) onto a
// product input. Missing cells stay empty and fail validation.
func inputFromRow(row map[string]string) ProductInput {
	input := ProductInput{
		Name:     row["name"],
		Unit:     row["unit"],
		Category: row["category"],
		Brand:    row["brand"],
		Status:   row["status"],
		Stock:    row["stock"],
	}
	if image, ok := row["image"]; ok && strings.TrimSpace(image) != "" {
		input.Image = &image
	}
	return input
}

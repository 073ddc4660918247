package inventory

import (
	"errors"
	"strings"

	"stocktrack-backend/internal/models"

	"gorm.io/gorm"
)

// GormRepository implements Repository over a *gorm.DB.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindAll(filter ListFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{})

	if filter.SearchName != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.SearchName)+"%")
	}

	if filter.SortColumn != "" {
		order := "ASC"
		if strings.EqualFold(filter.SortOrder, "DESC") {
			order = "DESC"
		}
		q = q.Order(filter.SortColumn + " " + order)
	} else {
		q = q.Order("updated_at DESC")
	}

	if filter.Limit != nil && filter.Offset != nil {
		q = q.Limit(*filter.Limit).Offset(*filter.Offset)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepository) FindByID(id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByName matches the name exactly, ignoring case.
func (r *GormRepository) FindByName(name string) (*models.Product, error) {
	var p models.Product
	err := r.db.First(&p, "LOWER(name) = ?", strings.ToLower(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// Update persists every column of the product (full overwrite) and
// lets GORM refresh UpdatedAt.
func (r *GormRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *GormRepository) Count(searchName string) (int64, error) {
	q := r.db.Model(&models.Product{})
	if searchName != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(searchName)+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, "id = ?", id).Error
}

// GormLogRepository implements LogRepository over a *gorm.DB.
type GormLogRepository struct {
	db *gorm.DB
}

func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

func (r *GormLogRepository) CreateLog(log *models.InventoryLog) error {
	if log.ChangedBy == "" {
		log.ChangedBy = "system"
	}
	return r.db.Create(log).Error
}

func (r *GormLogRepository) FindLogsByProductID(productID uint) ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	err := r.db.
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// FindRecent returns the latest logs across all products (audit listing).
func (r *GormLogRepository) FindRecent(limit int) ([]models.InventoryLog, error) {
	var logs []models.InventoryLog
	err := r.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *GormLogRepository) DeleteLogsByProductID(productID uint) error {
	return r.db.Delete(&models.InventoryLog{}, "product_id = ?", productID).Error
}

// GormTransactor runs the callback inside one database transaction,
// handing it repositories bound to that transaction.
type GormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

func (t *GormTransactor) Transact(fn func(products Repository, logs LogRepository) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepository(tx), NewGormLogRepository(tx))
	})
}

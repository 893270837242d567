package sales

import (
	"time"

	"gorm.io/gorm"

	salesEntity "tillpoint/model/entity/sales"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) FindByID(id uint) (*salesEntity.Sale, error) {
	var s salesEntity.Sale
	if err := r.db.Preload("Items").First(&s, "sale_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns sales newest first with line items preloaded.
func (r *SalesRepository) List(limit int) ([]salesEntity.Sale, error) {
	var sales []salesEntity.Sale
	q := r.db.Preload("Items").Order("created_at DESC, sale_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sales).Error
	return sales, err
}

// ListBetween returns sales created in [from, to), oldest first.
func (r *SalesRepository) ListBetween(from, to time.Time) ([]salesEntity.Sale, error) {
	var sales []salesEntity.Sale
	err := r.db.Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").Find(&sales).Error
	return sales, err
}

func (r *SalesRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&salesEntity.Sale{}).Count(&count).Error
	return count, err
}

package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the product table (catalog master data).
type Product struct {
	ProductID uint            `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id,omitempty"`
	SKU       string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	Name      string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Cost      decimal.Decimal `gorm:"column:cost;type:decimal(12,2);not null;default:0" json:"cost"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null;default:0" json:"price"`
	UOM       string          `gorm:"column:uom;type:varchar(16);not null;default:'pcs'" json:"uom"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}

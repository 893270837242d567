package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents the sale table. One row per completed checkout; immutable
// after the creating transaction commits.
type Sale struct {
	SaleID      uint            `gorm:"column:sale_id;primaryKey;autoIncrement" json:"sale_id,omitempty"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

func (Sale) TableName() string {
	return "sale"
}

// SaleItem represents the sale_item table. Created only as part of sale
// creation; price_at_sale snapshots the product price at checkout time so
// later catalog edits do not rewrite history.
type SaleItem struct {
	SaleItemID  uint            `gorm:"column:sale_item_id;primaryKey;autoIncrement" json:"sale_item_id,omitempty"`
	SaleID      uint            `gorm:"column:sale_id;not null;index" json:"sale_id"`
	ProductID   uint            `gorm:"column:product_id;not null;index" json:"product_id"`
	LocationID  uint            `gorm:"column:location_id;not null" json:"location_id"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	PriceAtSale decimal.Decimal `gorm:"column:price_at_sale;type:decimal(12,2);not null" json:"price_at_sale"`
}

func (SaleItem) TableName() string {
	return "sale_item"
}

package inventory

// StockLevel represents the stock_level table: quantity of one product at one
// location. Rows are created lazily on first receipt or sale at a location.
// quantity is never allowed below zero; all mutation goes through guarded
// updates inside a transaction.
type StockLevel struct {
	StockLevelID uint `gorm:"column:stock_level_id;primaryKey;autoIncrement" json:"stock_level_id,omitempty"`
	ProductID    uint `gorm:"column:product_id;not null;uniqueIndex:idx_stock_product_location" json:"product_id"`
	LocationID   uint `gorm:"column:location_id;not null;uniqueIndex:idx_stock_product_location" json:"location_id"`
	Quantity     int  `gorm:"column:quantity;not null;default:0" json:"quantity"`
}

func (StockLevel) TableName() string {
	return "stock_level"
}

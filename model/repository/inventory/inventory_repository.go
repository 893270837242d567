package inventory

import (
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "tillpoint/model/entity/inventory"
)

type InventoryRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewInventoryRepository(db *gorm.DB) (*InventoryRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &InventoryRepository{db: db, sqlDB: sqlDB}, nil
}

// GetQuantity returns the stock quantity for a product at a location.
// Uses raw SQL for minimal overhead.
func (r *InventoryRepository) GetQuantity(productID, locationID uint) (int, bool) {
	const query = `SELECT quantity FROM stock_level WHERE product_id = ? AND location_id = ? LIMIT 1`
	var qty sql.NullInt64
	if err := r.sqlDB.QueryRow(query, productID, locationID).Scan(&qty); err != nil || !qty.Valid {
		return 0, false
	}
	return int(qty.Int64), true
}

// GetByProductAndLocation returns the full StockLevel row using GORM.
func (r *InventoryRepository) GetByProductAndLocation(productID, locationID uint) (*inventoryEntity.StockLevel, error) {
	var level inventoryEntity.StockLevel
	err := r.db.Where("product_id = ? AND location_id = ?", productID, locationID).First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// ListByLocation returns all stock levels held at a location.
func (r *InventoryRepository) ListByLocation(locationID uint) ([]inventoryEntity.StockLevel, error) {
	var levels []inventoryEntity.StockLevel
	err := r.db.Where("location_id = ?", locationID).Order("product_id ASC").Find(&levels).Error
	return levels, err
}

// GetTotalQuantityByProduct sums quantity across all locations for a product.
func (r *InventoryRepository) GetTotalQuantityByProduct(productID uint) (int, error) {
	const query = `SELECT COALESCE(SUM(quantity), 0) FROM stock_level WHERE product_id = ?`
	var total int
	err := r.sqlDB.QueryRow(query, productID).Scan(&total)
	return total, err
}

// BatchGetQuantities fetches quantities for multiple products at one location
// in a single query.
func (r *InventoryRepository) BatchGetQuantities(productIDs []uint, locationID uint) (map[uint]int, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	result := make(map[uint]int, len(productIDs))
	rows, err := r.db.Table("stock_level").
		Select("product_id, quantity").
		Where("location_id = ? AND product_id IN ?", locationID, productIDs).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID uint
		var qty int
		if err := rows.Scan(&productID, &qty); err != nil {
			continue
		}
		result[productID] = qty
	}
	return result, nil
}

// DecrementGuarded subtracts qty from a stock level inside the caller's
// transaction. The WHERE guard folds check-then-decrement into a single
// statement: it only fires when the current balance covers qty, so two
// concurrent sales cannot both pass the check against the same balance, and
// quantity can never go negative. Returns false when the row is missing or
// under-stocked; the caller must then roll back.
func DecrementGuarded(tx *gorm.DB, productID, locationID uint, qty int) (bool, error) {
	res := tx.Model(&inventoryEntity.StockLevel{}).
		Where("product_id = ? AND location_id = ? AND quantity >= ?", productID, locationID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpsertIncrement adds qty to a stock level, creating the row when it does
// not exist yet. Insert and increment are one statement, so concurrent
// receipts at the same (product, location) cannot lose updates.
func UpsertIncrement(tx *gorm.DB, productID, locationID uint, qty int) error {
	level := inventoryEntity.StockLevel{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   qty,
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", qty)}),
	}
	return tx.Clauses(upsert).Create(&level).Error
}

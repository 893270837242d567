package inventory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tillpoint/core/cache"
	inventoryEntity "tillpoint/model/entity/inventory"
	catalogRepo "tillpoint/model/repository/catalog"
	inventoryRepo "tillpoint/model/repository/inventory"
	locationRepo "tillpoint/model/repository/location"
)

// ReceiveInput identifies the stock level to raise and by how much.
type ReceiveInput struct {
	ProductID     uint `json:"product_id"`
	LocationID    uint `json:"location_id"`
	QuantityToAdd int  `json:"quantity_to_add"`
}

// ReceiveResult reports the balance after the receipt.
type ReceiveResult struct {
	UpdatedQuantity int `json:"updated_quantity"`
}

var (
	ErrInvalidQuantity  = errors.New("quantity to add must be a positive integer")
	ErrProductNotFound  = errors.New("product not found")
	ErrLocationNotFound = errors.New("location not found")
)

// Receive raises the stock level for a product at a location, creating the
// row on first receipt. Insert-or-increment is a single statement inside a
// transaction, so re-reading the updated balance and the increment itself
// cannot interleave with a concurrent receipt. Submitting the same receipt
// twice doubles the stock; double-submit protection belongs to the caller.
func Receive(db *gorm.DB, in ReceiveInput) (*ReceiveResult, error) {
	if in.QuantityToAdd <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := catalogRepo.NewProductRepository(db).FindByID(in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, in.ProductID)
		}
		return nil, err
	}
	if _, err := locationRepo.NewLocationRepository(db).FindByID(in.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrLocationNotFound, in.LocationID)
		}
		return nil, err
	}

	var updated int
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := inventoryRepo.UpsertIncrement(tx, in.ProductID, in.LocationID, in.QuantityToAdd); err != nil {
			return fmt.Errorf("upsert stock: %w", err)
		}
		var level inventoryEntity.StockLevel
		if err := tx.Where("product_id = ? AND location_id = ?", in.ProductID, in.LocationID).
			First(&level).Error; err != nil {
			return fmt.Errorf("read back stock: %w", err)
		}
		updated = level.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.GetInstance().DeleteByTag("stock")
	return &ReceiveResult{UpdatedQuantity: updated}, nil
}

package seed

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "tillpoint/model/entity/catalog"
	inventoryEntity "tillpoint/model/entity/inventory"
	locationEntity "tillpoint/model/entity/location"
	locationRepo "tillpoint/model/repository/location"
)

const warehouseSeedQuantity = 200

var seedLocations = []locationEntity.Location{
	{Name: "Pharmacy Shop", Description: "Pharmacy retail location"},
	{Name: "SuperMart", Description: "Supermarket retail location"},
	{Name: "Warehouse", Description: "Central warehouse for stock distribution"},
}

func seedProducts() []catalogEntity.Product {
	money := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []catalogEntity.Product{
		{SKU: "LAPTOP-001", Name: `ProBook Laptop 15"`, Cost: money("800.00"), Price: money("1299.99"), UOM: "pcs"},
		{SKU: "MOUSE-002", Name: "Wireless Mouse", Cost: money("10.00"), Price: money("25.50"), UOM: "pcs"},
		{SKU: "KEY-003", Name: "Mechanical Keyboard", Cost: money("40.00"), Price: money("75.00"), UOM: "pcs"},
		{SKU: "MON-004", Name: `4K Monitor 27"`, Cost: money("200.00"), Price: money("350.00"), UOM: "pcs"},
		{SKU: "CABLE-005", Name: "HDMI Cable 2m", Cost: money("5.00"), Price: money("15.00"), UOM: "pcs"},
	}
}

// Run loads the demo dataset: three locations, five products, and 200 units
// of every product at the Warehouse location. Safe to run repeatedly; every
// write is an upsert keyed on the natural unique column.
func Run(db *gorm.DB) error {
	log.Println("Start seeding...")

	for _, loc := range seedLocations {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&loc).Error
		if err != nil {
			return fmt.Errorf("seed location %q: %w", loc.Name, err)
		}
	}

	for _, product := range seedProducts() {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sku"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"cost":  product.Cost,
				"price": product.Price,
				"uom":   product.UOM,
			}),
		}).Create(&product).Error
		if err != nil {
			return fmt.Errorf("seed product %q: %w", product.SKU, err)
		}
	}

	warehouse, err := locationRepo.NewLocationRepository(db).FindByName("Warehouse")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("seed: Warehouse location missing after seeding")
		}
		return err
	}

	var products []catalogEntity.Product
	if err := db.Find(&products).Error; err != nil {
		return err
	}
	for _, product := range products {
		level := inventoryEntity.StockLevel{
			ProductID:  product.ProductID,
			LocationID: warehouse.LocationID,
			Quantity:   warehouseSeedQuantity,
		}
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": warehouseSeedQuantity,
			}),
		}).Create(&level).Error
		if err != nil {
			return fmt.Errorf("seed stock for %q: %w", product.SKU, err)
		}
	}

	log.Println("Seeding finished.")
	return nil
}

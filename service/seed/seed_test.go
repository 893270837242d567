package seed_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	catalogEntity "tillpoint/model/entity/catalog"
	inventoryEntity "tillpoint/model/entity/inventory"
	locationEntity "tillpoint/model/entity/location"
	"tillpoint/service/seed"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&catalogEntity.Product{},
		&locationEntity.Location{},
		&inventoryEntity.StockLevel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRun_LoadsDemoData(t *testing.T) {
	db := testDB(t)
	if err := seed.Run(db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var locations, products, levels int64
	db.Model(&locationEntity.Location{}).Count(&locations)
	db.Model(&catalogEntity.Product{}).Count(&products)
	db.Model(&inventoryEntity.StockLevel{}).Count(&levels)
	if locations != 3 {
		t.Errorf("locations = %d, want 3", locations)
	}
	if products != 5 {
		t.Errorf("products = %d, want 5", products)
	}
	if levels != 5 {
		t.Errorf("stock levels = %d, want 5", levels)
	}

	var warehouse locationEntity.Location
	if err := db.Where("name = ?", "Warehouse").First(&warehouse).Error; err != nil {
		t.Fatalf("warehouse: %v", err)
	}
	var level inventoryEntity.StockLevel
	if err := db.Where("location_id = ?", warehouse.LocationID).First(&level).Error; err != nil {
		t.Fatalf("warehouse stock: %v", err)
	}
	if level.Quantity != 200 {
		t.Errorf("warehouse quantity = %d, want 200", level.Quantity)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := testDB(t)
	if err := seed.Run(db); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := seed.Run(db); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	var locations, products, levels int64
	db.Model(&locationEntity.Location{}).Count(&locations)
	db.Model(&catalogEntity.Product{}).Count(&products)
	db.Model(&inventoryEntity.StockLevel{}).Count(&levels)
	if locations != 3 || products != 5 || levels != 5 {
		t.Errorf("counts after reseed = %d/%d/%d, want 3/5/5", locations, products, levels)
	}
}

package inventory_test

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogEntity "tillpoint/model/entity/catalog"
	inventoryEntity "tillpoint/model/entity/inventory"
	locationEntity "tillpoint/model/entity/location"
	"tillpoint/service/inventory"
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

func seedProduct(t *testing.T, db *gorm.DB, sku string) *catalogEntity.Product {
	t.Helper()
	p := &catalogEntity.Product{
		SKU:   sku,
		Name:  "Product " + sku,
		Cost:  decimal.RequireFromString("1.00"),
		Price: decimal.RequireFromString("2.00"),
		UOM:   "pcs",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedLocation(t *testing.T, db *gorm.DB, name string) *locationEntity.Location {
	t.Helper()
	l := &locationEntity.Location{Name: name}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return l
}

func TestReceive_CreatesRowOnFirstReceipt(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "MOUSE-002")
	loc := seedLocation(t, db, "Warehouse")

	res, err := inventory.Receive(db, inventory.ReceiveInput{
		ProductID:     p.ProductID,
		LocationID:    loc.LocationID,
		QuantityToAdd: 7,
	})
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if res.UpdatedQuantity != 7 {
		t.Errorf("UpdatedQuantity = %d, want 7", res.UpdatedQuantity)
	}
}

func TestReceive_IncrementsExistingRow(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "MOUSE-002")
	loc := seedLocation(t, db, "Warehouse")

	in := inventory.ReceiveInput{ProductID: p.ProductID, LocationID: loc.LocationID, QuantityToAdd: 5}
	if _, err := inventory.Receive(db, in); err != nil {
		t.Fatalf("first Receive: %v", err)
	}
	res, err := inventory.Receive(db, in)
	if err != nil {
		t.Fatalf("second Receive: %v", err)
	}
	if res.UpdatedQuantity != 10 {
		t.Errorf("UpdatedQuantity = %d, want 10", res.UpdatedQuantity)
	}

	var count int64
	db.Model(&inventoryEntity.StockLevel{}).Count(&count)
	if count != 1 {
		t.Errorf("stock rows = %d, want 1", count)
	}
}

func TestReceive_Validation(t *testing.T) {
	db := testDB(t)
	p := seedProduct(t, db, "MOUSE-002")
	loc := seedLocation(t, db, "Warehouse")

	_, err := inventory.Receive(db, inventory.ReceiveInput{ProductID: p.ProductID, LocationID: loc.LocationID, QuantityToAdd: 0})
	if !errors.Is(err, inventory.ErrInvalidQuantity) {
		t.Errorf("zero qty err = %v, want ErrInvalidQuantity", err)
	}
	_, err = inventory.Receive(db, inventory.ReceiveInput{ProductID: p.ProductID, LocationID: loc.LocationID, QuantityToAdd: -3})
	if !errors.Is(err, inventory.ErrInvalidQuantity) {
		t.Errorf("negative qty err = %v, want ErrInvalidQuantity", err)
	}
	_, err = inventory.Receive(db, inventory.ReceiveInput{ProductID: 999, LocationID: loc.LocationID, QuantityToAdd: 1})
	if !errors.Is(err, inventory.ErrProductNotFound) {
		t.Errorf("unknown product err = %v, want ErrProductNotFound", err)
	}
	_, err = inventory.Receive(db, inventory.ReceiveInput{ProductID: p.ProductID, LocationID: 999, QuantityToAdd: 1})
	if !errors.Is(err, inventory.ErrLocationNotFound) {
		t.Errorf("unknown location err = %v, want ErrLocationNotFound", err)
	}
}

package inventory_test

import (
	"strings"
	"testing"

	inventoryEntity "tillpoint/model/entity/inventory"
	"tillpoint/service/inventory"
)

func TestImportStockCSV_AppliesAndSkips(t *testing.T) {
	db := testDB(t)
	mouse := seedProduct(t, db, "MOUSE-002")
	cable := seedProduct(t, db, "CABLE-005")
	loc := seedLocation(t, db, "Warehouse")

	csv := strings.Join([]string{
		"sku,quantity",
		"MOUSE-002,10",
		"CABLE-005,4",
		"UNKNOWN-SKU,5",
		"MOUSE-002,abc",
		",3",
	}, "\n")

	res, err := inventory.ImportStockCSV(db, strings.NewReader(csv), inventory.ImportOptions{
		LocationID: loc.LocationID,
	})
	if err != nil {
		t.Fatalf("ImportStockCSV: %v", err)
	}
	if res.TotalRows != 5 {
		t.Errorf("TotalRows = %d, want 5", res.TotalRows)
	}
	if res.Applied != 2 {
		t.Errorf("Applied = %d, want 2", res.Applied)
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
	if len(res.Warnings) != 3 {
		t.Errorf("Warnings = %d, want 3", len(res.Warnings))
	}

	var level inventoryEntity.StockLevel
	if err := db.Where("product_id = ?", mouse.ProductID).First(&level).Error; err != nil {
		t.Fatalf("read mouse stock: %v", err)
	}
	if level.Quantity != 10 {
		t.Errorf("mouse stock = %d, want 10", level.Quantity)
	}
	level = inventoryEntity.StockLevel{}
	if err := db.Where("product_id = ?", cable.ProductID).First(&level).Error; err != nil {
		t.Fatalf("read cable stock: %v", err)
	}
	if level.Quantity != 4 {
		t.Errorf("cable stock = %d, want 4", level.Quantity)
	}
}

func TestImportStockCSV_RequiresColumns(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "Warehouse")

	_, err := inventory.ImportStockCSV(db, strings.NewReader("name,qty\nfoo,1\n"), inventory.ImportOptions{
		LocationID: loc.LocationID,
	})
	if err == nil {
		t.Fatal("expected error for missing sku column")
	}
}

package checkout_test

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogEntity "tillpoint/model/entity/catalog"
	inventoryEntity "tillpoint/model/entity/inventory"
	locationEntity "tillpoint/model/entity/location"
	salesEntity "tillpoint/model/entity/sales"
	"tillpoint/service/checkout"
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
		&salesEntity.Sale{},
		&salesEntity.SaleItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku, name, price string) *catalogEntity.Product {
	t.Helper()
	p := &catalogEntity.Product{
		SKU:   sku,
		Name:  name,
		Cost:  decimal.RequireFromString("1.00"),
		Price: decimal.RequireFromString(price),
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

func seedStock(t *testing.T, db *gorm.DB, productID, locationID uint, qty int) {
	t.Helper()
	level := &inventoryEntity.StockLevel{ProductID: productID, LocationID: locationID, Quantity: qty}
	if err := db.Create(level).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

func stockQty(t *testing.T, db *gorm.DB, productID, locationID uint) int {
	t.Helper()
	var level inventoryEntity.StockLevel
	err := db.Where("product_id = ? AND location_id = ?", productID, locationID).First(&level).Error
	if err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return level.Quantity
}

func TestCreateSale_TotalAndDecrement(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	mouse := seedProduct(t, db, "MOUSE-002", "Wireless Mouse", "25.50")
	seedStock(t, db, mouse.ProductID, loc.LocationID, 10)

	res, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 3, UnitPrice: decimal.RequireFromString("25.50")},
	}, loc.LocationID)
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if got, want := res.TotalAmount.StringFixed(2), "76.50"; got != want {
		t.Errorf("TotalAmount = %s, want %s", got, want)
	}
	if got := stockQty(t, db, mouse.ProductID, loc.LocationID); got != 7 {
		t.Errorf("stock after sale = %d, want 7", got)
	}

	var sale salesEntity.Sale
	if err := db.Preload("Items").First(&sale, res.SaleID).Error; err != nil {
		t.Fatalf("load sale: %v", err)
	}
	if len(sale.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(sale.Items))
	}
	if got := sale.Items[0].PriceAtSale.StringFixed(2); got != "25.50" {
		t.Errorf("PriceAtSale = %s, want 25.50", got)
	}
}

func TestCreateSale_MultipleLines(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	mouse := seedProduct(t, db, "MOUSE-002", "Wireless Mouse", "25.50")
	cable := seedProduct(t, db, "CABLE-005", "HDMI Cable 2m", "15.00")
	seedStock(t, db, mouse.ProductID, loc.LocationID, 5)
	seedStock(t, db, cable.ProductID, loc.LocationID, 5)

	res, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 2, UnitPrice: decimal.RequireFromString("25.50")},
		{ProductID: cable.ProductID, Quantity: 1, UnitPrice: decimal.RequireFromString("15.00")},
	}, loc.LocationID)
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if got, want := res.TotalAmount.StringFixed(2), "66.00"; got != want {
		t.Errorf("TotalAmount = %s, want %s", got, want)
	}
	if got := stockQty(t, db, cable.ProductID, loc.LocationID); got != 4 {
		t.Errorf("cable stock = %d, want 4", got)
	}
}

func TestCreateSale_DuplicateLinesDecrementSequentially(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	mouse := seedProduct(t, db, "MOUSE-002", "Wireless Mouse", "25.50")
	seedStock(t, db, mouse.ProductID, loc.LocationID, 4)

	// 2 + 3 exceeds the 4 on hand even though each line alone would fit.
	_, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 2, UnitPrice: decimal.RequireFromString("25.50")},
		{ProductID: mouse.ProductID, Quantity: 3, UnitPrice: decimal.RequireFromString("25.50")},
	}, loc.LocationID)

	var stockErr *checkout.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if got := stockQty(t, db, mouse.ProductID, loc.LocationID); got != 4 {
		t.Errorf("stock after rollback = %d, want 4", got)
	}
	var count int64
	db.Model(&salesEntity.Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("sales after rollback = %d, want 0", count)
	}
}

func TestCreateSale_DuplicateLinesWithinStock(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	mouse := seedProduct(t, db, "MOUSE-002", "Wireless Mouse", "25.50")
	seedStock(t, db, mouse.ProductID, loc.LocationID, 5)

	res, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 2, UnitPrice: decimal.RequireFromString("25.50")},
		{ProductID: mouse.ProductID, Quantity: 3, UnitPrice: decimal.RequireFromString("25.50")},
	}, loc.LocationID)
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if got := stockQty(t, db, mouse.ProductID, loc.LocationID); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
	var sale salesEntity.Sale
	if err := db.Preload("Items").First(&sale, res.SaleID).Error; err != nil {
		t.Fatalf("load sale: %v", err)
	}
	if len(sale.Items) != 2 {
		t.Errorf("items = %d, want 2", len(sale.Items))
	}
}

func TestCreateSale_InsufficientStockNamesProduct(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	laptop := seedProduct(t, db, "LAPTOP-001", `ProBook Laptop 15"`, "1299.99")
	seedStock(t, db, laptop.ProductID, loc.LocationID, 1)

	_, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: laptop.ProductID, Quantity: 2, UnitPrice: decimal.RequireFromString("1299.99")},
	}, loc.LocationID)

	var stockErr *checkout.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	want := `Insufficient stock for product: ProBook Laptop 15"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCreateSale_NoStockRowIsInsufficient(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	mouse := seedProduct(t, db, "MOUSE-002", "Wireless Mouse", "25.50")
	// No stock_level row for this product at this location.

	_, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 1, UnitPrice: decimal.RequireFromString("25.50")},
	}, loc.LocationID)

	var stockErr *checkout.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
}

func TestCreateSale_Validation(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	mouse := seedProduct(t, db, "MOUSE-002", "Wireless Mouse", "25.50")
	seedStock(t, db, mouse.ProductID, loc.LocationID, 10)

	if _, err := checkout.CreateSale(db, nil, loc.LocationID); !errors.Is(err, checkout.ErrEmptyCart) {
		t.Errorf("empty cart err = %v, want ErrEmptyCart", err)
	}

	_, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 0, UnitPrice: decimal.RequireFromString("25.50")},
	}, loc.LocationID)
	if !errors.Is(err, checkout.ErrInvalidQuantity) {
		t.Errorf("zero qty err = %v, want ErrInvalidQuantity", err)
	}

	_, err = checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 1, UnitPrice: decimal.RequireFromString("-1.00")},
	}, loc.LocationID)
	if !errors.Is(err, checkout.ErrInvalidPrice) {
		t.Errorf("negative price err = %v, want ErrInvalidPrice", err)
	}
}

func TestCreateSale_UnknownReferences(t *testing.T) {
	db := testDB(t)
	loc := seedLocation(t, db, "SuperMart")
	mouse := seedProduct(t, db, "MOUSE-002", "Wireless Mouse", "25.50")
	seedStock(t, db, mouse.ProductID, loc.LocationID, 10)

	_, err := checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: mouse.ProductID, Quantity: 1, UnitPrice: decimal.RequireFromString("25.50")},
	}, 999)
	if !errors.Is(err, checkout.ErrLocationNotFound) {
		t.Errorf("unknown location err = %v, want ErrLocationNotFound", err)
	}

	_, err = checkout.CreateSale(db, []checkout.CartLine{
		{ProductID: 999, Quantity: 1, UnitPrice: decimal.RequireFromString("25.50")},
	}, loc.LocationID)
	if !errors.Is(err, checkout.ErrProductNotFound) {
		t.Errorf("unknown product err = %v, want ErrProductNotFound", err)
	}
}

package product_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	productApi "tillpoint/api/product"
	"tillpoint/config"
	"tillpoint/core/cache"
	"tillpoint/model/entity/audit"
	catalogEntity "tillpoint/model/entity/catalog"
	inventoryEntity "tillpoint/model/entity/inventory"
	locationEntity "tillpoint/model/entity/location"
	salesEntity "tillpoint/model/entity/sales"
)

const (
	testUser = "admin"
	testPass = "secret"
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
		&audit.OperationLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testServer(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	config.LoadAppConfig()
	cache.GetInstance().DeleteByTag("catalog")
	e := echo.New()
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		return user == testUser && pass == testPass, nil
	}))
	productApi.RegisterProductRoutes(apiGroup, db)
	return e
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func doJSON(e *echo.Echo, method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", basicAuth(testUser, testPass))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProductCreateAndGet(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)

	rec := doJSON(e, http.MethodPost, "/api/products", echo.Map{
		"sku":   "MON-004",
		"name":  `4K Monitor 27"`,
		"cost":  "200.00",
		"price": "350.00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created catalogEntity.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ProductID == 0 {
		t.Fatal("product_id missing")
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ProductID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var fetched catalogEntity.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched.SKU != "MON-004" {
		t.Errorf("sku = %q, want MON-004", fetched.SKU)
	}
}

func TestProductCreate_DuplicateSKUIsConflict(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)

	body := echo.Map{"sku": "MON-004", "name": "Monitor", "cost": "1.00", "price": "2.00"}
	if rec := doJSON(e, http.MethodPost, "/api/products", body); rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}
	rec := doJSON(e, http.MethodPost, "/api/products", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
}

func TestProductList_CachesResult(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)

	if rec := doJSON(e, http.MethodPost, "/api/products", echo.Map{"sku": "A-1", "name": "One", "cost": "1.00", "price": "2.00"}); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if _, ok := cache.GetInstance().Get("product:list"); !ok {
		t.Error("product list not cached after read")
	}

	// A write invalidates the cached list.
	if rec := doJSON(e, http.MethodPost, "/api/products", echo.Map{"sku": "A-2", "name": "Two", "cost": "1.00", "price": "2.00"}); rec.Code != http.StatusCreated {
		t.Fatalf("second create status = %d", rec.Code)
	}
	if _, ok := cache.GetInstance().Get("product:list"); ok {
		t.Error("product list cache not invalidated by create")
	}
}

func TestProductDelete_Guard(t *testing.T) {
	db := testDB(t)
	if err := db.Create(&locationEntity.Location{Name: "Warehouse"}).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	e := testServer(t, db)

	rec := doJSON(e, http.MethodPost, "/api/products", echo.Map{
		"sku": "A-1", "name": "One", "cost": "1.00", "price": "2.00", "initial_stock": 5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created catalogEntity.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ProductID), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete status = %d, want 409 while stock references the product", rec.Code)
	}

	db.Where("product_id = ?", created.ProductID).Delete(&inventoryEntity.StockLevel{})
	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ProductID), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204 after stock cleared", rec.Code)
	}
}

func TestProductSearch_FallsBackToSQL(t *testing.T) {
	db := testDB(t)
	e := testServer(t, db)

	if rec := doJSON(e, http.MethodPost, "/api/products", echo.Map{"sku": "MOUSE-002", "name": "Wireless Mouse", "cost": "10.00", "price": "25.50"}); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/api/products/search?q=mouse", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d", rec.Code)
	}
	var results []catalogEntity.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 1 || results[0].SKU != "MOUSE-002" {
		t.Errorf("results = %+v, want one MOUSE-002", results)
	}
}

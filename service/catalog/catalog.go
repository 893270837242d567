package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tillpoint/core/cache"
	catalogEntity "tillpoint/model/entity/catalog"
	catalogRepo "tillpoint/model/repository/catalog"
	inventoryRepo "tillpoint/model/repository/inventory"
	locationRepo "tillpoint/model/repository/location"
)

// ProductInput carries the fields for creating a product. InitialStock, when
// positive, is placed at the configured default warehouse inside the same
// transaction that creates the product.
type ProductInput struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
	UOM          string          `json:"uom"`
	InitialStock int             `json:"initial_stock"`
}

// ProductUpdate carries optional field updates; nil means keep current value.
type ProductUpdate struct {
	SKU   *string          `json:"sku"`
	Name  *string          `json:"name"`
	Cost  *decimal.Decimal `json:"cost"`
	Price *decimal.Decimal `json:"price"`
	UOM   *string          `json:"uom"`
}

var (
	ErrMissingFields     = errors.New("sku and name are required")
	ErrNegativeMoney     = errors.New("cost and price must not be negative")
	ErrSKUExists         = errors.New("a product with this SKU already exists")
	ErrWarehouseNotFound = errors.New("default warehouse location not found")
)

// CreateProduct validates and creates a catalog product. warehouseName names
// the location for InitialStock; it must exist when InitialStock > 0.
func CreateProduct(db *gorm.DB, in ProductInput, warehouseName string) (*catalogEntity.Product, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, ErrMissingFields
	}
	if in.Cost.IsNegative() || in.Price.IsNegative() {
		return nil, ErrNegativeMoney
	}
	if in.UOM == "" {
		in.UOM = "pcs"
	}

	repo := catalogRepo.NewProductRepository(db)
	if _, err := repo.FindBySKU(in.SKU); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrSKUExists, in.SKU)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var warehouseID uint
	if in.InitialStock > 0 {
		warehouse, err := locationRepo.NewLocationRepository(db).FindByName(warehouseName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %q", ErrWarehouseNotFound, warehouseName)
			}
			return nil, err
		}
		warehouseID = warehouse.LocationID
	}

	product := catalogEntity.Product{
		SKU:   in.SKU,
		Name:  in.Name,
		Cost:  in.Cost,
		Price: in.Price,
		UOM:   in.UOM,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if in.InitialStock > 0 {
			if err := inventoryRepo.UpsertIncrement(tx, product.ProductID, warehouseID, in.InitialStock); err != nil {
				return fmt.Errorf("initial stock: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.GetInstance().DeleteByTag("catalog")
	return &product, nil
}

// UpdateProduct applies the non-nil fields of upd to an existing product.
func UpdateProduct(db *gorm.DB, id uint, upd ProductUpdate) (*catalogEntity.Product, error) {
	repo := catalogRepo.NewProductRepository(db)
	product, err := repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if upd.SKU != nil {
		sku := strings.TrimSpace(*upd.SKU)
		if sku == "" {
			return nil, ErrMissingFields
		}
		if sku != product.SKU {
			if _, err := repo.FindBySKU(sku); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrSKUExists, sku)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		product.SKU = sku
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, ErrMissingFields
		}
		product.Name = name
	}
	if upd.Cost != nil {
		if upd.Cost.IsNegative() {
			return nil, ErrNegativeMoney
		}
		product.Cost = *upd.Cost
	}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return nil, ErrNegativeMoney
		}
		product.Price = *upd.Price
	}
	if upd.UOM != nil {
		product.UOM = *upd.UOM
	}

	if err := repo.Update(product); err != nil {
		return nil, err
	}
	cache.GetInstance().DeleteByTag("catalog")
	return product, nil
}

// DeleteProduct removes a product; blocked while stock or sale rows reference it.
func DeleteProduct(db *gorm.DB, id uint) error {
	if err := catalogRepo.NewProductRepository(db).Delete(id); err != nil {
		return err
	}
	cache.GetInstance().DeleteByTag("catalog")
	return nil
}

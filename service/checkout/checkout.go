package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tillpoint/core/cache"
	salesEntity "tillpoint/model/entity/sales"
	catalogRepo "tillpoint/model/repository/catalog"
	inventoryRepo "tillpoint/model/repository/inventory"
	locationRepo "tillpoint/model/repository/location"
)

// CartLine is one entry of a pending sale: a product, a positive quantity and
// the unit price the terminal showed when the line was added.
type CartLine struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Result reports a committed sale.
type Result struct {
	SaleID      uint            `json:"sale_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

var (
	ErrEmptyCart        = errors.New("cart must contain at least one line")
	ErrInvalidQuantity  = errors.New("line quantity must be a positive integer")
	ErrInvalidPrice     = errors.New("line price must not be negative")
	ErrLocationNotFound = errors.New("location not found")
	ErrProductNotFound  = errors.New("product not found")
)

// InsufficientStockError names the product whose stock could not cover its
// cart line. Callers surface Error() verbatim to the terminal.
type InsufficientStockError struct {
	ProductName string
	SKU         string
}

func (e *InsufficientStockError) Error() string {
	return "Insufficient stock for product: " + e.ProductName
}

// CreateSale converts a cart plus a target location into durable
// Sale + SaleItem + StockLevel changes as one all-or-nothing transaction.
//
// The total is computed with decimal arithmetic before the transaction opens.
// Inside the transaction one Sale row is inserted, then per cart line, in
// input order, one SaleItem row plus a guarded decrement of the line's stock
// level. A guarded decrement that misses (row absent or balance short) aborts
// the whole transaction, so partial decrements are never observable. Duplicate
// lines for the same product decrement sequentially against the balance left
// by the previous line, not against a pre-transaction snapshot.
func CreateSale(db *gorm.DB, lines []CartLine, locationID uint) (*Result, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if line.UnitPrice.IsNegative() {
			return nil, ErrInvalidPrice
		}
	}

	if _, err := locationRepo.NewLocationRepository(db).FindByID(locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrLocationNotFound, locationID)
		}
		return nil, err
	}

	productIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := catalogRepo.NewProductRepository(db).BatchFindByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if _, ok := products[line.ProductID]; !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, line.ProductID)
		}
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	sale := salesEntity.Sale{TotalAmount: total}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		for _, line := range lines {
			item := salesEntity.SaleItem{
				SaleID:      sale.SaleID,
				ProductID:   line.ProductID,
				LocationID:  locationID,
				Quantity:    line.Quantity,
				PriceAtSale: line.UnitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create sale item: %w", err)
			}
			ok, err := inventoryRepo.DecrementGuarded(tx, line.ProductID, locationID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !ok {
				p := products[line.ProductID]
				return &InsufficientStockError{ProductName: p.Name, SKU: p.SKU}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.GetInstance().DeleteByTag("stock")
	return &Result{SaleID: sale.SaleID, TotalAmount: total}, nil
}

package resolvers

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	gqlmodels "tillpoint/graphql/models"
	catalogEntity "tillpoint/model/entity/catalog"
	locationEntity "tillpoint/model/entity/location"
	salesEntity "tillpoint/model/entity/sales"
	"tillpoint/service/accounting"
)

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

// decimalToStringHook renders decimal amounts with two places so money is
// stable on the wire.
func decimalToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		if d, ok := data.(decimal.Decimal); ok {
			return d.StringFixed(2), nil
		}
		return data, nil
	}
}

var flatDecodeHook = mapstructure.ComposeDecodeHookFunc(
	decimalToStringHook(),
	numberToStringHook(),
)

// flatToStockRow decodes one row of the flat product-with-stock projection.
func flatToStockRow(row map[string]interface{}) (*gqlmodels.StockRow, error) {
	var out gqlmodels.StockRow
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       flatDecodeHook,
		Result:           &out,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(row); err != nil {
		return nil, err
	}
	return &out, nil
}

func productToModel(p *catalogEntity.Product) *gqlmodels.Product {
	return &gqlmodels.Product{
		ID:    graphql.ID(strconv.FormatUint(uint64(p.ProductID), 10)),
		SKU:   p.SKU,
		Name:  p.Name,
		Cost:  p.Cost.StringFixed(2),
		Price: p.Price.StringFixed(2),
		UOM:   p.UOM,
	}
}

func locationToModel(l *locationEntity.Location) *gqlmodels.Location {
	return &gqlmodels.Location{
		ID:          graphql.ID(strconv.FormatUint(uint64(l.LocationID), 10)),
		Name:        l.Name,
		Description: l.Description,
	}
}

func saleToModel(s *salesEntity.Sale) *gqlmodels.Sale {
	items := make([]*gqlmodels.SaleItem, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, &gqlmodels.SaleItem{
			ProductID:   graphql.ID(strconv.FormatUint(uint64(item.ProductID), 10)),
			Quantity:    int32(item.Quantity),
			PriceAtSale: item.PriceAtSale.StringFixed(2),
		})
	}
	return &gqlmodels.Sale{
		ID:          graphql.ID(strconv.FormatUint(uint64(s.SaleID), 10)),
		TotalAmount: s.TotalAmount.StringFixed(2),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		Items:       items,
	}
}

func summaryToModel(s *accounting.Summary) *gqlmodels.Summary {
	return &gqlmodels.Summary{
		From:         s.From.Format("2006-01-02"),
		To:           s.To.Format("2006-01-02"),
		Revenue:      s.Revenue.StringFixed(2),
		Expenses:     s.Expenses.StringFixed(2),
		Profit:       s.Profit.StringFixed(2),
		SaleCount:    int32(s.SaleCount),
		ExpenseCount: int32(s.ExpenseCount),
	}
}

package resolvers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	gqlmodels "tillpoint/graphql/models"
	catalogRepo "tillpoint/model/repository/catalog"
	locationRepo "tillpoint/model/repository/location"
	salesRepo "tillpoint/model/repository/sales"
	"tillpoint/service/accounting"
)

// Resolver carries the DB handle for one request.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) Query() *QueryResolver {
	return &QueryResolver{db: r.db}
}

// QueryResolver implements the read-only query fields.
type QueryResolver struct {
	db *gorm.DB
}

func (q *QueryResolver) Products(ctx context.Context, skus []string) ([]*gqlmodels.Product, error) {
	repo := catalogRepo.NewProductRepository(q.db)
	if len(skus) == 0 {
		products, err := repo.List()
		if err != nil {
			return nil, err
		}
		out := make([]*gqlmodels.Product, 0, len(products))
		for i := range products {
			out = append(out, productToModel(&products[i]))
		}
		return out, nil
	}

	out := make([]*gqlmodels.Product, 0, len(skus))
	for _, sku := range skus {
		product, err := repo.FindBySKU(sku)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, productToModel(product))
	}
	return out, nil
}

func (q *QueryResolver) Product(ctx context.Context, sku string) (*gqlmodels.Product, error) {
	product, err := catalogRepo.NewProductRepository(q.db).FindBySKU(sku)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return productToModel(product), nil
}

func (q *QueryResolver) Locations(ctx context.Context) ([]*gqlmodels.Location, error) {
	locations, err := locationRepo.NewLocationRepository(q.db).List()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Location, 0, len(locations))
	for i := range locations {
		out = append(out, locationToModel(&locations[i]))
	}
	return out, nil
}

func (q *QueryResolver) StockLevels(ctx context.Context, locationID uint) ([]*gqlmodels.StockRow, error) {
	flat, err := catalogRepo.NewProductRepository(q.db).FetchFlatWithStock(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.StockRow, 0, len(flat))
	for _, row := range flat {
		mapped, err := flatToStockRow(row)
		if err != nil {
			return nil, fmt.Errorf("map stock row: %w", err)
		}
		out = append(out, mapped)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (q *QueryResolver) Sales(ctx context.Context, limit int) ([]*gqlmodels.Sale, error) {
	sales, err := salesRepo.NewSalesRepository(q.db).List(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Sale, 0, len(sales))
	for i := range sales {
		out = append(out, saleToModel(&sales[i]))
	}
	return out, nil
}

func (q *QueryResolver) Summary(ctx context.Context, from, to *string) (*gqlmodels.Summary, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	if from != nil && *from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *from, time.Local)
		if err != nil {
			return nil, fmt.Errorf("from must be YYYY-MM-DD")
		}
		start = parsed
	}
	if to != nil && *to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *to, time.Local)
		if err != nil {
			return nil, fmt.Errorf("to must be YYYY-MM-DD")
		}
		end = parsed
	}
	summary, err := accounting.Summarize(q.db, start, end)
	if err != nil {
		return nil, err
	}
	return summaryToModel(summary), nil
}

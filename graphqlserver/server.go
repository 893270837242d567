package graphqlserver

import (
	"context"
	"encoding/json"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"tillpoint/graphql"
	gqlmodels "tillpoint/graphql/models"
	"tillpoint/graphql/registry"
	"tillpoint/graphql/resolvers"
)

// RootResolver implements the Query fields for graphql-go. Field resolution
// delegates to the resolvers package.
type RootResolver struct {
	DB *gorm.DB
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Skus *[]string
}

func (r *RootResolver) Products(ctx context.Context, args ProductsArgs) ([]*gqlmodels.Product, error) {
	var skus []string
	if args.Skus != nil {
		skus = *args.Skus
	}
	return resolvers.NewResolver(r.DB).Query().Products(ctx, skus)
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	Sku string
}

func (r *RootResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	return resolvers.NewResolver(r.DB).Query().Product(ctx, args.Sku)
}

func (r *RootResolver) Locations(ctx context.Context) ([]*gqlmodels.Location, error) {
	return resolvers.NewResolver(r.DB).Query().Locations(ctx)
}

// StockLevelsArgs matches the stockLevels query arguments.
type StockLevelsArgs struct {
	LocationID gql.ID
}

func (r *RootResolver) StockLevels(ctx context.Context, args StockLevelsArgs) ([]*gqlmodels.StockRow, error) {
	locationID, err := strconv.ParseUint(string(args.LocationID), 10, 64)
	if err != nil {
		return nil, err
	}
	return resolvers.NewResolver(r.DB).Query().StockLevels(ctx, uint(locationID))
}

// SalesArgs matches the sales query arguments.
type SalesArgs struct {
	Limit *int32
}

func (r *RootResolver) Sales(ctx context.Context, args SalesArgs) ([]*gqlmodels.Sale, error) {
	limit := 20
	if args.Limit != nil && *args.Limit > 0 {
		limit = int(*args.Limit)
	}
	return resolvers.NewResolver(r.DB).Query().Sales(ctx, limit)
}

// SummaryArgs matches the summary query arguments.
type SummaryArgs struct {
	From *string
	To   *string
}

func (r *RootResolver) Summary(ctx context.Context, args SummaryArgs) (*gqlmodels.Summary, error) {
	return resolvers.NewResolver(r.DB).Query().Summary(ctx, args.From, args.To)
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *RootResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}

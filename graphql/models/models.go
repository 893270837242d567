package models

import (
	graphql "github.com/graph-gophers/graphql-go"
)

// --- Catalog ---

type Product struct {
	ID    graphql.ID `json:"id" mapstructure:"product_id"`
	SKU   string     `json:"sku" mapstructure:"sku"`
	Name  string     `json:"name" mapstructure:"name"`
	Cost  string     `json:"cost" mapstructure:"cost"`
	Price string     `json:"price" mapstructure:"price"`
	UOM   string     `json:"uom" mapstructure:"uom"`
}

type Location struct {
	ID          graphql.ID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

// --- Inventory ---

// StockRow is a product joined with its on-hand quantity at one location.
type StockRow struct {
	ProductID graphql.ID `json:"product_id" mapstructure:"product_id"`
	SKU       string     `json:"sku" mapstructure:"sku"`
	Name      string     `json:"name" mapstructure:"name"`
	Price     string     `json:"price" mapstructure:"price"`
	Quantity  int32      `json:"quantity" mapstructure:"quantity"`
}

// --- Sales ---

type Sale struct {
	ID          graphql.ID  `json:"id"`
	TotalAmount string      `json:"total_amount"`
	CreatedAt   string      `json:"created_at"`
	Items       []*SaleItem `json:"items"`
}

type SaleItem struct {
	ProductID   graphql.ID `json:"product_id"`
	Quantity    int32      `json:"quantity"`
	PriceAtSale string     `json:"price_at_sale"`
}

// --- Accounting ---

type Summary struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Revenue      string `json:"revenue"`
	Expenses     string `json:"expenses"`
	Profit       string `json:"profit"`
	SaleCount    int32  `json:"sale_count"`
	ExpenseCount int32  `json:"expense_count"`
}

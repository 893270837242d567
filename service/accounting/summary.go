package accounting

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerRepo "tillpoint/model/repository/ledger"
	salesRepo "tillpoint/model/repository/sales"
)

// Summary is a profit and loss rollup over a time window.
type Summary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Revenue      decimal.Decimal `json:"revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
	SaleCount    int             `json:"sale_count"`
	ExpenseCount int             `json:"expense_count"`
}

// Summarize totals sales revenue and expenses between from (inclusive) and
// to (exclusive). Sums run over decimal amounts in application code so the
// result is exact regardless of the database backend.
func Summarize(db *gorm.DB, from, to time.Time) (*Summary, error) {
	sales, err := salesRepo.NewSalesRepository(db).ListBetween(from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := ledgerRepo.NewExpenseRepository(db).ListBetween(from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From:     from,
		To:       to,
		Revenue:  decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, sale := range sales {
		summary.Revenue = summary.Revenue.Add(sale.TotalAmount)
	}
	for _, expense := range expenses {
		summary.Expenses = summary.Expenses.Add(expense.Amount)
	}
	summary.Profit = summary.Revenue.Sub(summary.Expenses)
	summary.SaleCount = len(sales)
	summary.ExpenseCount = len(expenses)
	return summary, nil
}

// SummarizeMonth rolls up a calendar month in the local time zone.
func SummarizeMonth(db *gorm.DB, year int, month time.Month) (*Summary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return Summarize(db, from, from.AddDate(0, 1, 0))
}

// SummarizeDay rolls up a single calendar day in the local time zone.
func SummarizeDay(db *gorm.DB, day time.Time) (*Summary, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return Summarize(db, from, from.AddDate(0, 0, 1))
}

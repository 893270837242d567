package accounting_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerEntity "tillpoint/model/entity/ledger"
	salesEntity "tillpoint/model/entity/sales"
	"tillpoint/service/accounting"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&salesEntity.Sale{}, &salesEntity.SaleItem{}, &ledgerEntity.Expense{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSale(t *testing.T, db *gorm.DB, amount string, at time.Time) {
	t.Helper()
	sale := salesEntity.Sale{TotalAmount: decimal.RequireFromString(amount), CreatedAt: at}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}

func seedExpense(t *testing.T, db *gorm.DB, amount string, at time.Time) {
	t.Helper()
	expense := ledgerEntity.Expense{Description: "test", Amount: decimal.RequireFromString(amount), CreatedAt: at}
	if err := db.Create(&expense).Error; err != nil {
		t.Fatalf("seed expense: %v", err)
	}
}

func TestSummarize_ExactDecimalTotals(t *testing.T) {
	db := testDB(t)
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	seedSale(t, db, "25.50", day)
	seedSale(t, db, "0.10", day)
	seedSale(t, db, "0.20", day)
	seedExpense(t, db, "5.05", day)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	summary, err := accounting.Summarize(db, from, from.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got := summary.Revenue.StringFixed(2); got != "25.80" {
		t.Errorf("Revenue = %s, want 25.80", got)
	}
	if got := summary.Expenses.StringFixed(2); got != "5.05" {
		t.Errorf("Expenses = %s, want 5.05", got)
	}
	if got := summary.Profit.StringFixed(2); got != "20.75" {
		t.Errorf("Profit = %s, want 20.75", got)
	}
	if summary.SaleCount != 3 || summary.ExpenseCount != 1 {
		t.Errorf("counts = %d/%d, want 3/1", summary.SaleCount, summary.ExpenseCount)
	}
}

func TestSummarize_WindowBoundaries(t *testing.T) {
	db := testDB(t)
	seedSale(t, db, "10.00", time.Date(2026, 2, 28, 23, 59, 0, 0, time.Local))
	seedSale(t, db, "20.00", time.Date(2026, 3, 1, 0, 0, 1, 0, time.Local))
	seedSale(t, db, "40.00", time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local))

	summary, err := accounting.SummarizeMonth(db, 2026, time.March)
	if err != nil {
		t.Fatalf("SummarizeMonth: %v", err)
	}
	if got := summary.Revenue.StringFixed(2); got != "20.00" {
		t.Errorf("Revenue = %s, want only the March sale (20.00)", got)
	}
}

func TestSummarizeDay(t *testing.T) {
	db := testDB(t)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	seedSale(t, db, "15.00", day.Add(8*time.Hour))
	seedSale(t, db, "5.00", day.AddDate(0, 0, 1))
	seedExpense(t, db, "3.00", day.Add(20*time.Hour))

	summary, err := accounting.SummarizeDay(db, day)
	if err != nil {
		t.Fatalf("SummarizeDay: %v", err)
	}
	if got := summary.Revenue.StringFixed(2); got != "15.00" {
		t.Errorf("Revenue = %s, want 15.00", got)
	}
	if got := summary.Profit.StringFixed(2); got != "12.00" {
		t.Errorf("Profit = %s, want 12.00", got)
	}
}

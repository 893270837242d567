package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents the expense table, an append-only ledger line.
type Expense struct {
	ExpenseID   uint            `gorm:"column:expense_id;primaryKey;autoIncrement" json:"expense_id,omitempty"`
	Description string          `gorm:"column:description;type:varchar(255);not null" json:"description"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Expense) TableName() string {
	return "expense"
}

package ledger

import (
	"time"

	"gorm.io/gorm"

	ledgerEntity "tillpoint/model/entity/ledger"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(e *ledgerEntity.Expense) error {
	return r.db.Create(e).Error
}

// List returns expenses newest first.
func (r *ExpenseRepository) List(limit int) ([]ledgerEntity.Expense, error) {
	var expenses []ledgerEntity.Expense
	q := r.db.Order("created_at DESC, expense_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&expenses).Error
	return expenses, err
}

// ListBetween returns expenses created in [from, to), oldest first.
func (r *ExpenseRepository) ListBetween(from, to time.Time) ([]ledgerEntity.Expense, error) {
	var expenses []ledgerEntity.Expense
	err := r.db.Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").Find(&expenses).Error
	return expenses, err
}

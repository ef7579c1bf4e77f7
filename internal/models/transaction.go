package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a single dated money movement belonging to a user.
// Amounts are stored as non-negative magnitudes; IsExpense carries the sign.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	IsExpense   bool            `json:"is_expense"`
	IsFixed     bool            `json:"is_fixed"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SignedAmount returns the amount negated for expenses, positive for income.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

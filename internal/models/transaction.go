package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы транзакций.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Статусы транзакций.
const (
	TransactionStatusPlanned   = "planned"
	TransactionStatusCompleted = "completed"
)

// Transaction представляет доход или расход семьи.
type Transaction struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FamilyID    uuid.UUID `db:"family_id" json:"family_id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Amount      float64   `db:"amount" json:"amount"`
	Type        string    `db:"type" json:"type"`
	Category    string    `db:"category" json:"category"`
	Description *string   `db:"description" json:"description,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	IsRecurring bool      `db:"is_recurring" json:"is_recurring"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Периодичность подписок.
const (
	SubscriptionFrequencyWeekly  = "weekly"
	SubscriptionFrequencyMonthly = "monthly"
	SubscriptionFrequencyYearly  = "yearly"
)


// Subscription описывает регулярный платёж семьи (аренда, стриминг и т.п.).
type Subscription struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	FamilyID        uuid.UUID  `db:"family_id" json:"family_id"`
	Name            string     `db:"name" json:"name"`
	Amount          float64    `db:"amount" json:"amount"`
	Frequency       string     `db:"frequency" json:"frequency"`
	NextPaymentDate time.Time  `db:"next_payment_date" json:"next_payment_date"`
	BankAccountID   *uuid.UUID `db:"bank_account_id" json:"bank_account_id,omitempty"`
	Category        *string    `db:"category" json:"category,omitempty"`
	Description     *string    `db:"description" json:"description,omitempty"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedBy       uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// BankAccount представляет счёт, с которого списываются подписки.
type BankAccount struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FamilyID  uuid.UUID `db:"family_id" json:"family_id"`
	Name      string    `db:"name" json:"name"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

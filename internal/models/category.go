package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы категорий.
const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
	CategoryTypeBoth    = "both"
)

// Category описывает категорию доходов или расходов семьи.
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FamilyID  uuid.UUID `db:"family_id" json:"family_id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Icon      *string   `db:"icon" json:"icon,omitempty"`
	Color     *string   `db:"color" json:"color,omitempty"`
	IsDefault bool      `db:"is_default" json:"is_default"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}


// DefaultCategory описывает категорию из стартового набора новой семьи.
type DefaultCategory struct {
	Name  string
	Type  string
	Icon  string
	Color string
}

// DefaultCategories содержит набор категорий, которые создаются каждой новой семье.
var DefaultCategories = []DefaultCategory{
	{Name: "Salary", Type: CategoryTypeIncome, Icon: "💰", Color: "#10b981"},
	{Name: "Freelance", Type: CategoryTypeIncome, Icon: "💼", Color: "#3b82f6"},
	{Name: "Investment", Type: CategoryTypeIncome, Icon: "📈", Color: "#8b5cf6"},
	{Name: "Gift", Type: CategoryTypeIncome, Icon: "🎁", Color: "#ec4899"},
	{Name: "Other Income", Type: CategoryTypeIncome, Icon: "💵", Color: "#6b7280"},
	{Name: "Groceries", Type: CategoryTypeExpense, Icon: "🛒", Color: "#ef4444"},
	{Name: "Rent", Type: CategoryTypeExpense, Icon: "🏠", Color: "#f59e0b"},
	{Name: "Utilities", Type: CategoryTypeExpense, Icon: "⚡", Color: "#eab308"},
	{Name: "Transportation", Type: CategoryTypeExpense, Icon: "🚗", Color: "#06b6d4"},
	{Name: "Entertainment", Type: CategoryTypeExpense, Icon: "🎬", Color: "#a855f7"},
	{Name: "Healthcare", Type: CategoryTypeExpense, Icon: "🏥", Color: "#dc2626"},
	{Name: "Education", Type: CategoryTypeExpense, Icon: "📚", Color: "#2563eb"},
	{Name: "Shopping", Type: CategoryTypeExpense, Icon: "🛍️", Color: "#db2777"},
	{Name: "Dining", Type: CategoryTypeExpense, Icon: "🍽️", Color: "#f97316"},
	{Name: "Other Expense", Type: CategoryTypeExpense, Icon: "📝", Color: "#6b7280"},
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/repository/common"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository управляет таблицей transactions.
type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository создаёт репозиторий транзакций.
func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create сохраняет новую транзакцию.
func (r *TransactionRepository) Create(ctx context.Context, tr *models.Transaction) error {
	query := `
		INSERT INTO transactions (family_id, user_id, amount, type, category, description, date, is_recurring, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.GetContext(ctx, tr, query,
		tr.FamilyID, tr.UserID, tr.Amount, tr.Type, tr.Category, tr.Description, tr.Date, tr.IsRecurring, tr.Status)
	if err != nil {
		return fmt.Errorf("transaction repository: create: %w", err)
	}
	return nil
}

// GetByID возвращает транзакцию по идентификатору.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return common.GetByID[models.Transaction](ctx, r.db, "transactions", id, ErrTransactionNotFound)
}

// ListByFamily возвращает транзакции семьи, новые сверху.
// limit <= 0 означает без ограничения.
func (r *TransactionRepository) ListByFamily(ctx context.Context, familyID uuid.UUID, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	query := `SELECT * FROM transactions WHERE family_id = $1 ORDER BY date DESC, created_at DESC`
	args := []interface{}{familyID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	if err := r.db.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("transaction repository: list by family: %w", err)
	}
	return transactions, nil
}

// ListSince возвращает транзакции семьи не старше указанной даты,
// в хронологическом порядке. Используется для графика истории баланса.
func (r *TransactionRepository) ListSince(ctx context.Context, familyID uuid.UUID, since time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM transactions WHERE family_id = $1 AND date >= $2 ORDER BY date
	`, familyID, since)
	if err != nil {
		return nil, fmt.Errorf("transaction repository: list since: %w", err)
	}
	return transactions, nil
}

// Update обновляет изменяемые поля транзакции.
func (r *TransactionRepository) Update(ctx context.Context, tr *models.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = $2, type = $3, category = $4, description = $5, date = $6, is_recurring = $7, status = $8
		WHERE id = $1
	`, tr.ID, tr.Amount, tr.Type, tr.Category, tr.Description, tr.Date, tr.IsRecurring, tr.Status)
	if err != nil {
		return fmt.Errorf("transaction repository: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete удаляет транзакцию.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("transaction repository: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetBalance возвращает баланс семьи: сумма доходов минус сумма расходов.
func (r *TransactionRepository) GetBalance(ctx context.Context, familyID uuid.UUID) (float64, error) {
	var balance sql.NullFloat64
	err := r.db.GetContext(ctx, &balance, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM transactions WHERE family_id = $1
	`, familyID)
	if err != nil {
		return 0, fmt.Errorf("transaction repository: get balance: %w", err)
	}
	return balance.Float64, nil
}

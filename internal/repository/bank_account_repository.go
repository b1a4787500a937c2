package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/repository/common"
)

var ErrBankAccountNotFound = errors.New("bank account not found")

// BankAccountRepository управляет таблицей bank_accounts.
type BankAccountRepository struct {
	db *sqlx.DB
}

// NewBankAccountRepository создаёт репозиторий счетов.
func NewBankAccountRepository(db *sqlx.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

// Create сохраняет новый счёт.
func (r *BankAccountRepository) Create(ctx context.Context, account *models.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (family_id, name, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.GetContext(ctx, account, query, account.FamilyID, account.Name, account.CreatedBy); err != nil {
		return fmt.Errorf("bank account repository: create: %w", err)
	}
	return nil
}

// GetByID возвращает счёт по идентификатору.
func (r *BankAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error) {
	return common.GetByID[models.BankAccount](ctx, r.db, "bank_accounts", id, ErrBankAccountNotFound)
}

// ListByFamily возвращает счета семьи по алфавиту.
func (r *BankAccountRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := r.db.SelectContext(ctx, &accounts, `
		SELECT * FROM bank_accounts WHERE family_id = $1 ORDER BY name
	`, familyID)
	if err != nil {
		return nil, fmt.Errorf("bank account repository: list by family: %w", err)
	}
	return accounts, nil
}

// Rename обновляет имя счёта.
func (r *BankAccountRepository) Rename(ctx context.Context, id uuid.UUID, name string) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.GetContext(ctx, &account, `
		UPDATE bank_accounts SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING *
	`, id, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBankAccountNotFound
		}
		return nil, fmt.Errorf("bank account repository: rename: %w", err)
	}
	return &account, nil
}

// Delete удаляет счёт. Связанные подписки остаются без счёта (SET NULL).
func (r *BankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bank account repository: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBankAccountNotFound
	}
	return nil
}

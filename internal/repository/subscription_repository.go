package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/repository/common"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionRepository управляет таблицей subscriptions.
type SubscriptionRepository struct {
	db *sqlx.DB
}

// NewSubscriptionRepository создаёт репозиторий подписок.
func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create сохраняет новую подписку.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (family_id, name, amount, frequency, next_payment_date,
			bank_account_id, category, description, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.GetContext(ctx, sub, query,
		sub.FamilyID, sub.Name, sub.Amount, sub.Frequency, sub.NextPaymentDate,
		sub.BankAccountID, sub.Category, sub.Description, sub.IsActive, sub.CreatedBy)
	if err != nil {
		return fmt.Errorf("subscription repository: create: %w", err)
	}
	return nil
}

// GetByID возвращает подписку по идентификатору.
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	return common.GetByID[models.Subscription](ctx, r.db, "subscriptions", id, ErrSubscriptionNotFound)
}

// ListByFamily возвращает подписки семьи, ближайший платёж первым.
func (r *SubscriptionRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.SelectContext(ctx, &subs, `
		SELECT * FROM subscriptions WHERE family_id = $1 ORDER BY next_payment_date
	`, familyID)
	if err != nil {
		return nil, fmt.Errorf("subscription repository: list by family: %w", err)
	}
	return subs, nil
}

// ListUpcoming возвращает активные подписки с платежом до указанной даты.
func (r *SubscriptionRepository) ListUpcoming(ctx context.Context, familyID uuid.UUID, until time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.SelectContext(ctx, &subs, `
		SELECT * FROM subscriptions
		WHERE family_id = $1 AND is_active AND next_payment_date <= $2
		ORDER BY next_payment_date
	`, familyID, until)
	if err != nil {
		return nil, fmt.Errorf("subscription repository: list upcoming: %w", err)
	}
	return subs, nil
}

// Update обновляет изменяемые поля подписки.
func (r *SubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET name = $2, amount = $3, frequency = $4, next_payment_date = $5,
			bank_account_id = $6, category = $7, description = $8, is_active = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.GetContext(ctx, &sub.UpdatedAt, query,
		sub.ID, sub.Name, sub.Amount, sub.Frequency, sub.NextPaymentDate,
		sub.BankAccountID, sub.Category, sub.Description, sub.IsActive)
	if err != nil {
		return fmt.Errorf("subscription repository: update: %w", err)
	}
	return nil
}

// Delete удаляет подписку.
func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("subscription repository: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

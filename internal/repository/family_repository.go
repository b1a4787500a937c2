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

var ErrFamilyNotFound = errors.New("family not found")

// FamilyRepository управляет таблицей families.
type FamilyRepository struct {
	db *sqlx.DB
}

// NewFamilyRepository создаёт репозиторий семей.
func NewFamilyRepository(db *sqlx.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// Create сохраняет новую семью.
func (r *FamilyRepository) Create(ctx context.Context, family *models.Family) error {
	query := `
		INSERT INTO families (name, invite_code, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.GetContext(ctx, family, query, family.Name, family.InviteCode, family.CreatedBy); err != nil {
		return fmt.Errorf("family repository: create: %w", err)
	}
	return nil
}

// CreateTx сохраняет семью внутри внешней транзакции.
func (r *FamilyRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, family *models.Family) error {
	query := `
		INSERT INTO families (name, invite_code, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := tx.GetContext(ctx, family, query, family.Name, family.InviteCode, family.CreatedBy); err != nil {
		return fmt.Errorf("family repository: create tx: %w", err)
	}
	return nil
}

// CreateWithOwner создаёт семью, записывает владельца в неё и выполняет
// seed (например, раскладку базовых категорий) в одной транзакции.
func (r *FamilyRepository) CreateWithOwner(ctx context.Context, family *models.Family, ownerID uuid.UUID, seed func(ctx context.Context, tx *sqlx.Tx, familyID uuid.UUID) error) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.CreateTx(ctx, tx, family); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `UPDATE users SET family_id = $1, updated_at = NOW() WHERE id = $2`, family.ID, ownerID)
		if err != nil {
			return fmt.Errorf("family repository: assign owner: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return ErrUserNotFound
		}

		if seed != nil {
			return seed(ctx, tx, family.ID)
		}
		return nil
	})
}

// GetByID возвращает семью по идентификатору.
func (r *FamilyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	var family models.Family
	if err := r.db.GetContext(ctx, &family, `SELECT * FROM families WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("family repository: get by id: %w", err)
	}
	return &family, nil
}

// GetByInviteCode находит семью по коду приглашения.
func (r *FamilyRepository) GetByInviteCode(ctx context.Context, code string) (*models.Family, error) {
	return common.GetByField[models.Family](ctx, r.db, "families", "invite_code", code, ErrFamilyNotFound)
}

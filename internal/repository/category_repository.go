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

var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository управляет таблицей categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository создаёт репозиторий категорий.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create сохраняет новую категорию.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (family_id, name, type, icon, color, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.GetContext(ctx, category, query,
		category.FamilyID, category.Name, category.Type, category.Icon, category.Color, category.IsDefault)
	if err != nil {
		return fmt.Errorf("category repository: create: %w", err)
	}
	return nil
}

// GetByID возвращает категорию по идентификатору.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return common.GetByID[models.Category](ctx, r.db, "categories", id, ErrCategoryNotFound)
}

// ListByFamily возвращает категории семьи по алфавиту.
func (r *CategoryRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, `
		SELECT * FROM categories WHERE family_id = $1 ORDER BY name
	`, familyID)
	if err != nil {
		return nil, fmt.Errorf("category repository: list by family: %w", err)
	}
	return categories, nil
}

// Update обновляет имя, тип, иконку и цвет категории.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2, type = $3, icon = $4, color = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.GetContext(ctx, &category.UpdatedAt, query,
		category.ID, category.Name, category.Type, category.Icon, category.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("category repository: update: %w", err)
	}
	return nil
}

// Delete удаляет категорию.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("category repository: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// SeedDefaults создаёт стартовый набор категорий для новой семьи
// одной батч-вставкой внутри переданной транзакции.
func (r *CategoryRepository) SeedDefaults(ctx context.Context, tx *sqlx.Tx, familyID uuid.UUID) error {
	inserter := common.NewBatchInserter(tx,
		`INSERT INTO categories (family_id, name, type, icon, color, is_default)`, 6, len(models.DefaultCategories))

	for _, c := range models.DefaultCategories {
		if err := inserter.Add(ctx, familyID, c.Name, c.Type, c.Icon, c.Color, true); err != nil {
			return fmt.Errorf("category repository: seed defaults: %w", err)
		}
	}

	if err := inserter.Flush(ctx); err != nil {
		return fmt.Errorf("category repository: seed defaults: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// userGetter резолвит пользователя для проверки членства в семье.
type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// resolveFamilyID возвращает идентификатор семьи пользователя.
func resolveFamilyID(ctx context.Context, users userGetter, userID uuid.UUID) (uuid.UUID, error) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !user.HasFamily() {
		return uuid.Nil, apperror.ErrNoFamily
	}
	return *user.FamilyID, nil
}

// CategoryRepo описывает зависимости CategoryService от хранилища.
type CategoryRepo interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService управляет категориями семьи.
type CategoryService struct {
	categories CategoryRepo
	users      userGetter
}

// NewCategoryService создаёт сервис категорий.
func NewCategoryService(categories CategoryRepo, users userGetter) *CategoryService {
	return &CategoryService{categories: categories, users: users}
}

// CategoryInput содержит поля формы категории.
type CategoryInput struct {
	Name  string
	Type  string
	Icon  *string
	Color *string
}

func validateCategoryInput(in CategoryInput) error {
	if err := validation.CategoryForm.CheckField("name", in.Name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.CategoryForm.CheckField("type", in.Type); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.Icon != nil {
		if err := validation.CategoryForm.CheckField("icon", *in.Icon); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	// Цвет необязателен: при nil или пустой строке остаётся цвет по умолчанию.
	if in.Color != nil && *in.Color != "" {
		if err := validation.CategoryForm.CheckField("color", *in.Color); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	return nil
}

// Create добавляет пользовательскую категорию в семью.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, in CategoryInput) (*models.Category, error) {
	if err := validateCategoryInput(in); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		FamilyID: familyID,
		Name:     strings.TrimSpace(in.Name),
		Type:     in.Type,
		Icon:     in.Icon,
		Color:    in.Color,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// List возвращает категории семьи пользователя.
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	return s.categories.ListByFamily(ctx, familyID)
}

// Update изменяет категорию семьи пользователя. Категории стартового
// набора тоже редактируются: семья вправе подстроить их под себя.
func (s *CategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, in CategoryInput) (*models.Category, error) {
	if err := validateCategoryInput(in); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.FamilyID != familyID {
		return nil, apperror.ErrForbidden
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Type = in.Type
	category.Icon = in.Icon
	category.Color = in.Color

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete удаляет категорию семьи пользователя.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return err
	}

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.FamilyID != familyID {
		return apperror.ErrForbidden
	}

	return s.categories.Delete(ctx, categoryID)
}

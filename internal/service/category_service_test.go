package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/family-budget-backend/internal/models"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	if args.Error(0) == nil {
		category.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Category, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryService_Create(t *testing.T) {
	categories := new(mockCategoryRepo)
	users := new(mockUserGetter)
	svc := NewCategoryService(categories, users)

	userID := uuid.New()
	familyID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	categories.On("Create", mock.Anything, mock.Anything).Return(nil)

	icon := "🍔"
	color := "#6b7280"
	category, err := svc.Create(context.Background(), userID, CategoryInput{
		Name:  "  Фастфуд  ",
		Type:  models.CategoryTypeExpense,
		Icon:  &icon,
		Color: &color,
	})

	assert.NoError(t, err)
	assert.Equal(t, familyID, category.FamilyID)
	assert.Equal(t, "Фастфуд", category.Name)
}

func TestCategoryService_Create_InvalidType(t *testing.T) {
	categories := new(mockCategoryRepo)
	svc := NewCategoryService(categories, new(mockUserGetter))

	_, err := svc.Create(context.Background(), uuid.New(), CategoryInput{
		Name: "Фастфуд",
		Type: "transfer",
	})

	assert.Error(t, err)
	categories.AssertNotCalled(t, "Create")
}

func TestCategoryService_Create_InvalidColor(t *testing.T) {
	categories := new(mockCategoryRepo)
	svc := NewCategoryService(categories, new(mockUserGetter))

	color := "6b7280"
	_, err := svc.Create(context.Background(), uuid.New(), CategoryInput{
		Name:  "Фастфуд",
		Type:  models.CategoryTypeExpense,
		Color: &color,
	})

	assert.Error(t, err)
	categories.AssertNotCalled(t, "Create")
}

func TestCategoryService_Create_IconTooLong(t *testing.T) {
	categories := new(mockCategoryRepo)
	svc := NewCategoryService(categories, new(mockUserGetter))

	icon := "abc"
	_, err := svc.Create(context.Background(), uuid.New(), CategoryInput{
		Name: "Фастфуд",
		Type: models.CategoryTypeExpense,
		Icon: &icon,
	})

	assert.Error(t, err)
	categories.AssertNotCalled(t, "Create")
}

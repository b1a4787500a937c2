package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/family-budget-backend/internal/models"
)

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	args := m.Called(ctx, transaction)
	if args.Error(0) == nil {
		transaction.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ListByFamily(ctx context.Context, familyID uuid.UUID, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, familyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Update(ctx context.Context, transaction *models.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTransactionRepo) GetBalance(ctx context.Context, familyID uuid.UUID) (float64, error) {
	args := m.Called(ctx, familyID)
	return args.Get(0).(float64), args.Error(1)
}

func TestTransactionService_Create(t *testing.T) {
	transactions := new(mockTransactionRepo)
	users := new(mockUserGetter)
	svc := NewTransactionService(transactions, users, nil)

	userID := uuid.New()
	familyID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

	tr, err := svc.Create(context.Background(), userID, TransactionInput{
		Amount:   1500,
		Type:     models.TransactionTypeExpense,
		Category: "  Groceries  ",
		Date:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, familyID, tr.FamilyID)
	assert.Equal(t, "Groceries", tr.Category)
	assert.Equal(t, models.TransactionStatusCompleted, tr.Status)
}

func TestTransactionService_Create_InvalidType(t *testing.T) {
	transactions := new(mockTransactionRepo)
	svc := NewTransactionService(transactions, new(mockUserGetter), nil)

	_, err := svc.Create(context.Background(), uuid.New(), TransactionInput{
		Amount:   100,
		Type:     "transfer",
		Category: "Groceries",
		Date:     time.Now(),
	})

	assert.Error(t, err)
	transactions.AssertNotCalled(t, "Create")
}

func TestTransactionService_Create_InvalidStatus(t *testing.T) {
	transactions := new(mockTransactionRepo)
	svc := NewTransactionService(transactions, new(mockUserGetter), nil)

	_, err := svc.Create(context.Background(), uuid.New(), TransactionInput{
		Amount:   100,
		Type:     models.TransactionTypeIncome,
		Category: "Salary",
		Date:     time.Now(),
		Status:   "draft",
	})

	assert.Error(t, err)
	transactions.AssertNotCalled(t, "Create")
}

func TestTransactionService_Create_EmptyCategory(t *testing.T) {
	transactions := new(mockTransactionRepo)
	svc := NewTransactionService(transactions, new(mockUserGetter), nil)

	_, err := svc.Create(context.Background(), uuid.New(), TransactionInput{
		Amount:   100,
		Type:     models.TransactionTypeIncome,
		Category: "   ",
		Date:     time.Now(),
	})

	assert.Error(t, err)
	transactions.AssertNotCalled(t, "Create")
}

func TestTransactionService_Create_LongDescription(t *testing.T) {
	transactions := new(mockTransactionRepo)
	svc := NewTransactionService(transactions, new(mockUserGetter), nil)

	description := strings.Repeat("о", 1001)
	_, err := svc.Create(context.Background(), uuid.New(), TransactionInput{
		Amount:      100,
		Type:        models.TransactionTypeExpense,
		Category:    "Groceries",
		Description: &description,
		Date:        time.Now(),
	})

	assert.Error(t, err)
	transactions.AssertNotCalled(t, "Create")
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
)

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	args := m.Called(ctx, sub)
	if args.Error(0) == nil {
		sub.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Subscription, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) ListUpcoming(ctx context.Context, familyID uuid.UUID, until time.Time) ([]models.Subscription, error) {
	args := m.Called(ctx, familyID, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBankAccountGetter struct {
	mock.Mock
}

func (m *mockBankAccountGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BankAccount), args.Error(1)
}

func TestSubscriptionService_Create(t *testing.T) {
	subscriptions := new(mockSubscriptionRepo)
	users := new(mockUserGetter)
	svc := NewSubscriptionService(subscriptions, new(mockBankAccountGetter), users)

	userID := uuid.New()
	familyID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	subscriptions.On("Create", mock.Anything, mock.Anything).Return(nil)

	sub, err := svc.Create(context.Background(), userID, SubscriptionInput{
		Name:            "  Кинопоиск  ",
		Amount:          399,
		Frequency:       models.SubscriptionFrequencyMonthly,
		NextPaymentDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, familyID, sub.FamilyID)
	assert.Equal(t, "Кинопоиск", sub.Name)
	assert.True(t, sub.IsActive)
}

func TestSubscriptionService_Create_InvalidFrequency(t *testing.T) {
	subscriptions := new(mockSubscriptionRepo)
	svc := NewSubscriptionService(subscriptions, new(mockBankAccountGetter), new(mockUserGetter))

	_, err := svc.Create(context.Background(), uuid.New(), SubscriptionInput{
		Name:            "Кинопоиск",
		Amount:          399,
		Frequency:       "daily",
		NextPaymentDate: time.Now(),
	})

	assert.Error(t, err)
	subscriptions.AssertNotCalled(t, "Create")
}

func TestSubscriptionService_Create_EmptyName(t *testing.T) {
	subscriptions := new(mockSubscriptionRepo)
	svc := NewSubscriptionService(subscriptions, new(mockBankAccountGetter), new(mockUserGetter))

	_, err := svc.Create(context.Background(), uuid.New(), SubscriptionInput{
		Name:            "   ",
		Amount:          399,
		Frequency:       models.SubscriptionFrequencyMonthly,
		NextPaymentDate: time.Now(),
	})

	assert.Error(t, err)
	subscriptions.AssertNotCalled(t, "Create")
}

func TestSubscriptionService_Create_ForeignBankAccount(t *testing.T) {
	subscriptions := new(mockSubscriptionRepo)
	users := new(mockUserGetter)
	accounts := new(mockBankAccountGetter)
	svc := NewSubscriptionService(subscriptions, accounts, users)

	userID := uuid.New()
	familyID := uuid.New()
	accountID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	accounts.On("GetByID", mock.Anything, accountID).
		Return(&models.BankAccount{ID: accountID, FamilyID: uuid.New()}, nil)

	_, err := svc.Create(context.Background(), userID, SubscriptionInput{
		Name:            "Кинопоиск",
		Amount:          399,
		Frequency:       models.SubscriptionFrequencyMonthly,
		NextPaymentDate: time.Now(),
		BankAccountID:   &accountID,
	})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	subscriptions.AssertNotCalled(t, "Create")
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// Горизонт списка предстоящих платежей.
const upcomingWindow = 30 * 24 * time.Hour

// SubscriptionRepo описывает зависимости SubscriptionService от хранилища.
type SubscriptionRepo interface {
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Subscription, error)
	ListUpcoming(ctx context.Context, familyID uuid.UUID, until time.Time) ([]models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BankAccountGetter проверяет принадлежность счёта семье.
type BankAccountGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error)
}

// SubscriptionService управляет регулярными платежами семьи.
type SubscriptionService struct {
	subscriptions SubscriptionRepo
	accounts      BankAccountGetter
	users         userGetter
}

// NewSubscriptionService создаёт сервис подписок.
func NewSubscriptionService(subscriptions SubscriptionRepo, accounts BankAccountGetter, users userGetter) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptions,
		accounts:      accounts,
		users:         users,
	}
}

// SubscriptionInput содержит поля формы подписки.
type SubscriptionInput struct {
	Name            string
	Amount          float64
	Frequency       string
	NextPaymentDate time.Time
	BankAccountID   *uuid.UUID
	Category        *string
	Description     *string
	IsActive        *bool
}

func validateSubscriptionInput(in SubscriptionInput) error {
	if err := validation.SubscriptionForm.CheckField("name", in.Name); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.SubscriptionForm.CheckField("frequency", in.Frequency); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.NextPaymentDate.IsZero() {
		return apperror.New(apperror.ErrCodeValidation, "дата следующего платежа обязательна")
	}
	return nil
}

// checkBankAccount убеждается, что счёт принадлежит семье пользователя.
func (s *SubscriptionService) checkBankAccount(ctx context.Context, familyID uuid.UUID, accountID *uuid.UUID) error {
	if accountID == nil {
		return nil
	}
	account, err := s.accounts.GetByID(ctx, *accountID)
	if err != nil {
		return err
	}
	if account.FamilyID != familyID {
		return apperror.ErrForbidden
	}
	return nil
}

// Create добавляет подписку в семью пользователя.
func (s *SubscriptionService) Create(ctx context.Context, userID uuid.UUID, in SubscriptionInput) (*models.Subscription, error) {
	if err := validateSubscriptionInput(in); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkBankAccount(ctx, familyID, in.BankAccountID); err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	sub := &models.Subscription{
		FamilyID:        familyID,
		Name:            strings.TrimSpace(in.Name),
		Amount:          in.Amount,
		Frequency:       in.Frequency,
		NextPaymentDate: in.NextPaymentDate,
		BankAccountID:   in.BankAccountID,
		Category:        in.Category,
		Description:     in.Description,
		IsActive:        isActive,
		CreatedBy:       userID,
	}

	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// List возвращает подписки семьи пользователя.
func (s *SubscriptionService) List(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	return s.subscriptions.ListByFamily(ctx, familyID)
}

// Upcoming возвращает активные подписки с платежом в ближайшие 30 дней.
func (s *SubscriptionService) Upcoming(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	return s.subscriptions.ListUpcoming(ctx, familyID, time.Now().Add(upcomingWindow))
}

// Update изменяет подписку семьи пользователя.
func (s *SubscriptionService) Update(ctx context.Context, userID, subscriptionID uuid.UUID, in SubscriptionInput) (*models.Subscription, error) {
	if err := validateSubscriptionInput(in); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	sub, err := s.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.FamilyID != familyID {
		return nil, apperror.ErrForbidden
	}

	if err := s.checkBankAccount(ctx, familyID, in.BankAccountID); err != nil {
		return nil, err
	}

	sub.Name = strings.TrimSpace(in.Name)
	sub.Amount = in.Amount
	sub.Frequency = in.Frequency
	sub.NextPaymentDate = in.NextPaymentDate
	sub.BankAccountID = in.BankAccountID
	sub.Category = in.Category
	sub.Description = in.Description
	if in.IsActive != nil {
		sub.IsActive = *in.IsActive
	}

	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Delete удаляет подписку семьи пользователя.
func (s *SubscriptionService) Delete(ctx context.Context, userID, subscriptionID uuid.UUID) error {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return err
	}

	sub, err := s.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.FamilyID != familyID {
		return apperror.ErrForbidden
	}

	return s.subscriptions.Delete(ctx, subscriptionID)
}

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

// TransactionRepo описывает зависимости TransactionService от хранилища.
type TransactionRepo interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID, limit int) ([]models.Transaction, error)
	Update(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetBalance(ctx context.Context, familyID uuid.UUID) (float64, error)
}

// TransactionService управляет доходами и расходами семьи.
type TransactionService struct {
	transactions TransactionRepo
	users        userGetter
	cache        *CacheService
}

// NewTransactionService создаёт сервис транзакций. cache может быть nil.
func NewTransactionService(transactions TransactionRepo, users userGetter, cache *CacheService) *TransactionService {
	return &TransactionService{transactions: transactions, users: users, cache: cache}
}

// invalidate сбрасывает кеш сводок семьи после записи.
func (s *TransactionService) invalidate(familyID uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateFamilyCache(familyID)
	}
}

// TransactionInput содержит поля формы транзакции.
type TransactionInput struct {
	Amount      float64
	Type        string
	Category    string
	Description *string
	Date        time.Time
	IsRecurring bool
	Status      string
}

func validateTransactionInput(in TransactionInput) error {
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.TransactionForm.CheckField("type", in.Type); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.TransactionForm.CheckField("category", in.Category); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.Description != nil {
		if err := validation.ValidateLength("описание", *in.Description, 0, validation.MaxTransactionDescription); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.Date.IsZero() {
		return apperror.New(apperror.ErrCodeValidation, "дата обязательна")
	}
	// Пустой статус допустим: Create подставит completed.
	if in.Status != "" {
		if err := validation.TransactionForm.CheckField("status", in.Status); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	return nil
}

// Create добавляет транзакцию в семью пользователя.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.TransactionStatusCompleted
	}

	transaction := &models.Transaction{
		FamilyID:    familyID,
		UserID:      userID,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Date:        in.Date,
		IsRecurring: in.IsRecurring,
		Status:      status,
	}

	if err := s.transactions.Create(ctx, transaction); err != nil {
		return nil, err
	}

	s.invalidate(familyID)

	return transaction, nil
}

// List возвращает транзакции семьи, свежие первыми.
// limit <= 0 означает без ограничения.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	return s.transactions.ListByFamily(ctx, familyID, limit)
}

// Update изменяет транзакцию семьи пользователя.
func (s *TransactionService) Update(ctx context.Context, userID, transactionID uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	transaction, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.FamilyID != familyID {
		return nil, apperror.ErrForbidden
	}

	transaction.Amount = in.Amount
	transaction.Type = in.Type
	transaction.Category = strings.TrimSpace(in.Category)
	transaction.Description = in.Description
	transaction.Date = in.Date
	transaction.IsRecurring = in.IsRecurring
	if in.Status != "" {
		transaction.Status = in.Status
	}

	if err := s.transactions.Update(ctx, transaction); err != nil {
		return nil, err
	}

	s.invalidate(familyID)

	return transaction, nil
}

// Delete удаляет транзакцию семьи пользователя.
func (s *TransactionService) Delete(ctx context.Context, userID, transactionID uuid.UUID) error {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return err
	}

	transaction, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if transaction.FamilyID != familyID {
		return apperror.ErrForbidden
	}

	if err := s.transactions.Delete(ctx, transactionID); err != nil {
		return err
	}

	s.invalidate(familyID)

	return nil
}

// Balance возвращает текущий баланс семьи: доходы минус расходы.
func (s *TransactionService) Balance(ctx context.Context, userID uuid.UUID) (float64, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return 0, err
	}

	return s.transactions.GetBalance(ctx, familyID)
}

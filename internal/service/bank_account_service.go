package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// BankAccountRepo описывает зависимости BankAccountService от хранилища.
type BankAccountRepo interface {
	Create(ctx context.Context, account *models.BankAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BankAccount, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.BankAccount, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*models.BankAccount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BankAccountService управляет счетами семьи.
type BankAccountService struct {
	accounts BankAccountRepo
	users    userGetter
}

// NewBankAccountService создаёт сервис счетов.
func NewBankAccountService(accounts BankAccountRepo, users userGetter) *BankAccountService {
	return &BankAccountService{accounts: accounts, users: users}
}

func validateBankAccountName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.New(apperror.ErrCodeValidation, "название счёта обязательно")
	}
	if err := validation.ValidateLength("название счёта", name, 1, validation.MaxBankAccountNameLength); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return nil
}

// Create добавляет счёт в семью пользователя.
func (s *BankAccountService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.BankAccount, error) {
	if err := validateBankAccountName(name); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		FamilyID:  familyID,
		Name:      strings.TrimSpace(name),
		CreatedBy: userID,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// List возвращает счета семьи пользователя.
func (s *BankAccountService) List(ctx context.Context, userID uuid.UUID) ([]models.BankAccount, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	return s.accounts.ListByFamily(ctx, familyID)
}

// Rename переименовывает счёт семьи пользователя.
func (s *BankAccountService) Rename(ctx context.Context, userID, accountID uuid.UUID, name string) (*models.BankAccount, error) {
	if err := validateBankAccountName(name); err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.FamilyID != familyID {
		return nil, apperror.ErrForbidden
	}

	return s.accounts.Rename(ctx, accountID, strings.TrimSpace(name))
}

// Delete удаляет счёт. Подписки, привязанные к счёту, остаются без
// привязки (внешний ключ обнуляется на уровне БД).
func (s *BankAccountService) Delete(ctx context.Context, userID, accountID uuid.UUID) error {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.FamilyID != familyID {
		return apperror.ErrForbidden
	}

	return s.accounts.Delete(ctx, accountID)
}

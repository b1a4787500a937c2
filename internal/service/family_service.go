package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// inviteCodeAlphabet не содержит визуально похожих символов (0/O, 1/I).
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 8

// FamilyRepo описывает зависимости FamilyService от хранилища семей.
type FamilyRepo interface {
	CreateWithOwner(ctx context.Context, family *models.Family, ownerID uuid.UUID, seed func(ctx context.Context, tx *sqlx.Tx, familyID uuid.UUID) error) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Family, error)
}

// FamilyUserRepo описывает операции над пользователями, нужные семьям.
type FamilyUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetFamilyID(ctx context.Context, userID uuid.UUID, familyID *uuid.UUID) error
	ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]models.FamilyMember, error)
}

// CategorySeeder раскладывает стартовый набор категорий новой семьи.
type CategorySeeder func(ctx context.Context, tx *sqlx.Tx, familyID uuid.UUID) error

// FamilyService управляет созданием семей и членством в них.
type FamilyService struct {
	families FamilyRepo
	users    FamilyUserRepo
	seed     CategorySeeder
}

// NewFamilyService создаёт сервис семей.
func NewFamilyService(families FamilyRepo, users FamilyUserRepo, seed CategorySeeder) *FamilyService {
	return &FamilyService{
		families: families,
		users:    users,
		seed:     seed,
	}
}

// FamilyView объединяет семью со списком её участников.
type FamilyView struct {
	Family  *models.Family        `json:"family"`
	Members []models.FamilyMember `json:"members"`
}

// Create создаёт семью, делает создателя её участником и сажает
// базовые категории. Пользователь, уже состоящий в семье, создать
// вторую не может.
func (s *FamilyService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название семьи не может быть пустым")
	}
	if len([]rune(name)) > validation.MaxFamilyNameLength {
		return nil, apperror.New(apperror.ErrCodeValidation, "название семьи слишком длинное")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasFamily() {
		return nil, apperror.New(apperror.ErrCodeConflict, "пользователь уже состоит в семье")
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("family service: %w", err)
	}

	family := &models.Family{
		Name:       name,
		InviteCode: code,
		CreatedBy:  &userID,
	}

	if err := s.families.CreateWithOwner(ctx, family, userID, s.seed); err != nil {
		return nil, err
	}

	return family, nil
}

// Join добавляет пользователя в семью по коду приглашения.
func (s *FamilyService) Join(ctx context.Context, userID uuid.UUID, inviteCode string) (*models.Family, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "код приглашения не может быть пустым")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasFamily() {
		return nil, apperror.New(apperror.ErrCodeConflict, "пользователь уже состоит в семье")
	}

	family, err := s.families.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetFamilyID(ctx, userID, &family.ID); err != nil {
		return nil, err
	}

	return family, nil
}

// Leave выводит пользователя из семьи. Его прежние голоса по
// предложениям сохраняются.
func (s *FamilyService) Leave(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasFamily() {
		return apperror.ErrNoFamily
	}

	return s.users.SetFamilyID(ctx, userID, nil)
}

// Get возвращает семью пользователя вместе с участниками.
func (s *FamilyService) Get(ctx context.Context, userID uuid.UUID) (*FamilyView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasFamily() {
		return nil, apperror.ErrNoFamily
	}

	family, err := s.families.GetByID(ctx, *user.FamilyID)
	if err != nil {
		return nil, err
	}

	members, err := s.users.ListFamilyMembers(ctx, family.ID)
	if err != nil {
		return nil, err
	}

	return &FamilyView{Family: family, Members: members}, nil
}

// Members возвращает участников семьи пользователя.
func (s *FamilyService) Members(ctx context.Context, userID uuid.UUID) ([]models.FamilyMember, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasFamily() {
		return nil, apperror.ErrNoFamily
	}

	return s.users.ListFamilyMembers(ctx, *user.FamilyID)
}

// generateInviteCode выдаёт случайный код приглашения.
func generateInviteCode() (string, error) {
	var sb strings.Builder
	for i := 0; i < inviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("не удалось сгенерировать код приглашения: %w", err)
		}
		sb.WriteByte(inviteCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
)

type mockFamilyRepo struct {
	mock.Mock
}

func (m *mockFamilyRepo) CreateWithOwner(ctx context.Context, family *models.Family, ownerID uuid.UUID, seed func(ctx context.Context, tx *sqlx.Tx, familyID uuid.UUID) error) error {
	args := m.Called(ctx, family, ownerID)
	if args.Error(0) == nil {
		family.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockFamilyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

func (m *mockFamilyRepo) GetByInviteCode(ctx context.Context, code string) (*models.Family, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

type mockFamilyUserRepo struct {
	mock.Mock
}

func (m *mockFamilyUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockFamilyUserRepo) SetFamilyID(ctx context.Context, userID uuid.UUID, familyID *uuid.UUID) error {
	args := m.Called(ctx, userID, familyID)
	return args.Error(0)
}

func (m *mockFamilyUserRepo) ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]models.FamilyMember, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FamilyMember), args.Error(1)
}

func noopSeeder(ctx context.Context, tx *sqlx.Tx, familyID uuid.UUID) error {
	return nil
}

func TestFamilyService_Create(t *testing.T) {
	families := new(mockFamilyRepo)
	users := new(mockFamilyUserRepo)
	svc := NewFamilyService(families, users, noopSeeder)

	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
	families.On("CreateWithOwner", mock.Anything, mock.Anything, userID).Return(nil)

	family, err := svc.Create(context.Background(), userID, "  Ивановы  ")

	assert.NoError(t, err)
	assert.Equal(t, "Ивановы", family.Name)
	assert.Len(t, family.InviteCode, inviteCodeLength)
	for _, r := range family.InviteCode {
		assert.Contains(t, inviteCodeAlphabet, string(r))
	}
	families.AssertExpectations(t)
}

func TestFamilyService_Create_AlreadyInFamily(t *testing.T) {
	families := new(mockFamilyRepo)
	users := new(mockFamilyUserRepo)
	svc := NewFamilyService(families, users, noopSeeder)

	userID := uuid.New()
	existing := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, FamilyID: &existing}, nil)

	_, err := svc.Create(context.Background(), userID, "Ивановы")

	assert.Error(t, err)
	families.AssertNotCalled(t, "CreateWithOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestFamilyService_Create_EmptyName(t *testing.T) {
	svc := NewFamilyService(new(mockFamilyRepo), new(mockFamilyUserRepo), noopSeeder)

	_, err := svc.Create(context.Background(), uuid.New(), "   ")

	assert.Error(t, err)
}

func TestFamilyService_Create_NameTooLong(t *testing.T) {
	svc := NewFamilyService(new(mockFamilyRepo), new(mockFamilyUserRepo), noopSeeder)

	_, err := svc.Create(context.Background(), uuid.New(), strings.Repeat("а", 101))

	assert.Error(t, err)
}

func TestFamilyService_Join_NormalizesInviteCode(t *testing.T) {
	families := new(mockFamilyRepo)
	users := new(mockFamilyUserRepo)
	svc := NewFamilyService(families, users, noopSeeder)

	userID := uuid.New()
	family := &models.Family{ID: uuid.New(), Name: "Ивановы", InviteCode: "ABCD2345"}

	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
	families.On("GetByInviteCode", mock.Anything, "ABCD2345").Return(family, nil)
	users.On("SetFamilyID", mock.Anything, userID, &family.ID).Return(nil)

	got, err := svc.Join(context.Background(), userID, "  abcd2345 ")

	assert.NoError(t, err)
	assert.Equal(t, family.ID, got.ID)
	users.AssertExpectations(t)
}

func TestFamilyService_Join_AlreadyInFamily(t *testing.T) {
	families := new(mockFamilyRepo)
	users := new(mockFamilyUserRepo)
	svc := NewFamilyService(families, users, noopSeeder)

	userID := uuid.New()
	existing := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, FamilyID: &existing}, nil)

	_, err := svc.Join(context.Background(), userID, "ABCD2345")

	assert.Error(t, err)
	users.AssertNotCalled(t, "SetFamilyID", mock.Anything, mock.Anything, mock.Anything)
}

func TestFamilyService_Leave(t *testing.T) {
	families := new(mockFamilyRepo)
	users := new(mockFamilyUserRepo)
	svc := NewFamilyService(families, users, noopSeeder)

	userID := uuid.New()
	familyID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, FamilyID: &familyID}, nil)
	users.On("SetFamilyID", mock.Anything, userID, (*uuid.UUID)(nil)).Return(nil)

	err := svc.Leave(context.Background(), userID)

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestFamilyService_Leave_NoFamily(t *testing.T) {
	families := new(mockFamilyRepo)
	users := new(mockFamilyUserRepo)
	svc := NewFamilyService(families, users, noopSeeder)

	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)

	err := svc.Leave(context.Background(), userID)

	assert.ErrorIs(t, err, apperror.ErrNoFamily)
}

func TestFamilyService_Get(t *testing.T) {
	families := new(mockFamilyRepo)
	users := new(mockFamilyUserRepo)
	svc := NewFamilyService(families, users, noopSeeder)

	userID := uuid.New()
	familyID := uuid.New()
	family := &models.Family{ID: familyID, Name: "Ивановы"}
	members := []models.FamilyMember{
		{ID: userID, Email: "ivan@example.com", FullName: "Иван Иванов"},
	}

	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, FamilyID: &familyID}, nil)
	families.On("GetByID", mock.Anything, familyID).Return(family, nil)
	users.On("ListFamilyMembers", mock.Anything, familyID).Return(members, nil)

	view, err := svc.Get(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, family, view.Family)
	assert.Len(t, view.Members, 1)
}

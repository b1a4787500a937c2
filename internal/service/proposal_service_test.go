package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
)

type mockProposalRepo struct {
	mock.Mock
}

func (m *mockProposalRepo) Create(ctx context.Context, proposal *models.Proposal) error {
	args := m.Called(ctx, proposal)
	if args.Error(0) == nil {
		proposal.ID = uuid.New()
		proposal.Status = models.ProposalStatusPending
	}
	return args.Error(0)
}

func (m *mockProposalRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *mockProposalRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Proposal, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Proposal), args.Error(1)
}

type mockApprovalRepo struct {
	mock.Mock
}

func (m *mockApprovalRepo) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]models.Approval, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Approval), args.Error(1)
}

func (m *mockApprovalRepo) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Approval, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Approval), args.Error(1)
}

type mockVoteCaster struct {
	mock.Mock
}

func (m *mockVoteCaster) CastVote(ctx context.Context, proposalID, userID uuid.UUID, decision models.ApprovalDecision) (models.ProposalStatus, error) {
	args := m.Called(ctx, proposalID, userID, decision)
	return args.Get(0).(models.ProposalStatus), args.Error(1)
}

type mockUserGetter struct {
	mock.Mock
}

func (m *mockUserGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newProposalServiceForTest(proposals *mockProposalRepo, approvals *mockApprovalRepo, consensus *mockVoteCaster, users *mockUserGetter) *ProposalService {
	return NewProposalService(proposals, approvals, consensus, users, nil, nil, nil)
}

func familyUser(userID, familyID uuid.UUID) *models.User {
	return &models.User{ID: userID, FamilyID: &familyID}
}

func TestProposalService_Create(t *testing.T) {
	proposals := new(mockProposalRepo)
	users := new(mockUserGetter)
	svc := newProposalServiceForTest(proposals, new(mockApprovalRepo), new(mockVoteCaster), users)

	userID := uuid.New()
	familyID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	proposals.On("Create", mock.Anything, mock.Anything).Return(nil)

	proposal, err := svc.Create(context.Background(), userID, ProposalInput{
		Type:        models.ProposalTypeSpending,
		Amount:      25000,
		Description: "  Новый холодильник на кухню  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, familyID, proposal.FamilyID)
	assert.Equal(t, userID, proposal.ProposerID)
	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
	assert.Equal(t, "Новый холодильник на кухню", *proposal.Description)
}

func TestProposalService_Create_InvalidType(t *testing.T) {
	svc := newProposalServiceForTest(new(mockProposalRepo), new(mockApprovalRepo), new(mockVoteCaster), new(mockUserGetter))

	_, err := svc.Create(context.Background(), uuid.New(), ProposalInput{
		Type:        models.ProposalType("loan"),
		Amount:      1000,
		Description: "Достаточно длинное описание",
	})

	assert.Error(t, err)
}

func TestProposalService_Create_ShortDescription(t *testing.T) {
	svc := newProposalServiceForTest(new(mockProposalRepo), new(mockApprovalRepo), new(mockVoteCaster), new(mockUserGetter))

	_, err := svc.Create(context.Background(), uuid.New(), ProposalInput{
		Type:        models.ProposalTypeSavings,
		Amount:      1000,
		Description: "мало",
	})

	assert.Error(t, err)
}

func TestProposalService_Create_NoFamily(t *testing.T) {
	users := new(mockUserGetter)
	svc := newProposalServiceForTest(new(mockProposalRepo), new(mockApprovalRepo), new(mockVoteCaster), users)

	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)

	_, err := svc.Create(context.Background(), userID, ProposalInput{
		Type:        models.ProposalTypeSpending,
		Amount:      1000,
		Description: "Достаточно длинное описание",
	})

	assert.ErrorIs(t, err, apperror.ErrNoFamily)
}

func TestProposalService_Vote(t *testing.T) {
	proposals := new(mockProposalRepo)
	consensus := new(mockVoteCaster)
	users := new(mockUserGetter)
	svc := newProposalServiceForTest(proposals, new(mockApprovalRepo), consensus, users)

	userID := uuid.New()
	familyID := uuid.New()
	proposalID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	proposals.On("GetByID", mock.Anything, proposalID).Return(&models.Proposal{
		ID:       proposalID,
		FamilyID: familyID,
		Status:   models.ProposalStatusPending,
	}, nil)
	consensus.On("CastVote", mock.Anything, proposalID, userID, models.ApprovalDecisionApproved).
		Return(models.ProposalStatusApproved, nil)

	proposal, err := svc.Vote(context.Background(), userID, proposalID, models.ApprovalDecisionApproved)

	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, proposal.Status)
	consensus.AssertExpectations(t)
}

func TestProposalService_Vote_ForeignFamily(t *testing.T) {
	proposals := new(mockProposalRepo)
	consensus := new(mockVoteCaster)
	users := new(mockUserGetter)
	svc := newProposalServiceForTest(proposals, new(mockApprovalRepo), consensus, users)

	userID := uuid.New()
	familyID := uuid.New()
	proposalID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	proposals.On("GetByID", mock.Anything, proposalID).Return(&models.Proposal{
		ID:       proposalID,
		FamilyID: uuid.New(),
		Status:   models.ProposalStatusPending,
	}, nil)

	_, err := svc.Vote(context.Background(), userID, proposalID, models.ApprovalDecisionApproved)

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	consensus.AssertNotCalled(t, "CastVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProposalService_Approvals_ForeignFamily(t *testing.T) {
	proposals := new(mockProposalRepo)
	approvals := new(mockApprovalRepo)
	users := new(mockUserGetter)
	svc := newProposalServiceForTest(proposals, approvals, new(mockVoteCaster), users)

	userID := uuid.New()
	familyID := uuid.New()
	proposalID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(familyUser(userID, familyID), nil)
	proposals.On("GetByID", mock.Anything, proposalID).Return(&models.Proposal{
		ID:       proposalID,
		FamilyID: uuid.New(),
	}, nil)

	_, err := svc.Approvals(context.Background(), userID, proposalID)

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	approvals.AssertNotCalled(t, "ListByProposal", mock.Anything, mock.Anything)
}

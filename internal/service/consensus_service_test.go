package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/repository"
)

// fakeVoteStore держит предложение и голоса в памяти и выполняет
// переданную функцию без настоящей транзакции.
type fakeVoteStore struct {
	proposal     *models.Proposal
	approvals    map[uuid.UUID]models.ApprovalDecision
	totalMembers int
	statusWrites int
}

func newFakeVoteStore(familyID uuid.UUID, members int) *fakeVoteStore {
	return &fakeVoteStore{
		proposal: &models.Proposal{
			ID:       uuid.New(),
			FamilyID: familyID,
			Type:     models.ProposalTypeSpending,
			Amount:   1500,
			Status:   models.ProposalStatusPending,
		},
		approvals:    make(map[uuid.UUID]models.ApprovalDecision),
		totalMembers: members,
	}
}

func (f *fakeVoteStore) InTx(ctx context.Context, fn func(vtx repository.VoteTx) error) error {
	return fn(f)
}

func (f *fakeVoteStore) LockProposal(ctx context.Context, proposalID uuid.UUID) (*models.Proposal, error) {
	if proposalID != f.proposal.ID {
		return nil, repository.ErrProposalNotFound
	}
	p := *f.proposal
	return &p, nil
}

func (f *fakeVoteStore) UpsertApproval(ctx context.Context, proposalID, userID uuid.UUID, decision models.ApprovalDecision) (*models.Approval, error) {
	f.approvals[userID] = decision
	return &models.Approval{
		ID:         uuid.New(),
		ProposalID: proposalID,
		UserID:     userID,
		Decision:   decision,
	}, nil
}

func (f *fakeVoteStore) ListApprovals(ctx context.Context, proposalID uuid.UUID) ([]models.Approval, error) {
	result := make([]models.Approval, 0, len(f.approvals))
	for userID, decision := range f.approvals {
		result = append(result, models.Approval{
			ProposalID: proposalID,
			UserID:     userID,
			Decision:   decision,
		})
	}
	return result, nil
}

func (f *fakeVoteStore) CountFamilyMembers(ctx context.Context, familyID uuid.UUID) (int, error) {
	return f.totalMembers, nil
}

func (f *fakeVoteStore) UpdateStatus(ctx context.Context, proposalID uuid.UUID, status models.ProposalStatus) error {
	f.proposal.Status = status
	f.statusWrites++
	return nil
}

func TestConsensusService_CastVote_FirstOfTwoKeepsPending(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 2)
	svc := NewConsensusService(store)
	ctx := context.Background()

	status, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)

	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, status)
	assert.Equal(t, models.ProposalStatusPending, store.proposal.Status)
	assert.Equal(t, 0, store.statusWrites)
}

func TestConsensusService_CastVote_UnanimityApproves(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 2)
	svc := NewConsensusService(store)
	ctx := context.Background()

	_, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)
	assert.NoError(t, err)

	status, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, status)
	assert.Equal(t, models.ProposalStatusApproved, store.proposal.Status)
}

func TestConsensusService_CastVote_SingleRejectionVetoes(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 3)
	svc := NewConsensusService(store)
	ctx := context.Background()

	_, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)
	assert.NoError(t, err)

	status, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionRejected)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, status)
}

func TestConsensusService_CastVote_RevoteOverwritesDecision(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 1)
	svc := NewConsensusService(store)
	ctx := context.Background()
	voterID := uuid.New()

	status, err := svc.CastVote(ctx, store.proposal.ID, voterID, models.ApprovalDecisionRejected)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, status)

	// Участник передумал: тот же пользователь голосует заново,
	// решение перезаписывается и статус пересчитывается.
	status, err = svc.CastVote(ctx, store.proposal.ID, voterID, models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, status)
	assert.Len(t, store.approvals, 1)
}

func TestConsensusService_CastVote_IdempotentRevoteSkipsWrite(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 2)
	svc := NewConsensusService(store)
	ctx := context.Background()
	voterID := uuid.New()

	_, err := svc.CastVote(ctx, store.proposal.ID, voterID, models.ApprovalDecisionApproved)
	assert.NoError(t, err)

	status, err := svc.CastVote(ctx, store.proposal.ID, voterID, models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, status)
	assert.Equal(t, 0, store.statusWrites)
}

func TestConsensusService_CastVote_EmptyRosterNeverApproves(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 0)
	svc := NewConsensusService(store)
	ctx := context.Background()

	status, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, status)
}

func TestConsensusService_CastVote_StaleVoteBlocksUnanimity(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 3)
	svc := NewConsensusService(store)
	ctx := context.Background()

	_, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	_, err = svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)
	assert.NoError(t, err)

	// Один из проголосовавших вышел из семьи. Его голос остаётся в
	// счёте, поэтому голосов становится больше ростера и строгое
	// равенство для единогласия уже недостижимо.
	store.totalMembers = 2
	status, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, status)
}

func TestConsensusService_CastVote_RosterGrowthReopensVoting(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 2)
	svc := NewConsensusService(store)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	_, err := svc.CastVote(ctx, store.proposal.ID, first, models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	status, err := svc.CastVote(ctx, store.proposal.ID, second, models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, status)

	// В семью вступил новый участник: при следующем голосе статус
	// пересчитывается по новому размеру ростера.
	store.totalMembers = 3
	status, err = svc.CastVote(ctx, store.proposal.ID, first, models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, status)
}

func TestConsensusService_CastVote_DecidedProposalCanFlip(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 2)
	svc := NewConsensusService(store)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	_, err := svc.CastVote(ctx, store.proposal.ID, first, models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	status, err := svc.CastVote(ctx, store.proposal.ID, second, models.ApprovalDecisionApproved)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusApproved, status)

	status, err = svc.CastVote(ctx, store.proposal.ID, second, models.ApprovalDecisionRejected)
	assert.NoError(t, err)
	assert.Equal(t, models.ProposalStatusRejected, status)
}

func TestConsensusService_CastVote_InvalidDecision(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 2)
	svc := NewConsensusService(store)
	ctx := context.Background()

	_, err := svc.CastVote(ctx, store.proposal.ID, uuid.New(), models.ApprovalDecision("maybe"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "решение должно быть approved или rejected")
	assert.Empty(t, store.approvals)
}

func TestConsensusService_CastVote_ProposalNotFound(t *testing.T) {
	store := newFakeVoteStore(uuid.New(), 2)
	svc := NewConsensusService(store)
	ctx := context.Background()

	_, err := svc.CastVote(ctx, uuid.New(), uuid.New(), models.ApprovalDecisionApproved)
	assert.ErrorIs(t, err, repository.ErrProposalNotFound)
	assert.Empty(t, store.approvals)
}

func TestDecideStatus(t *testing.T) {
	votes := func(decisions ...models.ApprovalDecision) []models.Approval {
		result := make([]models.Approval, len(decisions))
		for i, d := range decisions {
			result[i] = models.Approval{UserID: uuid.New(), Decision: d}
		}
		return result
	}

	approved := models.ApprovalDecisionApproved
	rejected := models.ApprovalDecisionRejected

	tests := []struct {
		name      string
		approvals []models.Approval
		members   int
		want      models.ProposalStatus
	}{
		{"без голосов", votes(), 2, models.ProposalStatusPending},
		{"часть за", votes(approved), 2, models.ProposalStatusPending},
		{"все за", votes(approved, approved), 2, models.ProposalStatusApproved},
		{"один против", votes(approved, rejected), 2, models.ProposalStatusRejected},
		{"все против", votes(rejected, rejected), 2, models.ProposalStatusRejected},
		{"пустая семья", votes(approved, approved), 0, models.ProposalStatusPending},
		{"голосов больше ростера", votes(approved, approved, approved), 2, models.ProposalStatusPending},
		{"единственный участник за", votes(approved), 1, models.ProposalStatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideStatus(tt.approvals, tt.members))
		})
	}
}

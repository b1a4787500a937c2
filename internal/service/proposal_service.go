package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/logger"
	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// Событие ws о смене состояния предложения.
const EventProposalUpdated = "proposal_updated"

// ProposalRepo описывает зависимости ProposalService от хранилища предложений.
type ProposalRepo interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Proposal, error)
}

// ApprovalRepo читает голоса по предложениям.
type ApprovalRepo interface {
	ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]models.Approval, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Approval, error)
}

// VoteCaster записывает голос и возвращает итоговый статус предложения.
type VoteCaster interface {
	CastVote(ctx context.Context, proposalID, userID uuid.UUID, decision models.ApprovalDecision) (models.ProposalStatus, error)
}

// MemberLister возвращает участников семьи для рассылки уведомлений.
type MemberLister interface {
	ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]models.FamilyMember, error)
}

// Broadcaster доставляет события подключённым клиентам.
type Broadcaster interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// ProposalService управляет предложениями и голосованием по ним.
type ProposalService struct {
	proposals ProposalRepo
	approvals ApprovalRepo
	consensus VoteCaster
	users     userGetter
	members   MemberLister
	hub       Broadcaster
	cache     *CacheService
}

// NewProposalService создаёт сервис предложений. hub и cache могут быть nil.
func NewProposalService(proposals ProposalRepo, approvals ApprovalRepo, consensus VoteCaster, users userGetter, members MemberLister, hub Broadcaster, cache *CacheService) *ProposalService {
	return &ProposalService{
		proposals: proposals,
		approvals: approvals,
		consensus: consensus,
		users:     users,
		members:   members,
		hub:       hub,
		cache:     cache,
	}
}

// ProposalInput содержит поля формы предложения.
type ProposalInput struct {
	Type        models.ProposalType
	Amount      float64
	Description string
	TargetDate  *time.Time
}

// Create публикует новое предложение. Оно стартует в статусе pending,
// его поля после создания не меняются.
func (s *ProposalService) Create(ctx context.Context, userID uuid.UUID, in ProposalInput) (*models.Proposal, error) {
	if err := validation.ProposalForm.CheckField("type", string(in.Type)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ProposalForm.CheckField("description", in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	proposal := &models.Proposal{
		FamilyID:    familyID,
		ProposerID:  userID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: &description,
		TargetDate:  in.TargetDate,
	}

	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateFamilyCache(familyID)
	}
	s.notifyFamily(ctx, familyID, proposal)

	return proposal, nil
}

// List возвращает предложения семьи, свежие первыми.
func (s *ProposalService) List(ctx context.Context, userID uuid.UUID) ([]models.Proposal, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	return s.proposals.ListByFamily(ctx, familyID)
}

// Approvals возвращает голоса по одному предложению семьи пользователя.
func (s *ProposalService) Approvals(ctx context.Context, userID, proposalID uuid.UUID) ([]models.Approval, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	proposal, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.FamilyID != familyID {
		return nil, apperror.ErrForbidden
	}

	return s.approvals.ListByProposal(ctx, proposalID)
}

// FamilyApprovals возвращает все голоса по предложениям семьи пользователя.
func (s *ProposalService) FamilyApprovals(ctx context.Context, userID uuid.UUID) ([]models.Approval, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	return s.approvals.ListByFamily(ctx, familyID)
}

// Vote записывает голос пользователя и возвращает предложение с
// пересчитанным статусом. Участники семьи получают событие по ws.
func (s *ProposalService) Vote(ctx context.Context, userID, proposalID uuid.UUID, decision models.ApprovalDecision) (*models.Proposal, error) {
	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	proposal, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.FamilyID != familyID {
		return nil, apperror.ErrForbidden
	}

	status, err := s.consensus.CastVote(ctx, proposalID, userID, decision)
	if err != nil {
		return nil, err
	}

	proposal.Status = status
	if s.cache != nil {
		s.cache.InvalidateFamilyCache(familyID)
	}
	s.notifyFamily(ctx, familyID, proposal)

	return proposal, nil
}

// notifyFamily рассылает событие о предложении всем участникам семьи.
// Ошибки доставки только логируются: голос уже сохранён.
func (s *ProposalService) notifyFamily(ctx context.Context, familyID uuid.UUID, proposal *models.Proposal) {
	if s.hub == nil || s.members == nil {
		return
	}

	members, err := s.members.ListFamilyMembers(ctx, familyID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithField("family_id", familyID).WithError(err).Warn("proposal service: не удалось получить участников для рассылки")
		}
		return
	}

	for _, member := range members {
		if err := s.hub.BroadcastToUser(member.ID, EventProposalUpdated, proposal); err != nil && logger.Log != nil {
			logger.Log.WithField("user_id", member.ID).WithError(err).Warn("proposal service: не удалось отправить событие")
		}
	}
}

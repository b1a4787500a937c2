package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/repository/common"
)

var ErrProposalNotFound = errors.New("proposal not found")

// ProposalRepository управляет таблицей proposals.
type ProposalRepository struct {
	db *sqlx.DB
}

// NewProposalRepository создаёт репозиторий предложений.
func NewProposalRepository(db *sqlx.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create сохраняет новое предложение в статусе pending.
func (r *ProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	query := `
		INSERT INTO proposals (family_id, proposer_id, type, amount, description, target_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING id, status, created_at
	`
	err := r.db.GetContext(ctx, proposal, query,
		proposal.FamilyID, proposal.ProposerID, proposal.Type, proposal.Amount, proposal.Description, proposal.TargetDate)
	if err != nil {
		return fmt.Errorf("proposal repository: create: %w", err)
	}
	return nil
}

// GetByID возвращает предложение по идентификатору.
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	return common.GetByID[models.Proposal](ctx, r.db, "proposals", id, ErrProposalNotFound)
}

// ListByFamily возвращает предложения семьи, новые сверху.
func (r *ProposalRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.SelectContext(ctx, &proposals, `
		SELECT * FROM proposals WHERE family_id = $1 ORDER BY created_at DESC
	`, familyID)
	if err != nil {
		return nil, fmt.Errorf("proposal repository: list by family: %w", err)
	}
	return proposals, nil
}

// ListPendingNotVotedBy возвращает pending предложения семьи,
// по которым пользователь ещё не голосовал. Используется дашбордом.
func (r *ProposalRepository) ListPendingNotVotedBy(ctx context.Context, familyID, userID uuid.UUID) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.SelectContext(ctx, &proposals, `
		SELECT p.* FROM proposals p
		WHERE p.family_id = $1 AND p.status = 'pending'
		  AND NOT EXISTS (SELECT 1 FROM approvals a WHERE a.proposal_id = p.id AND a.user_id = $2)
		ORDER BY p.created_at DESC
	`, familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("proposal repository: list pending not voted: %w", err)
	}
	return proposals, nil
}

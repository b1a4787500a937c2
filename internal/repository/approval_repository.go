package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
)

// ApprovalRepository управляет таблицей approvals (голоса по предложениям).
type ApprovalRepository struct {
	db *sqlx.DB
}

// NewApprovalRepository создаёт репозиторий голосов.
func NewApprovalRepository(db *sqlx.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}


// ListByProposal возвращает все голоса по предложению.
func (r *ApprovalRepository) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]models.Approval, error) {
	var approvals []models.Approval
	err := r.db.SelectContext(ctx, &approvals, `
		SELECT * FROM approvals WHERE proposal_id = $1 ORDER BY created_at
	`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("approval repository: list by proposal: %w", err)
	}
	return approvals, nil
}

// ListByFamily возвращает голоса по всем предложениям семьи.
func (r *ApprovalRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]models.Approval, error) {
	var approvals []models.Approval
	err := r.db.SelectContext(ctx, &approvals, `
		SELECT a.* FROM approvals a
		JOIN proposals p ON p.id = a.proposal_id
		WHERE p.family_id = $1
		ORDER BY a.created_at
	`, familyID)
	if err != nil {
		return nil, fmt.Errorf("approval repository: list by family: %w", err)
	}
	return approvals, nil
}

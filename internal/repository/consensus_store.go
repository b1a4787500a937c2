package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/repository/common"
)

// VoteTx описывает операции, доступные внутри транзакции голосования.
// Интерфейс нужен, чтобы сервис консенсуса тестировался без базы.
type VoteTx interface {
	// LockProposal загружает предложение и блокирует его строку до конца транзакции.
	LockProposal(ctx context.Context, proposalID uuid.UUID) (*models.Proposal, error)
	// UpsertApproval записывает голос участника. Повторный голос перезаписывает
	// решение, created_at первой записи сохраняется.
	UpsertApproval(ctx context.Context, proposalID, userID uuid.UUID, decision models.ApprovalDecision) (*models.Approval, error)
	// ListApprovals возвращает все голоса по предложению.
	ListApprovals(ctx context.Context, proposalID uuid.UUID) ([]models.Approval, error)
	// CountFamilyMembers возвращает текущий размер ростера семьи.
	CountFamilyMembers(ctx context.Context, familyID uuid.UUID) (int, error)
	// UpdateStatus записывает новый статус предложения.
	UpdateStatus(ctx context.Context, proposalID uuid.UUID, status models.ProposalStatus) error
}

// ConsensusStore исполняет шаги голосования в одной транзакции.
// Строка предложения блокируется через SELECT ... FOR UPDATE, поэтому
// одновременные голоса по одному предложению сериализуются, а голоса
// по разным предложениям идут параллельно.
type ConsensusStore struct {
	db *sqlx.DB
}

// NewConsensusStore создаёт транзакционное хранилище голосования.
func NewConsensusStore(db *sqlx.DB) *ConsensusStore {
	return &ConsensusStore{db: db}
}

// InTx выполняет fn внутри одной транзакции.
func (s *ConsensusStore) InTx(ctx context.Context, fn func(vtx VoteTx) error) error {
	return common.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(&voteTx{tx: tx})
	})
}

type voteTx struct {
	tx *sqlx.Tx
}

func (t *voteTx) LockProposal(ctx context.Context, proposalID uuid.UUID) (*models.Proposal, error) {
	var proposal models.Proposal
	err := t.tx.GetContext(ctx, &proposal, `
		SELECT * FROM proposals WHERE id = $1 FOR UPDATE
	`, proposalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("consensus store: lock proposal: %w", err)
	}
	return &proposal, nil
}

func (t *voteTx) UpsertApproval(ctx context.Context, proposalID, userID uuid.UUID, decision models.ApprovalDecision) (*models.Approval, error) {
	var approval models.Approval
	err := t.tx.GetContext(ctx, &approval, `
		INSERT INTO approvals (proposal_id, user_id, decision)
		VALUES ($1, $2, $3)
		ON CONFLICT (proposal_id, user_id) DO UPDATE SET decision = EXCLUDED.decision
		RETURNING *
	`, proposalID, userID, decision)
	if err != nil {
		return nil, fmt.Errorf("consensus store: upsert approval: %w", err)
	}
	return &approval, nil
}

func (t *voteTx) ListApprovals(ctx context.Context, proposalID uuid.UUID) ([]models.Approval, error) {
	var approvals []models.Approval
	err := t.tx.SelectContext(ctx, &approvals, `
		SELECT * FROM approvals WHERE proposal_id = $1 ORDER BY created_at
	`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("consensus store: list approvals: %w", err)
	}
	return approvals, nil
}

// Размер ростера читается в момент голосования, без снимка на момент
// создания предложения. Голоса вышедших из семьи участников остаются
// в таблице и продолжают учитываться.
func (t *voteTx) CountFamilyMembers(ctx context.Context, familyID uuid.UUID) (int, error) {
	var count int
	if err := t.tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE family_id = $1`, familyID); err != nil {
		return 0, fmt.Errorf("consensus store: count family members: %w", err)
	}
	return count, nil
}

func (t *voteTx) UpdateStatus(ctx context.Context, proposalID uuid.UUID, status models.ProposalStatus) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE proposals SET status = $2 WHERE id = $1`, proposalID, status)
	if err != nil {
		return fmt.Errorf("consensus store: update status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProposalNotFound
	}
	return nil
}

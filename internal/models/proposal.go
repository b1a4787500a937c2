package models

import (
	"time"

	"github.com/google/uuid"
)

// ProposalType задаёт назначение предложения: трата или накопление.
type ProposalType string

const (
	ProposalTypeSpending ProposalType = "spending"
	ProposalTypeSavings  ProposalType = "savings"
)


// ProposalStatus отражает статус предложения. Выставляется только механизмом
// консенсуса, вручную статус не меняется.
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)


// ApprovalDecision кодирует решение участника по предложению.
type ApprovalDecision string

const (
	ApprovalDecisionApproved ApprovalDecision = "approved"
	ApprovalDecisionRejected ApprovalDecision = "rejected"
)

// IsValid проверяет допустимость решения.
func (d ApprovalDecision) IsValid() bool {
	return d == ApprovalDecisionApproved || d == ApprovalDecisionRejected
}

// Proposal представляет предложение потратить или отложить деньги, которое семья
// одобряет совместным голосованием. Поля предложения неизменяемы после
// создания, меняется только статус.
type Proposal struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	FamilyID    uuid.UUID      `db:"family_id" json:"family_id"`
	ProposerID  uuid.UUID      `db:"proposer_id" json:"proposer_id"`
	Type        ProposalType   `db:"type" json:"type"`
	Amount      float64        `db:"amount" json:"amount"`
	Description *string        `db:"description" json:"description,omitempty"`
	TargetDate  *time.Time     `db:"target_date" json:"target_date,omitempty"`
	Status      ProposalStatus `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}


// Approval хранит голос одного участника по предложению. Для пары
// (proposal_id, user_id) существует не более одной записи: повторное
// голосование перезаписывает решение, а не добавляет новую строку.
type Approval struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	ProposalID uuid.UUID        `db:"proposal_id" json:"proposal_id"`
	UserID     uuid.UUID        `db:"user_id" json:"user_id"`
	Decision   ApprovalDecision `db:"decision" json:"decision"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/repository"
)

// ConsensusStore описывает зависимость сервиса консенсуса от хранилища.
// Реализация обязана выполнять fn в одной транзакции, сериализованной
// по предложению (см. repository.ConsensusStore).
type ConsensusStore interface {
	InTx(ctx context.Context, fn func(vtx repository.VoteTx) error) error
}

// ConsensusService реализует правило семейного консенсуса:
// одобрение требует голоса "за" от каждого участника семьи,
// один голос "против" отклоняет предложение сразу.
//
// Статус предложения вычисляется как чистая функция от текущего набора голосов и
// размера ростера; он пересчитывается заново при каждом голосе.
// Это сознательно означает, что решённое предложение может сменить
// статус, если участник потом передумает.
type ConsensusService struct {
	store ConsensusStore
}

// NewConsensusService создаёт сервис консенсуса.
func NewConsensusService(store ConsensusStore) *ConsensusService {
	return &ConsensusService{store: store}
}

// CastVote записывает голос участника и возвращает итоговый статус
// предложения. Голос и пересчёт статуса выполняются в одной транзакции.
func (s *ConsensusService) CastVote(ctx context.Context, proposalID, userID uuid.UUID, decision models.ApprovalDecision) (models.ProposalStatus, error) {
	if !decision.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("решение должно быть approved или rejected, получено %q", decision))
	}

	var result models.ProposalStatus
	err := s.store.InTx(ctx, func(vtx repository.VoteTx) error {
		proposal, err := vtx.LockProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		if _, err := vtx.UpsertApproval(ctx, proposalID, userID, decision); err != nil {
			return err
		}

		approvals, err := vtx.ListApprovals(ctx, proposalID)
		if err != nil {
			return err
		}

		totalMembers, err := vtx.CountFamilyMembers(ctx, proposal.FamilyID)
		if err != nil {
			return err
		}

		result = DecideStatus(approvals, totalMembers)
		if result == proposal.Status {
			return nil
		}

		return vtx.UpdateStatus(ctx, proposalID, result)
	})
	if err != nil {
		return "", err
	}

	return result, nil
}

// DecideStatus вычисляет статус предложения по текущим голосам.
//
// Правила, в порядке приоритета:
//  1. если все участники проголосовали "за" и семья не пуста, статус approved;
//  2. если есть хотя бы один голос "против", статус rejected;
//  3. иначе pending.
//
// Пустой ростер (totalMembers == 0) никогда не даёт approved,
// сколько бы голосов "за" ни накопилось от бывших участников.
func DecideStatus(approvals []models.Approval, totalMembers int) models.ProposalStatus {
	var approved, rejected int
	for _, a := range approvals {
		switch a.Decision {
		case models.ApprovalDecisionApproved:
			approved++
		case models.ApprovalDecisionRejected:
			rejected++
		}
	}

	switch {
	case totalMembers > 0 && approved == totalMembers:
		return models.ProposalStatusApproved
	case rejected > 0:
		return models.ProposalStatusRejected
	default:
		return models.ProposalStatusPending
	}
}

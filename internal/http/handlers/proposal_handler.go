package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/family-budget-backend/internal/dto"
	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/http/middleware"
	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/service"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// ProposalHandler отвечает за предложения и голосование по ним.
type ProposalHandler struct {
	proposals *service.ProposalService
}

// NewProposalHandler создаёт экземпляр.
func NewProposalHandler(proposals *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// Create обрабатывает POST /proposals.
func (h *ProposalHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var targetDate *time.Time
	if req.TargetDate != nil && *req.TargetDate != "" {
		parsed, err := validation.ValidateDate("целевая дата", *req.TargetDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		targetDate = &parsed
	}

	proposal, err := h.proposals.Create(c.Request.Context(), userID, service.ProposalInput{
		Type:        models.ProposalType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		TargetDate:  targetDate,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// List обрабатывает GET /proposals.
func (h *ProposalHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposals, err := h.proposals.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

// Approvals обрабатывает GET /proposals/:id/approvals.
func (h *ProposalHandler) Approvals(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approvals, err := h.proposals.Approvals(c.Request.Context(), userID, proposalID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, approvals)
}

// FamilyApprovals обрабатывает GET /approvals - все голоса по предложениям семьи.
func (h *ProposalHandler) FamilyApprovals(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	approvals, err := h.proposals.FamilyApprovals(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, approvals)
}

// Vote обрабатывает POST /proposals/:id/vote.
func (h *ProposalHandler) Vote(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.proposals.Vote(c.Request.Context(), userID, proposalID, models.ApprovalDecision(req.Decision))
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.ObserveVote(string(proposal.Status))

	c.JSON(http.StatusOK, proposal)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/dto"
	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/service"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// SubscriptionHandler отвечает за регулярные платежи семьи.
type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

// NewSubscriptionHandler создаёт экземпляр.
func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func subscriptionInputFromRequest(req dto.SubscriptionRequest) (service.SubscriptionInput, error) {
	nextPayment, err := validation.ValidateDate("дата следующего платежа", req.NextPaymentDate)
	if err != nil {
		return service.SubscriptionInput{}, err
	}

	var accountID *uuid.UUID
	if req.BankAccountID != nil && *req.BankAccountID != "" {
		parsed, err := uuid.Parse(*req.BankAccountID)
		if err != nil {
			return service.SubscriptionInput{}, common.ErrInvalidUUID
		}
		accountID = &parsed
	}

	return service.SubscriptionInput{
		Name:            req.Name,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		NextPaymentDate: nextPayment,
		BankAccountID:   accountID,
		Category:        req.Category,
		Description:     req.Description,
		IsActive:        req.IsActive,
	}, nil
}

// Create обрабатывает POST /subscriptions.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := subscriptionInputFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription, err := h.subscriptions.Create(c.Request.Context(), userID, input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, subscription)
}

// List обрабатывает GET /subscriptions.
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	subscriptions, err := h.subscriptions.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}

// Upcoming обрабатывает GET /subscriptions/upcoming - платежи ближайших 30 дней.
func (h *SubscriptionHandler) Upcoming(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	subscriptions, err := h.subscriptions.Upcoming(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}

// Update обрабатывает PUT /subscriptions/:id.
func (h *SubscriptionHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	subscriptionID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := subscriptionInputFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription, err := h.subscriptions.Update(c.Request.Context(), userID, subscriptionID, input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, subscription)
}

// Delete обрабатывает DELETE /subscriptions/:id.
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	subscriptionID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.subscriptions.Delete(c.Request.Context(), userID, subscriptionID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "подписка удалена"})
}

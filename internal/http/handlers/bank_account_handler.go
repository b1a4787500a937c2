package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/family-budget-backend/internal/dto"
	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/service"
)

// BankAccountHandler отвечает за счета семьи.
type BankAccountHandler struct {
	accounts *service.BankAccountService
}

// NewBankAccountHandler создаёт экземпляр.
func NewBankAccountHandler(accounts *service.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{accounts: accounts}
}

// Create обрабатывает POST /bank-accounts.
func (h *BankAccountHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// List обрабатывает GET /bank-accounts.
func (h *BankAccountHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	accounts, err := h.accounts.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// Rename обрабатывает PUT /bank-accounts/:id.
func (h *BankAccountHandler) Rename(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	accountID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.Rename(c.Request.Context(), userID, accountID, req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// Delete обрабатывает DELETE /bank-accounts/:id.
func (h *BankAccountHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	accountID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), userID, accountID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "счёт удалён"})
}

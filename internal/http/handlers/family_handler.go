package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/family-budget-backend/internal/dto"
	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/service"
)

// FamilyHandler отвечает за создание семьи и управление составом.
type FamilyHandler struct {
	families *service.FamilyService
}

// NewFamilyHandler создаёт экземпляр.
func NewFamilyHandler(families *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{families: families}
}

// Create обрабатывает POST /families.
func (h *FamilyHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, err := h.families.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, family)
}

// Join обрабатывает POST /families/join.
func (h *FamilyHandler) Join(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, err := h.families.Join(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, family)
}

// Leave обрабатывает POST /families/leave.
func (h *FamilyHandler) Leave(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.families.Leave(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "вы вышли из семьи"})
}

// Get обрабатывает GET /families/my.
func (h *FamilyHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	view, err := h.families.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Members обрабатывает GET /families/members.
func (h *FamilyHandler) Members(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	members, err := h.families.Members(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, members)
}

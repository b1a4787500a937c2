package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/service"
	"github.com/ignatzorin/family-budget-backend/internal/ws"
)

// ProfileHandler отвечает за работу с профилем.
type ProfileHandler struct {
	profiles *service.ProfileService
	hub      *ws.Hub
}

// NewProfileHandler создаёт экземпляр.
func NewProfileHandler(profiles *service.ProfileService, hub *ws.Hub) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, hub: hub}
}

// GetMe возвращает профиль текущего пользователя.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe обновляет профиль текущего пользователя.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		FullName  string  `json:"full_name" binding:"required"`
		AvatarURL *string `json:"avatar_url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profiles.Update(c.Request.Context(), userID, req.FullName, req.AvatarURL)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// WebSocket уведомление об обновлении профиля
	if h.hub != nil {
		_ = h.hub.BroadcastToUser(userID, "profile_updated", gin.H{
			"user":    user,
			"message": "Профиль успешно обновлён",
		})
	}

	c.JSON(http.StatusOK, user)
}

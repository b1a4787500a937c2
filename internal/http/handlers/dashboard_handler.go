package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/service"
)

// DashboardHandler отдаёт агрегированные данные главного экрана.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler создаёт экземпляр.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboardData обрабатывает GET /dashboard?period=1m.
// Баланс, последние транзакции, ближайшие подписки, открытые предложения
// и история баланса собираются за один запрос.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	period := c.Query("period")

	data, err := h.dashboard.Data(c.Request.Context(), userID, period)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, data)
}

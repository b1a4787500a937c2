package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/family-budget-backend/internal/dto"
	"github.com/ignatzorin/family-budget-backend/internal/service"
)

// SeedHandler обрабатывает запросы для генерации демо-данных.
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed генерирует демо-семью с участниками, транзакциями и предложениями.
// POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Параметры опциональны, при пустом теле берём дефолты
		req = dto.SeedRequest{}
	}

	if req.Members < 1 {
		req.Members = 3
	}
	if req.Members > 4 {
		req.Members = 4
	}
	if req.Transactions < 1 {
		req.Transactions = 60
	}
	if req.Transactions > 1000 {
		req.Transactions = 1000
	}

	if err := h.seedService.SeedData(c.Request.Context(), req.Members, req.Transactions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "не удалось сгенерировать демо-данные",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "демо-данные успешно созданы",
		"members":      req.Members,
		"transactions": req.Transactions,
	})
}

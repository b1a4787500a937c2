package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/family-budget-backend/internal/dto"
	"github.com/ignatzorin/family-budget-backend/internal/http/handlers/common"
	"github.com/ignatzorin/family-budget-backend/internal/service"
)

// CategoryHandler отвечает за категории доходов и расходов.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler создаёт экземпляр.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func categoryInputFromRequest(req dto.CategoryRequest) service.CategoryInput {
	return service.CategoryInput{
		Name:  req.Name,
		Type:  req.Type,
		Icon:  req.Icon,
		Color: req.Color,
	}
}

// Create обрабатывает POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categories.Create(c.Request.Context(), userID, categoryInputFromRequest(req))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// List обрабатывает GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	categories, err := h.categories.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Update обрабатывает PUT /categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	categoryID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categories.Update(c.Request.Context(), userID, categoryID, categoryInputFromRequest(req))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete обрабатывает DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	categoryID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.categories.Delete(c.Request.Context(), userID, categoryID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "категория удалена"})
}

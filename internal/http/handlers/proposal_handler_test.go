package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProposalHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ProposalHandler{proposals: nil}
	r.POST("/proposals", handler.Create)

	req, _ := http.NewRequest("POST", "/proposals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProposalHandler_Vote_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ProposalHandler{proposals: nil}
	r.POST("/proposals/:id/vote", handler.Vote)

	proposalID := uuid.New()
	req, _ := http.NewRequest("POST", "/proposals/"+proposalID.String()+"/vote", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProposalHandler_Vote_InvalidProposalID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &ProposalHandler{proposals: nil}
	r.POST("/proposals/:id/vote", handler.Vote)

	req, _ := http.NewRequest("POST", "/proposals/invalid-uuid/vote", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProposalHandler_Vote_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &ProposalHandler{proposals: nil}
	r.POST("/proposals/:id/vote", handler.Vote)

	proposalID := uuid.New()
	// Без решения binding отклонит запрос до вызова сервиса
	body := strings.NewReader(`{}`)
	req, _ := http.NewRequest("POST", "/proposals/"+proposalID.String()+"/vote", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProposalHandler_Approvals_InvalidProposalID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &ProposalHandler{proposals: nil}
	r.GET("/proposals/:id/approvals", handler.Approvals)

	req, _ := http.NewRequest("GET", "/proposals/invalid-uuid/approvals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

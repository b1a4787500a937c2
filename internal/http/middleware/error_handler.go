package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/family-budget-backend/internal/logger"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/repository"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "внутренняя ошибка сервера"

			// Логируем ошибку
			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			var appErr *apperror.AppError
			switch {
			case errors.As(err.Err, &appErr):
				statusCode = appErr.HTTPStatus
				message = appErr.Message
			case errors.Is(err.Err, repository.ErrUserNotFound):
				statusCode = http.StatusNotFound
				message = "пользователь не найден"
			case errors.Is(err.Err, repository.ErrFamilyNotFound):
				statusCode = http.StatusNotFound
				message = "семья не найдена"
			case errors.Is(err.Err, repository.ErrProposalNotFound):
				statusCode = http.StatusNotFound
				message = "предложение не найдено"
			case errors.Is(err.Err, repository.ErrTransactionNotFound):
				statusCode = http.StatusNotFound
				message = "транзакция не найдена"
			case errors.Is(err.Err, repository.ErrCategoryNotFound):
				statusCode = http.StatusNotFound
				message = "категория не найдена"
			case errors.Is(err.Err, repository.ErrSubscriptionNotFound):
				statusCode = http.StatusNotFound
				message = "подписка не найдена"
			case errors.Is(err.Err, repository.ErrBankAccountNotFound):
				statusCode = http.StatusNotFound
				message = "счёт не найден"
			default:
				// Если ошибка содержит понятное сообщение, используем его,
				// но только если это не внутренняя ошибка
				errStr := err.Error()
				if errStr != "" && !containsInternalKeywords(errStr) {
					message = errStr
					if contains(errStr, "неверный") || contains(errStr, "невалид") || contains(errStr, "должн") || contains(errStr, "обязател") {
						statusCode = http.StatusBadRequest
					} else if contains(errStr, "нет прав") || contains(errStr, "не авторизован") {
						statusCode = http.StatusForbidden
					}
				}
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

// contains проверяет, содержит ли строка подстроку (case-insensitive).
func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

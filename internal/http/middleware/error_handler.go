package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/prokvartiru/review-backend/internal/logger"
	"github.com/prokvartiru/review-backend/internal/repository"
	"github.com/prokvartiru/review-backend/internal/service"
	"github.com/prokvartiru/review-backend/internal/validation"
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

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("Request error")
		}

		var verrs validation.Errors
		if errors.As(err.Err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "ошибка валидации",
				"errors": verrs,
			})
			return
		}

		statusCode := http.StatusInternalServerError
		message := "внутренняя ошибка сервера"

		switch {
		case errors.Is(err.Err, repository.ErrUserNotFound),
			errors.Is(err.Err, repository.ErrReviewNotFound),
			errors.Is(err.Err, repository.ErrCommentNotFound),
			errors.Is(err.Err, repository.ErrAddressNotFound):
			statusCode = http.StatusNotFound
			message = err.Err.Error()
		case errors.Is(err.Err, repository.ErrAddressExists):
			statusCode = http.StatusConflict
			message = err.Err.Error()
		case errors.Is(err.Err, service.ErrInvalidCredentials),
			errors.Is(err.Err, service.ErrAccountDisabled):
			statusCode = http.StatusUnauthorized
			message = err.Err.Error()
		case errors.Is(err.Err, service.ErrEmailTaken),
			errors.Is(err.Err, service.ErrBadVerification),
			errors.Is(err.Err, service.ErrInvalidAction):
			statusCode = http.StatusBadRequest
			message = err.Err.Error()
		default:
			if msg := err.Error(); msg != "" && !containsInternalKeywords(msg) {
				message = msg
			}
		}

		c.JSON(statusCode, gin.H{"error": message})
	}
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"mongo",
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

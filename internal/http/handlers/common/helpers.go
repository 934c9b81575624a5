package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/http/middleware"
	"github.com/prokvartiru/review-backend/internal/logger"
	"github.com/prokvartiru/review-backend/internal/repository"
	"github.com/prokvartiru/review-backend/internal/service"
	"github.com/prokvartiru/review-backend/internal/validation"
)

var (
	// ErrNoUserInContext возвращается, когда в контексте нет пользователя.
	ErrNoUserInContext = errors.New("пользователь не найден в контексте")

	// ErrInvalidObjectID возвращается при некорректном идентификаторе.
	ErrInvalidObjectID = errors.New("неверный формат идентификатора")
)

// CurrentUserID извлекает ID пользователя из контекста Gin.
func CurrentUserID(c *gin.Context) (bson.ObjectID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return bson.ObjectID{}, ErrNoUserInContext
	}

	userID, ok := raw.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, ErrNoUserInContext
	}

	return userID, nil
}

// CurrentUserRole извлекает роль пользователя из контекста Gin.
func CurrentUserRole(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return "", ErrNoUserInContext
	}

	role, ok := raw.(string)
	if !ok {
		return "", ErrNoUserInContext
	}

	return role, nil
}

// ParseObjectIDParam разбирает ObjectID из параметра маршрута.
func ParseObjectIDParam(c *gin.Context, paramName string) (bson.ObjectID, error) {
	param := c.Param(paramName)
	if param == "" {
		return bson.ObjectID{}, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := bson.ObjectIDFromHex(param)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidObjectID
	}

	return parsed, nil
}

// ParseInt64Query читает числовой query-параметр с дефолтом.
func ParseInt64Query(c *gin.Context, name string, fallback int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

// RespondError отправляет стандартный ответ с ошибкой.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// RespondBadRequest отправляет 400.
func RespondBadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, message)
}

// RespondUnauthorized отправляет 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondNotFound отправляет 404.
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "ресурс не найден"
	}
	RespondError(c, http.StatusNotFound, message)
}

// RespondServiceError транслирует ошибку сервиса в HTTP-ответ:
// ошибки валидации отдаются полным списком, доменные ошибки получают
// свой код, остальное маскируется как 500.
func RespondServiceError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "ошибка валидации",
			"errors": verrs,
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrReviewNotFound),
		errors.Is(err, repository.ErrCommentNotFound),
		errors.Is(err, repository.ErrAddressNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrAddressExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDisabled):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrBadVerification),
		errors.Is(err, service.ErrInvalidAction):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Log.WithFields(map[string]interface{}{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		}).Error("Request error")
		RespondError(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/http/handlers/common"
	"github.com/prokvartiru/review-backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token:     result.Token,
		ExpiresIn: int64(h.auth.TokenTTL().Seconds()),
		User:      result.User,
	})
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     result.Token,
		ExpiresIn: int64(h.auth.TokenTTL().Seconds()),
		User:      result.User,
	})
}

// VerifyEmail POST /auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	if err := h.auth.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email подтверждён"})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateNotifications PUT /auth/notifications
func (h *AuthHandler) UpdateNotifications(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.NotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "поле emailNotifications обязательно")
		return
	}

	if err := h.auth.SetEmailNotifications(c.Request.Context(), userID, *req.EmailNotifications); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"emailNotifications": *req.EmailNotifications})
}

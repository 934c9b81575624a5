package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/http/handlers/common"
	"github.com/prokvartiru/review-backend/internal/service"
)

type AdminHandler struct {
	moderation *service.ModerationService
}

func NewAdminHandler(moderation *service.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

// PendingReviews GET /admin/pending-reviews
func (h *AdminHandler) PendingReviews(c *gin.Context) {
	pending, err := h.moderation.PendingReviews(c.Request.Context())
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pending)
}

// ModeratePropertyReview PATCH /admin/property-reviews/:id/moderate
func (h *AdminHandler) ModeratePropertyReview(c *gin.Context) {
	reviewID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	if err := h.moderation.ModeratePropertyReview(c.Request.Context(), reviewID, req.Action); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "решение применено"})
}

// ModerateTenantReview PATCH /admin/tenant-reviews/:id/moderate
func (h *AdminHandler) ModerateTenantReview(c *gin.Context) {
	reviewID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	if err := h.moderation.ModerateTenantReview(c.Request.Context(), reviewID, req.Action); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "решение применено"})
}

// ReportedContent GET /admin/reported-content
func (h *AdminHandler) ReportedContent(c *gin.Context) {
	reported, err := h.moderation.ReportedContent(c.Request.Context())
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reported)
}

// ResolveReported PATCH /admin/reported-content/:type/:id
func (h *AdminHandler) ResolveReported(c *gin.Context) {
	reviewID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	if err := h.moderation.ResolveReported(c.Request.Context(), c.Param("type"), reviewID, req.Action); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "решение применено"})
}

// ListUsers GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.moderation.ListUsers(c.Request.Context())
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SetUserStatus PATCH /admin/users/:id/status
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	userID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "поле isActive обязательно")
		return
	}

	if err := h.moderation.SetUserStatus(c.Request.Context(), userID, *req.IsActive); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isActive": *req.IsActive})
}

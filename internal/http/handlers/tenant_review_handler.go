package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/http/handlers/common"
	"github.com/prokvartiru/review-backend/internal/service"
)

type TenantReviewHandler struct {
	reviews *service.ReviewService
}

func NewTenantReviewHandler(reviews *service.ReviewService) *TenantReviewHandler {
	return &TenantReviewHandler{reviews: reviews}
}

// Search GET /tenant/reviews
func (h *TenantReviewHandler) Search(c *gin.Context) {
	var q dto.TenantSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondBadRequest(c, "некорректные параметры поиска")
		return
	}

	list, err := h.reviews.SearchTenantReviews(c.Request.Context(), q)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Create POST /tenant/reviews
func (h *TenantReviewHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateTenantReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	review, err := h.reviews.SubmitTenantReview(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "отзыв отправлен на модерацию",
		"review":  review,
	})
}

// AddComment POST /tenant/reviews/:id/comments
func (h *TenantReviewHandler) AddComment(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	reviewID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	comment, err := h.reviews.AddTenantComment(c.Request.Context(), reviewID, userID, req.Text)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Report POST /tenant/reviews/:id/report
func (h *TenantReviewHandler) Report(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	reviewID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.reviews.ReportTenantReview(c.Request.Context(), reviewID); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "жалоба принята"})
}

// ReportComment POST /tenant/reviews/:id/comments/:commentId/report
func (h *TenantReviewHandler) ReportComment(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	reviewID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	commentID, err := common.ParseObjectIDParam(c, "commentId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.reviews.ReportTenantComment(c.Request.Context(), reviewID, commentID); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "жалоба принята"})
}

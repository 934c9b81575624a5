package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/http/handlers/common"
	"github.com/prokvartiru/review-backend/internal/service"
)

type PropertyReviewHandler struct {
	reviews *service.ReviewService
	mixed   *service.MixedSearchService
}

func NewPropertyReviewHandler(reviews *service.ReviewService, mixed *service.MixedSearchService) *PropertyReviewHandler {
	return &PropertyReviewHandler{reviews: reviews, mixed: mixed}
}

// Search GET /property/reviews
func (h *PropertyReviewHandler) Search(c *gin.Context) {
	var q dto.PropertySearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondBadRequest(c, "некорректные параметры поиска")
		return
	}

	list, err := h.reviews.SearchPropertyReviews(c.Request.Context(), q)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// MixedSearch GET /property/mixed-reviews
func (h *PropertyReviewHandler) MixedSearch(c *gin.Context) {
	var q dto.MixedSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondBadRequest(c, "некорректные параметры поиска")
		return
	}

	result, err := h.mixed.Search(c.Request.Context(), q)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create POST /property/reviews
func (h *PropertyReviewHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreatePropertyReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	review, err := h.reviews.SubmitPropertyReview(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "отзыв отправлен на модерацию",
		"review":  review,
	})
}

// AddComment POST /property/reviews/:id/comments
func (h *PropertyReviewHandler) AddComment(c *gin.Context) {
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

	comment, err := h.reviews.AddPropertyComment(c.Request.Context(), reviewID, userID, req.Text)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Report POST /property/reviews/:id/report
func (h *PropertyReviewHandler) Report(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	reviewID, err := common.ParseObjectIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.reviews.ReportPropertyReview(c.Request.Context(), reviewID); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "жалоба принята"})
}

// ReportComment POST /property/reviews/:id/comments/:commentId/report
func (h *PropertyReviewHandler) ReportComment(c *gin.Context) {
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

	if err := h.reviews.ReportPropertyComment(c.Request.Context(), reviewID, commentID); err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "жалоба принята"})
}

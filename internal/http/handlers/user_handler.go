package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/http/handlers/common"
	"github.com/prokvartiru/review-backend/internal/service"
)

type UserHandler struct {
	reviews *service.ReviewService
}

func NewUserHandler(reviews *service.ReviewService) *UserHandler {
	return &UserHandler{reviews: reviews}
}

// MyReviews GET /user/my-reviews
func (h *UserHandler) MyReviews(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	reviews, err := h.reviews.MyReviews(c.Request.Context(), userID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// Dashboard GET /user/dashboard
func (h *UserHandler) Dashboard(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	dashboard, err := h.reviews.Dashboard(c.Request.Context(), userID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

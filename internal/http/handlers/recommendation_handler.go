package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/http/handlers/common"
	"github.com/prokvartiru/review-backend/internal/service"
)

type RecommendationHandler struct {
	recommendations *service.RecommendationService
}

func NewRecommendationHandler(recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// TrendingTopics GET /recommendations/trending-topics
func (h *RecommendationHandler) TrendingTopics(c *gin.Context) {
	topics, err := h.recommendations.TrendingTopics(c.Request.Context())
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// Stats GET /recommendations/stats
func (h *RecommendationHandler) Stats(c *gin.Context) {
	stats, err := h.recommendations.Stats(c.Request.Context())
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UserPreferences GET /recommendations/user-preferences
// Без собственных отзывов у пользователя нет предпочтений - отдаётся null.
func (h *RecommendationHandler) UserPreferences(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	prefs, err := h.recommendations.UserPreferences(c.Request.Context(), userID)
	if err != nil {
		common.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

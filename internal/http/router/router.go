package router

import (
	"github.com/gin-gonic/gin"

	"github.com/prokvartiru/review-backend/internal/config"
	"github.com/prokvartiru/review-backend/internal/http/handlers"
	"github.com/prokvartiru/review-backend/internal/http/middleware"
	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	propertyHandler *handlers.PropertyReviewHandler,
	tenantHandler *handlers.TenantReviewHandler,
	addressHandler *handlers.AddressHandler,
	userHandler *handlers.UserHandler,
	recommendationHandler *handlers.RecommendationHandler,
	adminHandler *handlers.AdminHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	auth := middleware.AuthMiddleware(tokenManager)

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	{
		authGroup.POST("/register", authRateLimit, authHandler.Register)
		authGroup.POST("/login", authRateLimit, authHandler.Login)
		authGroup.POST("/verify-email", authRateLimit, authHandler.VerifyEmail)
		authGroup.GET("/me", auth, authHandler.Me)
		authGroup.PUT("/notifications", auth, authHandler.UpdateNotifications)
	}

	// Отзывы по адресу: квартиры, ЖК, арендодатели
	property := api.Group("/property")
	{
		property.GET("/mixed-reviews", propertyHandler.MixedSearch)
		property.GET("/reviews", propertyHandler.Search)
		property.POST("/reviews", auth, propertyHandler.Create)
		property.POST("/reviews/:id/comments", auth, middleware.ObjectIDValidator("id"), propertyHandler.AddComment)
		property.POST("/reviews/:id/report", auth, middleware.ObjectIDValidator("id"), propertyHandler.Report)
		property.POST("/reviews/:id/comments/:commentId/report",
			auth, middleware.ObjectIDValidator("id", "commentId"), propertyHandler.ReportComment)
	}

	// Отзывы об арендаторах
	tenant := api.Group("/tenant")
	{
		tenant.GET("/reviews", tenantHandler.Search)
		tenant.POST("/reviews", auth, tenantHandler.Create)
		tenant.POST("/reviews/:id/comments", auth, middleware.ObjectIDValidator("id"), tenantHandler.AddComment)
		tenant.POST("/reviews/:id/report", auth, middleware.ObjectIDValidator("id"), tenantHandler.Report)
		tenant.POST("/reviews/:id/comments/:commentId/report",
			auth, middleware.ObjectIDValidator("id", "commentId"), tenantHandler.ReportComment)
	}

	// Подсказки адресов
	addresses := api.Group("/addresses")
	{
		addresses.GET("/remembered", addressHandler.List)
		addresses.POST("/remembered", auth, addressHandler.Save)
		addresses.GET("/popular", addressHandler.Popular)
		addresses.GET("/search", addressHandler.Search)
	}

	// Рекомендации и сводная статистика
	recommendations := api.Group("/recommendations")
	{
		recommendations.GET("/trending-topics", recommendationHandler.TrendingTopics)
		recommendations.GET("/stats", recommendationHandler.Stats)
		recommendations.GET("/user-preferences", auth, recommendationHandler.UserPreferences)
	}

	// Личный кабинет
	user := api.Group("/user")
	user.Use(auth)
	{
		user.GET("/my-reviews", userHandler.MyReviews)
		user.GET("/dashboard", userHandler.Dashboard)
	}

	// Модерация
	admin := api.Group("/admin")
	admin.Use(auth, middleware.RequireRoles(models.RoleAdmin, models.RoleModerator))
	{
		admin.GET("/pending-reviews", adminHandler.PendingReviews)
		admin.PATCH("/property-reviews/:id/moderate", middleware.ObjectIDValidator("id"), adminHandler.ModeratePropertyReview)
		admin.PATCH("/tenant-reviews/:id/moderate", middleware.ObjectIDValidator("id"), adminHandler.ModerateTenantReview)
		admin.GET("/reported-content", adminHandler.ReportedContent)
		admin.PATCH("/reported-content/:type/:id", middleware.ObjectIDValidator("id"), adminHandler.ResolveReported)
	}

	// Управление учётными записями доступно только администраторам
	adminOnly := api.Group("/admin")
	adminOnly.Use(auth, middleware.RequireRoles(models.RoleAdmin))
	{
		adminOnly.GET("/users", adminHandler.ListUsers)
		adminOnly.PATCH("/users/:id/status", middleware.ObjectIDValidator("id"), adminHandler.SetUserStatus)
	}

	return r
}

package dto

import "github.com/prokvartiru/review-backend/internal/models"

// Pagination - сводка постраничной выдачи.
type Pagination struct {
	Current int64 `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
}

// NewPagination считает число страниц по общему количеству.
func NewPagination(page, limit, total int64) Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Current: page, Pages: pages, Total: total}
}

// AuthResponse - ответ регистрации и входа.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *models.User `json:"user"`
}

// PropertyReviewList - страница адресных отзывов.
type PropertyReviewList struct {
	Reviews    []models.PropertyReview `json:"reviews"`
	Pagination Pagination              `json:"pagination"`
}

// TenantReviewList - страница отзывов об арендаторах.
type TenantReviewList struct {
	Reviews    []models.TenantReview `json:"reviews"`
	Pagination Pagination            `json:"pagination"`
}

// MixedReviews - четыре независимые группы смешанного поиска,
// каждая со своим общим количеством.
type MixedReviews struct {
	PropertyReviews           []models.PropertyReview `json:"propertyReviews"`
	PropertyTotal             int64                   `json:"propertyTotal"`
	ResidentialComplexReviews []models.PropertyReview `json:"residentialComplexReviews"`
	ResidentialComplexTotal   int64                   `json:"residentialComplexTotal"`
	LandlordReviews           []models.PropertyReview `json:"landlordReviews"`
	LandlordTotal             int64                   `json:"landlordTotal"`
	TenantReviews             []models.TenantReview   `json:"tenantReviews"`
	TenantTotal               int64                   `json:"tenantTotal"`
}

// MyReviews - собственные отзывы пользователя.
type MyReviews struct {
	PropertyReviews []models.PropertyReview `json:"propertyReviews"`
	TenantReviews   []models.TenantReview   `json:"tenantReviews"`
}

// Dashboard - счётчики личного кабинета.
type Dashboard struct {
	PropertyReviewCount int64 `json:"propertyReviewCount"`
	TenantReviewCount   int64 `json:"tenantReviewCount"`
	TotalReviews        int64 `json:"totalReviews"`
}

// PendingReviews - отзывы, ожидающие модерации.
type PendingReviews struct {
	PropertyReviews []models.PropertyReview `json:"propertyReviews"`
	TenantReviews   []models.TenantReview   `json:"tenantReviews"`
}

// ReportedContent - контент с жалобами.
type ReportedContent struct {
	PropertyReviews []models.PropertyReview `json:"propertyReviews"`
	TenantReviews   []models.TenantReview   `json:"tenantReviews"`
}

// TrendingTopic - популярная тема для блока рекомендаций.
type TrendingTopic struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// RecommendationStats - сводная статистика сервиса.
type RecommendationStats struct {
	TotalReviews    int64   `json:"totalReviews"`
	TotalAddresses  int64   `json:"totalAddresses"`
	AverageRating   float64 `json:"averageRating"`
	MostPopularCity string  `json:"mostPopularCity"`
}

// UserPreferences - предпочтения пользователя, выведенные из его отзывов.
type UserPreferences struct {
	PreferredCity string `json:"preferredCity"`
	ReviewCount   int64  `json:"reviewCount"`
}

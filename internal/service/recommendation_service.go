package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/repository"
)

// Параметры подборки популярных тем.
const (
	trendingCitiesLimit = 5
	trendingRoomsLimit  = 3
	highRatedMin        = 4
	recentWindow        = 7 * 24 * time.Hour
)

// TrendingSource - агрегации по адресным отзывам.
type TrendingSource interface {
	TopCities(ctx context.Context, limit int64) ([]repository.CityCount, error)
	TopRoomCounts(ctx context.Context, limit int64) ([]repository.RoomsCount, error)
	CountHighRated(ctx context.Context, min int) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	TopCitiesByAuthor(ctx context.Context, author bson.ObjectID, limit int64) ([]repository.CityCount, error)
	CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error)
}

// AddressCounter - счётчик запомненных адресов.
type AddressCounter interface {
	Count(ctx context.Context) (int64, error)
}

// RecommendationService собирает популярные темы и сводную статистику
// для главной страницы.
type RecommendationService struct {
	properties TrendingSource
	addresses  AddressCounter
}

// NewRecommendationService создаёт сервис рекомендаций.
func NewRecommendationService(properties TrendingSource, addresses AddressCounter) *RecommendationService {
	return &RecommendationService{properties: properties, addresses: addresses}
}

// TrendingTopics возвращает темы: активные города, обсуждаемые планировки,
// счётчики высоких оценок и свежих отзывов.
func (s *RecommendationService) TrendingTopics(ctx context.Context) ([]dto.TrendingTopic, error) {
	topics := make([]dto.TrendingTopic, 0, trendingCitiesLimit+trendingRoomsLimit+2)

	cities, err := s.properties.TopCities(ctx, trendingCitiesLimit)
	if err != nil {
		return nil, err
	}
	for _, c := range cities {
		topics = append(topics, dto.TrendingTopic{
			Label: fmt.Sprintf("Отзывы о жилье: %s", c.City),
			Kind:  models.ReviewKindProperty,
			Count: int64(c.Count),
		})
	}

	rooms, err := s.properties.TopRoomCounts(ctx, trendingRoomsLimit)
	if err != nil {
		return nil, err
	}
	for _, r := range rooms {
		topics = append(topics, dto.TrendingTopic{
			Label: fmt.Sprintf("Квартиры: %d-комнатные", r.Rooms),
			Kind:  models.ReviewKindProperty,
			Count: int64(r.Count),
		})
	}

	highRated, err := s.properties.CountHighRated(ctx, highRatedMin)
	if err != nil {
		return nil, err
	}
	if highRated > 0 {
		topics = append(topics, dto.TrendingTopic{
			Label: "Жильё с высокими оценками",
			Kind:  models.ReviewKindProperty,
			Count: highRated,
		})
	}

	recent, err := s.properties.CountCreatedSince(ctx, time.Now().UTC().Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	if recent > 0 {
		topics = append(topics, dto.TrendingTopic{
			Label: "Новые отзывы за неделю",
			Kind:  models.ReviewKindProperty,
			Count: recent,
		})
	}

	return topics, nil
}

// Stats возвращает сводку сервиса: число отзывов и адресов, средняя
// оценка с точностью до десятых и самый обсуждаемый город.
func (s *RecommendationService) Stats(ctx context.Context) (*dto.RecommendationStats, error) {
	totalReviews, err := s.properties.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalAddresses, err := s.addresses.Count(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.properties.AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.RecommendationStats{
		TotalReviews:    totalReviews,
		TotalAddresses:  totalAddresses,
		AverageRating:   math.Round(avg*10) / 10,
		MostPopularCity: "Неизвестно",
	}
	cities, err := s.properties.TopCities(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(cities) > 0 {
		stats.MostPopularCity = cities[0].City
	}
	return stats, nil
}

// UserPreferences выводит предпочтения пользователя из его истории
// отзывов; без отзывов возвращает nil.
func (s *RecommendationService) UserPreferences(ctx context.Context, author bson.ObjectID) (*dto.UserPreferences, error) {
	count, err := s.properties.CountByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	cities, err := s.properties.TopCitiesByAuthor(ctx, author, 1)
	if err != nil {
		return nil, err
	}
	prefs := &dto.UserPreferences{ReviewCount: count}
	if len(cities) > 0 {
		prefs.PreferredCity = cities[0].City
	}
	return prefs, nil
}

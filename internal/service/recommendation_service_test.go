package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/repository"
)

type mockTrendingSource struct {
	mock.Mock
}

func (m *mockTrendingSource) TopCities(ctx context.Context, limit int64) ([]repository.CityCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.CityCount), args.Error(1)
}

func (m *mockTrendingSource) TopRoomCounts(ctx context.Context, limit int64) ([]repository.RoomsCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.RoomsCount), args.Error(1)
}

func (m *mockTrendingSource) CountHighRated(ctx context.Context, min int) (int64, error) {
	args := m.Called(ctx, min)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTrendingSource) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTrendingSource) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTrendingSource) AverageRating(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockTrendingSource) TopCitiesByAuthor(ctx context.Context, author bson.ObjectID, limit int64) ([]repository.CityCount, error) {
	args := m.Called(ctx, author, limit)
	return args.Get(0).([]repository.CityCount), args.Error(1)
}

func (m *mockTrendingSource) CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(int64), args.Error(1)
}

type mockAddressCounter struct {
	mock.Mock
}

func (m *mockAddressCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestRecommendationService_TrendingTopics(t *testing.T) {
	source := new(mockTrendingSource)
	svc := NewRecommendationService(source, new(mockAddressCounter))
	ctx := context.Background()

	source.On("TopCities", ctx, int64(trendingCitiesLimit)).Return([]repository.CityCount{
		{City: "Алматы", Count: 120},
		{City: "Астана", Count: 80},
	}, nil)
	source.On("TopRoomCounts", ctx, int64(trendingRoomsLimit)).Return([]repository.RoomsCount{
		{Rooms: 2, Count: 64},
	}, nil)
	source.On("CountHighRated", ctx, highRatedMin).Return(int64(30), nil)
	source.On("CountCreatedSince", ctx, mock.AnythingOfType("time.Time")).Return(int64(12), nil)

	topics, err := svc.TrendingTopics(ctx)

	assert.NoError(t, err)
	assert.Len(t, topics, 5)
	assert.Equal(t, "Отзывы о жилье: Алматы", topics[0].Label)
	assert.Equal(t, int64(120), topics[0].Count)
	assert.Equal(t, "Квартиры: 2-комнатные", topics[2].Label)
	assert.Equal(t, "Жильё с высокими оценками", topics[3].Label)
	assert.Equal(t, "Новые отзывы за неделю", topics[4].Label)
}

func TestRecommendationService_TrendingTopics_ZeroCountsHidden(t *testing.T) {
	source := new(mockTrendingSource)
	svc := NewRecommendationService(source, new(mockAddressCounter))
	ctx := context.Background()

	source.On("TopCities", ctx, int64(trendingCitiesLimit)).Return([]repository.CityCount{}, nil)
	source.On("TopRoomCounts", ctx, int64(trendingRoomsLimit)).Return([]repository.RoomsCount{}, nil)
	source.On("CountHighRated", ctx, highRatedMin).Return(int64(0), nil)
	source.On("CountCreatedSince", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	topics, err := svc.TrendingTopics(ctx)

	assert.NoError(t, err)
	assert.Empty(t, topics)
}

func TestRecommendationService_Stats(t *testing.T) {
	source := new(mockTrendingSource)
	addresses := new(mockAddressCounter)
	svc := NewRecommendationService(source, addresses)
	ctx := context.Background()

	source.On("CountAll", ctx).Return(int64(42), nil)
	addresses.On("Count", ctx).Return(int64(17), nil)
	source.On("AverageRating", ctx).Return(4.2666, nil)
	source.On("TopCities", ctx, int64(1)).Return([]repository.CityCount{
		{City: "Алматы", Count: 30},
	}, nil)

	stats, err := svc.Stats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalReviews)
	assert.Equal(t, int64(17), stats.TotalAddresses)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, "Алматы", stats.MostPopularCity)
}

func TestRecommendationService_Stats_EmptyCollection(t *testing.T) {
	source := new(mockTrendingSource)
	addresses := new(mockAddressCounter)
	svc := NewRecommendationService(source, addresses)
	ctx := context.Background()

	source.On("CountAll", ctx).Return(int64(0), nil)
	addresses.On("Count", ctx).Return(int64(0), nil)
	source.On("AverageRating", ctx).Return(0.0, nil)
	source.On("TopCities", ctx, int64(1)).Return([]repository.CityCount{}, nil)

	stats, err := svc.Stats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalReviews)
	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Equal(t, "Неизвестно", stats.MostPopularCity)
}

func TestRecommendationService_UserPreferences(t *testing.T) {
	source := new(mockTrendingSource)
	svc := NewRecommendationService(source, new(mockAddressCounter))
	ctx := context.Background()
	author := bson.NewObjectID()

	source.On("CountByAuthor", ctx, author).Return(int64(6), nil)
	source.On("TopCitiesByAuthor", ctx, author, int64(1)).Return([]repository.CityCount{
		{City: "Астана", Count: 4},
	}, nil)

	prefs, err := svc.UserPreferences(ctx, author)

	assert.NoError(t, err)
	assert.NotNil(t, prefs)
	assert.Equal(t, "Астана", prefs.PreferredCity)
	assert.Equal(t, int64(6), prefs.ReviewCount)
}

func TestRecommendationService_UserPreferences_NoReviews(t *testing.T) {
	source := new(mockTrendingSource)
	svc := NewRecommendationService(source, new(mockAddressCounter))
	ctx := context.Background()
	author := bson.NewObjectID()

	source.On("CountByAuthor", ctx, author).Return(int64(0), nil)

	prefs, err := svc.UserPreferences(ctx, author)

	assert.NoError(t, err)
	assert.Nil(t, prefs)
	source.AssertNotCalled(t, "TopCitiesByAuthor", mock.Anything, mock.Anything, mock.Anything)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/repository"
)

type mockPropertyStore struct {
	mock.Mock
}

func (m *mockPropertyStore) Create(ctx context.Context, review *models.PropertyReview) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockPropertyStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.PropertyReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyReview), args.Error(1)
}

func (m *mockPropertyStore) Search(ctx context.Context, f repository.PropertySearchFilter) ([]models.PropertyReview, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.PropertyReview), args.Get(1).(int64), args.Error(2)
}

func (m *mockPropertyStore) ListByAuthor(ctx context.Context, author bson.ObjectID) ([]models.PropertyReview, error) {
	args := m.Called(ctx, author)
	return args.Get(0).([]models.PropertyReview), args.Error(1)
}

func (m *mockPropertyStore) CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPropertyStore) AddComment(ctx context.Context, reviewID bson.ObjectID, c *models.Comment) error {
	args := m.Called(ctx, reviewID, c)
	return args.Error(0)
}

func (m *mockPropertyStore) IncrementReport(ctx context.Context, reviewID bson.ObjectID) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *mockPropertyStore) IncrementCommentReport(ctx context.Context, reviewID, commentID bson.ObjectID) error {
	args := m.Called(ctx, reviewID, commentID)
	return args.Error(0)
}

type mockTenantStore struct {
	mock.Mock
}

func (m *mockTenantStore) Create(ctx context.Context, review *models.TenantReview) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockTenantStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.TenantReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantReview), args.Error(1)
}

func (m *mockTenantStore) Search(ctx context.Context, f repository.TenantSearchFilter) ([]models.TenantReview, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.TenantReview), args.Get(1).(int64), args.Error(2)
}

func (m *mockTenantStore) ListByAuthor(ctx context.Context, author bson.ObjectID) ([]models.TenantReview, error) {
	args := m.Called(ctx, author)
	return args.Get(0).([]models.TenantReview), args.Error(1)
}

func (m *mockTenantStore) CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTenantStore) AddComment(ctx context.Context, reviewID bson.ObjectID, c *models.Comment) error {
	args := m.Called(ctx, reviewID, c)
	return args.Error(0)
}

func (m *mockTenantStore) IncrementReport(ctx context.Context, reviewID bson.ObjectID) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *mockTenantStore) IncrementCommentReport(ctx context.Context, reviewID, commentID bson.ObjectID) error {
	args := m.Called(ctx, reviewID, commentID)
	return args.Error(0)
}

type mockAddressRecorder struct {
	mock.Mock
}

func (m *mockAddressRecorder) RecordUsage(ctx context.Context, city, street, building, complexName string) error {
	args := m.Called(ctx, city, street, building, complexName)
	return args.Error(0)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserReader) GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.User), args.Error(1)
}

// chanMailer фиксирует фоновую отправку письма через канал.
type chanMailer struct {
	sent chan string
}

func newChanMailer() *chanMailer {
	return &chanMailer{sent: make(chan string, 1)}
}

func (m *chanMailer) SendCommentNotification(to, authorName, commenterName, commentText, reviewKind, reviewID string) error {
	m.sent <- to
	return nil
}

// passCensor возвращает текст без изменений.
type passCensor struct{}

func (passCensor) Censor(text string) string { return text }

func newReviewServiceForTest() (*ReviewService, *mockPropertyStore, *mockTenantStore, *mockAddressRecorder, *mockUserReader, *chanMailer) {
	properties := new(mockPropertyStore)
	tenants := new(mockTenantStore)
	addresses := new(mockAddressRecorder)
	users := new(mockUserReader)
	mailer := newChanMailer()
	svc := NewReviewService(properties, tenants, addresses, users, mailer, passCensor{})
	return svc, properties, tenants, addresses, users, mailer
}

func TestReviewService_SubmitPropertyReview_Success(t *testing.T) {
	svc, properties, _, addresses, _, _ := newReviewServiceForTest()
	ctx := context.Background()
	author := bson.NewObjectID()

	properties.On("Create", ctx, mock.AnythingOfType("*models.PropertyReview")).Return(nil)
	addresses.On("RecordUsage", ctx, "Алматы", "Абая", "10", "").Return(nil)

	parking := 2
	review, err := svc.SubmitPropertyReview(ctx, author, dto.CreatePropertyReviewRequest{
		City:     "Алматы",
		Street:   "Абая",
		Building: "10",
		Ratings: dto.RatingsRequest{
			Apartment: 4,
			Parking:   &parking,
		},
		ReviewText: "Хорошая квартира, но парковки вечно не хватает",
	})

	assert.NoError(t, err)
	assert.Equal(t, author, review.Author)
	assert.Equal(t, models.ReviewKindProperty, review.ReviewType)
	// Итоговая оценка выводится из критериев: среднее 4 и 2 = 3
	assert.Equal(t, 3, review.Rating)
	assert.False(t, review.IsApproved)
	properties.AssertExpectations(t)
	addresses.AssertExpectations(t)
}

func TestReviewService_SubmitPropertyReview_AddressFailureIgnored(t *testing.T) {
	svc, properties, _, addresses, _, _ := newReviewServiceForTest()
	ctx := context.Background()

	properties.On("Create", ctx, mock.AnythingOfType("*models.PropertyReview")).Return(nil)
	addresses.On("RecordUsage", ctx, "Алматы", "Абая", "10", "").Return(errors.New("база недоступна"))

	_, err := svc.SubmitPropertyReview(ctx, bson.NewObjectID(), dto.CreatePropertyReviewRequest{
		City:       "Алматы",
		Street:     "Абая",
		Building:   "10",
		Ratings:    dto.RatingsRequest{Apartment: 5},
		ReviewText: "Отличная квартира в центре города",
	})

	assert.NoError(t, err)
}

func TestReviewService_SubmitPropertyReview_LandlordNameRequired(t *testing.T) {
	svc, properties, _, _, _, _ := newReviewServiceForTest()

	_, err := svc.SubmitPropertyReview(context.Background(), bson.NewObjectID(), dto.CreatePropertyReviewRequest{
		ReviewType: models.ReviewKindLandlord,
		City:       "Алматы",
		Street:     "Абая",
		Building:   "10",
		Ratings:    dto.RatingsRequest{Apartment: 5},
		ReviewText: "Арендодатель вернул депозит без проблем",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "имя арендодателя")
	properties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitPropertyReview_InvalidKind(t *testing.T) {
	svc, properties, _, _, _, _ := newReviewServiceForTest()

	_, err := svc.SubmitPropertyReview(context.Background(), bson.NewObjectID(), dto.CreatePropertyReviewRequest{
		ReviewType: "garage",
		City:       "Алматы",
		Street:     "Абая",
		Building:   "10",
		Ratings:    dto.RatingsRequest{Apartment: 5},
		ReviewText: "Текст достаточной длины для отзыва",
	})

	assert.Error(t, err)
	properties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitPropertyReview_RoomsRange(t *testing.T) {
	svc, properties, _, _, _, _ := newReviewServiceForTest()

	_, err := svc.SubmitPropertyReview(context.Background(), bson.NewObjectID(), dto.CreatePropertyReviewRequest{
		City:          "Алматы",
		Street:        "Абая",
		Building:      "10",
		NumberOfRooms: 15,
		Ratings:       dto.RatingsRequest{Apartment: 5},
		ReviewText:    "Текст достаточной длины для отзыва",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "число комнат")
	properties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitPropertyReview_TextValidatedAfterSanitize(t *testing.T) {
	svc, properties, _, _, _, _ := newReviewServiceForTest()

	// После очистки от угловых скобок остаётся пустая строка:
	// длина проверяется по тому, что реально будет сохранено.
	_, err := svc.SubmitPropertyReview(context.Background(), bson.NewObjectID(), dto.CreatePropertyReviewRequest{
		City:       "Алматы",
		Street:     "Абая",
		Building:   "10",
		Ratings:    dto.RatingsRequest{Apartment: 5},
		ReviewText: "<<<<<<<<<<>>>>>>>>>>",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reviewText")
	properties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitPropertyReview_FloorAndPeriodStored(t *testing.T) {
	svc, properties, _, addresses, _, _ := newReviewServiceForTest()
	ctx := context.Background()

	properties.On("Create", ctx, mock.AnythingOfType("*models.PropertyReview")).Return(nil)
	addresses.On("RecordUsage", ctx, "Алматы", "Абая", "10", "").Return(nil)

	floor := 7
	review, err := svc.SubmitPropertyReview(ctx, bson.NewObjectID(), dto.CreatePropertyReviewRequest{
		City:          "Алматы",
		Street:        "Абая",
		Building:      "10",
		Floor:         &floor,
		NumberOfRooms: 2,
		RentalPeriod: &dto.RentalPeriodRequest{
			From: dto.YearMonthRequest{Month: 2, Year: 2024},
			To:   dto.YearMonthRequest{Month: 8, Year: 2025},
		},
		Ratings:    dto.RatingsRequest{Apartment: 4},
		ReviewText: "Жили полтора года, дом тёплый и тихий",
	})

	assert.NoError(t, err)
	assert.Equal(t, 7, *review.Floor)
	assert.Equal(t, 2, review.NumberOfRooms)
	assert.Equal(t, models.YearMonth{Month: 2, Year: 2024}, review.RentalPeriod.From)
	assert.Equal(t, models.YearMonth{Month: 8, Year: 2025}, review.RentalPeriod.To)
}

func TestReviewService_SubmitPropertyReview_BadPeriodRejected(t *testing.T) {
	svc, properties, _, _, _, _ := newReviewServiceForTest()

	_, err := svc.SubmitPropertyReview(context.Background(), bson.NewObjectID(), dto.CreatePropertyReviewRequest{
		City:     "Алматы",
		Street:   "Абая",
		Building: "10",
		RentalPeriod: &dto.RentalPeriodRequest{
			From: dto.YearMonthRequest{Month: 1, Year: 1825},
			To:   dto.YearMonthRequest{Month: 1, Year: 2025},
		},
		Ratings:    dto.RatingsRequest{Apartment: 4},
		ReviewText: "Текст достаточной длины для отзыва",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "год начала аренды")
	properties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitTenantReview_Success(t *testing.T) {
	svc, _, tenants, _, _, _ := newReviewServiceForTest()
	ctx := context.Background()

	tenants.On("Create", ctx, mock.AnythingOfType("*models.TenantReview")).Return(nil)

	rating := 5
	review, err := svc.SubmitTenantReview(ctx, bson.NewObjectID(), dto.CreateTenantReviewRequest{
		TenantFullName:      "Петров Пётр Петрович",
		TenantIDLastFour:    "1234",
		TenantPhoneLastFour: "5678",
		RentalPeriod: dto.RentalPeriodRequest{
			From: dto.YearMonthRequest{Month: 1, Year: 2024},
			To:   dto.YearMonthRequest{Month: 1, Year: 2025},
		},
		Rating:     &rating,
		ReviewText: "Платил вовремя, квартиру сдал в идеальном состоянии",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Петров Пётр Петрович", review.TenantFullName)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, models.YearMonth{Month: 1, Year: 2024}, review.RentalPeriod.From)
	assert.False(t, review.IsApproved)
}

func TestReviewService_SubmitTenantReview_IdentityFragmentsRequired(t *testing.T) {
	svc, _, tenants, _, _, _ := newReviewServiceForTest()

	// Без последних цифр документа и телефона арендатора не найти
	// при повторном поиске, поэтому оба фрагмента обязательны.
	_, err := svc.SubmitTenantReview(context.Background(), bson.NewObjectID(), dto.CreateTenantReviewRequest{
		TenantFullName: "Петров Пётр Петрович",
		RentalPeriod: dto.RentalPeriodRequest{
			From: dto.YearMonthRequest{Month: 1, Year: 2024},
			To:   dto.YearMonthRequest{Month: 6, Year: 2024},
		},
		ReviewText: "Платил вовремя, претензий к арендатору нет",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "последние цифры документа")
	assert.Contains(t, err.Error(), "последние цифры телефона")
	tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitTenantReview_RatingOptional(t *testing.T) {
	svc, _, tenants, _, _, _ := newReviewServiceForTest()
	ctx := context.Background()

	tenants.On("Create", ctx, mock.AnythingOfType("*models.TenantReview")).Return(nil)

	review, err := svc.SubmitTenantReview(ctx, bson.NewObjectID(), dto.CreateTenantReviewRequest{
		TenantFullName:      "Петров Пётр Петрович",
		TenantIDLastFour:    "1234",
		TenantPhoneLastFour: "5678",
		RentalPeriod: dto.RentalPeriodRequest{
			From: dto.YearMonthRequest{Month: 3, Year: 2024},
			To:   dto.YearMonthRequest{Month: 9, Year: 2024},
		},
		ReviewText: "Отзыв без оценки, только текстом",
	})

	assert.NoError(t, err)
	assert.Zero(t, review.Rating)
}

func TestReviewService_SubmitTenantReview_PeriodOrder(t *testing.T) {
	svc, _, tenants, _, _, _ := newReviewServiceForTest()

	rating := 4
	_, err := svc.SubmitTenantReview(context.Background(), bson.NewObjectID(), dto.CreateTenantReviewRequest{
		TenantFullName:      "Петров Пётр",
		TenantIDLastFour:    "1234",
		TenantPhoneLastFour: "5678",
		RentalPeriod: dto.RentalPeriodRequest{
			From: dto.YearMonthRequest{Month: 6, Year: 2025},
			To:   dto.YearMonthRequest{Month: 3, Year: 2025},
		},
		Rating:     &rating,
		ReviewText: "Текст достаточной длины для отзыва",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "раньше начала")
	tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SubmitTenantReview_BadPeriodMonth(t *testing.T) {
	svc, _, tenants, _, _, _ := newReviewServiceForTest()

	_, err := svc.SubmitTenantReview(context.Background(), bson.NewObjectID(), dto.CreateTenantReviewRequest{
		TenantFullName:      "Петров Пётр",
		TenantIDLastFour:    "1234",
		TenantPhoneLastFour: "5678",
		RentalPeriod: dto.RentalPeriodRequest{
			From: dto.YearMonthRequest{Month: 13, Year: 2024},
			To:   dto.YearMonthRequest{Month: 1, Year: 2025},
		},
		ReviewText: "Текст достаточной длины для отзыва",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "месяц начала аренды")
	tenants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_SearchPropertyReviews_HidesReportedComments(t *testing.T) {
	svc, properties, _, _, users, _ := newReviewServiceForTest()
	ctx := context.Background()
	author := bson.NewObjectID()
	commenter := bson.NewObjectID()

	stored := []models.PropertyReview{{
		ID:     bson.NewObjectID(),
		Author: author,
		City:   "Алматы",
		Comments: []models.Comment{
			{ID: bson.NewObjectID(), Author: commenter, Text: "нормальный"},
			{ID: bson.NewObjectID(), Author: commenter, Text: "скрытый", IsReported: true},
		},
	}}

	properties.On("Search", ctx, repository.PropertySearchFilter{
		Address:      repository.AddressFilter{City: "Алматы"},
		Kind:         models.ReviewKindProperty,
		ApprovedOnly: true,
		Page:         1,
		Limit:        10,
	}).Return(stored, int64(1), nil)
	users.On("GetManyByIDs", ctx, mock.Anything).Return([]models.User{
		{ID: author, FirstName: "Иван", LastName: "Иванов"},
		{ID: commenter, FirstName: "Анна", LastName: "Петрова"},
	}, nil)

	list, err := svc.SearchPropertyReviews(ctx, dto.PropertySearchQuery{City: "Алматы"})

	assert.NoError(t, err)
	assert.Len(t, list.Reviews, 1)
	assert.Len(t, list.Reviews[0].Comments, 1)
	assert.Equal(t, "нормальный", list.Reviews[0].Comments[0].Text)
	assert.Equal(t, "Иван Иванов", list.Reviews[0].AuthorName)
	assert.Equal(t, "Анна Петрова", list.Reviews[0].Comments[0].AuthorName)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestReviewService_SearchTenantReviews_AttachesAuthorName(t *testing.T) {
	svc, _, tenants, _, users, _ := newReviewServiceForTest()
	ctx := context.Background()
	author := bson.NewObjectID()

	tenants.On("Search", ctx, mock.AnythingOfType("repository.TenantSearchFilter")).
		Return([]models.TenantReview{{
			ID:             bson.NewObjectID(),
			Author:         author,
			TenantFullName: "Петров Пётр",
		}}, int64(1), nil)
	users.On("GetManyByIDs", ctx, mock.Anything).Return([]models.User{
		{ID: author, FirstName: "Олег", LastName: "Смирнов"},
	}, nil)

	list, err := svc.SearchTenantReviews(ctx, dto.TenantSearchQuery{TenantFullName: "Петров"})

	assert.NoError(t, err)
	assert.Len(t, list.Reviews, 1)
	assert.Equal(t, "Олег Смирнов", list.Reviews[0].AuthorName)
}

func TestReviewService_AddPropertyComment_NotifiesAuthor(t *testing.T) {
	svc, properties, _, _, users, mailer := newReviewServiceForTest()
	ctx := context.Background()
	reviewID := bson.NewObjectID()
	author := bson.NewObjectID()
	commenter := bson.NewObjectID()

	properties.On("GetByID", ctx, reviewID).Return(&models.PropertyReview{ID: reviewID, Author: author}, nil)
	properties.On("AddComment", ctx, reviewID, mock.AnythingOfType("*models.Comment")).Return(nil)
	users.On("GetByID", ctx, author).Return(&models.User{
		ID:                 author,
		Email:              "author@example.com",
		FirstName:          "Иван",
		EmailNotifications: true,
	}, nil)
	users.On("GetByID", ctx, commenter).Return(&models.User{
		ID:        commenter,
		FirstName: "Анна",
		LastName:  "Петрова",
	}, nil)

	comment, err := svc.AddPropertyComment(ctx, reviewID, commenter, "Согласен с отзывом")

	assert.NoError(t, err)
	assert.Equal(t, "Согласен с отзывом", comment.Text)
	assert.False(t, comment.ID.IsZero())

	select {
	case to := <-mailer.sent:
		assert.Equal(t, "author@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("уведомление автору так и не ушло")
	}
}

func TestReviewService_AddPropertyComment_SelfCommentNoNotification(t *testing.T) {
	svc, properties, _, _, users, mailer := newReviewServiceForTest()
	ctx := context.Background()
	reviewID := bson.NewObjectID()
	author := bson.NewObjectID()

	properties.On("GetByID", ctx, reviewID).Return(&models.PropertyReview{ID: reviewID, Author: author}, nil)
	properties.On("AddComment", ctx, reviewID, mock.AnythingOfType("*models.Comment")).Return(nil)

	_, err := svc.AddPropertyComment(ctx, reviewID, author, "Дополню свой же отзыв")

	assert.NoError(t, err)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	select {
	case <-mailer.sent:
		t.Fatal("автор не должен получать письмо о собственном комментарии")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReviewService_AddPropertyComment_OptedOutNoNotification(t *testing.T) {
	svc, properties, _, _, users, mailer := newReviewServiceForTest()
	ctx := context.Background()
	reviewID := bson.NewObjectID()
	author := bson.NewObjectID()
	commenter := bson.NewObjectID()

	properties.On("GetByID", ctx, reviewID).Return(&models.PropertyReview{ID: reviewID, Author: author}, nil)
	properties.On("AddComment", ctx, reviewID, mock.AnythingOfType("*models.Comment")).Return(nil)
	users.On("GetByID", ctx, author).Return(&models.User{
		ID:                 author,
		Email:              "author@example.com",
		EmailNotifications: false,
	}, nil)

	_, err := svc.AddPropertyComment(ctx, reviewID, commenter, "Комментарий без письма")

	assert.NoError(t, err)
	users.AssertNotCalled(t, "GetByID", ctx, commenter)
	select {
	case <-mailer.sent:
		t.Fatal("отписавшийся автор не должен получать письма")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReviewService_AddPropertyComment_ReviewNotFound(t *testing.T) {
	svc, properties, _, _, _, _ := newReviewServiceForTest()
	ctx := context.Background()
	reviewID := bson.NewObjectID()

	properties.On("GetByID", ctx, reviewID).Return(nil, repository.ErrReviewNotFound)

	_, err := svc.AddPropertyComment(ctx, reviewID, bson.NewObjectID(), "Комментарий")
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
	properties.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_ReportDelegation(t *testing.T) {
	svc, properties, tenants, _, _, _ := newReviewServiceForTest()
	ctx := context.Background()
	reviewID := bson.NewObjectID()
	commentID := bson.NewObjectID()

	properties.On("IncrementReport", ctx, reviewID).Return(nil)
	properties.On("IncrementCommentReport", ctx, reviewID, commentID).Return(nil)
	tenants.On("IncrementReport", ctx, reviewID).Return(nil)

	assert.NoError(t, svc.ReportPropertyReview(ctx, reviewID))
	assert.NoError(t, svc.ReportPropertyComment(ctx, reviewID, commentID))
	assert.NoError(t, svc.ReportTenantReview(ctx, reviewID))
	properties.AssertExpectations(t)
	tenants.AssertExpectations(t)
}

func TestReviewService_Dashboard(t *testing.T) {
	svc, properties, tenants, _, _, _ := newReviewServiceForTest()
	ctx := context.Background()
	author := bson.NewObjectID()

	properties.On("CountByAuthor", ctx, author).Return(int64(3), nil)
	tenants.On("CountByAuthor", ctx, author).Return(int64(2), nil)

	dashboard, err := svc.Dashboard(ctx, author)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), dashboard.PropertyReviewCount)
	assert.Equal(t, int64(2), dashboard.TenantReviewCount)
	assert.Equal(t, int64(5), dashboard.TotalReviews)
}

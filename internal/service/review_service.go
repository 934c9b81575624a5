package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/goroutine"
	"github.com/prokvartiru/review-backend/internal/logger"
	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/repository"
	"github.com/prokvartiru/review-backend/internal/validation"
)

// Пагинация по умолчанию.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// PropertyReviewStore описывает зависимости сервиса от хранилища адресных отзывов.
type PropertyReviewStore interface {
	Create(ctx context.Context, review *models.PropertyReview) error
	GetByID(ctx context.Context, id bson.ObjectID) (*models.PropertyReview, error)
	Search(ctx context.Context, f repository.PropertySearchFilter) ([]models.PropertyReview, int64, error)
	ListByAuthor(ctx context.Context, author bson.ObjectID) ([]models.PropertyReview, error)
	CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error)
	AddComment(ctx context.Context, reviewID bson.ObjectID, c *models.Comment) error
	IncrementReport(ctx context.Context, reviewID bson.ObjectID) error
	IncrementCommentReport(ctx context.Context, reviewID, commentID bson.ObjectID) error
}

// TenantReviewStore описывает зависимости сервиса от хранилища отзывов об арендаторах.
type TenantReviewStore interface {
	Create(ctx context.Context, review *models.TenantReview) error
	GetByID(ctx context.Context, id bson.ObjectID) (*models.TenantReview, error)
	Search(ctx context.Context, f repository.TenantSearchFilter) ([]models.TenantReview, int64, error)
	ListByAuthor(ctx context.Context, author bson.ObjectID) ([]models.TenantReview, error)
	CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error)
	AddComment(ctx context.Context, reviewID bson.ObjectID, c *models.Comment) error
	IncrementReport(ctx context.Context, reviewID bson.ObjectID) error
	IncrementCommentReport(ctx context.Context, reviewID, commentID bson.ObjectID) error
}

// AddressRecorder фиксирует использование адреса.
type AddressRecorder interface {
	RecordUsage(ctx context.Context, city, street, building, complexName string) error
}

// UserReader возвращает пользователей для подстановки имён и уведомлений.
type UserReader interface {
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
}

// CommentMailer уведомляет автора отзыва о новом комментарии.
type CommentMailer interface {
	SendCommentNotification(to, authorName, commenterName, commentText, reviewKind, reviewID string) error
}

// Censor цензурирует пользовательские тексты.
type Censor interface {
	Censor(text string) string
}

// ReviewService - подача отзывов, комментарии, жалобы и публичный поиск.
type ReviewService struct {
	properties PropertyReviewStore
	tenants    TenantReviewStore
	addresses  AddressRecorder
	users      UserReader
	mailer     CommentMailer
	censor     Censor
}

// NewReviewService создаёт сервис отзывов.
func NewReviewService(
	properties PropertyReviewStore,
	tenants TenantReviewStore,
	addresses AddressRecorder,
	users UserReader,
	mailer CommentMailer,
	censor Censor,
) *ReviewService {
	return &ReviewService{
		properties: properties,
		tenants:    tenants,
		addresses:  addresses,
		users:      users,
		mailer:     mailer,
		censor:     censor,
	}
}

// SubmitPropertyReview валидирует и сохраняет отзыв о жилье, ЖК или
// арендодателе. Отзыв попадает на премодерацию; использование адреса
// запоминается по возможности и не влияет на результат.
func (s *ReviewService) SubmitPropertyReview(ctx context.Context, author bson.ObjectID, req dto.CreatePropertyReviewRequest) (*models.PropertyReview, error) {
	kind := strings.TrimSpace(req.ReviewType)
	if kind == "" {
		kind = models.ReviewKindProperty
	}

	// Очистка всегда предшествует валидации: проверяется то,
	// что будет сохранено.
	city := validation.Sanitize(req.City)
	street := validation.Sanitize(req.Street)
	building := validation.Sanitize(req.Building)
	apartment := validation.Sanitize(req.Apartment)
	complexName := validation.Sanitize(req.ResidentialComplex)
	landlordName := validation.Sanitize(req.LandlordName)
	reviewText := validation.Sanitize(req.ReviewText)

	var verrs validation.Errors
	if !models.ValidAddressReviewKind(kind) {
		verrs.AddMessage("reviewType", "недопустимый тип отзыва")
	}
	verrs.Add("city", validation.ValidateCity(city))
	verrs.Add("street", validation.ValidateStreet(street))
	verrs.Add("building", validation.ValidateBuilding(building))
	verrs.Add("floor", validation.ValidateFloor(req.Floor))
	verrs.Add("apartment", validation.ValidateApartment(apartment))
	if kind == models.ReviewKindLandlord {
		verrs.Add("landlordName", validation.ValidateFullName("имя арендодателя", landlordName))
	}
	verrs.Add("numberOfRooms", validation.ValidateRooms(req.NumberOfRooms))
	if req.RentalPeriod != nil {
		validateRentalPeriod(&verrs, *req.RentalPeriod)
	}
	verrs.Add("ratings.apartment", validation.ValidateRating("оценка квартиры", req.Ratings.Apartment))
	verrs.Add("ratings.residentialComplex", validation.ValidateOptionalRating("оценка ЖК", req.Ratings.ResidentialComplex))
	verrs.Add("ratings.courtyard", validation.ValidateOptionalRating("оценка двора", req.Ratings.Courtyard))
	verrs.Add("ratings.parking", validation.ValidateOptionalRating("оценка парковки", req.Ratings.Parking))
	verrs.Add("ratings.infrastructure", validation.ValidateOptionalRating("оценка инфраструктуры", req.Ratings.Infrastructure))
	verrs.Add("reviewText", validation.ValidateReviewText(reviewText))
	if verrs.Any() {
		return nil, verrs
	}

	ratings := models.Ratings{
		Apartment:          req.Ratings.Apartment,
		ResidentialComplex: req.Ratings.ResidentialComplex,
		Courtyard:          req.Ratings.Courtyard,
		Parking:            req.Ratings.Parking,
		Infrastructure:     req.Ratings.Infrastructure,
	}

	review := &models.PropertyReview{
		Author:             author,
		ReviewType:         kind,
		City:               city,
		Street:             street,
		Building:           building,
		Floor:              req.Floor,
		Apartment:          apartment,
		ResidentialComplex: complexName,
		NumberOfRooms:      req.NumberOfRooms,
		RentalPeriod:       rentalPeriodOf(req.RentalPeriod),
		LandlordName:       s.censor.Censor(landlordName),
		Ratings:            ratings,
		Rating:             ratings.Overall(),
		ReviewText:         s.censor.Censor(reviewText),
	}

	if err := s.properties.Create(ctx, review); err != nil {
		return nil, err
	}

	if review.City != "" && review.Street != "" && review.Building != "" {
		if err := s.addresses.RecordUsage(ctx, review.City, review.Street, review.Building, review.ResidentialComplex); err != nil {
			logger.Log.WithField("review_id", review.ID.Hex()).Warnf("review service: не удалось запомнить адрес: %v", err)
		}
	}

	return review, nil
}

// SubmitTenantReview валидирует и сохраняет отзыв об арендаторе.
// Оба идентифицирующих фрагмента обязательны: арендатор без документа
// и телефона не опознаваем при повторном поиске.
func (s *ReviewService) SubmitTenantReview(ctx context.Context, author bson.ObjectID, req dto.CreateTenantReviewRequest) (*models.TenantReview, error) {
	fullName := validation.Sanitize(req.TenantFullName)
	reviewText := validation.Sanitize(req.ReviewText)

	var verrs validation.Errors
	verrs.Add("tenantFullName", validation.ValidateFullName("ФИО арендатора", fullName))
	verrs.Add("tenantIdLastFour", validation.ValidateLastFour("последние цифры документа", req.TenantIDLastFour))
	verrs.Add("tenantPhoneLastFour", validation.ValidateLastFour("последние цифры телефона", req.TenantPhoneLastFour))
	validateRentalPeriod(&verrs, req.RentalPeriod)
	verrs.Add("rating", validation.ValidateOptionalRating("оценка", req.Rating))
	verrs.Add("reviewText", validation.ValidateReviewText(reviewText))
	if verrs.Any() {
		return nil, verrs
	}

	review := &models.TenantReview{
		Author:              author,
		TenantFullName:      s.censor.Censor(fullName),
		TenantIDLastFour:    strings.TrimSpace(req.TenantIDLastFour),
		TenantPhoneLastFour: strings.TrimSpace(req.TenantPhoneLastFour),
		RentalPeriod: models.RentalPeriod{
			From: models.YearMonth{Month: req.RentalPeriod.From.Month, Year: req.RentalPeriod.From.Year},
			To:   models.YearMonth{Month: req.RentalPeriod.To.Month, Year: req.RentalPeriod.To.Year},
		},
		ReviewText: s.censor.Censor(reviewText),
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if err := s.tenants.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// validateRentalPeriod проверяет границы периода аренды и их порядок.
func validateRentalPeriod(verrs *validation.Errors, p dto.RentalPeriodRequest) {
	fromMonth := validation.ValidateMonth("месяц начала аренды", p.From.Month)
	fromYear := validation.ValidateYear("год начала аренды", p.From.Year)
	toMonth := validation.ValidateMonth("месяц окончания аренды", p.To.Month)
	toYear := validation.ValidateYear("год окончания аренды", p.To.Year)
	verrs.Add("rentalPeriod.from.month", fromMonth)
	verrs.Add("rentalPeriod.from.year", fromYear)
	verrs.Add("rentalPeriod.to.month", toMonth)
	verrs.Add("rentalPeriod.to.year", toYear)
	if fromMonth != nil || fromYear != nil || toMonth != nil || toYear != nil {
		return
	}
	to := models.YearMonth{Month: p.To.Month, Year: p.To.Year}
	from := models.YearMonth{Month: p.From.Month, Year: p.From.Year}
	if to.Before(from) {
		verrs.AddMessage("rentalPeriod", "окончание аренды не может быть раньше начала")
	}
}

// rentalPeriodOf переводит необязательный период запроса в модель.
func rentalPeriodOf(p *dto.RentalPeriodRequest) *models.RentalPeriod {
	if p == nil {
		return nil
	}
	return &models.RentalPeriod{
		From: models.YearMonth{Month: p.From.Month, Year: p.From.Year},
		To:   models.YearMonth{Month: p.To.Month, Year: p.To.Year},
	}
}

// SearchPropertyReviews возвращает страницу одобренных отзывов о квартирах.
func (s *ReviewService) SearchPropertyReviews(ctx context.Context, q dto.PropertySearchQuery) (*dto.PropertyReviewList, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	reviews, total, err := s.properties.Search(ctx, repository.PropertySearchFilter{
		Address: repository.AddressFilter{
			City:     strings.TrimSpace(q.City),
			Street:   strings.TrimSpace(q.Street),
			Building: strings.TrimSpace(q.Building),
		},
		Rooms:        q.Rooms,
		Kind:         models.ReviewKindProperty,
		ApprovedOnly: true,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	s.filterVisibleComments(reviews)
	if err := s.attachPropertyAuthors(ctx, reviews); err != nil {
		logger.Log.Warnf("review service: не удалось подставить имена авторов: %v", err)
	}
	return &dto.PropertyReviewList{
		Reviews:    reviews,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// SearchTenantReviews возвращает страницу одобренных отзывов об арендаторах.
func (s *ReviewService) SearchTenantReviews(ctx context.Context, q dto.TenantSearchQuery) (*dto.TenantReviewList, error) {
	var verrs validation.Errors
	verrs.Add("tenantFullName", validation.ValidateSearchQuery(q.TenantFullName))
	verrs.Add("idLastFour", validation.ValidateOptionalLastFour("последние цифры документа", q.IDLastFour))
	verrs.Add("phoneLastFour", validation.ValidateOptionalLastFour("последние цифры телефона", q.PhoneLastFour))
	if verrs.Any() {
		return nil, verrs
	}

	page, limit := normalizePage(q.Page, q.Limit)
	reviews, total, err := s.tenants.Search(ctx, repository.TenantSearchFilter{
		Name:          strings.TrimSpace(q.TenantFullName),
		IDLastFour:    strings.TrimSpace(q.IDLastFour),
		PhoneLastFour: strings.TrimSpace(q.PhoneLastFour),
		ApprovedOnly:  true,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	s.filterVisibleTenantComments(reviews)
	if err := s.attachTenantAuthors(ctx, reviews); err != nil {
		logger.Log.Warnf("review service: не удалось подставить имена авторов: %v", err)
	}
	return &dto.TenantReviewList{
		Reviews:    reviews,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// AddPropertyComment добавляет комментарий к адресному отзыву
// и уведомляет его автора.
func (s *ReviewService) AddPropertyComment(ctx context.Context, reviewID, commenter bson.ObjectID, text string) (*models.Comment, error) {
	review, err := s.properties.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := s.newComment(commenter, text)
	if err != nil {
		return nil, err
	}
	if err := s.properties.AddComment(ctx, reviewID, comment); err != nil {
		return nil, err
	}

	s.notifyReviewAuthor(ctx, review.Author, commenter, comment.Text, "property", reviewID)
	return comment, nil
}

// AddTenantComment добавляет комментарий к отзыву об арендаторе.
func (s *ReviewService) AddTenantComment(ctx context.Context, reviewID, commenter bson.ObjectID, text string) (*models.Comment, error) {
	review, err := s.tenants.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := s.newComment(commenter, text)
	if err != nil {
		return nil, err
	}
	if err := s.tenants.AddComment(ctx, reviewID, comment); err != nil {
		return nil, err
	}

	s.notifyReviewAuthor(ctx, review.Author, commenter, comment.Text, "tenant", reviewID)
	return comment, nil
}

// ReportPropertyReview регистрирует жалобу на адресный отзыв.
func (s *ReviewService) ReportPropertyReview(ctx context.Context, reviewID bson.ObjectID) error {
	return s.properties.IncrementReport(ctx, reviewID)
}

// ReportTenantReview регистрирует жалобу на отзыв об арендаторе.
func (s *ReviewService) ReportTenantReview(ctx context.Context, reviewID bson.ObjectID) error {
	return s.tenants.IncrementReport(ctx, reviewID)
}

// ReportPropertyComment регистрирует жалобу на комментарий адресного отзыва.
func (s *ReviewService) ReportPropertyComment(ctx context.Context, reviewID, commentID bson.ObjectID) error {
	return s.properties.IncrementCommentReport(ctx, reviewID, commentID)
}

// ReportTenantComment регистрирует жалобу на комментарий отзыва об арендаторе.
func (s *ReviewService) ReportTenantComment(ctx context.Context, reviewID, commentID bson.ObjectID) error {
	return s.tenants.IncrementCommentReport(ctx, reviewID, commentID)
}

// MyReviews возвращает собственные отзывы пользователя, включая неопубликованные.
func (s *ReviewService) MyReviews(ctx context.Context, author bson.ObjectID) (*dto.MyReviews, error) {
	props, err := s.properties.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenants.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return &dto.MyReviews{PropertyReviews: props, TenantReviews: tenants}, nil
}

// Dashboard возвращает счётчики личного кабинета.
func (s *ReviewService) Dashboard(ctx context.Context, author bson.ObjectID) (*dto.Dashboard, error) {
	propCount, err := s.properties.CountByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	tenantCount, err := s.tenants.CountByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return &dto.Dashboard{
		PropertyReviewCount: propCount,
		TenantReviewCount:   tenantCount,
		TotalReviews:        propCount + tenantCount,
	}, nil
}

// newComment очищает и валидирует текст, собирает встроенный комментарий.
func (s *ReviewService) newComment(author bson.ObjectID, text string) (*models.Comment, error) {
	text = validation.Sanitize(text)

	var verrs validation.Errors
	verrs.Add("text", validation.ValidateCommentText(text))
	if verrs.Any() {
		return nil, verrs
	}
	return &models.Comment{
		ID:        bson.NewObjectID(),
		Author:    author,
		Text:      s.censor.Censor(text),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// notifyReviewAuthor отправляет письмо автору отзыва в фоне.
// Автору собственного комментария и отписавшимся письма не отправляются,
// сбои отправки никогда не влияют на основной запрос.
func (s *ReviewService) notifyReviewAuthor(ctx context.Context, reviewAuthor, commenter bson.ObjectID, text, kindSegment string, reviewID bson.ObjectID) {
	if reviewAuthor == commenter {
		return
	}

	author, err := s.users.GetByID(ctx, reviewAuthor)
	if err != nil {
		logger.Log.Warnf("review service: автор отзыва не найден для уведомления: %v", err)
		return
	}
	if !author.EmailNotifications {
		return
	}
	commentAuthor, err := s.users.GetByID(ctx, commenter)
	if err != nil {
		logger.Log.Warnf("review service: комментатор не найден для уведомления: %v", err)
		return
	}

	to, authorName, commenterName := author.Email, author.FirstName, commentAuthor.FullName()
	id := reviewID.Hex()
	goroutine.SafeGo(func() {
		if err := s.mailer.SendCommentNotification(to, authorName, commenterName, text, kindSegment, id); err != nil {
			logger.Log.WithField("review_id", id).Warnf("review service: не удалось отправить уведомление: %v", err)
		}
	})
}

// filterVisibleComments скрывает немодерированные и зарепорченные комментарии.
func (s *ReviewService) filterVisibleComments(reviews []models.PropertyReview) {
	for i := range reviews {
		reviews[i].Comments = visibleComments(reviews[i].Comments)
	}
}

func (s *ReviewService) filterVisibleTenantComments(reviews []models.TenantReview) {
	for i := range reviews {
		reviews[i].Comments = visibleComments(reviews[i].Comments)
	}
}

func visibleComments(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if !c.IsReported {
			out = append(out, c)
		}
	}
	return out
}

// attachPropertyAuthors подставляет имена авторов отзывов и комментариев.
func (s *ReviewService) attachPropertyAuthors(ctx context.Context, reviews []models.PropertyReview) error {
	ids := make([]bson.ObjectID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.Author)
		for _, c := range r.Comments {
			ids = append(ids, c.Author)
		}
	}
	names, err := s.authorNames(ctx, ids)
	if err != nil {
		return err
	}
	for i := range reviews {
		reviews[i].AuthorName = names[reviews[i].Author]
		for j := range reviews[i].Comments {
			reviews[i].Comments[j].AuthorName = names[reviews[i].Comments[j].Author]
		}
	}
	return nil
}

// attachTenantAuthors подставляет имена авторов отзывов об арендаторах.
func (s *ReviewService) attachTenantAuthors(ctx context.Context, reviews []models.TenantReview) error {
	ids := make([]bson.ObjectID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.Author)
		for _, c := range r.Comments {
			ids = append(ids, c.Author)
		}
	}
	names, err := s.authorNames(ctx, ids)
	if err != nil {
		return err
	}
	for i := range reviews {
		reviews[i].AuthorName = names[reviews[i].Author]
		for j := range reviews[i].Comments {
			reviews[i].Comments[j].AuthorName = names[reviews[i].Comments[j].Author]
		}
	}
	return nil
}

// authorNames возвращает отображаемые имена пользователей одним запросом.
func (s *ReviewService) authorNames(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]string, error) {
	seen := make(map[bson.ObjectID]struct{}, len(ids))
	unique := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.users.GetManyByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	names := make(map[bson.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName()
	}
	return names, nil
}

// normalizePage приводит пагинацию к допустимым значениям.
func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/prokvartiru/review-backend/internal/db"
	"github.com/prokvartiru/review-backend/internal/models"
)

// AddressFilter - подстрочный фильтр по частям адреса.
type AddressFilter struct {
	City     string
	Street   string
	Building string
}

// Empty сообщает, задан ли хотя бы один компонент адреса.
func (f AddressFilter) Empty() bool {
	return f.City == "" && f.Street == "" && f.Building == ""
}

func (f AddressFilter) toBSON() bson.D {
	filter := bson.D{}
	if f.City != "" {
		filter = append(filter, bson.E{Key: "city", Value: containsRegex(f.City)})
	}
	if f.Street != "" {
		filter = append(filter, bson.E{Key: "street", Value: containsRegex(f.Street)})
	}
	if f.Building != "" {
		filter = append(filter, bson.E{Key: "building", Value: containsRegex(f.Building)})
	}
	return filter
}

// PropertySearchFilter - условия поиска адресных отзывов.
type PropertySearchFilter struct {
	Address      AddressFilter
	Rooms        int
	Kind         string // пусто - без ограничения по типу
	ApprovedOnly bool
	Page         int64
	Limit        int64
}

// kindFilter учитывает исторические записи без review_type:
// отсутствие типа означает отзыв о квартире.
func kindFilter(kind string) bson.E {
	if kind == models.ReviewKindProperty {
		return bson.E{Key: "review_type", Value: bson.D{{Key: "$in", Value: bson.A{nil, "", models.ReviewKindProperty}}}}
	}
	return bson.E{Key: "review_type", Value: kind}
}

// AuthorAddress - проекция адреса отзыва для сопоставления авторов.
type AuthorAddress struct {
	Author    bson.ObjectID `bson:"author"`
	City      string        `bson:"city"`
	Street    string        `bson:"street"`
	Building  string        `bson:"building"`
	CreatedAt time.Time     `bson:"created_at"`
}

// CityCount - результат агрегации по городам.
type CityCount struct {
	City  string `bson:"_id"`
	Count int    `bson:"count"`
}

// RoomsCount - результат агрегации по числу комнат.
type RoomsCount struct {
	Rooms int `bson:"_id"`
	Count int `bson:"count"`
}

type PropertyReviewRepository struct {
	col *mongo.Collection
}

func NewPropertyReviewRepository(mdb *mongo.Database) *PropertyReviewRepository {
	return &PropertyReviewRepository{col: mdb.Collection(db.ColPropertyReviews)}
}

// Create сохраняет отзыв.
func (r *PropertyReviewRepository) Create(ctx context.Context, review *models.PropertyReview) error {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Comments == nil {
		review.Comments = []models.Comment{}
	}

	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("repository: не удалось создать отзыв: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		review.ID = id
	}
	return nil
}

// GetByID возвращает отзыв по ID.
func (r *PropertyReviewRepository) GetByID(ctx context.Context, id bson.ObjectID) (*models.PropertyReview, error) {
	return findOne[models.PropertyReview](ctx, r.col, bson.D{{Key: "_id", Value: id}}, ErrReviewNotFound)
}

// Search возвращает страницу отзывов и общее число совпадений.
func (r *PropertyReviewRepository) Search(ctx context.Context, f PropertySearchFilter) ([]models.PropertyReview, int64, error) {
	filter := f.Address.toBSON()
	if f.Rooms > 0 {
		filter = append(filter, bson.E{Key: "number_of_rooms", Value: f.Rooms})
	}
	if f.Kind != "" {
		filter = append(filter, kindFilter(f.Kind))
	}
	if f.ApprovedOnly {
		filter = append(filter, bson.E{Key: "is_approved", Value: true})
	}
	return findPage[models.PropertyReview](ctx, r.col, filter,
		bson.D{{Key: "created_at", Value: -1}}, f.Page, f.Limit)
}

// DistinctAuthors возвращает авторов одобренных отзывов по адресному фильтру.
func (r *PropertyReviewRepository) DistinctAuthors(ctx context.Context, f AddressFilter) ([]bson.ObjectID, error) {
	filter := f.toBSON()
	filter = append(filter, bson.E{Key: "is_approved", Value: true})

	var authors []bson.ObjectID
	if err := r.col.Distinct(ctx, "author", filter).Decode(&authors); err != nil {
		return nil, fmt.Errorf("repository: не удалось собрать авторов по адресу: %w", err)
	}
	return authors, nil
}

// AddressesByAuthors возвращает адреса одобренных отзывов указанных авторов,
// новые первыми, для вывода самого свежего адреса автора.
func (r *PropertyReviewRepository) AddressesByAuthors(ctx context.Context, f AddressFilter, authors []bson.ObjectID) ([]AuthorAddress, error) {
	if len(authors) == 0 {
		return nil, nil
	}
	filter := f.toBSON()
	filter = append(filter,
		bson.E{Key: "is_approved", Value: true},
		bson.E{Key: "author", Value: bson.D{{Key: "$in", Value: authors}}},
	)
	return findMany[AuthorAddress](ctx, r.col, filter,
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetProjection(bson.D{
				{Key: "author", Value: 1},
				{Key: "city", Value: 1},
				{Key: "street", Value: 1},
				{Key: "building", Value: 1},
				{Key: "created_at", Value: 1},
			}))
}

// ListPending возвращает отзывы, ожидающие модерации.
func (r *PropertyReviewRepository) ListPending(ctx context.Context) ([]models.PropertyReview, error) {
	return findMany[models.PropertyReview](ctx, r.col,
		bson.D{{Key: "is_approved", Value: false}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListReported возвращает отзывы с жалобами.
func (r *PropertyReviewRepository) ListReported(ctx context.Context) ([]models.PropertyReview, error) {
	return findMany[models.PropertyReview](ctx, r.col,
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "is_reported", Value: true}},
			bson.D{{Key: "comments.is_reported", Value: true}},
		}}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListByAuthor возвращает отзывы автора, новые первыми.
func (r *PropertyReviewRepository) ListByAuthor(ctx context.Context, author bson.ObjectID) ([]models.PropertyReview, error) {
	return findMany[models.PropertyReview](ctx, r.col,
		bson.D{{Key: "author", Value: author}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// CountByAuthor считает отзывы автора.
func (r *PropertyReviewRepository) CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.D{{Key: "author", Value: author}})
	if err != nil {
		return 0, fmt.Errorf("repository: не удалось посчитать отзывы автора: %w", err)
	}
	return total, nil
}

// AddComment добавляет комментарий к отзыву.
func (r *PropertyReviewRepository) AddComment(ctx context.Context, reviewID bson.ObjectID, c *models.Comment) error {
	return pushComment(ctx, r.col, reviewID, c)
}

// IncrementReport регистрирует жалобу на отзыв.
func (r *PropertyReviewRepository) IncrementReport(ctx context.Context, reviewID bson.ObjectID) error {
	return incrementReport(ctx, r.col, reviewID)
}

// IncrementCommentReport регистрирует жалобу на комментарий.
func (r *PropertyReviewRepository) IncrementCommentReport(ctx context.Context, reviewID, commentID bson.ObjectID) error {
	return incrementCommentReport(ctx, r.col, reviewID, commentID)
}

// SetApproved публикует отзыв.
func (r *PropertyReviewRepository) SetApproved(ctx context.Context, reviewID bson.ObjectID) error {
	return setApproved(ctx, r.col, reviewID)
}

// ResolveReport снимает пометку о жалобах.
func (r *PropertyReviewRepository) ResolveReport(ctx context.Context, reviewID bson.ObjectID, approve bool) error {
	return resolveReport(ctx, r.col, reviewID, approve)
}

// Delete удаляет отзыв.
func (r *PropertyReviewRepository) Delete(ctx context.Context, reviewID bson.ObjectID) error {
	return deleteByID(ctx, r.col, reviewID)
}

// TopCities возвращает города с наибольшим числом одобренных отзывов.
func (r *PropertyReviewRepository) TopCities(ctx context.Context, limit int64) ([]CityCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "is_approved", Value: true}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$city"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("repository: не удалось выполнить агрегацию по городам: %w", err)
	}
	defer cursor.Close(ctx)

	var out []CityCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("repository: не удалось декодировать агрегацию по городам: %w", err)
	}
	return out, nil
}

// TopRoomCounts возвращает самые обсуждаемые планировки.
func (r *PropertyReviewRepository) TopRoomCounts(ctx context.Context, limit int64) ([]RoomsCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "is_approved", Value: true},
			{Key: "number_of_rooms", Value: bson.D{{Key: "$gt", Value: 0}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$number_of_rooms"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("repository: не удалось выполнить агрегацию по комнатам: %w", err)
	}
	defer cursor.Close(ctx)

	var out []RoomsCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("repository: не удалось декодировать агрегацию по комнатам: %w", err)
	}
	return out, nil
}

// CountHighRated считает одобренные отзывы с оценкой не ниже min.
func (r *PropertyReviewRepository) CountHighRated(ctx context.Context, min int) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.D{
		{Key: "is_approved", Value: true},
		{Key: "rating", Value: bson.D{{Key: "$gte", Value: min}}},
	})
	if err != nil {
		return 0, fmt.Errorf("repository: не удалось посчитать высокие оценки: %w", err)
	}
	return total, nil
}

// CountAll считает все адресные отзывы, включая неопубликованные.
func (r *PropertyReviewRepository) CountAll(ctx context.Context) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("repository: не удалось посчитать отзывы: %w", err)
	}
	return total, nil
}

// AverageRating возвращает среднюю итоговую оценку по всем отзывам
// с выставленной оценкой; без таких отзывов возвращает 0.
func (r *PropertyReviewRepository) AverageRating(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "rating", Value: bson.D{{Key: "$gt", Value: 0}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("repository: не удалось посчитать среднюю оценку: %w", err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("repository: не удалось декодировать среднюю оценку: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Avg, nil
}

// TopCitiesByAuthor возвращает города, о которых автор писал чаще всего.
func (r *PropertyReviewRepository) TopCitiesByAuthor(ctx context.Context, author bson.ObjectID, limit int64) ([]CityCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "author", Value: author}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$city"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("repository: не удалось выполнить агрегацию по городам автора: %w", err)
	}
	defer cursor.Close(ctx)

	var out []CityCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("repository: не удалось декодировать агрегацию по городам автора: %w", err)
	}
	return out, nil
}

// CountCreatedSince считает одобренные отзывы не старше указанного момента.
func (r *PropertyReviewRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.D{
		{Key: "is_approved", Value: true},
		{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
	})
	if err != nil {
		return 0, fmt.Errorf("repository: не удалось посчитать свежие отзывы: %w", err)
	}
	return total, nil
}

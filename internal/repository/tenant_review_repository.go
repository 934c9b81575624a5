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

// TenantSearchFilter - условия поиска отзывов об арендаторах.
// Authors учитывается только при HasAuthorFilter: пустой список с
// установленным флагом означает заведомо пустой результат.
type TenantSearchFilter struct {
	Name            string
	IDLastFour      string
	PhoneLastFour   string
	Authors         []bson.ObjectID
	HasAuthorFilter bool
	ApprovedOnly    bool
	Page            int64
	Limit           int64
}

func (f TenantSearchFilter) toBSON() bson.D {
	filter := bson.D{}
	if f.Name != "" {
		filter = append(filter, bson.E{Key: "tenant_full_name", Value: containsRegex(f.Name)})
	}
	if f.IDLastFour != "" {
		filter = append(filter, bson.E{Key: "tenant_id_last_four", Value: f.IDLastFour})
	}
	if f.PhoneLastFour != "" {
		filter = append(filter, bson.E{Key: "tenant_phone_last_four", Value: f.PhoneLastFour})
	}
	if f.HasAuthorFilter {
		filter = append(filter, bson.E{Key: "author", Value: bson.D{{Key: "$in", Value: f.Authors}}})
	}
	if f.ApprovedOnly {
		filter = append(filter, bson.E{Key: "is_approved", Value: true})
	}
	return filter
}

type TenantReviewRepository struct {
	col *mongo.Collection
}

func NewTenantReviewRepository(mdb *mongo.Database) *TenantReviewRepository {
	return &TenantReviewRepository{col: mdb.Collection(db.ColTenantReviews)}
}

// Create сохраняет отзыв об арендаторе.
func (r *TenantReviewRepository) Create(ctx context.Context, review *models.TenantReview) error {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Comments == nil {
		review.Comments = []models.Comment{}
	}

	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("repository: не удалось создать отзыв об арендаторе: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		review.ID = id
	}
	return nil
}

// GetByID возвращает отзыв по ID.
func (r *TenantReviewRepository) GetByID(ctx context.Context, id bson.ObjectID) (*models.TenantReview, error) {
	return findOne[models.TenantReview](ctx, r.col, bson.D{{Key: "_id", Value: id}}, ErrReviewNotFound)
}

// Search возвращает страницу отзывов и общее число совпадений.
func (r *TenantReviewRepository) Search(ctx context.Context, f TenantSearchFilter) ([]models.TenantReview, int64, error) {
	if f.HasAuthorFilter && len(f.Authors) == 0 {
		return []models.TenantReview{}, 0, nil
	}
	return findPage[models.TenantReview](ctx, r.col, f.toBSON(),
		bson.D{{Key: "created_at", Value: -1}}, f.Page, f.Limit)
}

// ListPending возвращает отзывы, ожидающие модерации.
func (r *TenantReviewRepository) ListPending(ctx context.Context) ([]models.TenantReview, error) {
	return findMany[models.TenantReview](ctx, r.col,
		bson.D{{Key: "is_approved", Value: false}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListReported возвращает отзывы с жалобами.
func (r *TenantReviewRepository) ListReported(ctx context.Context) ([]models.TenantReview, error) {
	return findMany[models.TenantReview](ctx, r.col,
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "is_reported", Value: true}},
			bson.D{{Key: "comments.is_reported", Value: true}},
		}}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListByAuthor возвращает отзывы автора, новые первыми.
func (r *TenantReviewRepository) ListByAuthor(ctx context.Context, author bson.ObjectID) ([]models.TenantReview, error) {
	return findMany[models.TenantReview](ctx, r.col,
		bson.D{{Key: "author", Value: author}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// CountByAuthor считает отзывы автора.
func (r *TenantReviewRepository) CountByAuthor(ctx context.Context, author bson.ObjectID) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.D{{Key: "author", Value: author}})
	if err != nil {
		return 0, fmt.Errorf("repository: не удалось посчитать отзывы автора: %w", err)
	}
	return total, nil
}

// AddComment добавляет комментарий к отзыву.
func (r *TenantReviewRepository) AddComment(ctx context.Context, reviewID bson.ObjectID, c *models.Comment) error {
	return pushComment(ctx, r.col, reviewID, c)
}

// IncrementReport регистрирует жалобу на отзыв.
func (r *TenantReviewRepository) IncrementReport(ctx context.Context, reviewID bson.ObjectID) error {
	return incrementReport(ctx, r.col, reviewID)
}

// IncrementCommentReport регистрирует жалобу на комментарий.
func (r *TenantReviewRepository) IncrementCommentReport(ctx context.Context, reviewID, commentID bson.ObjectID) error {
	return incrementCommentReport(ctx, r.col, reviewID, commentID)
}

// SetApproved публикует отзыв.
func (r *TenantReviewRepository) SetApproved(ctx context.Context, reviewID bson.ObjectID) error {
	return setApproved(ctx, r.col, reviewID)
}

// ResolveReport снимает пометку о жалобах.
func (r *TenantReviewRepository) ResolveReport(ctx context.Context, reviewID bson.ObjectID, approve bool) error {
	return resolveReport(ctx, r.col, reviewID, approve)
}

// Delete удаляет отзыв.
func (r *TenantReviewRepository) Delete(ctx context.Context, reviewID bson.ObjectID) error {
	return deleteByID(ctx, r.col, reviewID)
}

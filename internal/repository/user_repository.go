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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(mdb *mongo.Database) *UserRepository {
	return &UserRepository{col: mdb.Collection(db.ColUsers)}
}

// Create сохраняет нового пользователя. Дубликат email превращается
// в ErrUserExists (уникальный индекс).
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserExists
		}
		return fmt.Errorf("repository: не удалось создать пользователя: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// GetByID возвращает пользователя по ID.
func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.D{{Key: "_id", Value: id}}, ErrUserNotFound)
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.D{{Key: "email", Value: email}}, ErrUserNotFound)
}

// GetManyByIDs возвращает пользователей по набору ID одним запросом.
func (r *UserRepository) GetManyByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return findMany[models.User](ctx, r.col, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

// SetEmailVerified помечает email подтверждённым и очищает код.
func (r *UserRepository) SetEmailVerified(ctx context.Context, id bson.ObjectID) error {
	return r.update(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "is_email_verified", Value: true},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
		{Key: "$unset", Value: bson.D{
			{Key: "email_verification_code", Value: ""},
			{Key: "email_verification_expires", Value: ""},
		}},
	})
}

// SetEmailNotifications обновляет подписку на почтовые уведомления.
func (r *UserRepository) SetEmailNotifications(ctx context.Context, id bson.ObjectID, enabled bool) error {
	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "email_notifications", Value: enabled},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}})
}

// SetActive включает или блокирует учётную запись.
func (r *UserRepository) SetActive(ctx context.Context, id bson.ObjectID, active bool) error {
	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "is_active", Value: active},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}})
}

// TouchLastLogin фиксирует время последнего входа.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id bson.ObjectID) error {
	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "last_login", Value: time.Now().UTC()},
	}}})
}

// List возвращает пользователей, новые первыми.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return findMany[models.User](ctx, r.col, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *UserRepository) update(ctx context.Context, id bson.ObjectID, update bson.D) error {
	res, err := r.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("repository: не удалось обновить пользователя: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

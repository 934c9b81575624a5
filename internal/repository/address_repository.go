package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/prokvartiru/review-backend/internal/db"
	"github.com/prokvartiru/review-backend/internal/models"
)

type AddressRepository struct {
	col *mongo.Collection
}

func NewAddressRepository(mdb *mongo.Database) *AddressRepository {
	return &AddressRepository{col: mdb.Collection(db.ColRememberedAddresses)}
}

// RecordUsage фиксирует использование адреса: существующая запись получает
// инкремент счётчика, новая создаётся со счётчиком 1. Upsert по уникальной
// тройке делает операцию безопасной при параллельных отзывах; проигравшая
// гонку вставка повторяется как обычное обновление.
func (r *AddressRepository) RecordUsage(ctx context.Context, city, street, building, complexName string) error {
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)
	building = strings.TrimSpace(building)
	complexName = strings.TrimSpace(complexName)

	filter := bson.D{
		{Key: "city", Value: city},
		{Key: "street", Value: street},
		{Key: "building", Value: building},
	}

	set := bson.D{{Key: "last_used", Value: time.Now().UTC()}}
	if complexName != "" {
		set = append(set, bson.E{Key: "residential_complex", Value: complexName})
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "usage_count", Value: 1}}},
		{Key: "$set", Value: set},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "city", Value: city},
			{Key: "street", Value: street},
			{Key: "building", Value: building},
			{Key: "created_at", Value: time.Now().UTC()},
		}},
	}

	_, err := r.col.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		_, err = r.col.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return fmt.Errorf("repository: не удалось запомнить адрес: %w", err)
	}
	return nil
}

// FindByTriple ищет адрес по точной тройке город-улица-дом.
func (r *AddressRepository) FindByTriple(ctx context.Context, city, street, building string) (*models.RememberedAddress, error) {
	filter := bson.D{
		{Key: "city", Value: strings.TrimSpace(city)},
		{Key: "street", Value: strings.TrimSpace(street)},
		{Key: "building", Value: strings.TrimSpace(building)},
	}
	return findOne[models.RememberedAddress](ctx, r.col, filter, ErrAddressNotFound)
}

// Create сохраняет новый адрес; дубликат тройки превращается в ErrAddressExists.
func (r *AddressRepository) Create(ctx context.Context, addr *models.RememberedAddress) error {
	now := time.Now().UTC()
	addr.CreatedAt = now
	addr.LastUsed = now
	if addr.UsageCount == 0 {
		addr.UsageCount = 1
	}

	res, err := r.col.InsertOne(ctx, addr)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAddressExists
		}
		return fmt.Errorf("repository: не удалось сохранить адрес: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		addr.ID = id
	}
	return nil
}

// Touch увеличивает счётчик использования существующего адреса
// и возвращает обновлённый документ.
func (r *AddressRepository) Touch(ctx context.Context, id bson.ObjectID, complexName string) (*models.RememberedAddress, error) {
	set := bson.D{{Key: "last_used", Value: time.Now().UTC()}}
	if complexName = strings.TrimSpace(complexName); complexName != "" {
		set = append(set, bson.E{Key: "residential_complex", Value: complexName})
	}
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "usage_count", Value: 1}}},
		{Key: "$set", Value: set},
	}

	res := r.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var addr models.RememberedAddress
	if err := res.Decode(&addr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("repository: не удалось обновить адрес: %w", err)
	}
	return &addr, nil
}

// List возвращает запомненные адреса, популярные первыми,
// при необходимости с фильтром по городу.
func (r *AddressRepository) List(ctx context.Context, city string, limit int64) ([]models.RememberedAddress, error) {
	filter := bson.D{}
	if city = strings.TrimSpace(city); city != "" {
		filter = append(filter, bson.E{Key: "city", Value: containsRegex(city)})
	}
	return findMany[models.RememberedAddress](ctx, r.col, filter,
		options.Find().
			SetSort(bson.D{{Key: "usage_count", Value: -1}, {Key: "last_used", Value: -1}}).
			SetLimit(limit))
}

// Count считает все запомненные адреса.
func (r *AddressRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("repository: не удалось посчитать адреса: %w", err)
	}
	return total, nil
}

// Search ищет адреса по подстроке в любом компоненте.
func (r *AddressRepository) Search(ctx context.Context, q string, limit int64) ([]models.RememberedAddress, error) {
	re := containsRegex(q)
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "city", Value: re}},
		bson.D{{Key: "street", Value: re}},
		bson.D{{Key: "building", Value: re}},
		bson.D{{Key: "residential_complex", Value: re}},
	}}}
	return findMany[models.RememberedAddress](ctx, r.col, filter,
		options.Find().
			SetSort(bson.D{{Key: "usage_count", Value: -1}, {Key: "last_used", Value: -1}}).
			SetLimit(limit))
}

package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Имена коллекций.
const (
	ColUsers               = "users"
	ColPropertyReviews     = "property_reviews"
	ColTenantReviews       = "tenant_reviews"
	ColRememberedAddresses = "remembered_addresses"
)

// Connect открывает соединение с MongoDB, проверяет его ping-ом
// и создаёт индексы.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(10 * time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("db: не удалось подключиться к mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("db: mongodb не отвечает: %w", err)
	}

	mdb := client.Database(database)
	if err := ensureIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, mdb, nil
}

// ensureIndexes создаёт индексы под типовые запросы.
func ensureIndexes(ctx context.Context, mdb *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		ColUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ColPropertyReviews: {
			{Keys: bson.D{{Key: "city", Value: 1}, {Key: "street", Value: 1}, {Key: "building", Value: 1}}},
			{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "review_type", Value: 1}, {Key: "is_approved", Value: 1}}},
			{Keys: bson.D{{Key: "is_reported", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		ColTenantReviews: {
			{Keys: bson.D{{Key: "tenant_full_name", Value: 1}}},
			{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "is_reported", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		ColRememberedAddresses: {
			// Уникальность тройки гарантирует отсутствие дублей при гонках.
			{
				Keys:    bson.D{{Key: "city", Value: 1}, {Key: "street", Value: 1}, {Key: "building", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "usage_count", Value: -1}, {Key: "last_used", Value: -1}}},
		},
	}

	for col, models := range indexes {
		if _, err := mdb.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("db: не удалось создать индексы коллекции %s: %w", col, err)
		}
	}
	return nil
}

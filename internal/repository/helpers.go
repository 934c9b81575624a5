package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/prokvartiru/review-backend/internal/models"
)

// findOne декодирует один документ, подменяя mongo.ErrNoDocuments
// доменной ошибкой.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter any, notFound error) (*T, error) {
	var doc T
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("repository: не удалось прочитать документ %s: %w", col.Name(), err)
	}
	return &doc, nil
}

// findMany выбирает документы по фильтру.
func findMany[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("repository: не удалось выполнить запрос к %s: %w", col.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repository: не удалось декодировать документы %s: %w", col.Name(), err)
	}
	return docs, nil
}

// findPage выбирает страницу документов и общее число совпадений.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter any, sort bson.D, page, limit int64) ([]T, int64, error) {
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: не удалось посчитать документы %s: %w", col.Name(), err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	docs, err := findMany[T](ctx, col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// containsRegex строит case-insensitive фильтр подстроки,
// экранируя спецсимволы пользовательского ввода.
func containsRegex(value string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// pushComment добавляет встроенный комментарий к отзыву.
func pushComment(ctx context.Context, col *mongo.Collection, reviewID bson.ObjectID, c *models.Comment) error {
	res, err := col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: reviewID}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "comments", Value: c}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC()}}},
		},
	)
	if err != nil {
		return fmt.Errorf("repository: не удалось добавить комментарий: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// reportFlagged сообщает, достиг ли счётчик жалоб порога скрытия.
func reportFlagged(count int) bool {
	return count >= models.ReportThreshold
}

// shouldHideComment сообщает, нужно ли скрыть комментарий после очередной
// жалобы: порог достигнут, а флаг ещё не выставлен. Для уже скрытого
// комментария повторные жалобы ничего не меняют.
func shouldHideComment(c models.Comment) bool {
	return reportFlagged(c.ReportCount) && !c.IsReported
}

// reportPipeline строит обновление жалобы: инкремент счётчика и пересчёт
// флага is_reported в одном pipeline, что исключает гонку между
// инкрементом и проверкой порога.
func reportPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "report_count", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$report_count", 0}}}, 1,
			}}}},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_reported", Value: bson.D{{Key: "$gte", Value: bson.A{"$report_count", models.ReportThreshold}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}
}

// incrementReport атомарно увеличивает счётчик жалоб и выставляет флаг
// is_reported при достижении порога.
func incrementReport(ctx context.Context, col *mongo.Collection, reviewID bson.ObjectID) error {
	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: reviewID}}, reportPipeline())
	if err != nil {
		return fmt.Errorf("repository: не удалось зарегистрировать жалобу: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// commentsOnly используется для декодирования результата позиционного
// обновления встроенных комментариев.
type commentsOnly struct {
	Comments []models.Comment `bson:"comments"`
}

// incrementCommentReport атомарно увеличивает счётчик жалоб встроенного
// комментария и помечает его скрытым при достижении порога. Повторная
// установка флага идемпотентна, поэтому гонка двух жалоб безопасна.
func incrementCommentReport(ctx context.Context, col *mongo.Collection, reviewID, commentID bson.ObjectID) error {
	filter := bson.D{
		{Key: "_id", Value: reviewID},
		{Key: "comments._id", Value: commentID},
	}
	res := col.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$inc", Value: bson.D{{Key: "comments.$.report_count", Value: 1}}}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.D{{Key: "comments", Value: 1}}),
	)

	var doc commentsOnly
	if err := res.Decode(&doc); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("repository: не удалось зарегистрировать жалобу на комментарий: %w", err)
		}
		// Различаем отсутствие отзыва и отсутствие комментария в нём.
		count, cErr := col.CountDocuments(ctx, bson.D{{Key: "_id", Value: reviewID}})
		if cErr != nil {
			return fmt.Errorf("repository: не удалось проверить отзыв: %w", cErr)
		}
		if count == 0 {
			return ErrReviewNotFound
		}
		return ErrCommentNotFound
	}

	for _, c := range doc.Comments {
		if c.ID == commentID && shouldHideComment(c) {
			_, err := col.UpdateOne(ctx, filter,
				bson.D{{Key: "$set", Value: bson.D{{Key: "comments.$.is_reported", Value: true}}}},
			)
			if err != nil {
				return fmt.Errorf("repository: не удалось скрыть комментарий: %w", err)
			}
			break
		}
	}
	return nil
}

// setApproved публикует отзыв.
func setApproved(ctx context.Context, col *mongo.Collection, reviewID bson.ObjectID) error {
	res, err := col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: reviewID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_approved", Value: true},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return fmt.Errorf("repository: не удалось одобрить отзыв: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// resolveReport снимает пометку о жалобах с отзыва и всех его
// комментариев; при approve дополнительно публикует отзыв.
func resolveReport(ctx context.Context, col *mongo.Collection, reviewID bson.ObjectID, approve bool) error {
	set := bson.D{
		{Key: "is_reported", Value: false},
		{Key: "report_count", Value: 0},
		{Key: "comments.$[].is_reported", Value: false},
		{Key: "comments.$[].report_count", Value: 0},
		{Key: "updated_at", Value: time.Now().UTC()},
	}
	if approve {
		set = append(set, bson.E{Key: "is_approved", Value: true})
	}
	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: reviewID}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("repository: не удалось снять пометку о жалобах: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// deleteByID удаляет отзыв.
func deleteByID(ctx context.Context, col *mongo.Collection, reviewID bson.ObjectID) error {
	res, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: reviewID}})
	if err != nil {
		return fmt.Errorf("repository: не удалось удалить отзыв: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

package service

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/models"
)

// ModeratedStore - операции модерации над коллекцией отзывов.
type ModeratedStore[T any] interface {
	ListPending(ctx context.Context) ([]T, error)
	ListReported(ctx context.Context) ([]T, error)
	SetApproved(ctx context.Context, reviewID bson.ObjectID) error
	ResolveReport(ctx context.Context, reviewID bson.ObjectID, approve bool) error
	Delete(ctx context.Context, reviewID bson.ObjectID) error
}

// ModerationUserStore - операции администратора над пользователями.
type ModerationUserStore interface {
	List(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, id bson.ObjectID, active bool) error
}

// ModerationService - премодерация отзывов, разбор жалоб
// и управление учётными записями.
type ModerationService struct {
	properties ModeratedStore[models.PropertyReview]
	tenants    ModeratedStore[models.TenantReview]
	users      ModerationUserStore
}

// NewModerationService создаёт сервис модерации.
func NewModerationService(
	properties ModeratedStore[models.PropertyReview],
	tenants ModeratedStore[models.TenantReview],
	users ModerationUserStore,
) *ModerationService {
	return &ModerationService{
		properties: properties,
		tenants:    tenants,
		users:      users,
	}
}

// PendingReviews возвращает отзывы обеих коллекций, ожидающие модерации.
func (s *ModerationService) PendingReviews(ctx context.Context) (*dto.PendingReviews, error) {
	props, err := s.properties.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenants.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PendingReviews{PropertyReviews: props, TenantReviews: tenants}, nil
}

// ModeratePropertyReview применяет решение модератора:
// approve публикует отзыв, reject удаляет его безвозвратно.
func (s *ModerationService) ModeratePropertyReview(ctx context.Context, reviewID bson.ObjectID, action string) error {
	return moderate[models.PropertyReview](ctx, s.properties, reviewID, action)
}

// ModerateTenantReview применяет решение модератора к отзыву об арендаторе.
func (s *ModerationService) ModerateTenantReview(ctx context.Context, reviewID bson.ObjectID, action string) error {
	return moderate[models.TenantReview](ctx, s.tenants, reviewID, action)
}

func moderate[T any](ctx context.Context, store ModeratedStore[T], reviewID bson.ObjectID, action string) error {
	switch action {
	case models.ModerationApprove:
		return store.SetApproved(ctx, reviewID)
	case models.ModerationReject:
		return store.Delete(ctx, reviewID)
	default:
		return ErrInvalidAction
	}
}

// ReportedContent возвращает отзывы с жалобами из обеих коллекций.
func (s *ModerationService) ReportedContent(ctx context.Context) (*dto.ReportedContent, error) {
	props, err := s.properties.ListReported(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenants.ListReported(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReportedContent{PropertyReviews: props, TenantReviews: tenants}, nil
}

// ResolveReported применяет решение по зарепорченному отзыву:
// dismiss снимает жалобы, approve дополнительно публикует,
// delete удаляет документ.
func (s *ModerationService) ResolveReported(ctx context.Context, contentType string, reviewID bson.ObjectID, action string) error {
	if !models.ValidReportAction(action) {
		return ErrInvalidAction
	}

	switch contentType {
	case models.ReviewKindProperty:
		return resolveReported[models.PropertyReview](ctx, s.properties, reviewID, action)
	case models.ReviewKindTenant:
		return resolveReported[models.TenantReview](ctx, s.tenants, reviewID, action)
	default:
		return ErrInvalidAction
	}
}

func resolveReported[T any](ctx context.Context, store ModeratedStore[T], reviewID bson.ObjectID, action string) error {
	if action == models.ReportActionDelete {
		return store.Delete(ctx, reviewID)
	}
	return store.ResolveReport(ctx, reviewID, action == models.ReportActionApprove)
}

// ListUsers возвращает всех пользователей для админки.
func (s *ModerationService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// SetUserStatus включает или блокирует учётную запись.
func (s *ModerationService) SetUserStatus(ctx context.Context, userID bson.ObjectID, active bool) error {
	return s.users.SetActive(ctx, userID, active)
}

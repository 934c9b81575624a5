package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/repository"
	"github.com/prokvartiru/review-backend/internal/validation"
)

// Минимальная длина поисковой строки адресов.
const minAddressQueryLength = 2

// Лимиты выдачи адресов.
const (
	defaultAddressLimit = 20
	maxAddressLimit     = 100
)

// AddressStore описывает зависимости сервиса адресов от хранилища.
type AddressStore interface {
	FindByTriple(ctx context.Context, city, street, building string) (*models.RememberedAddress, error)
	Create(ctx context.Context, addr *models.RememberedAddress) error
	Touch(ctx context.Context, id bson.ObjectID, complexName string) (*models.RememberedAddress, error)
	List(ctx context.Context, city string, limit int64) ([]models.RememberedAddress, error)
	Search(ctx context.Context, q string, limit int64) ([]models.RememberedAddress, error)
}

// AddressService - подсказки адресов и явное сохранение.
type AddressService struct {
	addresses AddressStore
}

// NewAddressService создаёт сервис адресов.
func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

// SaveResult - итог явного сохранения адреса.
type SaveResult struct {
	Address *models.RememberedAddress
	Created bool
}

// Save сохраняет адрес из формы: новая тройка создаётся, существующая
// получает инкремент счётчика. Параллельная вставка той же тройки
// разрешается через уникальный индекс.
func (s *AddressService) Save(ctx context.Context, req dto.SaveAddressRequest) (*SaveResult, error) {
	var verrs validation.Errors
	verrs.Add("city", validation.ValidateCity(req.City))
	verrs.Add("street", validation.ValidateStreet(req.Street))
	verrs.Add("building", validation.ValidateBuilding(req.Building))
	if verrs.Any() {
		return nil, verrs
	}

	city := validation.Sanitize(req.City)
	street := validation.Sanitize(req.Street)
	building := validation.Sanitize(req.Building)
	complexName := validation.Sanitize(req.ResidentialComplex)

	existing, err := s.addresses.FindByTriple(ctx, city, street, building)
	switch {
	case err == nil:
		updated, err := s.addresses.Touch(ctx, existing.ID, complexName)
		if err != nil {
			return nil, err
		}
		return &SaveResult{Address: updated, Created: false}, nil
	case errors.Is(err, repository.ErrAddressNotFound):
		addr := &models.RememberedAddress{
			City:               city,
			Street:             street,
			Building:           building,
			ResidentialComplex: complexName,
			UsageCount:         1,
		}
		if err := s.addresses.Create(ctx, addr); err != nil {
			return nil, err
		}
		return &SaveResult{Address: addr, Created: true}, nil
	default:
		return nil, err
	}
}

// List возвращает запомненные адреса, популярные первыми.
func (s *AddressService) List(ctx context.Context, city string, limit int64) ([]models.RememberedAddress, error) {
	return s.addresses.List(ctx, city, normalizeAddressLimit(limit))
}

// Popular возвращает самые используемые адреса.
func (s *AddressService) Popular(ctx context.Context, limit int64) ([]models.RememberedAddress, error) {
	return s.addresses.List(ctx, "", normalizeAddressLimit(limit))
}

// Search ищет адреса по подстроке; короткие запросы дают пустой результат,
// а не ошибку.
func (s *AddressService) Search(ctx context.Context, q string, limit int64) ([]models.RememberedAddress, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < minAddressQueryLength {
		return []models.RememberedAddress{}, nil
	}
	if err := validation.ValidateSearchQuery(q); err != nil {
		var verrs validation.Errors
		verrs.Add("q", err)
		return nil, verrs
	}
	return s.addresses.Search(ctx, q, normalizeAddressLimit(limit))
}

func normalizeAddressLimit(limit int64) int64 {
	if limit < 1 {
		return defaultAddressLimit
	}
	if limit > maxAddressLimit {
		return maxAddressLimit
	}
	return limit
}

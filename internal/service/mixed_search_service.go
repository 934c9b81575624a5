package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/prokvartiru/review-backend/internal/dto"
	"github.com/prokvartiru/review-backend/internal/logger"
	"github.com/prokvartiru/review-backend/internal/models"
	"github.com/prokvartiru/review-backend/internal/repository"
	"github.com/prokvartiru/review-backend/internal/validation"
)

// MixedPropertySource - выборки адресных отзывов для смешанного поиска.
type MixedPropertySource interface {
	Search(ctx context.Context, f repository.PropertySearchFilter) ([]models.PropertyReview, int64, error)
	DistinctAuthors(ctx context.Context, f repository.AddressFilter) ([]bson.ObjectID, error)
	AddressesByAuthors(ctx context.Context, f repository.AddressFilter, authors []bson.ObjectID) ([]repository.AuthorAddress, error)
}

// MixedTenantSource - выборки отзывов об арендаторах для смешанного поиска.
type MixedTenantSource interface {
	Search(ctx context.Context, f repository.TenantSearchFilter) ([]models.TenantReview, int64, error)
}

// MixedSearchService связывает отзывы разных видов через авторов:
// поиск по адресу находит и отзывы об арендаторах, оставленные
// арендодателями этого адреса.
type MixedSearchService struct {
	properties MixedPropertySource
	tenants    MixedTenantSource
	users      UserReader
}

// NewMixedSearchService создаёт сервис смешанного поиска.
func NewMixedSearchService(properties MixedPropertySource, tenants MixedTenantSource, users UserReader) *MixedSearchService {
	return &MixedSearchService{
		properties: properties,
		tenants:    tenants,
		users:      users,
	}
}

// Search выполняет смешанный поиск: четыре независимо пагинированные
// группы результатов, каждая со своим общим количеством.
func (s *MixedSearchService) Search(ctx context.Context, q dto.MixedSearchQuery) (*dto.MixedReviews, error) {
	var verrs validation.Errors
	verrs.Add("city", validation.ValidateSearchQuery(q.City))
	verrs.Add("street", validation.ValidateSearchQuery(q.Street))
	verrs.Add("building", validation.ValidateSearchQuery(q.Building))
	verrs.Add("tenantFullName", validation.ValidateSearchQuery(q.TenantFullName))
	verrs.Add("idLastFour", validation.ValidateOptionalLastFour("последние цифры документа", q.IDLastFour))
	verrs.Add("phoneLastFour", validation.ValidateOptionalLastFour("последние цифры телефона", q.PhoneLastFour))
	if verrs.Any() {
		return nil, verrs
	}

	page, limit := normalizePage(q.Page, q.Limit)
	address := repository.AddressFilter{
		City:     strings.TrimSpace(q.City),
		Street:   strings.TrimSpace(q.Street),
		Building: strings.TrimSpace(q.Building),
	}

	out := &dto.MixedReviews{
		PropertyReviews:           []models.PropertyReview{},
		ResidentialComplexReviews: []models.PropertyReview{},
		LandlordReviews:           []models.PropertyReview{},
		TenantReviews:             []models.TenantReview{},
	}

	// Адресные группы.
	for _, kind := range []string{models.ReviewKindProperty, models.ReviewKindResidentialComplex, models.ReviewKindLandlord} {
		reviews, total, err := s.properties.Search(ctx, repository.PropertySearchFilter{
			Address:      address,
			Kind:         kind,
			ApprovedOnly: true,
			Page:         page,
			Limit:        limit,
		})
		if err != nil {
			return nil, err
		}
		for i := range reviews {
			reviews[i].Comments = visibleComments(reviews[i].Comments)
			reviews[i].Title = propertyTitle(&reviews[i])
		}
		switch kind {
		case models.ReviewKindProperty:
			out.PropertyReviews, out.PropertyTotal = reviews, total
		case models.ReviewKindResidentialComplex:
			out.ResidentialComplexReviews, out.ResidentialComplexTotal = reviews, total
		case models.ReviewKindLandlord:
			out.LandlordReviews, out.LandlordTotal = reviews, total
		}
	}

	// Группа арендаторов: при адресном фильтре ограничиваемся авторами,
	// писавшими отзывы по этому адресу.
	tenantFilter := repository.TenantSearchFilter{
		Name:          strings.TrimSpace(q.TenantFullName),
		IDLastFour:    strings.TrimSpace(q.IDLastFour),
		PhoneLastFour: strings.TrimSpace(q.PhoneLastFour),
		ApprovedOnly:  true,
		Page:          page,
		Limit:         limit,
	}

	var lastAddress map[bson.ObjectID]repository.AuthorAddress
	if !address.Empty() {
		authors, err := s.properties.DistinctAuthors(ctx, address)
		if err != nil {
			return nil, err
		}
		tenantFilter.Authors = authors
		tenantFilter.HasAuthorFilter = true

		stamps, err := s.properties.AddressesByAuthors(ctx, address, authors)
		if err != nil {
			return nil, err
		}
		// Записи отсортированы от новых к старым: первая по автору - самый свежий адрес.
		lastAddress = make(map[bson.ObjectID]repository.AuthorAddress, len(authors))
		for _, st := range stamps {
			if _, ok := lastAddress[st.Author]; !ok {
				lastAddress[st.Author] = st
			}
		}
	}

	tenantReviews, tenantTotal, err := s.tenants.Search(ctx, tenantFilter)
	if err != nil {
		return nil, err
	}
	for i := range tenantReviews {
		tenantReviews[i].Comments = visibleComments(tenantReviews[i].Comments)
		tenantReviews[i].Title = fmt.Sprintf("Отзыв об арендаторе: %s", tenantReviews[i].TenantFullName)
		if addr, ok := lastAddress[tenantReviews[i].Author]; ok {
			tenantReviews[i].City = addr.City
			tenantReviews[i].Street = addr.Street
			tenantReviews[i].Building = addr.Building
		}
	}
	out.TenantReviews, out.TenantTotal = tenantReviews, tenantTotal

	if err := s.attachNames(ctx, out); err != nil {
		logger.Log.Warnf("mixed search: не удалось подставить имена авторов: %v", err)
	}

	return out, nil
}

// propertyTitle синтезирует заголовок отзыва: вид отзыва плюс адрес.
// Адрес присутствует всегда, чтобы результат можно было опознать в выдаче
// без раскрытия карточки.
func propertyTitle(r *models.PropertyReview) string {
	addr := fmt.Sprintf("%s, %s, %s", r.City, r.Street, r.Building)
	switch r.Kind() {
	case models.ReviewKindResidentialComplex:
		return fmt.Sprintf("Отзыв о ЖК: %s", addr)
	case models.ReviewKindLandlord:
		return fmt.Sprintf("Отзыв об арендодателе: %s", addr)
	default:
		return fmt.Sprintf("Отзыв о квартире: %s", addr)
	}
}

// attachNames подставляет имена авторов во все группы одним запросом.
func (s *MixedSearchService) attachNames(ctx context.Context, out *dto.MixedReviews) error {
	ids := make([]bson.ObjectID, 0)
	collect := func(reviews []models.PropertyReview) {
		for _, r := range reviews {
			ids = append(ids, r.Author)
			for _, c := range r.Comments {
				ids = append(ids, c.Author)
			}
		}
	}
	collect(out.PropertyReviews)
	collect(out.ResidentialComplexReviews)
	collect(out.LandlordReviews)
	for _, r := range out.TenantReviews {
		ids = append(ids, r.Author)
		for _, c := range r.Comments {
			ids = append(ids, c.Author)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[bson.ObjectID]struct{}, len(ids))
	unique := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.users.GetManyByIDs(ctx, unique)
	if err != nil {
		return err
	}
	names := make(map[bson.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName()
	}

	apply := func(reviews []models.PropertyReview) {
		for i := range reviews {
			reviews[i].AuthorName = names[reviews[i].Author]
			for j := range reviews[i].Comments {
				reviews[i].Comments[j].AuthorName = names[reviews[i].Comments[j].Author]
			}
		}
	}
	apply(out.PropertyReviews)
	apply(out.ResidentialComplexReviews)
	apply(out.LandlordReviews)
	for i := range out.TenantReviews {
		out.TenantReviews[i].AuthorName = names[out.TenantReviews[i].Author]
		for j := range out.TenantReviews[i].Comments {
			out.TenantReviews[i].Comments[j].AuthorName = names[out.TenantReviews[i].Comments[j].Author]
		}
	}
	return nil
}

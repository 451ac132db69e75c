package catalogsvc

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
)

type repository interface {
	GetService(ctx context.Context, id int64) (catalog.Service, bool, error)
	QueryServices(ctx context.Context, filter *catalog.QueryServicesModel) ([]catalog.Service, error)
	QueryPastries(ctx context.Context, filter *catalog.QueryPastriesModel) ([]catalog.Pastry, error)
}

var categories = []string{
	catalog.CategoryCakes,
	catalog.CategoryPastries,
	catalog.CategoryDesserts,
	catalog.CategorySweets,
	catalog.CategoryPlatters,
}

// CatalogService serves the read-only service and pastry catalog.
type CatalogService struct {
	repo repository
}

// NewCatalogService creates a new CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func NewCatalogService(repo repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// GetService returns a service by id. The bool is false for unknown ids.
func (s *CatalogService) GetService(ctx context.Context, id int64) (catalog.Service, bool, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.GetService")
	defer span.End()

	if id <= 0 {
		return catalog.Service{}, false, nil
	}

	svc, found, err := s.repo.GetService(ctx, id)
	if err != nil {
		return catalog.Service{}, false, apperr.Persistence("get service", err)
	}

	return svc, found, nil
}

// ServiceByID is GetService for callers that treat an unknown id as an error.
func (s *CatalogService) ServiceByID(ctx context.Context, id int64) (catalog.Service, error) {
	svc, found, err := s.GetService(ctx, id)
	if err != nil {
		return catalog.Service{}, err
	}
	if !found {
		return catalog.Service{}, fmt.Errorf("%w: service %d", apperr.ErrNotFound, id)
	}

	return svc, nil
}

// ListServices returns a page of services.
func (s *CatalogService) ListServices(ctx context.Context, filter catalog.QueryServicesModel) ([]catalog.Service, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.ListServices")
	defer span.End()

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, apperr.Validation("limit and offset must not be negative")
	}

	services, err := s.repo.QueryServices(ctx, &filter)
	if err != nil {
		return nil, apperr.Persistence("list services", err)
	}

	return services, nil
}

// ListPastries returns pastries matching the search text and category. An empty
// category or "all" matches every category.
func (s *CatalogService) ListPastries(ctx context.Context, filter catalog.QueryPastriesModel) ([]catalog.Pastry, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "CatalogService.ListPastries")
	defer span.End()

	if filter.Category == "all" {
		filter.Category = ""
	}
	if filter.Category != "" && !slices.Contains(categories, filter.Category) {
		return nil, apperr.Validation("unknown pastry category %q", filter.Category)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, apperr.Validation("limit and offset must not be negative")
	}

	pastries, err := s.repo.QueryPastries(ctx, &filter)
	if err != nil {
		return nil, apperr.Persistence("list pastries", err)
	}

	return pastries, nil
}

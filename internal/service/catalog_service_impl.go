package service

import (
	"context"
	"strings"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/repository"
)

type catalogService struct {
	catalog    repository.CatalogRepo
	categories repository.CategoryRepo
}

func NewCatalogService(catalog repository.CatalogRepo, categories repository.CategoryRepo) CatalogService {
	return &catalogService{catalog: catalog, categories: categories}
}

func (s *catalogService) Add(ctx context.Context, m *domain.MaterialCatalogEntry) error {
	return s.catalog.Add(ctx, m)
}

func (s *catalogService) List(ctx context.Context, category string) ([]*domain.MaterialCatalogEntry, error) {
	return s.catalog.List(ctx, category)
}

func (s *catalogService) Search(ctx context.Context, query string) ([]*domain.MaterialCatalogEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.catalog.Search(ctx, query)
}

func (s *catalogService) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

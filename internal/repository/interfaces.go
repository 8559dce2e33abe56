package repository

import (
	"context"

	"github.com/whittech/estimator/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// UpdateTotal writes the cached grand total without touching any
	// other project field or the modification timestamp shown to users.
	UpdateTotal(ctx context.Context, id int64, amount float64) error
	Delete(ctx context.Context, id int64) error
}

type LineItemRepo interface {
	// Create rejects rows with a blank description or missing project
	// reference; on success the item's ID is populated.
	Create(ctx context.Context, li *domain.LineItem) error
	ListByProject(ctx context.Context, projectID int64) ([]*domain.LineItem, error)
	Update(ctx context.Context, li *domain.LineItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByProject(ctx context.Context, projectID int64) (int64, error)
}

type CatalogRepo interface {
	Add(ctx context.Context, m *domain.MaterialCatalogEntry) error
	// List returns the catalog, optionally filtered to one category.
	List(ctx context.Context, category string) ([]*domain.MaterialCatalogEntry, error)
	// Search matches item name, description, or category as a substring,
	// ranking exact-prefix name matches first.
	Search(ctx context.Context, query string) ([]*domain.MaterialCatalogEntry, error)
}

type CategoryRepo interface {
	List(ctx context.Context) ([]*domain.Category, error)
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.CompanySettings, error)
	Update(ctx context.Context, s *domain.CompanySettings) error
}

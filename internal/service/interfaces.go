package service

import (
	"context"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/estimate"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	SetStatus(ctx context.Context, id int64, status domain.ProjectStatus) error
	// Delete removes the project and all of its line items. Unless force
	// is set, only archived projects can be deleted.
	Delete(ctx context.Context, id int64, force bool) error
}

type CatalogService interface {
	Add(ctx context.Context, m *domain.MaterialCatalogEntry) error
	List(ctx context.Context, category string) ([]*domain.MaterialCatalogEntry, error)
	Search(ctx context.Context, query string) ([]*domain.MaterialCatalogEntry, error)
	Categories(ctx context.Context) ([]*domain.Category, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.CompanySettings, error)
	Update(ctx context.Context, s *domain.CompanySettings) error
	// RowDefaults resolves the current settings into defaults for fresh
	// grid rows, seeded with the first configured category.
	RowDefaults(ctx context.Context) (domain.RowDefaults, error)
}

type ImportService interface {
	// ImportFile loads a CSV or XLSX estimate into the project. Records
	// without a description are skipped; rows that fail to save are
	// counted, never fatal.
	ImportFile(ctx context.Context, projectID int64, path string) (estimate.ImportReport, error)
}

type ExportService interface {
	// ExportPDF renders the project's proposal and writes it to path.
	ExportPDF(ctx context.Context, projectID int64, path string) error
	// ExportExcel writes the proposal as an xlsx workbook to path.
	ExportExcel(ctx context.Context, projectID int64, path string) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/whittech/estimator/internal/estimate"
	"github.com/whittech/estimator/internal/importer"
	"github.com/whittech/estimator/internal/repository"
)

type importService struct {
	projects repository.ProjectRepo
	items    repository.LineItemRepo
	defaults SettingsService
	observer OpObserver
}

func NewImportService(projects repository.ProjectRepo, items repository.LineItemRepo, defaults SettingsService, observers ...OpObserver) ImportService {
	return &importService{
		projects: projects,
		items:    items,
		defaults: defaults,
		observer: opObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, projectID int64, path string) (rep estimate.ImportReport, err error) {
	start := time.Now()
	defer func() {
		s.observer.OpDone(ctx, OpEvent{
			Op:        "import",
			ProjectID: projectID,
			Path:      path,
			Took:      time.Since(start),
			Report:    &rep,
			Err:       err,
		})
	}()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return estimate.ImportReport{}, err
	}

	records, err := importer.ParseFile(path)
	if err != nil {
		return estimate.ImportReport{}, err
	}

	defaults, err := s.defaults.RowDefaults(ctx)
	if err != nil {
		return estimate.ImportReport{}, fmt.Errorf("resolving row defaults: %w", err)
	}

	session := estimate.NewSession(s.items, s.projects, project, defaults)
	if err := session.Load(ctx); err != nil {
		return estimate.ImportReport{}, err
	}
	return session.BulkImport(ctx, records), nil
}

package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/export"
	"github.com/whittech/estimator/internal/repository"
)

type exportService struct {
	projects repository.ProjectRepo
	items    repository.LineItemRepo
	settings repository.SettingsRepo
	observer OpObserver
}

func NewExportService(projects repository.ProjectRepo, items repository.LineItemRepo, settings repository.SettingsRepo, observers ...OpObserver) ExportService {
	return &exportService{
		projects: projects,
		items:    items,
		settings: settings,
		observer: opObserverOrNoop(observers),
	}
}

func (s *exportService) ExportPDF(ctx context.Context, projectID int64, path string) error {
	return s.export(ctx, "export-pdf", projectID, path, export.GeneratePDF)
}

func (s *exportService) ExportExcel(ctx context.Context, projectID int64, path string) error {
	return s.export(ctx, "export-excel", projectID, path, export.GenerateExcel)
}

func (s *exportService) export(ctx context.Context, name string, projectID int64, path string, render func(export.Proposal) ([]byte, error)) (err error) {
	start := time.Now()
	defer func() {
		s.observer.OpDone(ctx, OpEvent{
			Op:        name,
			ProjectID: projectID,
			Path:      path,
			Took:      time.Since(start),
			Err:       err,
		})
	}()

	proposal, err := s.buildProposal(ctx, projectID)
	if err != nil {
		return err
	}
	data, err := render(proposal)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (s *exportService) buildProposal(ctx context.Context, projectID int64) (export.Proposal, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return export.Proposal{}, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return export.Proposal{}, err
	}
	rows, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return export.Proposal{}, err
	}
	items := make([]domain.LineItem, len(rows))
	for i, li := range rows {
		items[i] = *li
	}
	return export.BuildProposal(project, settings, items), nil
}

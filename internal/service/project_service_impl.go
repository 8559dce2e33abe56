package service

import (
	"context"
	"fmt"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	items    repository.LineItemRepo
	settings repository.SettingsRepo
}

func NewProjectService(projects repository.ProjectRepo, items repository.LineItemRepo, settings repository.SettingsRepo) ProjectService {
	return &projectService{projects: projects, items: items, settings: settings}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.Status == "" {
		p.Status = domain.ProjectDraft
	}
	// New projects inherit the company-wide terms unless the caller set
	// their own.
	if p.MaterialTaxRatePct == 0 && p.ContingencyPct == 0 {
		if cs, err := s.settings.Get(ctx); err == nil {
			p.MaterialTaxRatePct = cs.MaterialTaxRatePct
			p.ContingencyPct = cs.ContingencyPct
		}
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	return s.projects.Update(ctx, p)
}

func (s *projectService) SetStatus(ctx context.Context, id int64, status domain.ProjectStatus) error {
	if !domain.ValidProjectStatuses[string(status)] {
		return fmt.Errorf("invalid project status %q", status)
	}
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Status = status
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id int64, force bool) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !force && p.Status != domain.ProjectArchived {
		return fmt.Errorf("project must be archived before deletion (use --force to override)")
	}
	// Line items cascade at the schema level; the explicit delete keeps
	// the behavior visible and independent of pragma configuration.
	if _, err := s.items.DeleteByProject(ctx, id); err != nil {
		return fmt.Errorf("deleting project line items: %w", err)
	}
	return s.projects.Delete(ctx, id)
}

package service

import (
	"context"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/repository"
)

type settingsService struct {
	settings   repository.SettingsRepo
	categories repository.CategoryRepo
}

func NewSettingsService(settings repository.SettingsRepo, categories repository.CategoryRepo) SettingsService {
	return &settingsService{settings: settings, categories: categories}
}

func (s *settingsService) Get(ctx context.Context) (*domain.CompanySettings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, cs *domain.CompanySettings) error {
	return s.settings.Update(ctx, cs)
}

func (s *settingsService) RowDefaults(ctx context.Context) (domain.RowDefaults, error) {
	cs, err := s.settings.Get(ctx)
	if err != nil {
		return domain.FallbackRowDefaults(), err
	}
	var firstCategory string
	if cats, err := s.categories.List(ctx); err == nil && len(cats) > 0 {
		firstCategory = cats[0].Name
	}
	return cs.RowDefaults(firstCategory), nil
}

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/repository"
	"github.com/whittech/estimator/internal/testutil"
)

type testEnv struct {
	db       *sql.DB
	projects repository.ProjectRepo
	items    repository.LineItemRepo
	catalog  repository.CatalogRepo
	cats     repository.CategoryRepo
	settings repository.SettingsRepo
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	return testEnv{
		db:       db,
		projects: repository.NewSQLiteProjectRepo(db),
		items:    repository.NewSQLiteLineItemRepo(db),
		catalog:  repository.NewSQLiteCatalogRepo(db),
		cats:     repository.NewSQLiteCategoryRepo(db),
		settings: repository.NewSQLiteSettingsRepo(db),
	}
}

func (e testEnv) createProject(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, e.projects.Create(context.Background(), p))
	return p
}

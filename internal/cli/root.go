package cli

import (
	"github.com/spf13/cobra"
	"github.com/whittech/estimator/internal/repository"
	"github.com/whittech/estimator/internal/service"
)

// App holds the service interfaces and repositories the CLI commands run
// against. The repositories are needed directly by the grid editor,
// which drives an estimate session rather than a one-shot use case.
type App struct {
	Projects service.ProjectService
	Catalog  service.CatalogService
	Settings service.SettingsService
	Import   service.ImportService
	Export   service.ExportService

	ProjectRepo  repository.ProjectRepo
	LineItemRepo repository.LineItemRepo

	// IsInteractive reports whether stdin is attached to a terminal;
	// destructive prompts and the grid editor require it.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "estimator" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "estimator",
		Short: "Construction estimating and proposal tool",
	}

	root.AddCommand(
		newProjectCmd(app),
		newEditCmd(app),
		newCatalogCmd(app),
		newSettingsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}

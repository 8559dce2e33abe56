package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/whittech/estimator/internal/cli"
	"github.com/whittech/estimator/internal/db"
	"github.com/whittech/estimator/internal/repository"
	"github.com/whittech/estimator/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.estimator/estimator.db
	dbPath := os.Getenv("ESTIMATOR_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".estimator", "estimator.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteLineItemRepo(database)
	catalogRepo := repository.NewSQLiteCatalogRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	// Optional telemetry for import/export runs.
	var observers []service.OpObserver
	if os.Getenv("ESTIMATOR_LOG_OPS") != "" {
		observers = append(observers, service.NewLogOpObserver(os.Stderr))
	}

	// Wire services
	settingsSvc := service.NewSettingsService(settingsRepo, categoryRepo)

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, itemRepo, settingsRepo),
		Catalog:  service.NewCatalogService(catalogRepo, categoryRepo),
		Settings: settingsSvc,
		Import:   service.NewImportService(projectRepo, itemRepo, settingsSvc, observers...),
		Export:   service.NewExportService(projectRepo, itemRepo, settingsRepo, observers...),

		ProjectRepo:  projectRepo,
		LineItemRepo: itemRepo,
	}

	// Detect interactive terminal for confirmation prompts and the grid.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/whittech/estimator/internal/estimate"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit PROJECT",
		Short: "Open a project's estimate in the interactive grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			defaults, err := app.Settings.RowDefaults(ctx)
			if err != nil {
				return err
			}

			session := estimate.NewSession(app.LineItemRepo, app.ProjectRepo, p, defaults)
			if err := session.Load(ctx); err != nil {
				return err
			}
			defer session.Flush()

			prog := tea.NewProgram(
				newGridModel(session, p, app.Catalog),
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithInput(cmd.InOrStdin()),
			)
			_, err = prog.Run()
			return err
		},
	}
}

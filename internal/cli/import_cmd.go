package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import PROJECT FILE",
		Short: "Import line items from a CSV or XLSX estimate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			rep, err := app.Import.ImportFile(ctx, projectID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items (%d skipped, %d failed)\n",
				rep.Created, rep.Skipped, rep.Failed)
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export a project's proposal as PDF or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if format == "" {
				switch strings.ToLower(filepath.Ext(out)) {
				case ".xlsx":
					format = "xlsx"
				default:
					format = "pdf"
				}
			}
			if out == "" {
				out = fmt.Sprintf("proposal-%d.%s", projectID, format)
			}

			switch strings.ToLower(format) {
			case "pdf":
				err = app.Export.ExportPDF(ctx, projectID, out)
			case "xlsx", "excel":
				err = app.Export.ExportExcel(ctx, projectID, out)
			default:
				return fmt.Errorf("unsupported format %q (use pdf or xlsx)", format)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: pdf or xlsx (inferred from --out)")
	cmd.Flags().StringVar(&out, "out", "", "Output file path")

	return cmd
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/whittech/estimator/internal/cli/formatter"
	"github.com/whittech/estimator/internal/domain"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and maintain the materials catalog",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogSearchCmd(app),
		newCatalogAddCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Catalog.List(cmd.Context(), category)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No materials found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatCatalogList(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category")

	return cmd
}

func newCatalogSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search materials by name, description, or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Catalog.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No materials matched.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatCatalogList(entries))
			return nil
		},
	}
}

func newCatalogAddCmd(app *App) *cobra.Command {
	var category, name, description, unit, manufacturer, partNumber string
	var cost, laborHours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a material to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.MaterialCatalogEntry{
				Category:          category,
				ItemName:          name,
				Description:       description,
				Unit:              unit,
				MaterialCost:      cost,
				TypicalLaborHours: laborHours,
				Manufacturer:      manufacturer,
				PartNumber:        partNumber,
			}
			if err := app.Catalog.Add(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to the catalog\n", m.ItemName)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of measure (default EA)")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Unit material cost")
	cmd.Flags().Float64Var(&laborHours, "labor-hours", 0, "Typical labor hours per unit")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "Manufacturer")
	cmd.Flags().StringVar(&partNumber, "part", "", "Part number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

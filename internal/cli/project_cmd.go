package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/whittech/estimator/internal/cli/formatter"
	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/pricing"
)

// resolveProjectID accepts either a numeric id or a project number.
func resolveProjectID(ctx context.Context, app *App, input string) (int64, error) {
	if input == "" {
		return 0, fmt.Errorf("project ID is required")
	}

	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		return id, nil
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range projects {
		if strings.EqualFold(p.ProjectNumber, input) {
			return p.ID, nil
		}
	}
	return 0, fmt.Errorf("project not found: %q", input)
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage estimate projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectStatusCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, number, client, company, email, phone, address string
	var taxPct, contingencyPct float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new estimate project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ProjectNumber: strings.ToUpper(number),
				Name:          name,
				ClientName:    client,
				ClientCompany: company,
				ClientEmail:   email,
				ClientPhone:   phone,
				ClientAddress: address,
				Status:        domain.ProjectDraft,
			}
			if cmd.Flags().Changed("tax") {
				p.MaterialTaxRatePct = taxPct
			}
			if cmd.Flags().Changed("contingency") {
				p.ContingencyPct = contingencyPct
			}

			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&number, "number", "", "Project number (e.g. WT-2026-014)")
	cmd.Flags().StringVar(&client, "client", "", "Client contact name")
	cmd.Flags().StringVar(&company, "company", "", "Client company")
	cmd.Flags().StringVar(&email, "email", "", "Client email")
	cmd.Flags().StringVar(&phone, "phone", "", "Client phone")
	cmd.Flags().StringVar(&address, "address", "", "Job site address")
	cmd.Flags().Float64Var(&taxPct, "tax", 0, "Material tax rate percent (default from settings)")
	cmd.Flags().Float64Var(&contingencyPct, "contingency", 0, "Contingency percent (default from settings)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List estimate projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details and pricing breakdown",
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
			rows, err := app.LineItemRepo.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			items := make([]domain.LineItem, len(rows))
			for i, li := range rows {
				items[i] = *li
			}
			terms := pricing.Terms{
				MaterialTaxRatePct: p.MaterialTaxRatePct,
				ContingencyPct:     p.ContingencyPct,
			}
			rollup := pricing.ComputeRollup(items, terms)

			data := formatter.ProjectInspectData{
				Project:   p,
				Rollup:    rollup,
				ItemCount: rollup.ItemCount,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectInspect(data))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, number, client, company, email, phone, address string
	var taxPct, contingencyPct float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
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

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("number") {
				p.ProjectNumber = strings.ToUpper(number)
			}
			if cmd.Flags().Changed("client") {
				p.ClientName = client
			}
			if cmd.Flags().Changed("company") {
				p.ClientCompany = company
			}
			if cmd.Flags().Changed("email") {
				p.ClientEmail = email
			}
			if cmd.Flags().Changed("phone") {
				p.ClientPhone = phone
			}
			if cmd.Flags().Changed("address") {
				p.ClientAddress = address
			}
			if cmd.Flags().Changed("tax") {
				p.MaterialTaxRatePct = taxPct
			}
			if cmd.Flags().Changed("contingency") {
				p.ContingencyPct = contingencyPct
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&number, "number", "", "Project number")
	cmd.Flags().StringVar(&client, "client", "", "Client contact name")
	cmd.Flags().StringVar(&company, "company", "", "Client company")
	cmd.Flags().StringVar(&email, "email", "", "Client email")
	cmd.Flags().StringVar(&phone, "phone", "", "Client phone")
	cmd.Flags().StringVar(&address, "address", "", "Job site address")
	cmd.Flags().Float64Var(&taxPct, "tax", 0, "Material tax rate percent")
	cmd.Flags().Float64Var(&contingencyPct, "contingency", 0, "Contingency percent")

	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set project status (draft|sent|accepted|declined|archived)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.ProjectStatus(strings.ToLower(args[1]))
			if err := app.Projects.SetStatus(ctx, projectID, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %d is now %s\n", projectID, status)
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and all of its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if app.interactive() && !force {
				p, err := app.Projects.GetByID(ctx, projectID)
				if err != nil {
					return err
				}
				ok, err := confirm(fmt.Sprintf("Delete project %q and all of its line items?", p.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, projectID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %d\n", projectID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the archive requirement and confirmation")

	return cmd
}

// confirm shows a yes/no prompt for destructive operations.
func confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

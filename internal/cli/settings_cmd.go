package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/whittech/estimator/internal/cli/formatter"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change company settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show company settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatSettings(cs))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var companyName, address, phone, email, website, terms string
	var laborRate, materialMarkup, laborMarkup, overhead, profit, tax, contingency float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change company settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cs, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("company") {
				cs.CompanyName = companyName
			}
			if cmd.Flags().Changed("address") {
				cs.Address = address
			}
			if cmd.Flags().Changed("phone") {
				cs.Phone = phone
			}
			if cmd.Flags().Changed("email") {
				cs.Email = email
			}
			if cmd.Flags().Changed("website") {
				cs.Website = website
			}
			if cmd.Flags().Changed("terms") {
				cs.ProposalTerms = terms
			}
			if cmd.Flags().Changed("labor-rate") {
				cs.DefaultLaborRate = laborRate
			}
			if cmd.Flags().Changed("material-markup") {
				cs.DefaultMaterialMarkupPct = materialMarkup
			}
			if cmd.Flags().Changed("labor-markup") {
				cs.DefaultLaborMarkupPct = laborMarkup
			}
			if cmd.Flags().Changed("overhead") {
				cs.DefaultOverheadPct = overhead
			}
			if cmd.Flags().Changed("profit") {
				cs.DefaultProfitPct = profit
			}
			if cmd.Flags().Changed("tax") {
				cs.MaterialTaxRatePct = tax
			}
			if cmd.Flags().Changed("contingency") {
				cs.ContingencyPct = contingency
			}

			if err := app.Settings.Update(ctx, cs); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&companyName, "company", "", "Company name")
	cmd.Flags().StringVar(&address, "address", "", "Company address")
	cmd.Flags().StringVar(&phone, "phone", "", "Company phone")
	cmd.Flags().StringVar(&email, "email", "", "Company email")
	cmd.Flags().StringVar(&website, "website", "", "Company website")
	cmd.Flags().StringVar(&terms, "terms", "", "Proposal terms text")
	cmd.Flags().Float64Var(&laborRate, "labor-rate", 0, "Default labor rate per hour")
	cmd.Flags().Float64Var(&materialMarkup, "material-markup", 0, "Default material markup percent")
	cmd.Flags().Float64Var(&laborMarkup, "labor-markup", 0, "Default labor markup percent")
	cmd.Flags().Float64Var(&overhead, "overhead", 0, "Default overhead percent")
	cmd.Flags().Float64Var(&profit, "profit", 0, "Default profit percent")
	cmd.Flags().Float64Var(&tax, "tax", 0, "Material tax rate percent")
	cmd.Flags().Float64Var(&contingency, "contingency", 0, "Contingency percent")

	return cmd
}

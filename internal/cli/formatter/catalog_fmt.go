package formatter

import (
	"fmt"

	"github.com/whittech/estimator/internal/domain"
)

// FormatCatalogList renders catalog entries as a table.
func FormatCatalogList(entries []*domain.MaterialCatalogEntry) string {
	headers := []string{"CATEGORY", "ITEM", "UNIT", "COST", "LABOR HRS", "MFR"}
	rows := make([][]string, 0, len(entries))

	for _, m := range entries {
		mfr := m.Manufacturer
		if mfr == "" {
			mfr = Dim("--")
		}
		rows = append(rows, []string{
			StylePurple.Render(m.Category),
			Bold(m.ItemName),
			Dim(m.Unit),
			StyleGreen.Render(Currency(m.MaterialCost)),
			StyleFg.Render(fmt.Sprintf("%.2f", m.TypicalLaborHours)),
			mfr,
		})
	}

	return RenderBox("Materials", RenderTable(headers, rows))
}

// FormatSettings renders company settings as labeled lines.
func FormatSettings(cs *domain.CompanySettings) string {
	type field struct {
		label string
		value string
	}
	fields := []field{
		{"Company", cs.CompanyName},
		{"Address", cs.Address},
		{"Phone", cs.Phone},
		{"Email", cs.Email},
		{"Website", cs.Website},
		{"Labor rate", Currency(cs.DefaultLaborRate) + "/hr"},
		{"Material markup", fmt.Sprintf("%.2f%%", cs.DefaultMaterialMarkupPct)},
		{"Labor markup", fmt.Sprintf("%.2f%%", cs.DefaultLaborMarkupPct)},
		{"Overhead", fmt.Sprintf("%.2f%%", cs.DefaultOverheadPct)},
		{"Profit", fmt.Sprintf("%.2f%%", cs.DefaultProfitPct)},
		{"Material tax", fmt.Sprintf("%.2f%%", cs.MaterialTaxRatePct)},
		{"Contingency", fmt.Sprintf("%.2f%%", cs.ContingencyPct)},
	}

	var body string
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		body += StyleDim.Render(pad(f.label, 16)) + "  " + StyleFg.Render(f.value) + "\n"
	}
	return RenderBox("Company Settings", body)
}

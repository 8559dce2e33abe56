package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/whittech/estimator/internal/pricing"
)

// FormatRollup renders the pricing breakdown. Zero-valued components are
// hidden; the grand total always reflects the full computation.
func FormatRollup(r pricing.Rollup) string {
	type line struct {
		label  string
		amount float64
	}
	lines := []line{
		{"Material", r.MaterialBase},
		{"Material Markup", r.MaterialMarkup},
		{"Labor", r.LaborBase},
		{"Labor Markup", r.LaborMarkup},
		{"Overhead", r.Overhead},
		{"Profit", r.Profit},
		{"Material Tax", r.MaterialTax},
		{"Contingency", r.Contingency},
	}

	width := 0
	for _, l := range lines {
		if len(l.label) > width {
			width = len(l.label)
		}
	}

	var b strings.Builder
	b.WriteString(Header("Breakdown") + "\n")
	for _, l := range lines {
		if l.amount == 0 {
			continue
		}
		b.WriteString(StyleDim.Render(pad(l.label, width)) + "  " + StyleFg.Render(Currency(l.amount)) + "\n")
	}
	b.WriteString(StyleDim.Render(strings.Repeat("─", width+14)) + "\n")
	b.WriteString(StyleBold.Render(pad("Total", width)) + "  " + StyleGreen.Render(Currency(r.GrandTotal)) + "\n")

	return lipgloss.NewStyle().Render(b.String())
}

// pad right-pads a label before styling so ANSI codes do not break the
// column alignment that %-*s would otherwise provide.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/pricing"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "CLIENT", "STATUS", "TOTAL", "MODIFIED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		client := p.ClientName
		if client == "" {
			client = Dim("--")
		}
		rows = append(rows, []string{
			Dim(p.DisplayID()),
			Bold(p.Name),
			client,
			StatusPill(p.Status),
			StyleGreen.Render(Currency(p.TotalAmount)),
			Dim(HumanTimestamp(p.DateModified)),
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Estimates", table)
}

// ProjectInspectData holds everything the inspect view renders.
type ProjectInspectData struct {
	Project   *domain.Project
	Rollup    pricing.Rollup
	ItemCount int
}

// FormatProjectInspect renders the project metadata next to its pricing
// breakdown.
func FormatProjectInspect(data ProjectInspectData) string {
	left := buildMetadataPanel(data.Project, data.ItemCount)
	right := FormatRollup(data.Rollup)

	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return RenderBox("", combined)
}

func buildMetadataPanel(p *domain.Project, itemCount int) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS"), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID    "), Dim(p.DisplayID())))
	if p.ClientName != "" {
		client := p.ClientName
		if p.ClientCompany != "" {
			client += ", " + p.ClientCompany
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CLIENT"), StyleFg.Render(client)))
	}
	if p.ClientEmail != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EMAIL "), Dim(p.ClientEmail)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ITEMS "), StyleFg.Render(fmt.Sprintf("%d", itemCount))))
	if p.MaterialTaxRatePct > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TAX   "), StyleFg.Render(fmt.Sprintf("%.2f%% (material)", p.MaterialTaxRatePct))))
	}
	if p.ContingencyPct > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CONTGY"), StyleFg.Render(fmt.Sprintf("%.2f%%", p.ContingencyPct))))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("MODIFD"), Dim(HumanTimestamp(p.DateModified))))

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

// Package export renders a priced estimate as a client-facing proposal,
// as PDF or as an Excel workbook.
package export

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/pricing"
)

// ProposalLine is one sell-priced row on the proposal. Internal cost
// structure (markup, hours, rates) never appears on client documents.
type ProposalLine struct {
	Index       string
	Category    string
	Description string
	Qty         float64
	Unit        string
	UnitPrice   float64
	LineTotal   float64
}

// BreakdownLine is one labeled amount in the proposal summary.
type BreakdownLine struct {
	Label  string
	Amount float64
}

// Proposal is everything a renderer needs for one document.
type Proposal struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	ProjectName   string
	ProjectNumber string
	ClientName    string
	ClientCompany string
	ClientAddress string
	Date          string

	Lines []ProposalLine

	// Breakdown omits zero-valued components; GrandTotal always sums the
	// full set regardless.
	Breakdown  []BreakdownLine
	GrandTotal float64

	Terms string
}

// BuildProposal assembles the render-ready document from a project, the
// company identity block, and the priced rows. Rows without a
// description are dropped entirely.
func BuildProposal(project *domain.Project, settings *domain.CompanySettings, items []domain.LineItem) Proposal {
	terms := pricing.Terms{
		MaterialTaxRatePct: project.MaterialTaxRatePct,
		ContingencyPct:     project.ContingencyPct,
	}
	rollup := pricing.ComputeRollup(items, terms)

	p := Proposal{
		CompanyName:    settings.CompanyName,
		CompanyAddress: settings.Address,
		CompanyPhone:   settings.Phone,
		CompanyEmail:   settings.Email,
		ProjectName:    project.Name,
		ProjectNumber:  project.DisplayID(),
		ClientName:     project.ClientName,
		ClientCompany:  project.ClientCompany,
		ClientAddress:  project.ClientAddress,
		Date:           time.Now().Format("January 2, 2006"),
		GrandTotal:     rollup.GrandTotal,
		Terms:          settings.ProposalTerms,
	}

	n := 0
	for _, li := range items {
		if !li.HasDescription() {
			continue
		}
		n++
		b := pricing.ComputeItem(li)
		p.Lines = append(p.Lines, ProposalLine{
			Index:       fmt.Sprintf("%d", n),
			Category:    li.Category,
			Description: li.Description,
			Qty:         li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   pricing.UnitPrice(b, li.Quantity),
			LineTotal:   b.Total,
		})
	}

	p.Breakdown = breakdownLines(rollup)
	return p
}

// breakdownLines flattens the rollup into labeled summary lines,
// dropping components that are zero so the proposal stays uncluttered.
func breakdownLines(r pricing.Rollup) []BreakdownLine {
	all := []BreakdownLine{
		{Label: "Materials", Amount: r.MaterialBase + r.MaterialMarkup},
		{Label: "Labor", Amount: r.LaborBase + r.LaborMarkup},
		{Label: "Overhead", Amount: r.Overhead},
		{Label: "Profit", Amount: r.Profit},
		{Label: "Material Tax", Amount: r.MaterialTax},
		{Label: "Contingency", Amount: r.Contingency},
	}
	lines := make([]BreakdownLine, 0, len(all))
	for _, l := range all {
		if l.Amount == 0 {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// FormatUSD renders an amount as dollars with comma grouping, the way
// the proposal shows every money value.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	out := "$" + grouped.String() + "." + decPart
	if negative {
		out = "-" + out
	}
	return out
}

// formatQty renders whole quantities without decimals, fractional ones
// with two.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}

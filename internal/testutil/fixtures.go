package testutil

import (
	"github.com/whittech/estimator/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectNumber(n string) ProjectOption {
	return func(p *domain.Project) {
		p.ProjectNumber = n
	}
}

func WithTerms(taxPct, contingencyPct float64) ProjectOption {
	return func(p *domain.Project) {
		p.MaterialTaxRatePct = taxPct
		p.ContingencyPct = contingencyPct
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:       name,
		ClientName: "Test Client",
		Status:     domain.ProjectDraft,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LineItem options
type LineItemOption func(*domain.LineItem)

func WithQuantity(q float64) LineItemOption {
	return func(li *domain.LineItem) {
		li.Quantity = q
	}
}

func WithMaterial(cost, markupPct float64) LineItemOption {
	return func(li *domain.LineItem) {
		li.MaterialCost = cost
		li.MaterialMarkupPct = markupPct
	}
}

func WithLabor(hours, rate, markupPct float64) LineItemOption {
	return func(li *domain.LineItem) {
		li.LaborHours = hours
		li.LaborRate = rate
		li.LaborMarkupPct = markupPct
	}
}

func WithOverheadProfit(overheadPct, profitPct float64) LineItemOption {
	return func(li *domain.LineItem) {
		li.OverheadPct = overheadPct
		li.ProfitPct = profitPct
	}
}

func WithSortOrder(n int) LineItemOption {
	return func(li *domain.LineItem) {
		li.SortOrder = n
	}
}

// NewTestLineItem builds a priced line item for the given project.
// Defaults mirror a fresh grid row with markup/overhead/profit zeroed so
// test expectations stay simple arithmetic.
func NewTestLineItem(projectID int64, description string, opts ...LineItemOption) *domain.LineItem {
	li := &domain.LineItem{
		ProjectID:   projectID,
		Category:    "Structured Cabling",
		Description: description,
		Quantity:    1,
		Unit:        "EA",
		LaborRate:   domain.FallbackLaborRate,
	}
	for _, opt := range opts {
		opt(li)
	}
	return li
}

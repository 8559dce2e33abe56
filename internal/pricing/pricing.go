// Package pricing computes line-item totals and the project rollup.
// Everything here is pure: no I/O, no error paths. Percentage or cost
// fields left at zero simply contribute nothing.
package pricing

import "github.com/whittech/estimator/internal/domain"

// ItemBreakdown is the staged computation for one line item. Stages are
// computed in a fixed order so rendered breakdowns match across exports;
// intermediates are kept unrounded.
type ItemBreakdown struct {
	MaterialBase     float64
	MaterialMarkup   float64
	MaterialSubtotal float64
	LaborBase        float64
	LaborMarkup      float64
	LaborSubtotal    float64
	Subtotal         float64
	Overhead         float64
	Profit           float64
	Total            float64
}

// Terms are the project-level adjustments applied after the per-item sums.
type Terms struct {
	MaterialTaxRatePct float64
	ContingencyPct     float64
}

// Rollup is the aggregated pricing breakdown across all counted line
// items plus project-level tax and contingency. Zero-valued components
// stay in the struct (and in every sum); renderers may hide them.
type Rollup struct {
	MaterialBase   float64
	MaterialMarkup float64
	MaterialTax    float64
	LaborBase      float64
	LaborMarkup    float64
	Overhead       float64
	Profit         float64

	// SubtotalPreTax is the sum of item totals before tax and contingency.
	SubtotalPreTax float64
	Contingency    float64
	GrandTotal     float64

	ItemCount int
}

// ComputeItem runs the staged per-item computation. Markup applies to its
// own cost base, overhead to the combined subtotal, and profit to the
// subtotal plus overhead.
func ComputeItem(li domain.LineItem) ItemBreakdown {
	var b ItemBreakdown
	b.MaterialBase = li.Quantity * li.MaterialCost
	b.MaterialMarkup = b.MaterialBase * (li.MaterialMarkupPct / 100)
	b.MaterialSubtotal = b.MaterialBase + b.MaterialMarkup
	b.LaborBase = li.Quantity * li.LaborHours * li.LaborRate
	b.LaborMarkup = b.LaborBase * (li.LaborMarkupPct / 100)
	b.LaborSubtotal = b.LaborBase + b.LaborMarkup
	b.Subtotal = b.MaterialSubtotal + b.LaborSubtotal
	b.Overhead = b.Subtotal * (li.OverheadPct / 100)
	b.Profit = (b.Subtotal + b.Overhead) * (li.ProfitPct / 100)
	b.Total = b.Subtotal + b.Overhead + b.Profit
	return b
}

// ItemTotal is a shorthand for ComputeItem(li).Total.
func ItemTotal(li domain.LineItem) float64 {
	return ComputeItem(li).Total
}

// ComputeRollup aggregates all rows with a non-blank description and
// applies the project terms. Material tax applies to the material
// subtotal only, never labor, overhead, or profit; contingency applies
// to the tax-inclusive grand subtotal.
func ComputeRollup(items []domain.LineItem, terms Terms) Rollup {
	var r Rollup
	var materialSubtotal float64

	for _, li := range items {
		if !li.HasDescription() {
			continue
		}
		b := ComputeItem(li)
		r.MaterialBase += b.MaterialBase
		r.MaterialMarkup += b.MaterialMarkup
		r.LaborBase += b.LaborBase
		r.LaborMarkup += b.LaborMarkup
		r.Overhead += b.Overhead
		r.Profit += b.Profit
		r.SubtotalPreTax += b.Total
		materialSubtotal += b.MaterialSubtotal
		r.ItemCount++
	}

	r.MaterialTax = materialSubtotal * (terms.MaterialTaxRatePct / 100)
	preContingency := r.SubtotalPreTax + r.MaterialTax
	r.Contingency = preContingency * (terms.ContingencyPct / 100)
	r.GrandTotal = preContingency + r.Contingency
	return r
}

// UnitPrice reports the sell price per unit for one row. Rows with zero
// quantity (leftover placeholders in legacy data) report 0 rather than
// dividing by zero.
func UnitPrice(b ItemBreakdown, quantity float64) float64 {
	if quantity == 0 {
		return 0
	}
	return b.Total / quantity
}

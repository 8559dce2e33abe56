// Package importer parses estimate spreadsheets (CSV or XLSX) into line
// items. Column headers are matched against an ordered alias list per
// field, so files exported from other estimating tools load without
// manual renaming.
package importer

import (
	"strings"

	"github.com/whittech/estimator/internal/domain"
)

// Record is one spreadsheet data row keyed by normalized column header.
type Record map[string]string

// fieldAliases maps each canonical line-item field to the header names
// accepted for it, consulted in order: the canonical name first, then
// aliases. Header normalization (lower case, trimmed, " *" suffix
// stripped, spaces collapsed to underscores) happens before lookup.
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{domain.FieldDescription, []string{"desc", "item", "item_description", "item_name", "scope", "name"}},
	{domain.FieldCategory, []string{"trade", "division"}},
	{domain.FieldQuantity, []string{"qty", "count"}},
	{domain.FieldUnit, []string{"uom", "unit_of_measure"}},
	{domain.FieldMaterialCost, []string{"unit_cost", "unit_price", "material"}},
	{domain.FieldMaterialMarkupPct, []string{"material_markup", "markup_percent", "markup"}},
	{domain.FieldLaborHours, []string{"hours", "man_hours"}},
	{domain.FieldLaborRate, []string{"rate"}},
	{domain.FieldLaborMarkupPct, []string{"labor_markup"}},
	{domain.FieldOverheadPct, []string{"overhead"}},
	{domain.FieldProfitPct, []string{"profit", "margin"}},
	{domain.FieldSpecURL, []string{"spec", "link", "url"}},
	{domain.FieldNotes, []string{"comments", "remarks"}},
}

// NormalizeHeader canonicalizes a raw column header for alias lookup.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimSuffix(h, " *")
	h = strings.TrimSuffix(h, "*")
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, "%", "")
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, " ", "_")
	return h
}

// lookup resolves one canonical field from a record: exact canonical
// name first, then each alias in order. The second return reports
// whether any header matched.
func lookup(rec Record, field string, aliases []string) (string, bool) {
	if v, ok := rec[field]; ok {
		return v, true
	}
	for _, a := range aliases {
		if v, ok := rec[a]; ok {
			return v, true
		}
	}
	return "", false
}

// MapRecord converts a spreadsheet row into a line item for projectID.
// Fields without a matching header keep the project/company default (or
// the hard fallback). Returns ok=false when the record has no usable
// description; such records are skipped, never errors.
func MapRecord(rec Record, projectID int64, defaults domain.RowDefaults) (domain.LineItem, bool) {
	li := domain.NewRow(projectID, defaults)

	for _, fa := range fieldAliases {
		raw, found := lookup(rec, fa.field, fa.aliases)
		if !found {
			continue
		}
		li = li.WithField(fa.field, raw)
	}

	if !li.HasDescription() {
		return domain.LineItem{}, false
	}
	return li, true
}

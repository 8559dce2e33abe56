package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Hard fallbacks used when company settings carry no value.
const (
	FallbackLaborRate   = 75.0
	FallbackOverheadPct = 10.0
	FallbackProfitPct   = 10.0
	FallbackUnit        = "EA"
)

// Field keys accepted by LineItem.WithField. They match the column names
// of the line_items table so grid columns, import headers, and SQL all
// speak the same vocabulary.
const (
	FieldCategory          = "category"
	FieldDescription       = "description"
	FieldQuantity          = "quantity"
	FieldUnit              = "unit"
	FieldMaterialCost      = "material_cost"
	FieldMaterialMarkupPct = "material_markup_percent"
	FieldLaborHours        = "labor_hours"
	FieldLaborRate         = "labor_rate"
	FieldLaborMarkupPct    = "labor_markup_percent"
	FieldOverheadPct       = "overhead_percent"
	FieldProfitPct         = "profit_percent"
	FieldSpecURL           = "spec_url"
	FieldNotes             = "notes"
)

// numericFields is the set of keys WithField coerces to non-negative numbers.
var numericFields = map[string]bool{
	FieldQuantity:          true,
	FieldMaterialCost:      true,
	FieldMaterialMarkupPct: true,
	FieldLaborHours:        true,
	FieldLaborRate:         true,
	FieldLaborMarkupPct:    true,
	FieldOverheadPct:       true,
	FieldProfitPct:         true,
}

// LineItem is one priced unit of work on an estimate. ID is the persisted
// database key; it is zero until the row has been written once.
type LineItem struct {
	ID        int64
	ProjectID int64
	SortOrder int

	Category    string
	Description string
	Quantity    float64
	Unit        string

	MaterialCost      float64
	MaterialMarkupPct float64
	LaborHours        float64
	LaborRate         float64
	LaborMarkupPct    float64
	OverheadPct       float64
	ProfitPct         float64

	SpecURL string
	Notes   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RowDefaults holds the project/company defaults applied to fresh rows.
type RowDefaults struct {
	Category          string
	Unit              string
	LaborRate         float64
	MaterialMarkupPct float64
	LaborMarkupPct    float64
	OverheadPct       float64
	ProfitPct         float64
}

// FallbackRowDefaults returns the hard-coded defaults used when no
// company settings are available.
func FallbackRowDefaults() RowDefaults {
	return RowDefaults{
		Unit:        FallbackUnit,
		LaborRate:   FallbackLaborRate,
		OverheadPct: FallbackOverheadPct,
		ProfitPct:   FallbackProfitPct,
	}
}

// NewRow returns a blank line item for the given project with defaults
// applied. It never touches storage; a row only becomes persistable once
// it has a non-blank description.
func NewRow(projectID int64, d RowDefaults) LineItem {
	return LineItem{
		ProjectID:         projectID,
		Category:          d.Category,
		Quantity:          1,
		Unit:              CoalesceStr(d.Unit, FallbackUnit),
		LaborRate:         NonZeroOr(d.LaborRate, FallbackLaborRate),
		MaterialMarkupPct: d.MaterialMarkupPct,
		LaborMarkupPct:    d.LaborMarkupPct,
		OverheadPct:       NonZeroOr(d.OverheadPct, FallbackOverheadPct),
		ProfitPct:         NonZeroOr(d.ProfitPct, FallbackProfitPct),
	}
}

// HasDescription reports whether the row counts for persistence and
// pricing. Placeholder rows with a blank description are invisible to both.
func (li LineItem) HasDescription() bool {
	return strings.TrimSpace(li.Description) != ""
}

// WithField returns a copy of the row with one field set from raw user
// input. Numeric fields are coerced with CoerceNumber; all other known
// keys store the raw string unchanged. Unknown keys are ignored.
func (li LineItem) WithField(key, raw string) LineItem {
	if numericFields[key] {
		n := CoerceNumber(raw)
		switch key {
		case FieldQuantity:
			li.Quantity = n
		case FieldMaterialCost:
			li.MaterialCost = n
		case FieldMaterialMarkupPct:
			li.MaterialMarkupPct = n
		case FieldLaborHours:
			li.LaborHours = n
		case FieldLaborRate:
			li.LaborRate = n
		case FieldLaborMarkupPct:
			li.LaborMarkupPct = n
		case FieldOverheadPct:
			li.OverheadPct = n
		case FieldProfitPct:
			li.ProfitPct = n
		}
		return li
	}

	switch key {
	case FieldCategory:
		li.Category = raw
	case FieldDescription:
		li.Description = raw
	case FieldUnit:
		li.Unit = raw
	case FieldSpecURL:
		li.SpecURL = raw
	case FieldNotes:
		li.Notes = raw
	}
	return li
}

// Field returns the current value of a field as a string, the inverse of
// WithField for grid display.
func (li LineItem) Field(key string) string {
	switch key {
	case FieldCategory:
		return li.Category
	case FieldDescription:
		return li.Description
	case FieldQuantity:
		return formatNumber(li.Quantity)
	case FieldUnit:
		return li.Unit
	case FieldMaterialCost:
		return formatNumber(li.MaterialCost)
	case FieldMaterialMarkupPct:
		return formatNumber(li.MaterialMarkupPct)
	case FieldLaborHours:
		return formatNumber(li.LaborHours)
	case FieldLaborRate:
		return formatNumber(li.LaborRate)
	case FieldLaborMarkupPct:
		return formatNumber(li.LaborMarkupPct)
	case FieldOverheadPct:
		return formatNumber(li.OverheadPct)
	case FieldProfitPct:
		return formatNumber(li.ProfitPct)
	case FieldSpecURL:
		return li.SpecURL
	case FieldNotes:
		return li.Notes
	}
	return ""
}

// CoerceNumber turns raw user input into a finite non-negative float64.
// Anything unparseable, non-finite, or negative becomes 0. Currency
// punctuation ("$1,250.00") is tolerated since import files carry it.
func CoerceNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

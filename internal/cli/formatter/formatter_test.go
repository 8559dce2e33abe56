package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/pricing"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatProjectList(t *testing.T) {
	projects := []*domain.Project{
		{
			ID:           1,
			Name:         "Office Buildout",
			ClientName:   "Dana Reyes",
			Status:       domain.ProjectDraft,
			TotalAmount:  12500.50,
			DateModified: time.Now(),
		},
		{
			ID:            2,
			ProjectNumber: "WT-2026-002",
			Name:          "Warehouse Cameras",
			Status:        domain.ProjectSent,
			DateModified:  time.Now().Add(-48 * time.Hour),
		},
	}

	out := stripANSI(FormatProjectList(projects))
	assert.Contains(t, out, "ESTIMATES")
	assert.Contains(t, out, "Office Buildout")
	assert.Contains(t, out, "$12,500.50")
	assert.Contains(t, out, "WT-2026-002")
	assert.Contains(t, out, "● Sent")
	assert.Contains(t, out, "#1", "projects without a number fall back to the numeric id")
}

func TestFormatRollup_HidesZeroComponents(t *testing.T) {
	r := pricing.ComputeRollup([]domain.LineItem{
		{Description: "materials only", Quantity: 2, MaterialCost: 100},
	}, pricing.Terms{})

	out := stripANSI(FormatRollup(r))
	assert.Contains(t, out, "Material")
	assert.Contains(t, out, "$200.00")
	assert.NotContains(t, out, "Labor")
	assert.NotContains(t, out, "Overhead")
	assert.NotContains(t, out, "Contingency")
	assert.Contains(t, out, "Total")
}

func TestFormatRollup_FullBreakdown(t *testing.T) {
	r := pricing.ComputeRollup([]domain.LineItem{
		{
			Description:       "full stack",
			Quantity:          1,
			MaterialCost:      20,
			MaterialMarkupPct: 10,
			LaborHours:        1,
			LaborRate:         50,
			OverheadPct:       10,
			ProfitPct:         10,
		},
	}, pricing.Terms{MaterialTaxRatePct: 8, ContingencyPct: 5})

	out := stripANSI(FormatRollup(r))
	for _, label := range []string{"Material", "Material Markup", "Labor", "Overhead", "Profit", "Material Tax", "Contingency", "Total"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "$93.32", "grand total rendered to cents")
}

func TestFormatProjectInspect(t *testing.T) {
	data := ProjectInspectData{
		Project: &domain.Project{
			ID:                 3,
			Name:               "Clinic Access Control",
			ClientName:         "Dr. Okafor",
			Status:             domain.ProjectAccepted,
			MaterialTaxRatePct: 8.25,
			DateModified:       time.Now(),
		},
		Rollup:    pricing.ComputeRollup([]domain.LineItem{{Description: "x", Quantity: 1, MaterialCost: 50}}, pricing.Terms{}),
		ItemCount: 1,
	}

	out := stripANSI(FormatProjectInspect(data))
	assert.Contains(t, out, "Clinic Access Control")
	assert.Contains(t, out, "Dr. Okafor")
	assert.Contains(t, out, "8.25% (material)")
	assert.Contains(t, out, "BREAKDOWN")
}

func TestFormatCatalogList(t *testing.T) {
	entries := []*domain.MaterialCatalogEntry{
		{Category: "Structured Cabling", ItemName: "Cat6 Keystone Jack", Unit: "EA", MaterialCost: 4.25, TypicalLaborHours: 0.1},
	}
	out := stripANSI(FormatCatalogList(entries))
	assert.Contains(t, out, "MATERIALS")
	assert.Contains(t, out, "Cat6 Keystone Jack")
	assert.Contains(t, out, "$4.25")
}

func TestFormatSettings_SkipsEmptyFields(t *testing.T) {
	cs := &domain.CompanySettings{
		CompanyName:        "WhitTech.AI",
		DefaultLaborRate:   75,
		DefaultOverheadPct: 10,
		DefaultProfitPct:   10,
	}
	out := stripANSI(FormatSettings(cs))
	assert.Contains(t, out, "WhitTech.AI")
	assert.Contains(t, out, "$75.00/hr")
	assert.NotContains(t, out, "Website")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "LONG HEADER"},
		[][]string{{"short", "x"}, {"longer cell", "y"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.True(t, strings.HasPrefix(lines[0], "A"))
}

func TestHumanTimestamp(t *testing.T) {
	assert.Equal(t, "Just now", HumanTimestamp(time.Now()))
	assert.Equal(t, "5m ago", HumanTimestamp(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", HumanTimestamp(time.Now().Add(-3*time.Hour)))
}

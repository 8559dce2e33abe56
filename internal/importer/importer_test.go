package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whittech/estimator/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Description":     "description",
		"  Unit Cost  ":   "unit_cost",
		"Description *":   "description",
		"Markup %":        "markup",
		"LABOR HOURS":     "labor_hours",
		"Qty":             "qty",
		"unit_of_measure": "unit_of_measure",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeHeader(raw), "header %q", raw)
	}
}

func TestMapRecord_AliasResolution(t *testing.T) {
	rec := Record{
		"item":      "Install door contact",
		"trade":     "Intrusion Detection",
		"qty":       "4",
		"unit_cost": "$22.50",
		"hours":     "0.75",
		"rate":      "95",
	}

	li, ok := MapRecord(rec, 7, domain.FallbackRowDefaults())
	require.True(t, ok)
	assert.Equal(t, int64(7), li.ProjectID)
	assert.Equal(t, "Install door contact", li.Description)
	assert.Equal(t, "Intrusion Detection", li.Category)
	assert.Equal(t, 4.0, li.Quantity)
	assert.Equal(t, 22.5, li.MaterialCost)
	assert.Equal(t, 0.75, li.LaborHours)
	assert.Equal(t, 95.0, li.LaborRate)
}

func TestMapRecord_CanonicalBeatsAlias(t *testing.T) {
	rec := Record{
		"description": "canonical wins",
		"item":        "alias loses",
	}
	li, ok := MapRecord(rec, 1, domain.FallbackRowDefaults())
	require.True(t, ok)
	assert.Equal(t, "canonical wins", li.Description)
}

func TestMapRecord_CanonicalHeadersResolve(t *testing.T) {
	// Canonical names are matched before the alias lists are consulted,
	// so the lists never need to repeat them.
	rec := Record{
		"description":   "canonical headers",
		"material_cost": "40",
		"labor_hours":   "1.5",
		"labor_rate":    "80",
	}
	li, ok := MapRecord(rec, 1, domain.FallbackRowDefaults())
	require.True(t, ok)
	assert.Equal(t, 40.0, li.MaterialCost)
	assert.Equal(t, 1.5, li.LaborHours)
	assert.Equal(t, 80.0, li.LaborRate)
}

func TestMapRecord_DefaultsFillMissingColumns(t *testing.T) {
	rec := Record{"description": "just a description"}
	li, ok := MapRecord(rec, 1, domain.FallbackRowDefaults())
	require.True(t, ok)
	assert.Equal(t, 1.0, li.Quantity)
	assert.Equal(t, "EA", li.Unit)
	assert.Equal(t, domain.FallbackLaborRate, li.LaborRate)
	assert.Equal(t, domain.FallbackOverheadPct, li.OverheadPct)
	assert.Equal(t, domain.FallbackProfitPct, li.ProfitPct)
}

func TestMapRecord_BlankDescriptionSkipped(t *testing.T) {
	_, ok := MapRecord(Record{"description": "   ", "qty": "5"}, 1, domain.FallbackRowDefaults())
	assert.False(t, ok)

	_, ok = MapRecord(Record{"qty": "5"}, 1, domain.FallbackRowDefaults())
	assert.False(t, ok, "record with no description column at all")
}

func TestMapRecord_GarbageNumbersCoerceToZero(t *testing.T) {
	rec := Record{
		"description": "bad numbers",
		"qty":         "lots",
		"unit_cost":   "-12",
	}
	li, ok := MapRecord(rec, 1, domain.FallbackRowDefaults())
	require.True(t, ok)
	assert.Zero(t, li.Quantity)
	assert.Zero(t, li.MaterialCost)
}

func TestParseCSV(t *testing.T) {
	csvData := strings.Join([]string{
		`Description *,Qty,Unit,Unit Cost,Hours`,
		`Cat6 drop,24,EA,"12.50",0.5`,
		`,,,,`,
		`Patch panel,2,EA,145,1`,
		`short row,3`,
	}, "\n")

	records, err := ParseCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Cat6 drop", records[0]["description"])
	assert.Equal(t, "12.50", records[0]["unit_cost"])
	assert.Equal(t, "", records[1]["description"])
	assert.Equal(t, "Patch panel", records[2]["description"])
	assert.Equal(t, "", records[3]["unit"], "short rows pad with empty cells")
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Item", "Qty", "Material Cost", "Labor Hours"},
		{"Camera license", 16, 120, 0.25},
		{"", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	records, err := ParseWorkbook(&buf)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, "Camera license", records[0]["item"])
	assert.Equal(t, "16", records[0]["qty"])

	li, ok := MapRecord(records[0], 3, domain.FallbackRowDefaults())
	require.True(t, ok)
	assert.Equal(t, "Camera license", li.Description)
	assert.Equal(t, 16.0, li.Quantity)
	assert.Equal(t, 120.0, li.MaterialCost)
}

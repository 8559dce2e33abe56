package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel renders the proposal as an xlsx workbook and returns the
// file bytes.
func GenerateExcel(p Proposal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := p.ProjectName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 48, 10, 8, 14, 14}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}
	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}
	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// Header block: company, proposal title, client, date.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeCell(p.CompanyName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge project: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Proposal: "+sanitizeCell(p.ProjectName)+" ("+p.ProjectNumber+")")
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge client: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Prepared for: "+sanitizeCell(p.ClientName)+"    Date: "+p.Date)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// Column headers on row 5.
	headers := []string{"#", "Description", "Qty", "Unit", "Unit Price", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	row := 6
	for _, l := range p.Lines {
		rowStr := fmt.Sprintf("%d", row)
		desc := l.Description
		if l.Category != "" {
			desc += " (" + l.Category + ")"
		}
		f.SetCellValue(sheetName, "A"+rowStr, l.Index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeCell(desc))
		f.SetCellValue(sheetName, "C"+rowStr, l.Qty)
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeCell(l.Unit))
		f.SetCellValue(sheetName, "E"+rowStr, FormatUSD(l.UnitPrice))
		f.SetCellValue(sheetName, "F"+rowStr, FormatUSD(l.LineTotal))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, lineStyle)
		row++
	}

	// Summary block, one row per non-zero component, then the total.
	row++
	for _, l := range p.Breakdown {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "E"+rowStr, l.Label+":")
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "F"+rowStr, FormatUSD(l.Amount))
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryValueStyle)
		row++
	}
	rowStr := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "E"+rowStr, "Total:")
	f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, summaryLabelStyle)
	f.SetCellValue(sheetName, "F"+rowStr, FormatUSD(p.GrandTotal))
	f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryValueStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeCell prefixes characters Excel would treat as a formula start
// so imported descriptions cannot inject formulas.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}

package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ParseCSV reads a CSV estimate file: one header row, then data rows.
// Rows shorter than the header are padded with empty cells.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("file must contain a header row")
	}

	return rowsToRecords(allRows[0], allRows[1:]), nil
}

// rowsToRecords keys each data row by its normalized header. Cells under
// unrecognized headers are kept; MapRecord simply never consults them.
func rowsToRecords(headers []string, dataRows [][]string) []Record {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	records := make([]Record, 0, len(dataRows))
	for _, row := range dataRows {
		rec := make(Record, len(normalized))
		for i, key := range normalized {
			if key == "" {
				continue
			}
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

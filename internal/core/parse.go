package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SupportedExtensions lists the upload file types ParseFile accepts.
var SupportedExtensions = []string{".csv", ".xlsx", ".xls"}

// ParseFile reads an uploaded CSV or spreadsheet into raw rows. The first
// non-empty row is the header; fully empty rows are skipped. Any failure
// wraps ErrParse and aborts the batch.
func ParseFile(name string, data []byte) ([]RawRow, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if len(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))) == 0 {
		return nil, ParseError("empty file")
	}

	switch ext {
	case ".csv":
		return parseCSV(data)
	case ".xlsx", ".xls":
		return parseWorkbook(data)
	default:
		return nil, ParseError("unsupported file type %q", ext)
	}
}

func parseCSV(data []byte) ([]RawRow, error) {
	r := csv.NewReader(NewCSVSource(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, ParseError("read csv: %v", err)
	}
	return rowsFromTable(records)
}

// parseWorkbook reads the first sheet. Legacy binary .xls workbooks are not
// readable and fail as corrupt.
func parseWorkbook(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ParseError("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ParseError("empty file: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ParseError("read sheet %q: %v", sheets[0], err)
	}
	return rowsFromTable(rows)
}

// rowsFromTable keys each data row by the header row.
func rowsFromTable(table [][]string) ([]RawRow, error) {
	headerAt := -1
	for i, rec := range table {
		if !blankRecord(rec) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, ParseError("empty file")
	}

	header := make([]string, len(table[headerAt]))
	for i, h := range table[headerAt] {
		header[i] = CleanCell(h)
	}

	var rows []RawRow
	for _, rec := range table[headerAt+1:] {
		if blankRecord(rec) {
			continue
		}
		row := make(RawRow, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if _, dup := row[h]; dup {
				continue
			}
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ParseError("empty file: no data rows")
	}
	return rows, nil
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// webhookKeys are tried in order for the row array. A body that is
// itself an array sits between "rows" and "validData" in priority; an
// object body can never also be an array, so it is handled by type.
var webhookKeys = []string{"data", "rows", "validData"}

// ParseWebhook extracts rows from an integration payload. The array is
// looked for under "data", then "rows", then as the body itself, then under
// "validData". Numbers keep their literal digits.
func ParseWebhook(body []byte) ([]RawRow, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, ParseError("decode webhook body: %v", err)
	}

	var items []any
	switch p := payload.(type) {
	case []any:
		items = p
	case map[string]any:
		for _, key := range webhookKeys {
			if arr, ok := p[key].([]any); ok {
				items = arr
				break
			}
		}
	}

	if len(items) == 0 {
		return nil, ParseError("no rows to import")
	}

	rows := make([]RawRow, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, ParseError("row %d is not an object", i+1)
		}
		rows[i] = RawRow(obj)
	}
	return rows, nil
}

// ValidateExtension rejects file names ParseFile cannot read.
func ValidateExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range SupportedExtensions {
		if ext == s {
			return nil
		}
	}
	return ParseError("unsupported file type %q", ext)
}

package core

// export.go flattens typed values back into bilingual tabular output.
//
// Anything with a Values() map can be exported. Each requested field key
// is looked up in that map and rendered by FormatValue; the header row uses
// the Arabic label when one exists. An empty record set still produces the
// header row.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportFormat selects the output encoding.
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// ParseExportFormat maps a query value to a format. Empty selects def.
func ParseExportFormat(s string, def ExportFormat) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Extension returns the file extension for the format, with the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatExcel:
		return ".xlsx"
	default:
		return ".json"
	}
}

// ExportFilename builds "<name>-export-YYYY-MM-DD<ext>".
func ExportFilename(name string, f ExportFormat, at time.Time) string {
	return fmt.Sprintf("%s-export-%s%s", name, at.Format("2006-01-02"), f.Extension())
}

// Exportable is anything that exposes flat export values.
type Exportable interface {
	Values() map[string]any
}

// Table is a header row plus string rows, built once per export call.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Headers returns the display header for each field.
// label may be nil, in which case HeaderLabel is used.
func Headers(fields []string, label func(string) string) []string {
	if label == nil {
		label = HeaderLabel
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = label(f)
	}
	return out
}

// Flatten renders rec's requested fields in order.
func Flatten(rec Exportable, fields []string) []string {
	values := rec.Values()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = FormatValue(values[f])
	}
	return out
}

// BuildTable flattens records into a table.
func BuildTable[T Exportable](records []T, fields []string, label func(string) string) *Table {
	t := &Table{
		Headers: Headers(fields, label),
		Rows:    make([][]string, 0, len(records)),
	}
	for _, rec := range records {
		t.Rows = append(t.Rows, Flatten(rec, fields))
	}
	return t
}

// Localized yes/no tokens for boolean cells.
const (
	BoolYes = "نعم"
	BoolNo  = "لا"
)

// FormatValue stringifies one export cell.
//
//   - client references render as the client's name, falling back to the
//     national ID and then the internal ID
//   - lists join with ", "
//   - dates render as YYYY-MM-DD; a zero date is empty
//   - booleans render as نعم / لا
//   - nil renders as ""
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case ClientRef:
		return clientLabel(t)
	case *ClientRef:
		if t == nil {
			return ""
		}
		return clientLabel(*t)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := FormatValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil {
			return ""
		}
		return FormatValue(*t)
	case bool:
		if t {
			return BoolYes
		}
		return BoolNo
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func clientLabel(c ClientRef) string {
	switch {
	case c.Name != "":
		return c.Name
	case c.NationalID != "":
		return c.NationalID
	default:
		return c.ID
	}
}

// utf8BOM lets spreadsheet programs detect UTF-8 and render Arabic text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes t as UTF-8 CSV with a byte order mark.
// The header row is always written.
func WriteCSV(w io.Writer, t *Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// MinColumnWidth is the narrowest spreadsheet column written on export.
const MinColumnWidth = 15

// WriteExcel writes t as a single-sheet workbook with a bold, frozen header row.
func WriteExcel(w io.Writer, t *Table, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if len([]rune(sheet)) > 31 {
		sheet = string([]rune(sheet)[:31])
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0EBF5"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	for i, h := range t.Headers {
		width := max(utf8.RuneCountInString(h), MinColumnWidth)
		if err := sw.SetColWidth(i+1, i+1, float64(width)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

package core

// convert.go turns loose cell values into typed values.
//
// These functions handle the messy reality of spreadsheets filled in by hand:
//   - Many date spellings (ISO, numeric, textual, "24-Aug" without a year,
//     spreadsheet serial day numbers)
//   - Thousands separators and Arabic-Indic digits in numbers
//   - Bilingual yes/no and enum tokens
//   - Excel formula prefixes (="value") and stray quotes
//
// Numeric and enum coercers never fail; they fall back to zero or the
// caller's default. Only RequiredDate returns an error.

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// serialDayRegex matches a bare spreadsheet serial day number.
var serialDayRegex = regexp.MustCompile(`^\d{2,5}(\.\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
// Month-first numeric layouts precede day-first ones, so "03/04/2024" is
// March 4 while "24/08/2024" still parses as August 24.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "2/1/06", "02/01/06", "1.2.06", "2-Jan-06",
	}
	fourDigitYearLayouts = []string{
		time.RFC3339, time.RFC3339Nano,
		"2006-01-02T15:04:05", "2006-01-02T15:04:05.000Z", "2006-01-02 15:04:05",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "2/1/2006", "02/01/2006",
		"01-02-2006", "02-01-2006", "1.2.2006", "2.1.2006",
		"Jan 2, 2006", "January 2, 2006", "2 Jan 2006", "2 January 2006",
		"2-Jan-2006", "2-January-2006", "Mon, 02 Jan 2006", "Mon Jan 2 2006",
		"20060102",
	}
	// dayMonthLayouts lack a year; the current year is filled in.
	dayMonthLayouts = []string{
		"2-Jan", "2 Jan", "2/Jan", "2-January", "2 January", "Jan-2", "Jan 2",
	}
)

// ParseDate converts a cell value to a date. now supplies the year for
// "24-Aug" style values. The second result is false when v is absent or
// cannot be parsed.
func ParseDate(v any, now time.Time) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case float64:
		return excelSerialDate(t)
	case int:
		return excelSerialDate(float64(t))
	case int64:
		return excelSerialDate(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return excelSerialDate(f)
	}

	s := CleanCell(normalizeDigits(Stringify(v)))
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := now.Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	for _, layout := range dayMonthLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if d.Day() != t.Day() {
			// Feb 29 in a non-leap year
			return time.Time{}, false
		}
		return d, true
	}

	if serialDayRegex.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return excelSerialDate(f)
		}
	}

	return time.Time{}, false
}

// excelSerialDate converts a spreadsheet serial day number (1900 system).
func excelSerialDate(f float64) (time.Time, bool) {
	if f < 1 || f > 2958465 || math.IsNaN(f) {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayAfter returns midnight at the start of the day after t. Inclusive end
// dates filter timestamps with "before DayAfter(end)".
func DayAfter(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// OptionalDate parses v, falling back to now when absent or unparseable.
func OptionalDate(v any, now time.Time) time.Time {
	if t, ok := ParseDate(v, now); ok {
		return t
	}
	return now
}

// RequiredDate parses a date that a record cannot exist without.
// Absent values fail with ErrFieldMissing, unparseable ones with ErrInvalidDate.
func RequiredDate(field string, v any, now time.Time) (time.Time, error) {
	if !present(v) {
		return time.Time{}, NewFieldError(field, "", ErrFieldMissing)
	}
	t, ok := ParseDate(v, now)
	if !ok {
		return time.Time{}, NewFieldError(field, Stringify(v), ErrInvalidDate)
	}
	return t, nil
}

// ToFloat coerces v to a float64. Absent or non-numeric input yields 0.
func ToFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case bool:
		return 0
	}

	s := cleanNumber(Stringify(v))
	if !numericRegex.MatchString(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// ToInt coerces v to an int, truncating any fraction. Absent or
// non-numeric input yields 0.
func ToInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case int32:
		return int(t)
	}
	f := ToFloat(v)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// cleanNumber strips separators and converts Arabic-Indic digits.
func cleanNumber(s string) string {
	s = normalizeDigits(CleanCell(s))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "٬", "") // Arabic thousands separator
	s = strings.ReplaceAll(s, "٫", ".") // Arabic decimal separator
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// normalizeDigits maps Arabic-Indic (U+0660..) and Extended Arabic-Indic
// (U+06F0..) digits to ASCII.
func normalizeDigits(s string) string {
	if isASCII(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		}
		return r
	}, s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// EnumMap maps bilingual input tokens to a canonical value. Keys are
// compared after case folding, so they may be written in any case.
type EnumMap map[string]string

// Lookup returns the canonical value for a token.
func (m EnumMap) Lookup(token string) (string, bool) {
	key := FoldKey(token)
	if key == "" {
		return "", false
	}
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if FoldKey(k) == key {
			return v, true
		}
	}
	return "", false
}

// NormalizeEnum maps v through m, returning def for absent or unknown tokens.
func NormalizeEnum(v any, m EnumMap, def string) string {
	if canonical, ok := m.Lookup(CleanCell(Stringify(v))); ok {
		return canonical
	}
	return def
}

// NormalizeBool maps yes/true/نعم to true and everything else to false.
func NormalizeBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	}
	switch FoldKey(CleanCell(Stringify(v))) {
	case "yes", "true", "y", "1", "نعم":
		return true
	default:
		return false
	}
}

// SplitList splits a comma-delimited value into trimmed, non-empty items.
// Absent input yields an empty, non-nil slice.
func SplitList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case nil:
		return out
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(Stringify(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	s := strings.ReplaceAll(Stringify(v), "،", ",") // Arabic comma
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PadNationalID left-pads a numeric identity with zeros to MinNationalIDLength.
func PadNationalID(id string) string {
	id = strings.TrimSpace(normalizeDigits(id))
	if n := MinNationalIDLength - len(id); n > 0 {
		return strings.Repeat("0", n) + id
	}
	return id
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

package core

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

var convertNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

// ----------------------------------------------------------------------------
// ParseDate Tests
// ----------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		wantOK bool
		want   string // YYYY-MM-DD
	}{
		// ISO and timestamps
		{"iso date", "2025-08-24", true, "2025-08-24"},
		{"iso timestamp", "2025-08-24T10:30:00Z", true, "2025-08-24"},
		{"iso with space", "2025-08-24 10:30:00", true, "2025-08-24"},
		{"slashed iso", "2025/08/24", true, "2025-08-24"},
		{"compact", "20250824", true, "2025-08-24"},

		// Numeric four-digit year
		{"month first", "8/24/2025", true, "2025-08-24"},
		{"month first ambiguous", "03/04/2024", true, "2024-03-04"},
		{"day first when month first is impossible", "24/08/2024", true, "2024-08-24"},
		{"dotted day first", "24.8.2025", true, "2025-08-24"},

		// Textual
		{"month name", "Aug 24, 2025", true, "2025-08-24"},
		{"day month year", "24 August 2025", true, "2025-08-24"},
		{"day-mon-year", "24-Aug-2025", true, "2025-08-24"},

		// Two-digit years
		{"two digit year", "8/24/25", true, "2025-08-24"},
		{"two digit year past pivot", "1/2/50", true, "1950-01-02"},

		// Day-month without year
		{"day-mon", "24-Aug", true, "2025-08-24"},
		{"day mon", "3 Mar", true, "2025-03-03"},
		{"mon day", "Jun 22", true, "2025-06-22"},
		{"feb 29 in common year", "29-Feb", false, ""},

		// Arabic-Indic digits
		{"arabic digits", "٢٠٢٥-٠٨-٢٤", true, "2025-08-24"},

		// Spreadsheet serials
		{"serial number float", 45000.0, true, "2023-03-15"},
		{"serial number string", "45000", true, "2023-03-15"},
		{"serial json number", json.Number("45000"), true, "2023-03-15"},

		// Typed
		{"time value", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), true, "2025-01-02"},

		// Invalid
		{"nil", nil, false, ""},
		{"empty", "", false, ""},
		{"whitespace", "   ", false, ""},
		{"garbage", "not a date", false, ""},
		{"invalid month", "2025-13-01", false, ""},
		{"zero time", time.Time{}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input, convertNow)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if s := got.Format("2006-01-02"); s != tt.want {
				t.Errorf("ParseDate(%v) = %s, want %s", tt.input, s, tt.want)
			}
		})
	}
}

func TestParseDate_DayMonthUsesCurrentYear(t *testing.T) {
	leap := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	got, ok := ParseDate("29-Feb", leap)
	if !ok {
		t.Fatal("29-Feb should parse in a leap year")
	}
	if got.Year() != 2024 || got.Month() != time.February || got.Day() != 29 {
		t.Errorf("got %v", got)
	}
}

func TestRequiredDate(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr error
	}{
		{"valid", "2025-08-24", nil},
		{"missing", nil, ErrFieldMissing},
		{"blank", "  ", ErrFieldMissing},
		{"invalid", "someday", ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RequiredDate("date", tt.input, convertNow)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got := errorField(err); got != "date" {
				t.Errorf("field = %q, want date", got)
			}
		})
	}
}

func TestOptionalDate(t *testing.T) {
	if got := OptionalDate("junk", convertNow); !got.Equal(convertNow) {
		t.Errorf("OptionalDate(junk) = %v, want now", got)
	}
	if got := OptionalDate("2025-01-01", convertNow); got.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("OptionalDate = %v", got)
	}
}

// ----------------------------------------------------------------------------
// Numeric Tests
// ----------------------------------------------------------------------------

func TestToFloat(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"integer string", "42", 42},
		{"decimal string", "24.7136", 24.7136},
		{"thousands separator", "1,234.5", 1234.5},
		{"arabic digits", "١٢٣", 123},
		{"arabic decimal separator", "٣٫٥", 3.5},
		{"arabic thousands separator", "١٬٢٣٤", 1234},
		{"excel formula", `="12"`, 12},
		{"quoted", `"7"`, 7},
		{"negative", "-3", -3},
		{"float", 2.5, 2.5},
		{"int", 9, 9},
		{"json number", json.Number("7"), 7},
		{"bool", true, 0},
		{"nil", nil, 0},
		{"empty", "", 0},
		{"text", "abc", 0},
		{"nan text", "NaN", 0},
		{"trailing text", "12kg", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFloat(tt.input); got != tt.want {
				t.Errorf("ToFloat(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"string", "15", 15},
		{"truncates", "12.9", 12},
		{"float", 8.0, 8},
		{"arabic", "٥", 5},
		{"out of range", "1e12", 0},
		{"garbage", "many", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInt(tt.input); got != tt.want {
				t.Errorf("ToInt(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Enum, bool and list Tests
// ----------------------------------------------------------------------------

func TestNormalizeEnum(t *testing.T) {
	m := EnumMap{
		"healthy":    "Healthy",
		"Sick":       "Sick",
		"مريض":       "Sick",
		"under care": "Under Treatment",
	}

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"exact", "healthy", "Healthy"},
		{"case folded", "HEALTHY", "Healthy"},
		{"mixed case key", "sick", "Sick"},
		{"arabic", "مريض", "Sick"},
		{"padded", "  under care ", "Under Treatment"},
		{"unknown falls back", "excellent", "Default"},
		{"nil falls back", nil, "Default"},
		{"empty falls back", "", "Default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEnum(tt.input, m, "Default"); got != tt.want {
				t.Errorf("NormalizeEnum(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeBool(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{"yes", true},
		{"YES", true},
		{"true", true},
		{"y", true},
		{"1", true},
		{"نعم", true},
		{true, true},
		{"no", false},
		{"لا", false},
		{"0", false},
		{"", false},
		{nil, false},
		{false, false},
		{"maybe", false},
	}

	for _, tt := range tests {
		if got := NormalizeBool(tt.input); got != tt.want {
			t.Errorf("NormalizeBool(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"comma separated", "Zuprevo , Meloxicam", []string{"Zuprevo", "Meloxicam"}},
		{"arabic comma", "انفلونزا، كزاز", []string{"انفلونزا", "كزاز"}},
		{"empty items dropped", "a,, b,", []string{"a", "b"}},
		{"single", "Tetanus", []string{"Tetanus"}},
		{"string slice", []string{" a ", "", "b"}, []string{"a", "b"}},
		{"any slice", []any{"x", 3.0, nil}, []string{"x", "3"}},
		{"nil", nil, []string{}},
		{"blank", "  ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.input)
			if got == nil {
				t.Fatal("SplitList returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPadNationalID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123", "0000000123"},
		{"1234567890", "1234567890"},
		{"12345678901", "12345678901"},
		{" ١٢٣ ", "0000000123"},
		{"", "0000000000"},
	}

	for _, tt := range tests {
		if got := PadNationalID(tt.input); got != tt.want {
			t.Errorf("PadNationalID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "abc", "abc"},
		{"whitespace", "  abc  ", "abc"},
		{"excel quoted formula", `="00123"`, "00123"},
		{"excel formula", "=123", "123"},
		{"double quotes", `"abc"`, "abc"},
		{"single quotes", "'abc'", "abc"},
		{"arabic", " محمد ", "محمد"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayAfter(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 8, 5, 14, 30, 0, 0, time.UTC), time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := DayAfter(tt.in); !got.Equal(tt.want) {
			t.Errorf("DayAfter(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

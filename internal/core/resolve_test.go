package core

import (
	"sync"
	"testing"
)

func TestResolve(t *testing.T) {
	serial := Aliases("serialNo", "Serial No", "الرقم التسلسلي")

	tests := []struct {
		name   string
		row    RawRow
		want   any
		wantOK bool
	}{
		{"exact camelCase", RawRow{"serialNo": "A1"}, "A1", true},
		{"exact spaced", RawRow{"Serial No": "A2"}, "A2", true},
		{"exact arabic", RawRow{"الرقم التسلسلي": "A3"}, "A3", true},
		{"priority order", RawRow{"Serial No": "low", "serialNo": "high"}, "high", true},
		{"blank exact skipped", RawRow{"serialNo": "  ", "Serial No": "A4"}, "A4", true},
		{"case folded fallback", RawRow{"SERIAL NO": "A5"}, "A5", true},
		{"trimmed fallback", RawRow{" Serial No ": "A6"}, "A6", true},
		{"non-string value", RawRow{"serialNo": 42.0}, 42.0, true},
		{"absent", RawRow{"other": "x"}, nil, false},
		{"only blank", RawRow{"serialNo": ""}, nil, false},
		{"nil value", RawRow{"serialNo": nil}, nil, false},
		{"empty row", RawRow{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.row, serial)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_FallbackIsDeterministic(t *testing.T) {
	aliases := Aliases("name")
	row := RawRow{"NAME": "upper", "Name": "title"}

	first, _ := Resolve(row, aliases)
	for i := 0; i < 50; i++ {
		got, _ := Resolve(row, aliases)
		if got != first {
			t.Fatalf("Resolve() = %v on run %d, first run gave %v", got, i, first)
		}
	}
	// Sorted keys put "NAME" before "Name".
	if first != "upper" {
		t.Errorf("Resolve() = %v, want upper", first)
	}
}

func TestResolve_Concurrent(t *testing.T) {
	aliases := Aliases("Date", "التاريخ")
	row := RawRow{"التاريخ ": "2025-08-24"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, ok := Resolve(row, aliases); !ok || v != "2025-08-24" {
				t.Errorf("Resolve() = %v, %v", v, ok)
			}
		}()
	}
	wg.Wait()
}

func TestResolveString(t *testing.T) {
	aliases := Aliases("id")

	tests := []struct {
		name   string
		row    RawRow
		want   string
		wantOK bool
	}{
		{"string", RawRow{"id": " 123 "}, "123", true},
		{"whole float keeps digits", RawRow{"id": 1234567890.0}, "1234567890", true},
		{"excel formula", RawRow{"id": `="00123"`}, "00123", true},
		{"formula of blank", RawRow{"id": `=""`}, "", false},
		{"absent", RawRow{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveString(tt.row, aliases)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveString() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStringOr(t *testing.T) {
	if got := StringOr(RawRow{}, Aliases("team"), "Default Team"); got != "Default Team" {
		t.Errorf("StringOr() = %q", got)
	}
	if got := StringOr(RawRow{"Team": "A"}, Aliases("team"), "Default Team"); got != "A" {
		t.Errorf("StringOr() = %q", got)
	}
}

func TestFieldAliasSet_With(t *testing.T) {
	base := Aliases("a", "b")
	extended := base.With("c")

	if len(base) != 2 {
		t.Errorf("With modified the receiver: %v", base)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if extended[i] != w {
			t.Errorf("extended[%d] = %q, want %q", i, extended[i], w)
		}
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, ""},
		{"x", "x"},
		{[]byte("y"), "y"},
		{12.0, "12"},
		{12.5, "12.5"},
		{float32(3), "3"},
		{7, "7"},
		{true, "true"},
	}

	for _, tt := range tests {
		if got := Stringify(tt.input); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClientInputFromRow(t *testing.T) {
	row := RawRow{
		"اسم العميل": "سالم",
		"ID":         "123",
		"جوال":       "0501234567",
		"Location":   "الخرج",
	}

	got := ClientInputFromRow(row)
	want := ClientInput{Name: "سالم", NationalID: "123", Phone: "0501234567", Village: "الخرج"}
	if got != want {
		t.Errorf("ClientInputFromRow() = %+v, want %+v", got, want)
	}
}

func TestRequestFromRow(t *testing.T) {
	date := convertNow.AddDate(0, 0, -10)

	tests := []struct {
		name          string
		row           RawRow
		wantDate      string
		wantFulfilled string
		wantSituation string
	}{
		{
			name:          "defaults to record date",
			row:           RawRow{},
			wantDate:      date.Format("2006-01-02"),
			wantFulfilled: date.Format("2006-01-02"),
			wantSituation: SituationClosed,
		},
		{
			name:          "fulfilling defaults to request date",
			row:           RawRow{"Request Date": "2025-08-01", "Situation": "open"},
			wantDate:      "2025-08-01",
			wantFulfilled: "2025-08-01",
			wantSituation: SituationOpen,
		},
		{
			name:          "all given in arabic",
			row:           RawRow{"تاريخ الطلب": "2025-08-01", "تاريخ تنفيذ الطلب": "2025-08-03", "حالة الطلب": "معلق"},
			wantDate:      "2025-08-01",
			wantFulfilled: "2025-08-03",
			wantSituation: SituationPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequestFromRow(tt.row, date, convertNow)
			if s := got.Date.Format("2006-01-02"); s != tt.wantDate {
				t.Errorf("Date = %s, want %s", s, tt.wantDate)
			}
			if s := got.FulfillingDate.Format("2006-01-02"); s != tt.wantFulfilled {
				t.Errorf("FulfillingDate = %s, want %s", s, tt.wantFulfilled)
			}
			if got.Situation != tt.wantSituation {
				t.Errorf("Situation = %s, want %s", got.Situation, tt.wantSituation)
			}
		})
	}
}

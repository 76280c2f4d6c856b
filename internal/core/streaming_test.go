package core

import (
	"bytes"
	"io"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"with BOM", append([]byte{0xEF, 0xBB, 0xBF}, "a,b\n1,2"...), "a,b\n1,2"},
		{"without BOM", []byte("a,b\n1,2"), "a,b\n1,2"},
		{"only BOM", []byte{0xEF, 0xBB, 0xBF}, ""},
		{"shorter than BOM", []byte("a"), "a"},
		{"empty", []byte{}, ""},
		{"partial BOM kept", []byte{0xEF, 0xBB, 'x'}, string([]byte{0xEF, 0xBB, 'x'})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewBOMSkippingReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBOMSkippingReader_SmallBuffer(t *testing.T) {
	r := NewBOMSkippingReader(bytes.NewReader([]byte("abcdef")))
	var out []byte
	buf := make([]byte, 2)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if string(out) != "abcdef" {
		t.Errorf("got %q, want %q", out, "abcdef")
	}
}

func TestNewCSVSource(t *testing.T) {
	const header = "الاسم,التاريخ"

	cp1256, err := charmap.Windows1256.NewEncoder().Bytes([]byte(header))
	if err != nil {
		t.Fatalf("encode windows-1256: %v", err)
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"utf-8", []byte(header)},
		{"utf-8 with BOM", append([]byte{0xEF, 0xBB, 0xBF}, header...)},
		{"windows-1256", cp1256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewCSVSource(tt.input))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != header {
				t.Errorf("got %q, want %q", got, header)
			}
		})
	}
}

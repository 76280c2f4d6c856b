package core

// streaming.go prepares uploaded CSV bytes for encoding/csv.
//
// Spreadsheet programs on Arabic-locale Windows machines save CSV either as
// UTF-8 with a byte order mark or in the Windows-1256 code page. The reader
// returned by NewCSVSource strips the BOM and transcodes Windows-1256 to
// UTF-8 so headers and cells reach the field resolver as valid UTF-8.

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
// The UTF-8 BOM is 0xEF 0xBB 0xBF and is commonly added by Windows programs.
type BOMSkippingReader struct {
	reader     io.Reader
	bomChecked bool
	buf        [3]byte
	pending    []byte
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: r}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.bomChecked {
		r.bomChecked = true

		n, err := io.ReadFull(r.reader, r.buf[:])
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return 0, err
		}
		if n == 3 && bytes.Equal(r.buf[:], utf8BOM) {
			r.pending = nil
		} else {
			r.pending = r.buf[:n]
		}
	}

	if len(r.pending) > 0 {
		n := copy(p, r.pending)
		r.pending = r.pending[n:]
		return n, nil
	}

	return r.reader.Read(p)
}

// NewCSVSource returns a UTF-8 reader over uploaded CSV bytes.
// Input that is not valid UTF-8 is decoded as Windows-1256.
func NewCSVSource(data []byte) io.Reader {
	body := bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(body) {
		return NewBOMSkippingReader(bytes.NewReader(data))
	}
	return transform.NewReader(bytes.NewReader(body), charmap.Windows1256.NewDecoder())
}

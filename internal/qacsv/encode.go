package qacsv

import (
	"fmt"
	"io"
	"strings"
)

// BOM is written before the header so spreadsheet applications detect UTF-8.
const BOM = "\ufeff"

// lineBreak separates records. There is none after the last record.
const lineBreak = "\r\n"

// EncodeOptions configures Encode.
type EncodeOptions struct {
	// Delimiter separates fields. Zero means Comma.
	Delimiter Delimiter

	// OmitBOM drops the leading byte order mark.
	OmitBOM bool
}

// Encode renders rows as a CSV document: header first, then one record per
// row in sequence order.
func Encode(rows Rows, opts EncodeOptions) (string, error) {
	var b strings.Builder
	if err := EncodeTo(&b, rows, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeTo writes the document produced by Encode to w.
func EncodeTo(w io.Writer, rows Rows, opts EncodeOptions) error {
	d := opts.Delimiter
	if d == 0 {
		d = Comma
	}
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDelimiter, rune(d))
	}

	var b strings.Builder
	if !opts.OmitBOM {
		b.WriteString(BOM)
	}
	writeRecord(&b, Header, d)
	for _, r := range rows {
		b.WriteString(lineBreak)
		writeRecord(&b, r.Fields(), d)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Template returns a header-only document for users preparing an import.
func Template(d Delimiter) string {
	if !d.Valid() {
		d = Comma
	}
	var b strings.Builder
	b.WriteString(BOM)
	writeRecord(&b, Header, d)
	b.WriteString(lineBreak)
	return b.String()
}

func writeRecord(b *strings.Builder, fields [4]string, d Delimiter) {
	for i, f := range fields {
		if i > 0 {
			b.WriteRune(rune(d))
		}
		b.WriteString(EscapeField(f, d))
	}
}

package qacsv

// reader.go turns uploaded bytes into decoder input.
//
// The pipeline is: size limit, then charset decoding. UTF-8 input has its
// byte order mark removed and invalid sequences replaced with U+FFFD; other
// charsets are transcoded to UTF-8.

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxBytes caps ReadText input when the caller passes no limit.
const DefaultMaxBytes = 10 << 20

// ReadText reads at most limit bytes from r and returns them as UTF-8 text.
// charset names the input encoding; empty means UTF-8. Input longer than
// limit yields ErrFileTooLarge.
func ReadText(r io.Reader, charset string, limit int64) (string, error) {
	enc, err := LookupCharset(charset)
	if err != nil {
		return "", err
	}
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if int64(len(raw)) > limit {
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrFileTooLarge, limit)
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("encoding error (%s): %w", charset, err)
	}
	return string(out), nil
}

// LookupCharset resolves a charset label. Common Windows and Latin labels
// are matched directly; anything else goes through the WHATWG index.
func LookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
	}
	return enc, nil
}

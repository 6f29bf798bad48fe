package qacsv

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiter is a field separator the encoder accepts.
type Delimiter rune

const (
	Comma     Delimiter = ','
	Semicolon Delimiter = ';'
	Tab       Delimiter = '\t'
)

// Valid reports whether d is one of the supported delimiters.
func (d Delimiter) Valid() bool {
	switch d {
	case Comma, Semicolon, Tab:
		return true
	}
	return false
}

// Name returns the short name used in query strings and flags.
func (d Delimiter) Name() string {
	switch d {
	case Comma:
		return "comma"
	case Semicolon:
		return "semicolon"
	case Tab:
		return "tab"
	}
	return fmt.Sprintf("%q", rune(d))
}

func (d Delimiter) String() string {
	return string(rune(d))
}

// ParseDelimiter accepts a delimiter character or its name.
// An empty string selects Comma.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(s) {
	case "", ",", "comma":
		return Comma, nil
	case ";", "semicolon":
		return Semicolon, nil
	case "\t", "tab", `\t`:
		return Tab, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
}

// NeedsQuoting reports whether value must be wrapped in double quotes when
// written with delimiter d: it contains d, a double quote, CR or LF, or it
// starts or ends with whitespace the decoder would trim away.
func NeedsQuoting(value string, d Delimiter) bool {
	if value == "" {
		return false
	}
	if strings.ContainsRune(value, rune(d)) || strings.ContainsAny(value, "\"\r\n") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(value)
	last, _ := utf8.DecodeLastRuneInString(value)
	return isTrimRune(first) || isTrimRune(last)
}

// EscapeField renders value as a single CSV field for delimiter d.
// Quoted values have inner quotes doubled. Empty values stay empty.
func EscapeField(value string, d Delimiter) string {
	if !NeedsQuoting(value, d) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// isTrimRune matches the runes stripped from both ends of lines and tokens:
// Unicode white space and the byte order mark. NEL (U+0085) is not white
// space to a JavaScript trim and stays part of the value.
func isTrimRune(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isTrimRune)
}

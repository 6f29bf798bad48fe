package qacsv

import (
	"errors"
	"strings"
)

// MissingColumnsMessage is the user-facing text of every FormatError.
const MissingColumnsMessage = "CSV must contain columns: ID, Question, Answer, Intent"

var (
	// ErrFileTooLarge is returned by ReadText when input exceeds the limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidDelimiter is returned for delimiters other than comma, semicolon or tab.
	ErrInvalidDelimiter = errors.New("invalid delimiter")

	// ErrUnsupportedCharset is returned by ReadText for unknown charset names.
	ErrUnsupportedCharset = errors.New("unsupported charset")
)

// FormatError reports a header that lacks one or more required columns.
// No rows are returned alongside it.
type FormatError struct {
	// Missing lists the required labels no header token contained.
	Missing []string
}

func (e *FormatError) Error() string {
	if len(e.Missing) == 0 {
		return MissingColumnsMessage
	}
	return MissingColumnsMessage + " (missing: " + strings.Join(e.Missing, ", ") + ")"
}

// IsFormatError reports whether err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

package qacsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Mode selects the tokenizer used for data lines.
type Mode int

const (
	// ModeLegacy splits every line on commas and then strips one enclosing
	// pair of double quotes from each token. Quoted commas are split and
	// doubled quotes are kept as-is. This is the default.
	ModeLegacy Mode = iota

	// ModeStrict tokenizes RFC 4180 records: quoted delimiters, doubled
	// quotes and quoted line breaks are all honored.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "legacy"
}

// ParseMode accepts "legacy", "strict" or an empty string (legacy).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return ModeLegacy, nil
	case "strict", "rfc4180":
		return ModeStrict, nil
	}
	return ModeLegacy, fmt.Errorf("unknown decode mode %q", s)
}

// DecodeOptions configures DecodeWith and DecodeLines.
// The zero value is legacy comma-separated decoding.
type DecodeOptions struct {
	Mode Mode

	// Delimiter applies to ModeStrict only. Zero means Comma.
	Delimiter Delimiter
}

// LineKind tags a LineResult.
type LineKind int

const (
	LineRow LineKind = iota
	LineSkipped
)

func (k LineKind) String() string {
	if k == LineSkipped {
		return "skipped"
	}
	return "row"
}

// LineResult is the outcome of one data line.
// Line is 1 for the first line after the header.
type LineResult struct {
	Kind LineKind
	Line int
	Row  Row
}

// Report summarizes a decode.
type Report struct {
	Rows    Rows
	Skipped []int
}

// Decode parses text with the legacy tokenizer.
func Decode(text string) (Rows, error) {
	return DecodeWith(text, DecodeOptions{})
}

// DecodeWith parses text and returns only the rows.
func DecodeWith(text string, opts DecodeOptions) (Rows, error) {
	lines, err := DecodeLines(text, opts)
	if err != nil {
		return nil, err
	}
	return Summarize(lines).Rows, nil
}

// DecodeReport parses text and returns rows plus the skipped line numbers.
func DecodeReport(text string, opts DecodeOptions) (Report, error) {
	lines, err := DecodeLines(text, opts)
	if err != nil {
		return Report{}, err
	}
	return Summarize(lines), nil
}

// Summarize projects tagged line results onto a Report.
func Summarize(lines []LineResult) Report {
	rep := Report{Rows: make(Rows, 0, len(lines))}
	for _, l := range lines {
		switch l.Kind {
		case LineRow:
			rep.Rows = append(rep.Rows, l.Row)
		case LineSkipped:
			rep.Skipped = append(rep.Skipped, l.Line)
		}
	}
	return rep
}

// DecodeLines parses text into one tagged result per data line.
//
// Empty input yields no results and no error. A header that lacks any of
// id, question, answer or intent (substring match, case-insensitive) yields
// a *FormatError and no results. Lines with fewer than four tokens are
// tagged LineSkipped.
func DecodeLines(text string, opts DecodeOptions) ([]LineResult, error) {
	text = trimSpace(text)
	if text == "" {
		return nil, nil
	}

	switch opts.Mode {
	case ModeStrict:
		d := opts.Delimiter
		if d == 0 {
			d = Comma
		}
		if !d.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, rune(d))
		}
		return decodeStrict(text, d)
	default:
		return decodeLegacy(text)
	}
}

func decodeLegacy(text string) ([]LineResult, error) {
	lines := strings.Split(text, "\n")

	if err := checkHeader(strings.Split(lines[0], ",")); err != nil {
		return nil, err
	}

	results := make([]LineResult, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		raw := strings.Split(lines[i], ",")
		tokens := make([]string, len(raw))
		for j, tok := range raw {
			tokens[j] = unwrapQuotes(trimSpace(tok))
		}
		results = append(results, buildLine(i, tokens))
	}
	return results, nil
}

func decodeStrict(text string, d Delimiter) ([]LineResult, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = rune(d)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var results []LineResult
	for i := 1; ; i++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv at record %d: %w", i, err)
		}
		results = append(results, buildLine(i, record))
	}
	return results, nil
}

// checkHeader validates the header tokens. Every required label must be a
// substring of some trimmed, lower-cased token.
func checkHeader(tokens []string) error {
	normalized := make([]string, len(tokens))
	for i, t := range tokens {
		normalized[i] = strings.ToLower(trimSpace(t))
	}

	var missing []string
	for _, want := range requiredColumns {
		found := false
		for _, h := range normalized {
			if strings.Contains(h, want) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return &FormatError{Missing: missing}
	}
	return nil
}

func buildLine(index int, tokens []string) LineResult {
	if len(tokens) < 4 {
		return LineResult{Kind: LineSkipped, Line: index}
	}

	id, ok := parseLeadingInt(tokens[0])
	if !ok || id == 0 {
		id = index
	}
	intent := tokens[3]
	if intent == "" {
		intent = DefaultIntent
	}

	return LineResult{
		Kind: LineRow,
		Line: index,
		Row: Row{
			ID:       id,
			Question: tokens[1],
			Answer:   tokens[2],
			Intent:   intent,
		},
	}
}

// unwrapQuotes removes one pair of enclosing double quotes. Inner content
// that spans a line terminator is left alone, and doubled quotes inside are
// not collapsed.
func unwrapQuotes(tok string) string {
	if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
		return tok
	}
	inner := tok[1 : len(tok)-1]
	if strings.ContainsAny(inner, "\r\n\u2028\u2029") {
		return tok
	}
	return inner
}

// parseLeadingInt reads an optional sign followed by the longest run of
// digits at the start of s. A 0x or 0X prefix switches to hexadecimal.
// Trailing characters are ignored. ok is false when no digit was read or
// the value overflows.
func parseLeadingInt(s string) (n int, ok bool) {
	s = trimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return int(v), true
}

func isDigit(b byte, base int) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case base == 16 && (b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'):
		return true
	}
	return false
}

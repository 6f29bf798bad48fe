package qacsv

import (
	"errors"
	"strings"
	"testing"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name  string
		value string
		delim Delimiter
		want  string
	}{
		{"empty", "", Comma, ""},
		{"plain", "hello", Comma, "hello"},
		{"quotes and comma", `He said "hi", ok`, Comma, `"He said ""hi"", ok"`},
		{"leading space", " trim me", Comma, `" trim me"`},
		{"trailing space", "trim me ", Comma, `"trim me "`},
		{"leading no-break space", "\u00a0x", Comma, "\"\u00a0x\""},
		{"leading next line", "\u0085x", Comma, "\u0085x"},
		{"newline", "a\nb", Comma, "\"a\nb\""},
		{"carriage return", "a\rb", Comma, "\"a\rb\""},
		{"semicolon under semicolon", "a;b", Semicolon, `"a;b"`},
		{"semicolon under comma", "a;b", Comma, "a;b"},
		{"comma under semicolon", "a,b", Semicolon, "a,b"},
		{"tab under tab", "a\tb", Tab, "\"a\tb\""},
		{"tab under comma", "a\tb", Comma, "a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeField(tt.value, tt.delim); got != tt.want {
				t.Errorf("EscapeField(%q, %s) = %q, want %q", tt.value, tt.delim.Name(), got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	rows := Rows{
		{ID: 1, Question: `He said "hi", ok`, Answer: " trim me", Intent: "Greeting"},
		{ID: 2, Question: "", Answer: "", Intent: ""},
	}

	tests := []struct {
		name  string
		delim Delimiter
		want  string
	}{
		{
			name:  "comma",
			delim: Comma,
			want: "\ufeffID,Question,Answer,Intent\r\n" +
				"1,\"He said \"\"hi\"\", ok\",\" trim me\",Greeting\r\n" +
				"2,,,",
		},
		{
			name:  "semicolon",
			delim: Semicolon,
			want: "\ufeffID;Question;Answer;Intent\r\n" +
				"1;\"He said \"\"hi\"\", ok\";\" trim me\";Greeting\r\n" +
				"2;;;",
		},
		{
			name:  "tab",
			delim: Tab,
			want: "\ufeffID\tQuestion\tAnswer\tIntent\r\n" +
				"1\t\"He said \"\"hi\"\", ok\"\t\" trim me\"\tGreeting\r\n" +
				"2\t\t\t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(rows, EncodeOptions{Delimiter: tt.delim})
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	rows := Rows{{ID: 3, Question: "q", Answer: "a", Intent: "i"}}
	first, _ := Encode(rows, EncodeOptions{})
	second, _ := Encode(rows, EncodeOptions{})
	if first != second {
		t.Errorf("Encode() not deterministic: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, BOM) {
		t.Error("Encode() output missing BOM")
	}
}

func TestEncode_OmitBOM(t *testing.T) {
	got, err := Encode(nil, EncodeOptions{OmitBOM: true})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got != "ID,Question,Answer,Intent" {
		t.Errorf("Encode() = %q", got)
	}
}

func TestEncode_InvalidDelimiter(t *testing.T) {
	_, err := Encode(Rows{{ID: 1}}, EncodeOptions{Delimiter: '|'})
	if !errors.Is(err, ErrInvalidDelimiter) {
		t.Errorf("Encode() error = %v, want ErrInvalidDelimiter", err)
	}
}

func TestRoundTrip(t *testing.T) {
	rows := Rows{
		{ID: 1, Question: "What is your name?", Answer: "I am an assistant.", Intent: "Greeting"},
		{ID: 2, Question: " padded ", Answer: "trailing ", Intent: "Support"},
		{ID: 10, Question: "a;b", Answer: "semi", Intent: "Information"},
		{ID: 11, Question: "", Answer: "", Intent: "Action"},
	}

	text, err := Encode(rows, EncodeOptions{Delimiter: Comma})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("round trip returned %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], rows[i])
		}
	}
}

func TestRoundTrip_Strict(t *testing.T) {
	rows := Rows{
		{ID: 1, Question: `He said "hi", ok`, Answer: "multi\nline", Intent: "Support"},
		{ID: 2, Question: "semi;colon", Answer: " edge ", Intent: "Complaint"},
	}

	for _, d := range []Delimiter{Comma, Semicolon, Tab} {
		t.Run(d.Name(), func(t *testing.T) {
			text, err := Encode(rows, EncodeOptions{Delimiter: d})
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := DecodeWith(text, DecodeOptions{Mode: ModeStrict, Delimiter: d})
			if err != nil {
				t.Fatalf("DecodeWith() error = %v", err)
			}
			if len(got) != len(rows) {
				t.Fatalf("got %d rows, want %d", len(got), len(rows))
			}
			for i := range rows {
				if got[i] != rows[i] {
					t.Errorf("row %d = %+v, want %+v", i, got[i], rows[i])
				}
			}
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input   string
		want    Delimiter
		wantErr bool
	}{
		{"", Comma, false},
		{",", Comma, false},
		{"comma", Comma, false},
		{";", Semicolon, false},
		{"Semicolon", Semicolon, false},
		{"tab", Tab, false},
		{"\t", Tab, false},
		{"|", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDelimiter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDelimiter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDelimiter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	got := Template(Semicolon)
	want := "\ufeffID;Question;Answer;Intent\r\n"
	if got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	rows, err := Decode(got)
	if err != nil || len(rows) != 0 {
		t.Errorf("Decode(Template()) = %v, %v", rows, err)
	}
}

func TestRowsNextID(t *testing.T) {
	tests := []struct {
		name string
		rows Rows
		want int
	}{
		{"empty", nil, 1},
		{"ascending", Rows{{ID: 1}, {ID: 2}}, 3},
		{"gaps", Rows{{ID: 7}, {ID: 3}}, 8},
		{"negative only", Rows{{ID: -4}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rows.NextID(); got != tt.want {
				t.Errorf("NextID() = %d, want %d", got, tt.want)
			}
		})
	}
}

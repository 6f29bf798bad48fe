package qacsv

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Rows
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "  \n\t \r\n",
			want:  nil,
		},
		{
			name:  "header only",
			input: "ID,Question,Answer,Intent",
			want:  Rows{},
		},
		{
			name:  "basic rows",
			input: "ID,Question,Answer,Intent\n1,What is your name?,I am a bot,Greeting\n2,Hours?,Nine to five,Information",
			want: Rows{
				{ID: 1, Question: "What is your name?", Answer: "I am a bot", Intent: "Greeting"},
				{ID: 2, Question: "Hours?", Answer: "Nine to five", Intent: "Information"},
			},
		},
		{
			name:  "substring header match",
			input: "\"Id\",\"Q_question\",\"Ans_answer\",\"My Intent\"\n1,q,a,Support",
			want:  Rows{{ID: 1, Question: "q", Answer: "a", Intent: "Support"}},
		},
		{
			name:  "short line skipped without affecting later lines",
			input: "ID,Question,Answer,Intent\n1,only two\n3,q,a,Action",
			want:  Rows{{ID: 3, Question: "q", Answer: "a", Intent: "Action"}},
		},
		{
			name:  "non numeric id falls back to line index",
			input: "ID,Question,Answer,Intent\nabc,q1,a1,i1\nxyz,q2,a2,i2",
			want: Rows{
				{ID: 1, Question: "q1", Answer: "a1", Intent: "i1"},
				{ID: 2, Question: "q2", Answer: "a2", Intent: "i2"},
			},
		},
		{
			name:  "zero id falls back to line index",
			input: "ID,Question,Answer,Intent\n5,q,a,i\n0,q,a,i",
			want: Rows{
				{ID: 5, Question: "q", Answer: "a", Intent: "i"},
				{ID: 2, Question: "q", Answer: "a", Intent: "i"},
			},
		},
		{
			name:  "empty intent defaults",
			input: "ID,Question,Answer,Intent\n4,q,a,",
			want:  Rows{{ID: 4, Question: "q", Answer: "a", Intent: DefaultIntent}},
		},
		{
			name:  "quoted tokens unwrapped",
			input: "ID,Question,Answer,Intent\n\"7\",\"Hello\",\" spaced \",\"Greeting\"",
			want:  Rows{{ID: 7, Question: "Hello", Answer: " spaced ", Intent: "Greeting"}},
		},
		{
			name:  "doubled quotes are not collapsed",
			input: "ID,Question,Answer,Intent\n1,\"say \"\"hi\"\"\",a,i",
			want:  Rows{{ID: 1, Question: `say ""hi""`, Answer: "a", Intent: "i"}},
		},
		{
			name:  "quoted comma is split",
			input: "ID,Question,Answer,Intent\n1,\"a, b\",c,d",
			want:  Rows{{ID: 1, Question: `"a`, Answer: `b"`, Intent: "c"}},
		},
		{
			name:  "crlf and bom",
			input: "\ufeffID,Question,Answer,Intent\r\n1,q,a,i\r\n",
			want:  Rows{{ID: 1, Question: "q", Answer: "a", Intent: "i"}},
		},
		{
			name:  "next line character is not trimmed",
			input: "ID,Question,Answer,Intent\n1,\u0085q, a\u00a0,i\u0085",
			want:  Rows{{ID: 1, Question: "\u0085q", Answer: "a", Intent: "i\u0085"}},
		},
		{
			name:  "extra columns ignored",
			input: "ID,Question,Answer,Intent,Notes\n1,q,a,i,extra",
			want:  Rows{{ID: 1, Question: "q", Answer: "a", Intent: "i"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Decode() returned %d rows, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecode_MissingColumns(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMissing []string
	}{
		{
			name:        "unrelated header",
			input:       "Name,Value\n1,2",
			wantMissing: []string{"id", "question", "answer", "intent"},
		},
		{
			name:        "intent missing",
			input:       "ID,Question,Answer\n1,q,a",
			wantMissing: []string{"intent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Decode(tt.input)
			if rows != nil {
				t.Errorf("Decode() rows = %v, want nil", rows)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Decode() error = %v, want *FormatError", err)
			}
			if !reflect.DeepEqual(fe.Missing, tt.wantMissing) {
				t.Errorf("Missing = %v, want %v", fe.Missing, tt.wantMissing)
			}
			if !IsFormatError(err) {
				t.Error("IsFormatError() = false, want true")
			}
		})
	}
}

func TestDecodeLines_TagsSkippedLines(t *testing.T) {
	input := "ID,Question,Answer,Intent\n1,q,a,i\njunk\n3,q,a\n4,q,a,i"

	lines, err := DecodeLines(input, DecodeOptions{})
	if err != nil {
		t.Fatalf("DecodeLines() error = %v", err)
	}

	wantKinds := []LineKind{LineRow, LineSkipped, LineSkipped, LineRow}
	if len(lines) != len(wantKinds) {
		t.Fatalf("got %d lines, want %d", len(lines), len(wantKinds))
	}
	for i, l := range lines {
		if l.Kind != wantKinds[i] {
			t.Errorf("line %d kind = %v, want %v", i, l.Kind, wantKinds[i])
		}
		if l.Line != i+1 {
			t.Errorf("line %d number = %d, want %d", i, l.Line, i+1)
		}
	}

	rep := Summarize(lines)
	if len(rep.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rep.Rows))
	}
	if !reflect.DeepEqual(rep.Skipped, []int{2, 3}) {
		t.Errorf("skipped = %v, want [2 3]", rep.Skipped)
	}
}

func TestDecodeStrict(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim Delimiter
		want  Rows
	}{
		{
			name:  "quoted comma and doubled quotes",
			input: "ID,Question,Answer,Intent\n1,\"a, b\",\"say \"\"hi\"\"\",Greeting",
			want:  Rows{{ID: 1, Question: "a, b", Answer: `say "hi"`, Intent: "Greeting"}},
		},
		{
			name:  "quoted line break",
			input: "ID,Question,Answer,Intent\r\n1,\"line one\nline two\",a,i\r\n2,q,a,i",
			want: Rows{
				{ID: 1, Question: "line one\nline two", Answer: "a", Intent: "i"},
				{ID: 2, Question: "q", Answer: "a", Intent: "i"},
			},
		},
		{
			name:  "semicolon delimiter",
			input: "ID;Question;Answer;Intent\n1;a,b;c;",
			delim: Semicolon,
			want:  Rows{{ID: 1, Question: "a,b", Answer: "c", Intent: DefaultIntent}},
		},
		{
			name:  "short record skipped",
			input: "ID,Question,Answer,Intent\nx,y\n2,q,a,i",
			want:  Rows{{ID: 2, Question: "q", Answer: "a", Intent: "i"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeWith(tt.input, DecodeOptions{Mode: ModeStrict, Delimiter: tt.delim})
			if err != nil {
				t.Fatalf("DecodeWith() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeWith() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeStrict_InvalidDelimiter(t *testing.T) {
	_, err := DecodeWith("ID|Question|Answer|Intent", DecodeOptions{Mode: ModeStrict, Delimiter: '|'})
	if !errors.Is(err, ErrInvalidDelimiter) {
		t.Errorf("error = %v, want ErrInvalidDelimiter", err)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"12", 12, true},
		{"12abc", 12, true},
		{"-3", -3, true},
		{"+7", 7, true},
		{"0x1A", 26, true},
		{"0", 0, true},
		{"3.9", 3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseLeadingInt(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseLeadingInt(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeLegacy {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if m, err := ParseMode("Strict"); err != nil || m != ModeStrict {
		t.Errorf("ParseMode(\"Strict\") = %v, %v", m, err)
	}
	if _, err := ParseMode("fuzzy"); err == nil {
		t.Error("ParseMode(\"fuzzy\") expected error")
	}
}

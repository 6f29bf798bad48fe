package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/qaeditor/internal/ai"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{name: "missing columns", err: &qacsv.FormatError{Missing: []string{"intent"}}, wantCode: "CSV001"},
		{name: "strict reader error", err: errors.New("invalid csv at record 3: bare quote"), wantCode: "CSV002"},
		{name: "invalid delimiter", err: fmt.Errorf("%w: %q", qacsv.ErrInvalidDelimiter, "|"), wantCode: "CSV003"},
		{name: "file too large", err: fmt.Errorf("%w: exceeds 10 bytes", qacsv.ErrFileTooLarge), wantCode: "FILE001"},
		{name: "invalid file type", err: ErrInvalidFileType, wantCode: "FILE002"},
		{name: "unsupported charset", err: fmt.Errorf("%w: %q", qacsv.ErrUnsupportedCharset, "klingon"), wantCode: "FILE004"},
		{name: "no data", err: ErrNoData, wantCode: "EXP001"},
		{name: "row not found", err: ErrRowNotFound, wantCode: "ROW001"},
		{name: "invalid intent", err: fmt.Errorf("%w: %q already exists", ErrInvalidIntent, "Support"), wantCode: "ROW002"},
		{name: "missing credential", err: fmt.Errorf("generate question: %w", ai.ErrMissingCredential), wantCode: "AI001"},
		{name: "rejected credential", err: &ai.RemoteError{Status: 401, Message: "bad key"}, wantCode: "AI002"},
		{name: "remote status", err: &ai.RemoteError{Status: 502, Message: "bad gateway"}, wantCode: "AI003"},
		{
			name:     "ai transport failure wins over timeout",
			err:      fmt.Errorf("ai provider request failed: %w", context.DeadlineExceeded),
			wantCode: "AI004",
		},
		{name: "question required", err: ErrQuestionRequired, wantCode: "AI005"},
		{name: "invalid settings", err: fmt.Errorf("%w: theme must be light or dark", ErrInvalidSettings), wantCode: "SET001"},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), wantCode: "DB001"},
		{name: "context canceled", err: context.Canceled, wantCode: "REQ001"},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: "REQ002"},
		{name: "bad body", err: errors.New("invalid request body: unexpected EOF"), wantCode: "REQ003"},
		{name: "rate limit", err: errors.New("rate limit exceeded"), wantCode: "RATE001"},
		{name: "generation busy", err: ErrTooManyGenerations, wantCode: "RATE002"},
		{name: "case insensitive matching", err: errors.New("NO DATA TO EXPORT"), wantCode: "EXP001"},
		{name: "unknown error returns default", err: errors.New("some random internal error"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_MissingColumnsMessage(t *testing.T) {
	got := MapError(&qacsv.FormatError{Missing: []string{"id"}})
	if got.Message != qacsv.MissingColumnsMessage {
		t.Errorf("Message = %q, want %q", got.Message, qacsv.MissingColumnsMessage)
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrNoData)
	expected := "There is no data to export (Code: EXP001). Add or import rows first"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "known error is user facing", err: ErrRowNotFound, want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	if got := NewUserError(nil); got != nil {
		t.Errorf("NewUserError(nil) = %v, want nil", got)
	}

	userErr := NewUserError(ErrNoData)
	if userErr.Error() != "There is no data to export" {
		t.Errorf("Error() = %q, want user message", userErr.Error())
	}
	if !errors.Is(userErr, ErrNoData) {
		t.Error("Unwrap() should return original error")
	}
}

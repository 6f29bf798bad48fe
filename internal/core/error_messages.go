package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code to
// support staff for faster diagnosis.
//
// # CSV Errors (CSV001-CSV099)
//
//	CSV001 - Missing columns: CSV must contain columns: ID, Question, Answer, Intent
//	         Patterns: "csv must contain columns"
//	CSV002 - Invalid CSV: the strict reader rejected the file
//	         Patterns: "invalid csv"
//	CSV003 - Invalid delimiter: only comma, semicolon and tab are supported
//	         Patterns: "invalid delimiter"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large          Patterns: "file too large"
//	FILE002 - Invalid file type       Patterns: "invalid file type"
//	FILE003 - Encoding error          Patterns: "encoding error"
//	FILE004 - Unsupported charset     Patterns: "unsupported charset"
//	FILE005 - No file                 Patterns: "no file provided"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - No data: exporting an empty dataset
//	         Patterns: "no data to export"
//
// # Row Errors (ROW001-ROW099)
//
//	ROW001 - Row not found: the row was deleted or replaced by an import
//	         Patterns: "row not found"
//	ROW002 - Invalid intent           Patterns: "invalid intent"
//
// # AI Errors (AI001-AI099)
//
//	AI001 - Missing credential        Patterns: "api key not configured"
//	AI002 - Credential rejected       Patterns: "rejected credential"
//	AI003 - Provider error            Patterns: "ai provider returned status"
//	AI004 - Provider unreachable      Patterns: "ai provider request failed"
//	AI005 - Question required         Patterns: "question required"
//
// # Settings Errors (SET001-SET099)
//
//	SET001 - Invalid settings         Patterns: "invalid settings"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Connection refused        Patterns: "connection refused"
//	DB002 - Connection reset          Patterns: "connection reset"
//	DB003 - Deadlock                  Patterns: "deadlock"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled        Patterns: "context canceled"
//	REQ002 - Request timeout          Patterns: "context deadline exceeded", "timeout"
//	REQ003 - Invalid request          Patterns: "invalid request"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited            Patterns: "rate limit"
//	RATE002 - Generation busy         Patterns: "too many generations"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are defined
// before general ones. AI errors wrap transport failures, so they precede
// the request and database patterns.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// CSV
	{
		pattern: "csv must contain columns",
		msg: UserMessage{
			Message: "CSV must contain columns: ID, Question, Answer, Intent",
			Action:  "Add a header row naming the four columns, or download the template",
			Code:    "CSV001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Check for unbalanced quotes, or import in legacy mode",
			Code:    "CSV002",
		},
	},
	{
		pattern: "invalid delimiter",
		msg: UserMessage{
			Message: "Unsupported delimiter",
			Action:  "Choose comma, semicolon or tab",
			Code:    "CSV003",
		},
	},

	// Files
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid file type",
		msg: UserMessage{
			Message: "Only CSV files can be imported",
			Action:  "Select a file ending in .csv",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file as UTF-8 or pick the matching charset",
			Code:    "FILE003",
		},
	},
	{
		pattern: "unsupported charset",
		msg: UserMessage{
			Message: "Unsupported character set",
			Action:  "Use utf-8, utf-16, windows-1252, iso-8859-1 or windows-1251",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE005",
		},
	},

	// Export
	{
		pattern: "no data to export",
		msg: UserMessage{
			Message: "There is no data to export",
			Action:  "Add or import rows first",
			Code:    "EXP001",
		},
	},

	// Rows
	{
		pattern: "row not found",
		msg: UserMessage{
			Message: "This row no longer exists",
			Action:  "Reload the editor; the dataset may have been replaced by an import",
			Code:    "ROW001",
		},
	},
	{
		pattern: "invalid intent",
		msg: UserMessage{
			Message: "That intent label cannot be used",
			Action:  "Pick a new, non-empty label; built-in labels cannot be removed",
			Code:    "ROW002",
		},
	},

	// AI
	{
		pattern: "api key not configured",
		msg: UserMessage{
			Message: "OpenAI API key not configured",
			Action:  "Add your API key in Settings",
			Code:    "AI001",
		},
	},
	{
		pattern: "rejected credential",
		msg: UserMessage{
			Message: "The AI provider rejected the API key",
			Action:  "Check the key in Settings and test it again",
			Code:    "AI002",
		},
	},
	{
		pattern: "ai provider returned status",
		msg: UserMessage{
			Message: "The AI provider returned an error",
			Action:  "Please try again in a few moments",
			Code:    "AI003",
		},
	},
	{
		pattern: "ai provider request failed",
		msg: UserMessage{
			Message: "Could not reach the AI provider",
			Action:  "Check your network connection and try again",
			Code:    "AI004",
		},
	},
	{
		pattern: "question required",
		msg: UserMessage{
			Message: "Enter a question before generating an answer",
			Action:  "Type a question or generate one first",
			Code:    "AI005",
		},
	},

	// Settings
	{
		pattern: "invalid settings",
		msg: UserMessage{
			Message: "Settings could not be saved",
			Action:  "Check the highlighted values",
			Code:    "SET001",
		},
	},

	// Database
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},

	// Requests
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request could not be understood",
			Action:  "Check the submitted values and try again",
			Code:    "REQ003",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many generations",
		msg: UserMessage{
			Message: "Too many generations in progress",
			Action:  "Please wait a moment and try again",
			Code:    "RATE002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first case-insensitive pattern match, or ERR000.
//
//	msg := MapError(core.ErrNoData)
//	// msg.Code == "EXP001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

package core

import "errors"

var (
	// ErrNoData is returned when exporting an empty dataset.
	ErrNoData = errors.New("no data to export")

	// ErrRowNotFound is returned when no entry has the requested key.
	// An import or delete that lands during an AI generation produces it too.
	ErrRowNotFound = errors.New("row not found")

	// ErrQuestionRequired is returned when an answer is requested for a row
	// whose question is empty.
	ErrQuestionRequired = errors.New("question required before generating an answer")

	// ErrInvalidFileType is returned by the import boundary for files that
	// are neither .csv-suffixed nor text/csv.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrInvalidIntent is returned for empty or duplicate intent labels,
	// and for attempts to remove a built-in label.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrInvalidSettings is returned when a settings patch fails validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

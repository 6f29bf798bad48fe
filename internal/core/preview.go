package core

import (
	"context"
	"time"

	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

// PreviewSummary contains the summary counts for an import preview.
type PreviewSummary struct {
	DataLines    int `json:"dataLines"`
	Rows         int `json:"rows"`
	Skipped      int `json:"skipped"`
	ReplacedRows int `json:"replacedRows"`
	DuplicateIDs int `json:"duplicateIds"`
}

// RowPreview is one decoded row with its data line number.
type RowPreview struct {
	LineNumber int       `json:"lineNumber"`
	Row        qacsv.Row `json:"row"`
}

// DuplicatePreview lists the data lines that share one ID.
type DuplicatePreview struct {
	ID          int   `json:"id"`
	LineNumbers []int `json:"lineNumbers"`
}

// PreviewResponse describes what an import of the same file would do.
type PreviewResponse struct {
	Summary          PreviewSummary     `json:"summary"`
	RowSamples       []RowPreview       `json:"rowSamples"`
	SkippedLines     []int              `json:"skippedLines"`
	DuplicateSamples []DuplicatePreview `json:"duplicateSamples"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
}

// Sample limits
const (
	maxRowSamples       = 10
	maxSkippedSamples   = 20
	maxDuplicateSamples = 10
)

// PreviewImport decodes text without touching the dataset and reports the
// rows an import would keep, the lines it would skip, and IDs that appear
// on more than one line. Duplicate IDs are imported as-is; they are only
// reported here.
func (s *Service) PreviewImport(_ context.Context, text string, opts qacsv.DecodeOptions) (*PreviewResponse, error) {
	startTime := time.Now()

	lines, err := qacsv.DecodeLines(text, opts)
	if err != nil {
		return nil, err
	}

	resp := &PreviewResponse{
		Summary: PreviewSummary{
			DataLines:    len(lines),
			ReplacedRows: len(s.Snapshot().Entries),
		},
		RowSamples:       []RowPreview{},
		SkippedLines:     []int{},
		DuplicateSamples: []DuplicatePreview{},
	}

	seenIDs := make(map[int][]int) // id -> line numbers
	var idOrder []int

	for _, l := range lines {
		if l.Kind == qacsv.LineSkipped {
			resp.Summary.Skipped++
			if len(resp.SkippedLines) < maxSkippedSamples {
				resp.SkippedLines = append(resp.SkippedLines, l.Line)
			}
			continue
		}

		resp.Summary.Rows++
		if len(resp.RowSamples) < maxRowSamples {
			resp.RowSamples = append(resp.RowSamples, RowPreview{LineNumber: l.Line, Row: l.Row})
		}

		if _, ok := seenIDs[l.Row.ID]; !ok {
			idOrder = append(idOrder, l.Row.ID)
		}
		seenIDs[l.Row.ID] = append(seenIDs[l.Row.ID], l.Line)
	}

	for _, id := range idOrder {
		lineNums := seenIDs[id]
		if len(lineNums) < 2 {
			continue
		}
		resp.Summary.DuplicateIDs++
		if len(resp.DuplicateSamples) < maxDuplicateSamples {
			resp.DuplicateSamples = append(resp.DuplicateSamples, DuplicatePreview{ID: id, LineNumbers: lineNums})
		}
	}

	resp.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	return resp, nil
}

// Package qacsv converts between CSV text and question/answer/intent rows.
//
// Decode and Encode are pure functions: they hold no state between calls and
// perform no I/O, so they are safe to call from any number of goroutines.
// The input readers in reader.go handle the byte-level concerns (BOM,
// charset, size limit) that sit in front of Decode at the import boundary.
package qacsv

import "strconv"

// DefaultIntent is assigned to decoded rows whose intent column is empty.
const DefaultIntent = "Information"

// Header holds the canonical column labels written by the encoder.
var Header = [4]string{"ID", "Question", "Answer", "Intent"}

// requiredColumns are the lower-case labels a header must contain.
var requiredColumns = [4]string{"id", "question", "answer", "intent"}

// Row is one dataset entry.
type Row struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Intent   string `json:"intent"`
}

// Fields returns the row's values in column order.
func (r Row) Fields() [4]string {
	return [4]string{strconv.Itoa(r.ID), r.Question, r.Answer, r.Intent}
}

// Rows is an ordered row sequence. Order is display and export order.
type Rows []Row

// NextID returns max(ids, 0) + 1.
func (rs Rows) NextID() int {
	maxID := 0
	for _, r := range rs {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

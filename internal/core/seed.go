package core

import (
	"github.com/google/uuid"

	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

var seedRows = qacsv.Rows{
	{
		ID:       1,
		Question: "What is your name?",
		Answer:   "I am an AI assistant created to help you manage your CSV data.",
	},
	{
		ID:       2,
		Question: "How can I import CSV files?",
		Answer:   "You can import CSV files by clicking the Import CSV button and selecting your file.",
	},
}

// SeedEntries returns the example rows a fresh install starts with, each
// with a new key.
func SeedEntries() []Entry {
	out := make([]Entry, len(seedRows))
	for i, r := range seedRows {
		out[i] = Entry{Key: uuid.New(), Row: r}
	}
	return out
}

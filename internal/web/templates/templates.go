// Package templates holds the editor's server-rendered components. The
// markup lives in the .templ files; the *_templ.go files are generated from
// them with `templ generate` and committed.
package templates

//go:generate templ generate

import (
	"slices"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

// RowsParams is the data behind the editable table.
type RowsParams struct {
	Version uint64
	Entries []core.Entry
	Intents []string
}

// SettingsView is what the page may know about the settings. The API key
// only ever appears masked.
type SettingsView struct {
	MaskedAPIKey    string   `json:"apiKey"`
	HasAPIKey       bool     `json:"hasApiKey"`
	Model           string   `json:"model"`
	SystemPrompt    string   `json:"systemPrompt"`
	MaxTokens       int      `json:"maxTokens"`
	Theme           string   `json:"theme"`
	Intents         []string `json:"intents"`
	CustomIntents   []string `json:"customIntents"`
	SupportedModels []string `json:"supportedModels"`
}

// EditorParams is the data behind the editor page.
type EditorParams struct {
	Rows     RowsParams
	Settings SettingsView
}

// intentLabel is the option text for an intent outside the known list.
func intentLabel(intent string) string {
	if intent == "" {
		return "(none)"
	}
	return intent
}

func (s SettingsView) isCustom(intent string) bool {
	return slices.Contains(s.CustomIntents, intent)
}

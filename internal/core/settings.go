package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/qaeditor/internal/ai"
)

// Theme is the editor colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	DefaultModel     = "gpt-3.5-turbo"
	DefaultMaxTokens = 150
	MaxTokensLimit   = 4096
)

// SupportedModels are offered in the settings form.
var SupportedModels = []string{"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo"}

// DefaultIntents are always available and cannot be removed.
var DefaultIntents = []string{"Greeting", "Information", "Action", "Question", "Complaint", "Support"}

// Settings is the persisted editor configuration.
type Settings struct {
	APIKey        string   `json:"apiKey"`
	Model         string   `json:"model"`
	SystemPrompt  string   `json:"systemPrompt"`
	MaxTokens     int      `json:"maxTokens"`
	Theme         Theme    `json:"theme"`
	CustomIntents []string `json:"customIntents"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Model:         DefaultModel,
		SystemPrompt:  ai.DefaultSystemPrompt,
		MaxTokens:     DefaultMaxTokens,
		Theme:         ThemeLight,
		CustomIntents: []string{},
	}
}

// Intents returns the built-in labels followed by the custom ones.
func (s Settings) Intents() []string {
	out := make([]string, 0, len(DefaultIntents)+len(s.CustomIntents))
	out = append(out, DefaultIntents...)
	return append(out, s.CustomIntents...)
}

// MaskedAPIKey returns the key with all but the last four characters hidden.
func (s Settings) MaskedAPIKey() string {
	return MaskKey(s.APIKey)
}

// HasAPIKey reports whether a credential is configured.
func (s Settings) HasAPIKey() bool {
	return s.APIKey != ""
}

func (s Settings) clone() Settings {
	s.CustomIntents = slices.Clone(s.CustomIntents)
	if s.CustomIntents == nil {
		s.CustomIntents = []string{}
	}
	return s
}

// MaskKey hides a credential for display.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + "..." + key[len(key)-4:]
}

// SettingsPatch carries the fields of a settings update. Nil fields are left alone.
type SettingsPatch struct {
	APIKey       *string `json:"apiKey,omitempty"`
	Model        *string `json:"model,omitempty"`
	SystemPrompt *string `json:"systemPrompt,omitempty"`
	MaxTokens    *int    `json:"maxTokens,omitempty"`
	Theme        *Theme  `json:"theme,omitempty"`
}

func (p SettingsPatch) apply(s Settings) (Settings, error) {
	if p.APIKey != nil {
		s.APIKey = strings.TrimSpace(*p.APIKey)
	}
	if p.Model != nil {
		m := strings.TrimSpace(*p.Model)
		if m == "" {
			return s, fmt.Errorf("%w: model must not be empty", ErrInvalidSettings)
		}
		s.Model = m
	}
	if p.SystemPrompt != nil {
		s.SystemPrompt = *p.SystemPrompt
	}
	if p.MaxTokens != nil {
		if *p.MaxTokens < 1 || *p.MaxTokens > MaxTokensLimit {
			return s, fmt.Errorf("%w: max tokens must be between 1 and %d", ErrInvalidSettings, MaxTokensLimit)
		}
		s.MaxTokens = *p.MaxTokens
	}
	if p.Theme != nil {
		if *p.Theme != ThemeLight && *p.Theme != ThemeDark {
			return s, fmt.Errorf("%w: theme must be light or dark", ErrInvalidSettings)
		}
		s.Theme = *p.Theme
	}
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.clone()
}

// UpdateSettings applies patch and persists the result. A replaced API key
// is dropped from the provider's per-credential state.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) (Settings, error) {
	var replaced string
	next, err := s.mutateSettings(ctx, ActionSettingsUpdate, func(cur Settings) (Settings, string, error) {
		next, err := patch.apply(cur)
		if err != nil {
			return cur, "", err
		}
		if cur.APIKey != "" && cur.APIKey != next.APIKey {
			replaced = cur.APIKey
		}
		return next, settingsDiff(cur, next), nil
	})
	if err != nil {
		return Settings{}, err
	}
	if f, ok := s.gen.(ai.Forgetter); ok && replaced != "" {
		f.Forget(replaced)
	}
	return next, nil
}

// AddIntent appends a custom intent label.
func (s *Service) AddIntent(ctx context.Context, label string) (Settings, error) {
	label = strings.TrimSpace(label)
	return s.mutateSettings(ctx, ActionIntentAdd, func(cur Settings) (Settings, string, error) {
		if label == "" {
			return cur, "", fmt.Errorf("%w: label must not be empty", ErrInvalidIntent)
		}
		if slices.ContainsFunc(cur.Intents(), func(v string) bool { return strings.EqualFold(v, label) }) {
			return cur, "", fmt.Errorf("%w: %q already exists", ErrInvalidIntent, label)
		}
		cur.CustomIntents = append(cur.CustomIntents, label)
		return cur, label, nil
	})
}

// RemoveIntent removes a custom intent label. Rows already using it keep it.
func (s *Service) RemoveIntent(ctx context.Context, label string) (Settings, error) {
	return s.mutateSettings(ctx, ActionIntentRemove, func(cur Settings) (Settings, string, error) {
		if slices.Contains(DefaultIntents, label) {
			return cur, "", fmt.Errorf("%w: %q is built in", ErrInvalidIntent, label)
		}
		idx := slices.Index(cur.CustomIntents, label)
		if idx < 0 {
			return cur, "", fmt.Errorf("%w: %q not found", ErrInvalidIntent, label)
		}
		cur.CustomIntents = slices.Delete(cur.CustomIntents, idx, idx+1)
		return cur, label, nil
	})
}

// ToggleTheme flips between light and dark.
func (s *Service) ToggleTheme(ctx context.Context) (Settings, error) {
	return s.mutateSettings(ctx, ActionThemeToggle, func(cur Settings) (Settings, string, error) {
		if cur.Theme == ThemeDark {
			cur.Theme = ThemeLight
		} else {
			cur.Theme = ThemeDark
		}
		return cur, string(cur.Theme), nil
	})
}

// TestCredential lists the models visible to apiKey, or to the stored key
// when apiKey is empty.
func (s *Service) TestCredential(ctx context.Context, apiKey string) ([]string, error) {
	if apiKey == "" {
		apiKey = s.Settings().APIKey
	}
	models, err := s.gen.ListModels(ctx, apiKey)
	reason := "ok"
	if err != nil {
		reason = err.Error()
	}
	s.audit(ctx, AuditLogParams{Action: ActionCredentialCheck, NewValue: MaskKey(apiKey), Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("test credential: %w", err)
	}
	return models, nil
}

// mutateSettings runs fn on a copy, persists, swaps, audits and publishes.
func (s *Service) mutateSettings(ctx context.Context, action AuditAction, fn func(Settings) (Settings, string, error)) (Settings, error) {
	s.mu.Lock()
	next, detail, err := fn(s.settings.clone())
	if err != nil {
		s.mu.Unlock()
		return Settings{}, err
	}
	if err := s.store.SaveSettings(ctx, next); err != nil {
		s.mu.Unlock()
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}
	s.settings = next
	s.version++
	version := s.version
	s.mu.Unlock()

	s.audit(ctx, AuditLogParams{Action: action, NewValue: detail})
	s.publish(ctx, EventSettingsUpdated, version, "")
	return next.clone(), nil
}

// settingsDiff names the changed fields without revealing the credential.
func settingsDiff(a, b Settings) string {
	var changed []string
	if a.APIKey != b.APIKey {
		changed = append(changed, "apiKey")
	}
	if a.Model != b.Model {
		changed = append(changed, "model="+b.Model)
	}
	if a.SystemPrompt != b.SystemPrompt {
		changed = append(changed, "systemPrompt")
	}
	if a.MaxTokens != b.MaxTokens {
		changed = append(changed, fmt.Sprintf("maxTokens=%d", b.MaxTokens))
	}
	if a.Theme != b.Theme {
		changed = append(changed, "theme="+string(b.Theme))
	}
	return strings.Join(changed, ",")
}

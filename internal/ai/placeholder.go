package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func init() {
	Register("placeholder", func(o Options) Provider { return NewPlaceholder(o.Latency) })
}

// Placeholder produces canned text without a network call. It needs no
// credential and is meant for development and demos.
type Placeholder struct {
	latency time.Duration
}

var _ Provider = (*Placeholder)(nil)

func NewPlaceholder(latency time.Duration) *Placeholder {
	return &Placeholder{latency: latency}
}

func (p *Placeholder) Name() string {
	return "placeholder"
}

func (p *Placeholder) GenerateQuestion(ctx context.Context, req Request) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	intent := strings.TrimSpace(req.Intent)
	if intent == "" {
		intent = "general"
	}
	return fmt.Sprintf("What should I know about %s?", strings.ToLower(intent)), nil
}

func (p *Placeholder) GenerateAnswer(ctx context.Context, req Request) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("[Placeholder] This is a sample answer to %q. Configure a real AI provider for generated content.",
		strings.TrimSpace(req.Question)), nil
}

func (p *Placeholder) ListModels(ctx context.Context, _ string) ([]string, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return []string{"placeholder"}, nil
}

// wait simulates network latency and honors cancellation.
func (p *Placeholder) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(p.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

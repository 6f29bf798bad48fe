package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultOpenAIBaseURL is the public API root.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	defaultTimeout = 30 * time.Second
	temperature    = 0.7
	tracerName     = "qaeditor/ai"
)

func init() {
	Register("openai", func(o Options) Provider { return NewOpenAI(o) })
}

// OpenAI calls the chat completions endpoint.
type OpenAI struct {
	baseURL string
	http    *resty.Client
}

var _ Provider = (*OpenAI)(nil)

// NewOpenAI builds an OpenAI provider. Zero options use the public API and
// a 30s timeout.
func NewOpenAI(o Options) *OpenAI {
	base := o.BaseURL
	if base == "" {
		base = DefaultOpenAIBaseURL
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenAI{
		baseURL: strings.TrimRight(base, "/"),
		http:    resty.New().SetTimeout(timeout),
	}
}

func (p *OpenAI) Name() string { return "openai" }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateQuestion asks for a question matching req.Intent.
func (p *OpenAI) GenerateQuestion(ctx context.Context, req Request) (string, error) {
	return p.complete(ctx, "question", req, questionMessages(req), FallbackQuestion)
}

// GenerateAnswer asks for an answer to req.Question.
func (p *OpenAI) GenerateAnswer(ctx context.Context, req Request) (string, error) {
	return p.complete(ctx, "answer", req, answerMessages(req), FallbackAnswer)
}

func (p *OpenAI) complete(ctx context.Context, kind string, req Request, msgs []message, fallback string) (text string, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ai.generate",
		trace.WithAttributes(
			attribute.String("ai.provider", p.Name()),
			attribute.String("ai.kind", kind),
			attribute.String("ai.model", req.Model),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if req.APIKey == "" {
		return "", ErrMissingCredential
	}

	var out chatResponse
	var apiErr apiError
	resp, err := p.http.R().
		SetContext(ctx).
		SetAuthToken(req.APIKey).
		SetBody(chatRequest{
			Model:       req.Model,
			Messages:    msgs,
			MaxTokens:   req.MaxTokens,
			Temperature: temperature,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return "", fmt.Errorf("ai provider request failed: %w", err)
	}
	if resp.IsError() {
		return "", &RemoteError{Status: resp.StatusCode(), Message: remoteMessage(apiErr, resp)}
	}

	if len(out.Choices) > 0 {
		if content := strings.TrimSpace(out.Choices[0].Message.Content); content != "" {
			return content, nil
		}
	}
	return fallback, nil
}

// ListModels returns the model ids visible to apiKey.
func (p *OpenAI) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ai.list_models",
		trace.WithAttributes(attribute.String("ai.provider", p.Name())),
	)
	defer span.End()

	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	var out struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	var apiErr apiError
	resp, err := p.http.R().
		SetContext(ctx).
		SetAuthToken(apiKey).
		SetResult(&out).
		SetError(&apiErr).
		Get(p.baseURL + "/models")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("ai provider request failed: %w", err)
	}
	if resp.IsError() {
		rerr := &RemoteError{Status: resp.StatusCode(), Message: remoteMessage(apiErr, resp)}
		span.RecordError(rerr)
		return nil, rerr
	}

	models := make([]string, 0, len(out.Data))
	for _, m := range out.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

func remoteMessage(apiErr apiError, resp *resty.Response) string {
	if apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	if body := strings.TrimSpace(resp.String()); body != "" {
		return body
	}
	return resp.Status()
}

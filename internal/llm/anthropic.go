package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Z335han/bmc-banking-ai/internal/agent"
	"github.com/Z335han/bmc-banking-ai/internal/metrics"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// FailureKind classifies why a completion call failed.
type FailureKind string

const (
	FailureTimeout           FailureKind = "timeout"
	FailureAuth              FailureKind = "auth"
	FailureMalformedResponse FailureKind = "malformed_response"
	FailureTransport         FailureKind = "transport"
)

// CompletionError is the typed failure returned by Complete. It is always a
// value, never a panic: callers degrade their result instead of crashing.
type CompletionError struct {
	Kind FailureKind
	Err  error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion %s: %v", e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

const (
	defaultModel       = "claude-sonnet-4-5-20250929"
	defaultMaxTokens   = 300
	defaultTemperature = 0.7
)

// Client implements agent.CompletionService over the Anthropic Messages API.
// Output length and sampling temperature are fixed at construction.
type Client struct {
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
	logger      *zap.Logger
}

type Options struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = defaultTemperature
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		client:      anthropic.NewClient(option.WithAPIKey(opts.APIKey)),
		model:       anthropic.Model(opts.Model),
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		logger:      logger.Named("llm"),
	}
}

// Complete performs one stateless, single-turn generation.
func (c *Client) Complete(ctx context.Context, userPrompt, systemInstruction string) (agent.Completion, error) {
	start := time.Now()

	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemInstruction}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		metrics.CompletionFailures.Inc()
		cerr := classifyFailure(err)
		c.logger.Warn("completion call failed",
			zap.String("kind", string(cerr.Kind)),
			zap.Error(err))
		return agent.Completion{}, cerr
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return agent.Completion{Text: block.Text, Elapsed: time.Since(start)}, nil
		}
	}

	metrics.CompletionFailures.Inc()
	return agent.Completion{}, &CompletionError{
		Kind: FailureMalformedResponse,
		Err:  errors.New("response contained no text block"),
	}
}

func classifyFailure(err error) *CompletionError {
	var apierr *anthropic.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &CompletionError{Kind: FailureTimeout, Err: err}
	case errors.As(err, &apierr):
		if apierr.StatusCode == 401 || apierr.StatusCode == 403 {
			return &CompletionError{Kind: FailureAuth, Err: err}
		}
		return &CompletionError{Kind: FailureTransport, Err: err}
	default:
		return &CompletionError{Kind: FailureTransport, Err: err}
	}
}

package generation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/circuitbreaker"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/metrics"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/tracing"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MaxAttempts is the hard ceiling of completion calls per generation.
const MaxAttempts = 3

// ErrGenerationFailed is returned when every attempt failed at the transport level.
var ErrGenerationFailed = errors.New("content generation failed")

// ChatCompleter is the subset of the OpenAI client used here.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config tunes completion calls and the retry loop.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
	MaxAttempts int
	BackoffUnit time.Duration
	CallTimeout time.Duration
}

// Result is the outcome of a generation that did not fail fatally.
// Valid is false when the attempts ran out on malformed content; Raw then
// holds the last response and the parser falls back.
type Result struct {
	Raw         string
	Valid       bool
	Attempts    int
	LastFailure error
}

// Action is what the retry loop does after an attempt.
type Action int

const (
	ActionRetry Action = iota
	ActionAccept
	ActionFallback
	ActionFail
)

func (a Action) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionAccept:
		return "accept"
	case ActionFallback:
		return "fallback"
	case ActionFail:
		return "fail"
	default:
		return "unknown"
	}
}

type outcomeKind int

const (
	outcomeTransportError outcomeKind = iota
	outcomeInvalid
	outcomeValid
)

// attemptOutcome is what one completion call produced.
type attemptOutcome struct {
	Kind outcomeKind
	Raw  string
	Err  error
}

// attemptState is passed by value between attempts.
// Attempt is the 1-based number of the call about to be made or just made.
type attemptState struct {
	Attempt     int
	Messages    []openai.ChatCompletionMessage
	LastFailure error
}

type retryPolicy struct {
	maxAttempts int
	backoffUnit time.Duration
}

func newRetryPolicy(maxAttempts int, unit time.Duration) retryPolicy {
	if maxAttempts < 1 || maxAttempts > MaxAttempts {
		maxAttempts = MaxAttempts
	}
	return retryPolicy{maxAttempts: maxAttempts, backoffUnit: unit}
}

// advance is the transition function of the retry loop. It never mutates state.
func (p retryPolicy) advance(state attemptState, outcome attemptOutcome) (attemptState, Action) {
	exhausted := state.Attempt >= p.maxAttempts

	switch outcome.Kind {
	case outcomeValid:
		state.LastFailure = nil
		return state, ActionAccept

	case outcomeTransportError:
		state.LastFailure = outcome.Err
		if exhausted {
			return state, ActionFail
		}
		state.Attempt++
		return state, ActionRetry

	default:
		state.LastFailure = outcome.Err
		if exhausted {
			return state, ActionFallback
		}
		messages := slices.Clone(state.Messages)
		state.Messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: CorrectionMessage(outcome.Err),
		})
		state.Attempt++
		return state, ActionRetry
	}
}

// backoff is the wait before retrying after transport failure of attempt n:
// unit, 2*unit, 4*unit...
func (p retryPolicy) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.backoffUnit * time.Duration(1<<(attempt-1))
}

// Client calls an OpenAI-compatible chat-completion API.
type Client struct {
	api     ChatCompleter
	breaker *gobreaker.CircuitBreaker
	cfg     Config
	policy  retryPolicy
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewClient creates a generation client. breaker may be nil.
func NewClient(api ChatCompleter, breaker *gobreaker.CircuitBreaker, cfg Config) *Client {
	return &Client{
		api:     api,
		breaker: breaker,
		cfg:     cfg,
		policy:  newRetryPolicy(cfg.MaxAttempts, cfg.BackoffUnit),
		sleep:   sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Generate runs the prompt through the retry loop. Only transport failure on
// the last attempt (or cancellation of ctx) is returned as an error.
func (c *Client) Generate(ctx context.Context, prompt string) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "generation.generate")
	defer span.End()

	state := attemptState{
		Attempt: 1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	for {
		outcome := c.attempt(ctx, state)
		next, action := c.policy.advance(state, outcome)

		logger.Debug("Generation attempt finished",
			zap.Int("attempt", state.Attempt),
			zap.String("action", action.String()),
			zap.Error(outcome.Err))

		switch action {
		case ActionAccept:
			metrics.GenerationAttempts.Observe(float64(state.Attempt))
			span.SetAttributes(attribute.Int("generation.attempts", state.Attempt))
			return &Result{Raw: outcome.Raw, Valid: true, Attempts: state.Attempt}, nil

		case ActionFallback:
			metrics.GenerationAttempts.Observe(float64(state.Attempt))
			span.SetAttributes(attribute.Int("generation.attempts", state.Attempt))
			logger.Warn("Generation attempts exhausted with invalid content",
				zap.Int("attempts", state.Attempt),
				zap.Error(next.LastFailure))
			return &Result{Raw: outcome.Raw, Valid: false, Attempts: state.Attempt, LastFailure: next.LastFailure}, nil

		case ActionFail:
			metrics.GenerationAttempts.Observe(float64(state.Attempt))
			err := fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, state.Attempt, next.LastFailure)
			tracing.RecordError(span, err)
			return nil, err
		}

		if ctx.Err() != nil {
			err := fmt.Errorf("%w: %w", ErrGenerationFailed, ctx.Err())
			tracing.RecordError(span, err)
			return nil, err
		}

		if outcome.Kind == outcomeTransportError {
			if err := c.sleep(ctx, c.policy.backoff(state.Attempt)); err != nil {
				err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
				tracing.RecordError(span, err)
				return nil, err
			}
		}

		state = next
	}
}

// attempt performs one completion call and classifies its result.
func (c *Client) attempt(ctx context.Context, state attemptState) attemptOutcome {
	ctx, span := tracing.StartSpan(ctx, "generation.attempt", attribute.Int("generation.attempt", state.Attempt))
	defer span.End()

	raw, err := c.complete(ctx, "generate", state.Messages)
	if err != nil {
		tracing.RecordError(span, err)
		return attemptOutcome{Kind: outcomeTransportError, Err: err}
	}

	if err := Validate(raw); err != nil {
		return attemptOutcome{Kind: outcomeInvalid, Raw: raw, Err: err}
	}
	return attemptOutcome{Kind: outcomeValid, Raw: raw}
}

// Complete makes a single, non-retried call and returns the trimmed reply text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "generation.complete")
	defer span.End()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}

	text, err := c.complete(ctx, "refine", messages)
	if err != nil {
		tracing.RecordError(span, err)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return strings.TrimSpace(text), nil
}

// complete issues one chat-completion request through the circuit breaker.
func (c *Client) complete(ctx context.Context, operation string, messages []openai.ChatCompletionMessage) (string, error) {
	start := time.Now()

	if c.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.CallTimeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	call := func() (openai.ChatCompletionResponse, error) {
		return c.api.CreateChatCompletion(ctx, req)
	}

	var (
		resp openai.ChatCompletionResponse
		err  error
	)
	if c.breaker != nil {
		resp, err = circuitbreaker.Execute(c.breaker, call)
	} else {
		resp, err = call()
	}

	duration := metrics.MeasureDuration(start)
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("completion returned no choices")
	}

	if err != nil {
		status := "error"
		if circuitbreaker.IsRejection(err) {
			status = "rejected"
		}
		metrics.LLMRequestDuration.WithLabelValues(operation, status).Observe(duration)
		metrics.LLMRequestTotal.WithLabelValues(operation, status).Inc()
		logger.LogAPICall("llm", operation, status, duration,
			zap.String("model", c.cfg.Model),
			zap.Error(err))
		return "", err
	}

	metrics.LLMRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.LLMRequestTotal.WithLabelValues(operation, "success").Inc()
	metrics.LLMTokensUsed.WithLabelValues("prompt").Add(float64(resp.Usage.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues("completion").Add(float64(resp.Usage.CompletionTokens))
	logger.LogAPICall("llm", operation, "success", duration,
		zap.String("model", c.cfg.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content, nil
}

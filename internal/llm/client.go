// ABOUTME: Completion client for an OpenAI-protocol text-generation service
// ABOUTME: Single-attempt calls with timeout; failures surface, never retry
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// ErrNotAuthenticated means no access token was provided; callers fail fast
// at startup rather than at the first question.
var ErrNotAuthenticated = errors.New("completion service access token is missing")

// ErrServiceCall marks a failed generation call. The answer controller
// surfaces it as a terminal response and never retries the same call.
var ErrServiceCall = errors.New("completion service call failed")

// Config configures the completion client.
type Config struct {
	BaseURL     string
	AccessToken string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// Client talks to the completion service. Generation parameters follow the
// documentation-assistant defaults: near-deterministic sampling, short
// answers.
type Client struct {
	client      *openai.Client
	model       string
	timeout     time.Duration
	maxTokens   int
	temperature float32
	topP        float32
}

// NewClient creates a Client. An empty access token is rejected with
// ErrNotAuthenticated.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, ErrNotAuthenticated
	}
	clientCfg := openai.DefaultConfig(cfg.AccessToken)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Transport: &requestIDTransport{base: http.DefaultTransport}}

	if cfg.Model == "" {
		cfg.Model = "GigaChat"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 1
	}
	if cfg.TopP == 0 {
		cfg.TopP = 0.1
	}
	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}, nil
}

// Complete sends (system instruction, prior turns, user message) and, on
// success, appends the new user/assistant pair to the session.
func (c *Client) Complete(ctx context.Context, session *Session, systemMessage, userMessage string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, session.Len()+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemMessage,
	})
	messages = append(messages, session.History()...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		TopP:        c.topP,
		MaxTokens:   c.maxTokens,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceCall, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices returned", ErrServiceCall)
	}

	answer := resp.Choices[0].Message.Content
	session.Append(userMessage, answer)
	return answer, nil
}

// requestIDTransport attaches a unique request id to every call, matching
// the service's request-tracing convention.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(req)
}

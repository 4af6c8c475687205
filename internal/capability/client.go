package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/errors"
)

// NotConfiguredMessage is returned as an ordinary completion when no
// credential is configured. It is deliberately a successful result rather
// than an error so the pipeline still produces a well-formed report with a
// visible notice per engine.
const NotConfiguredMessage = "Research capability not configured. " +
	"Set QUORUM_CAPABILITY_API_KEY to enable live research."

// Client calls an OpenAI-compatible chat completions backend. It is stateless
// apart from its configuration and is safe for concurrent use; all engines in
// a fan-out share one Client.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	apiKey      string
	maxTokens   int
	temperature float64
}

// NewClient creates a Client from capability configuration.
func NewClient(cfg config.CapabilityConfig) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Configured reports whether a credential is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Complete sends one chat completion with the persona instruction as the
// system message and userMessage as the user message, and returns the
// completion text.
//
// When no credential is configured it returns [NotConfiguredMessage] with a
// nil error.
func (c *Client) Complete(ctx context.Context, personaInstruction, userMessage string) (string, error) {
	if !c.Configured() {
		return NotConfiguredMessage, nil
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: personaInstruction},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.NewCapabilityError("encoding completion request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", errors.NewCapabilityError("building completion request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.NewCapabilityError("completion request failed", errors.Join(err, errors.ErrUpstreamUnavailable))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewCapabilityError("reading completion response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp.StatusCode, body)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", errors.NewCapabilityError("decoding completion response", err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", errors.NewCapabilityError("completion had no content", errors.ErrEmptyCompletion)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// statusError maps a non-200 upstream response to a CapabilityError wrapping
// the matching sentinel.
func (c *Client) statusError(status int, body []byte) error {
	message := fmt.Sprintf("upstream returned status %d", status)
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	var cause error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		cause = errors.ErrUnauthorized
	case status == http.StatusTooManyRequests:
		cause = errors.ErrRateLimited
	case status >= 500:
		cause = errors.ErrUpstreamUnavailable
	}

	return errors.NewCapabilityError(message, cause).WithStatusCode(status)
}

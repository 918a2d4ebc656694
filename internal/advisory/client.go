// Package advisory provides a best-effort client for an external
// text-suggestion collaborator. The collaborator is never authoritative:
// callers discard proposals that fall outside their own constraints and
// treat every failure as the absence of a suggestion.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Config captures the settings required to reach the collaborator.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls a chat-completions style endpoint for room and message
// suggestions. A client without an API key is valid and reports itself
// disabled.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	http    *http.Client
}

// NewClient constructs an advisory client. The HTTP client may be nil, in
// which case http.DefaultClient is used; the per-call timeout bounds every
// request regardless.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		http:    httpClient,
	}
}

// Enabled reports whether the client is configured to make calls.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// SuggestRoom asks the collaborator to pick among the available rooms for
// the given window. The returned name is a raw proposal; callers must check
// it against their own available set.
func (c *Client) SuggestRoom(ctx context.Context, rooms []string, date, startTime, endTime string) (string, error) {
	prompt := fmt.Sprintf(
		"Given the following available rooms: %s for a lecture on %s from %s to %s, which room would you recommend? Just provide the room name.",
		strings.Join(rooms, ", "), date, startTime, endTime,
	)
	return c.complete(ctx, prompt, 10)
}

// SuggestMessage asks the collaborator for a polite explanation when no
// room is free for the given window.
func (c *Client) SuggestMessage(ctx context.Context, date, startTime, endTime string) (string, error) {
	prompt := fmt.Sprintf(
		"No rooms are available for a lecture on %s from %s to %s. Suggest a polite message or creative solution for the scheduling conflict.",
		date, startTime, endTime,
	)
	return c.complete(ctx, prompt, 60)
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", errors.New("advisory: client disabled")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("advisory: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("advisory: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisory: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("advisory: failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("advisory: empty response")
	}

	suggestion := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if suggestion == "" {
		return "", errors.New("advisory: empty suggestion")
	}
	return suggestion, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// Version is reported in the User-Agent header. Set by the cli package.
var Version = "dev"

// maxErrorBody bounds how much of a failed response is kept for logs.
const maxErrorBody = 512

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:5000)
	BaseURL string

	LoadPath     string
	SavePath     string
	ChatPath     string
	EvaluatePath string

	// HTTPClient overrides the transport. Requests carry no client-side
	// timeout; the caller's context bounds them.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://127.0.0.1:5000",
		LoadPath:     "/api/loadConversations",
		SavePath:     "/api/saveConversations",
		ChatPath:     "/chat",
		EvaluatePath: "/api/evaluate",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the chatbot backend's four JSON endpoints.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := backend.NewClient(&backend.ClientConfig{BaseURL: "http://127.0.0.1:5000"})
//	resp, err := client.Chat(ctx, "What is RAG?")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a backend client. Zero fields take their defaults.
func NewClient(config *ClientConfig) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	cfg := *config

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.LoadPath == "" {
		cfg.LoadPath = defaults.LoadPath
	}
	if cfg.SavePath == "" {
		cfg.SavePath = defaults.SavePath
	}
	if cfg.ChatPath == "" {
		cfg.ChatPath = defaults.ChatPath
	}
	if cfg.EvaluatePath == "" {
		cfg.EvaluatePath = defaults.EvaluatePath
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{config: &cfg, httpClient: httpClient}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CONVERSATION STORAGE
// =============================================================================

// LoadConversations fetches the saved conversation list.
func (c *Client) LoadConversations(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	if err := c.do(ctx, "load conversations", http.MethodGet, c.config.LoadPath, nil, &convs); err != nil {
		return nil, err
	}
	if convs == nil {
		convs = make([]model.Conversation, 0)
	}
	for i := range convs {
		convs[i].Normalize()
	}
	return convs, nil
}

// SaveConversations replaces the backend's conversation list with convs.
func (c *Client) SaveConversations(ctx context.Context, convs []model.Conversation) error {
	if convs == nil {
		convs = make([]model.Conversation, 0)
	}
	return c.do(ctx, "save conversations", http.MethodPost, c.config.SavePath, convs, nil)
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// ChatRequest is the body of a chat call.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the backend's answer with any retrieved sources.
type ChatResponse struct {
	Response string         `json:"response"`
	Sources  []model.Source `json:"sources,omitempty"`
}

// Chat sends one message and waits for the complete answer.
// Cancelling ctx aborts the request with an ErrTypeCancelled error.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	var result ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, c.config.ChatPath, ChatRequest{Message: message}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Evaluate posts a feedback record. The response body is ignored.
func (c *Client) Evaluate(ctx context.Context, rec model.FeedbackRecord) error {
	if rec.SourceIDs == nil {
		rec.SourceIDs = make([]string, 0)
	}
	return c.do(ctx, "evaluate", http.MethodPost, c.config.EvaluatePath, rec, nil)
}

// =============================================================================
// TRANSPORT
// =============================================================================

// do performs one JSON round trip. A nil body sends no payload; a nil out
// discards the response body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal " + op + " request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeNetwork, Message: "failed to create " + op + " request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ragchat/"+Version)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(ctx, op, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		cerr := &ClientError{
			Type:       ErrTypeHTTP,
			StatusCode: resp.StatusCode,
			Message:    op + " request failed",
		}
		if s := strings.TrimSpace(string(snippet)); s != "" {
			cerr.Message += ": " + s
		}
		return cerr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return classifyTransport(ctx, op, err)
		}
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode " + op + " response", Cause: err}
	}
	return nil
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}

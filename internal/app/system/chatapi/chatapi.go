// Package chatapi is a minimal client for an OpenAI-compatible chat
// completion endpoint. The chatbot feature calls it synchronously per user
// message with a fixed system prompt that keeps answers on topic.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Timeout bounds one completion round trip, matching the HTTP client's own
// timeout.
const Timeout = 30 * time.Second

// SystemPrompt restricts the assistant to questions about the organization.
const SystemPrompt = "You are a helpful assistant for Ella Rises, a nonprofit " +
	"that empowers women and girls through events, mentorship, and milestones. " +
	"Only answer questions about Ella Rises, its events, registrations, " +
	"donations, and programs. Politely decline anything else."

// Client calls the chat completion API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	log     *zap.Logger
}

// New builds a client. baseURL should be the API root (e.g.
// "https://api.openai.com/v1"); it is variable so tests can point the client
// at a local server.
func New(baseURL, apiKey, model string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: Timeout},
		log:     logger,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one user message and returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, userMessage string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var out completionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return "", fmt.Errorf("completion API: %s", out.Error.Message)
		}
		return "", fmt.Errorf("completion API: status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

/* Copyright 2025 StudyFlow Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package ai provides the client for the external text-generation
// capability, the prompt templates, and the response parsers
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the default API endpoint
	DefaultBaseURL = "https://api.anthropic.com"

	apiVersion   = "2023-06-01"
	messagesPath = "/v1/messages"
)

var (
	// ErrAPIKeyMissing is an error for a client configured without an API key
	ErrAPIKeyMissing = errors.New("generation API key is not configured")
	// ErrUnauthorized is an error for a rejected API key
	ErrUnauthorized = errors.New("generation API key was rejected")
	// ErrRateLimited is an error for an exhausted API rate limit
	ErrRateLimited = errors.New("generation API rate limit exceeded")
	// ErrOverloaded is an error for a temporarily overloaded upstream
	ErrOverloaded = errors.New("generation API is temporarily overloaded")
)

// Client is the external text-generation capability. A single call produces
// raw text for the given prompts. The caller does not retry.
type Client interface {
	Generate(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

// Config is the configuration for the generation client
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	// BaseURL overrides the API endpoint. Used in tests.
	BaseURL string
	// HTTPClient overrides the http client. Used in tests.
	HTTPClient *http.Client
}

type client struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	baseURL     string
	hc          *http.Client
}

// NewClient creates a generation client with the given configuration
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		baseURL:     baseURL,
		hc:          hc,
	}, nil
}

type messageParam struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
	System      string         `json:"system,omitempty"`
	Messages    []messageParam `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate performs a single generation call and returns the raw text
func (c *client) Generate(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	body := messagesRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		System:      systemPrompt,
		Messages: []messageParam{
			{Role: "user", Content: userPrompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "marshalling request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "constructing request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Anthropic-Version", apiVersion)

	res, err := c.hc.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "performing request")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response body")
	}

	if err := checkStatus(res.StatusCode, resBody); err != nil {
		return "", err
	}

	var parsed messagesResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", errors.Wrap(err, "unmarshalling response")
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("response contained no content")
	}

	return parsed.Content[0].Text, nil
}

func checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case 529:
		return ErrOverloaded
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
		return errors.Errorf("generation API error: %s", parsed.Error.Message)
	}

	return fmt.Errorf("generation API returned status %d", statusCode)
}

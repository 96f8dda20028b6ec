package Gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultModel   = "gemini-3-flash-preview"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// requestTimeout bounds a single generateContent call. There are no retries;
// a call runs once to completion or timeout.
const requestTimeout = 120 * time.Second

// TextGenerator is the surface handlers and pipelines depend on, so tests
// can substitute a canned generator.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no API key is present.
var ErrNotConfigured = errors.New("GEMINI_API_KEY is not set")

// APIError reports a non-2xx reply or an unusable response body from the
// generation API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api request failed (%d): %s", e.StatusCode, e.Message)
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

// NewClient reads its configuration from the environment. Keys pasted with
// surrounding quotes are tolerated.
func NewClient() *Client {
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	key = strings.Trim(key, `'"`)
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		APIKey:  key,
		Model:   model,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: requestTimeout},
	}
}

// IsConfigured reports whether an API key is available.
func (g *Client) IsConfigured() bool {
	return g.APIKey != ""
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends one prompt and returns the first candidate's text.
func (g *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if !g.IsConfigured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var result generateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    "unexpected response format: " + Truncate(string(raw), 200),
		}
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

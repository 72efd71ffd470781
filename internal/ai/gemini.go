package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Config holds the settings for the Gemini-backed client.
type Config struct {
	APIKey  string
	Model   string        // defaults to gemini-2.0-flash
	BaseURL string        // overridable for tests
	Timeout time.Duration // per-request timeout, defaults to 30s
}

// geminiClient implements Client against the generateContent endpoint.
type geminiClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewClient creates a Gemini API client.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &geminiClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *geminiClient) GenerateInsights(ctx context.Context, req InsightsRequest) (InsightsResponse, error) {
	prompt, err := buildInsightsPrompt(req)
	if err != nil {
		return InsightsResponse{}, err
	}
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return InsightsResponse{}, err
	}
	return InsightsResponse{Insights: strings.TrimSpace(text)}, nil
}

func (c *geminiClient) SuggestCategory(ctx context.Context, req SuggestRequest) (SuggestResponse, error) {
	prompt, err := buildSuggestPrompt(req)
	if err != nil {
		return SuggestResponse{}, err
	}
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return SuggestResponse{}, err
	}

	var out struct {
		CategoryID string `json:"categoryId"`
	}
	raw := extractJSON(text)
	if raw == "" {
		return SuggestResponse{}, fmt.Errorf("no JSON object in model reply")
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return SuggestResponse{}, fmt.Errorf("parse model reply: %w", err)
	}
	return SuggestResponse{CategoryID: out.CategoryID}, nil
}

// generateContent wire types, trimmed to the fields used here.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *geminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generateContent returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if gr.Error != nil {
		return "", fmt.Errorf("generateContent error %d: %s", gr.Error.Code, gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model reply")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

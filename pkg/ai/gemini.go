package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/meetscribe/meetscribe/pkg/config"
)

// GeminiClient is a minimal client for the Gemini generateContent API
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client from the injected config
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	base := cfg.BaseURL
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &GeminiClient{
		apiKey:  cfg.APIKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// GenerateRequest is the generateContent payload shape
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single multi-part message
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is either prompt text or inline binary data
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData carries base64-encoded audio next to the prompt
type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GenerateResponse is a minimal response shape
type GenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// InvokeText sends a text-only prompt and returns the raw model reply.
// The reply is returned unmodified; callers must not assume it is valid JSON.
func (g *GeminiClient) InvokeText(ctx context.Context, prompt string) (string, error) {
	req := GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}
	return g.generate(ctx, &req)
}

// InvokeAudio sends a prompt with inline audio data and returns the raw model reply
func (g *GeminiClient) InvokeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	req := GenerateRequest{
		Contents: []Content{{Parts: []Part{
			{Text: prompt},
			{InlineData: &InlineData{
				MIMEType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(audio),
			}},
		}}},
	}
	return g.generate(ctx, &req)
}

// generate issues exactly one generateContent call; no retries, no streaming
func (g *GeminiClient) generate(ctx context.Context, payload *GenerateRequest) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(body))
	}

	var gr GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/meetscribe/meetscribe/pkg/config"
)

// ChatClient routes text-only prompts to an OpenAI-compatible chat
// completions endpoint (OpenAI, Groq, ...). Audio prompts always go
// through the Gemini client; this exists so deployments can keep a
// cheaper or faster text model for summary-style analysis.
type ChatClient struct {
	client *openai.Client
	model  string
}

// NewChatClient creates a chat client from the text-model config
func NewChatClient(cfg *config.TextModelConfig) *ChatClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &ChatClient{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
	}
}

// InvokeText sends the prompt as a single user message and returns the
// raw assistant content. One call per invocation, no retries.
func (c *ChatClient) InvokeText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat model")
	}
	return resp.Choices[0].Message.Content, nil
}

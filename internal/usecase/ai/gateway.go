package ai

import "context"

// TextInvoker issues one text-prompt call against the external model
// and returns the raw reply. The reply is never assumed to be JSON.
type TextInvoker interface {
	InvokeText(ctx context.Context, prompt string) (string, error)
}

// AudioInvoker issues one audio-prompt call against the external model
type AudioInvoker interface {
	InvokeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)
}

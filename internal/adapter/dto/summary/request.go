package summary

import "encoding/json"

// GenerateRequest is the body of POST /api/summary/generate.
// TranscriptData is passed through to the prompt untouched, so any JSON
// shape the client produced from a transcription result is accepted.
type GenerateRequest struct {
	TranscriptData json.RawMessage `json:"transcriptData" validate:"required"`
}

// AnalyzeSentimentRequest is the body of POST /api/summary/analyze-sentiment
type AnalyzeSentimentRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractActionItemsRequest is the body of POST /api/summary/extract-action-items
type ExtractActionItemsRequest struct {
	TranscriptData json.RawMessage `json:"transcriptData" validate:"required"`
}

package transcription

import (
	"time"

	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/infrastructure/cache"
)

// UploadResponse is returned by POST /api/transcription/upload
type UploadResponse struct {
	ID            string                          `json:"id"`
	FileName      string                          `json:"fileName"`
	FileSize      int64                           `json:"fileSize"`
	UploadedAt    time.Time                       `json:"uploadedAt"`
	AudioURL      string                          `json:"audioURL"`
	Duration      float64                         `json:"duration"`
	Transcription *entities.TranscriptionDocument `json:"transcription"`
	Summary       *entities.SummaryDocument       `json:"summary"`
	Status        string                          `json:"status"`
	Note          string                          `json:"note,omitempty"`
}

// TranscribeResponse is returned by POST /api/transcription/transcribe
type TranscribeResponse struct {
	ID            string                          `json:"id"`
	FileName      string                          `json:"fileName"`
	Transcription *entities.TranscriptionDocument `json:"transcription"`
	Status        string                          `json:"status"`
	Note          string                          `json:"note,omitempty"`
}

// SupportedFormat describes one accepted audio container
type SupportedFormat struct {
	Extension   string `json:"extension"`
	MimeType    string `json:"mimeType"`
	Description string `json:"description"`
}

// FormatsResponse is the static capability listing for GET /api/transcription/formats
type FormatsResponse struct {
	SupportedFormats    []SupportedFormat   `json:"supportedFormats"`
	MaxFileSize         string              `json:"maxFileSize"`
	RecommendedFormat   string              `json:"recommendedFormat"`
	RecommendedSettings RecommendedSettings `json:"recommendedSettings"`
}

// RecommendedSettings is the encoding advice in the formats listing
type RecommendedSettings struct {
	SampleRate string `json:"sampleRate"`
	Channels   string `json:"channels"`
	BitRate    string `json:"bitRate"`
}

// RecentResponse lists recent uploads from the in-process registry
type RecentResponse struct {
	Uploads []cache.UploadRecord `json:"uploads"`
	Count   int                  `json:"count"`
}

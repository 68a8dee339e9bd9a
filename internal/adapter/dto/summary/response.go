package summary

import (
	"time"

	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// GenerateResponse is returned by POST /api/summary/generate
type GenerateResponse struct {
	ID          string                    `json:"id"`
	GeneratedAt time.Time                 `json:"generatedAt"`
	Summary     *entities.SummaryDocument `json:"summary"`
	Status      string                    `json:"status"`
	Note        string                    `json:"note,omitempty"`
}

// AnalyzeSentimentResponse is returned by POST /api/summary/analyze-sentiment
type AnalyzeSentimentResponse struct {
	ID         string                    `json:"id"`
	AnalyzedAt time.Time                 `json:"analyzedAt"`
	Sentiment  *entities.SentimentResult `json:"sentiment"`
	Status     string                    `json:"status"`
	Note       string                    `json:"note,omitempty"`
}

// ExtractActionItemsResponse is returned by POST /api/summary/extract-action-items
type ExtractActionItemsResponse struct {
	ID          string                  `json:"id"`
	ExtractedAt time.Time               `json:"extractedAt"`
	ActionItems *entities.ActionItemSet `json:"actionItems"`
	Status      string                  `json:"status"`
	Note        string                  `json:"note,omitempty"`
}

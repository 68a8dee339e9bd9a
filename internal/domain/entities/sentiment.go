package entities

// Overall sentiment values as produced by the model
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentResult is the standalone sentiment analysis of a transcript text
type SentimentResult struct {
	Overall            string             `json:"overall"`
	Score              float64            `json:"score"`
	PositiveHighlights []string           `json:"positiveHighlights"`
	NegativeHighlights []string           `json:"negativeHighlights"`
	EmotionalTone      map[string]float64 `json:"emotionalTone"`
	Recommendations    []string           `json:"recommendations"`
}

package ai

import (
	"encoding/json"
	"strings"

	"github.com/meetscribe/meetscribe/internal/domain/entities"
)

// Normalizer converts raw model text into exactly one of the typed result
// documents. Parsing can fail; the Normalizer cannot. Every method returns
// a well-formed document plus a flag reporting whether the model reply
// actually parsed, so callers can attach an advisory note on fallback.
//
// Unmarshaling goes into the typed entity, so a reply whose fields carry
// the wrong JSON type degrades to the fallback the same way a syntax
// error does. There is no second model call on either failure.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeTranscription parses a transcription reply. On failure it
// synthesizes a single segment covering the whole audio with the raw
// text as its content and one speaker owning 100% of the speaking time.
func (n *Normalizer) NormalizeTranscription(raw string, audioDuration float64) (*entities.TranscriptionDocument, bool) {
	content := extractJSON(raw)

	var doc entities.TranscriptionDocument
	if err := json.Unmarshal([]byte(content), &doc); err == nil {
		fillTranscription(&doc)
		return &doc, true
	}

	return &entities.TranscriptionDocument{
		Transcript: []entities.TranscriptSegment{
			{Speaker: "Speaker 1", Text: raw, StartTime: 0, EndTime: audioDuration, Confidence: 0.8},
		},
		Speakers: []entities.SpeakerProfile{
			{ID: "Speaker 1", TotalSpeakingTime: audioDuration, SpeakingPercentage: 100, Characteristics: "Unknown"},
		},
		KeyTopics:    []entities.KeyTopic{},
		ActionItems:  []entities.ActionItem{},
		Summary:      raw,
		Duration:     audioDuration,
		WordCount:    len(strings.Fields(raw)),
		SpeakingRate: 0,
	}, false
}

// NormalizeSummary parses a summary reply. On failure the raw text
// becomes the executive summary and everything else is empty.
func (n *Normalizer) NormalizeSummary(raw string) (*entities.SummaryDocument, bool) {
	content := extractJSON(raw)

	var doc entities.SummaryDocument
	if err := json.Unmarshal([]byte(content), &doc); err == nil {
		fillSummary(&doc)
		return &doc, true
	}

	return &entities.SummaryDocument{
		ExecutiveSummary: raw,
		KeyDecisions:     []string{},
		ActionItems:      []entities.ActionItem{},
		DiscussionPoints: []entities.DiscussionPoint{},
		NextSteps:        []string{},
		Sentiment: entities.SummarySentiment{
			Overall:    entities.SentimentNeutral,
			Score:      0.5,
			Highlights: []string{},
		},
	}, false
}

// NormalizeSentiment parses a sentiment reply or falls back to neutral
func (n *Normalizer) NormalizeSentiment(raw string) (*entities.SentimentResult, bool) {
	content := extractJSON(raw)

	var result entities.SentimentResult
	if err := json.Unmarshal([]byte(content), &result); err == nil {
		fillSentiment(&result)
		return &result, true
	}

	return &entities.SentimentResult{
		Overall:            entities.SentimentNeutral,
		Score:              0.5,
		PositiveHighlights: []string{},
		NegativeHighlights: []string{},
		EmotionalTone:      map[string]float64{},
		Recommendations:    []string{},
	}, false
}

// NormalizeActionItems parses an action-item extraction reply or falls
// back to an empty set with zero counts
func (n *Normalizer) NormalizeActionItems(raw string) (*entities.ActionItemSet, bool) {
	content := extractJSON(raw)

	var set entities.ActionItemSet
	if err := json.Unmarshal([]byte(content), &set); err == nil {
		if set.ActionItems == nil {
			set.ActionItems = []entities.ActionItem{}
		}
		return &set, true
	}

	return &entities.ActionItemSet{ActionItems: []entities.ActionItem{}}, false
}

// fillTranscription initializes nil collections so consumers never see null
func fillTranscription(doc *entities.TranscriptionDocument) {
	if doc.Transcript == nil {
		doc.Transcript = []entities.TranscriptSegment{}
	}
	if doc.Speakers == nil {
		doc.Speakers = []entities.SpeakerProfile{}
	}
	if doc.KeyTopics == nil {
		doc.KeyTopics = []entities.KeyTopic{}
	}
	if doc.ActionItems == nil {
		doc.ActionItems = []entities.ActionItem{}
	}
}

func fillSummary(doc *entities.SummaryDocument) {
	if doc.KeyDecisions == nil {
		doc.KeyDecisions = []string{}
	}
	if doc.ActionItems == nil {
		doc.ActionItems = []entities.ActionItem{}
	}
	if doc.DiscussionPoints == nil {
		doc.DiscussionPoints = []entities.DiscussionPoint{}
	}
	if doc.NextSteps == nil {
		doc.NextSteps = []string{}
	}
	if doc.Sentiment.Highlights == nil {
		doc.Sentiment.Highlights = []string{}
	}
}

func fillSentiment(result *entities.SentimentResult) {
	if result.PositiveHighlights == nil {
		result.PositiveHighlights = []string{}
	}
	if result.NegativeHighlights == nil {
		result.NegativeHighlights = []string{}
	}
	if result.EmotionalTone == nil {
		result.EmotionalTone = map[string]float64{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

package summary

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	aiuse "github.com/meetscribe/meetscribe/internal/usecase/ai"
	pkgai "github.com/meetscribe/meetscribe/pkg/ai"
)

// Advisory notes for replies that did not parse
const (
	NoteSummaryFallback     = "Summary generated but response parsing failed"
	NoteSentimentFallback   = "Sentiment analysis completed but response parsing failed"
	NoteActionItemsFallback = "Action items extraction completed but response parsing failed"
)

// Service runs the text-only model operations: summary generation,
// sentiment analysis and action-item extraction.
type Service interface {
	Generate(ctx context.Context, transcriptData json.RawMessage) (*entities.SummaryDocument, string, error)
	AnalyzeSentiment(ctx context.Context, text string) (*entities.SentimentResult, string, error)
	ExtractActionItems(ctx context.Context, transcriptData json.RawMessage) (*entities.ActionItemSet, string, error)
}

type service struct {
	textModel  aiuse.TextInvoker
	normalizer *aiuse.Normalizer
	timeout    time.Duration
	logger     *zap.Logger
}

// NewService constructs the summary service
func NewService(textModel aiuse.TextInvoker, timeout time.Duration, logger *zap.Logger) Service {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &service{
		textModel:  textModel,
		normalizer: aiuse.NewNormalizer(),
		timeout:    timeout,
		logger:     logger,
	}
}

// Generate produces the meeting summary document for a transcript
func (s *service) Generate(ctx context.Context, transcriptData json.RawMessage) (*entities.SummaryDocument, string, error) {
	raw, err := s.invoke(ctx, pkgai.SummaryPrompt(string(transcriptData)))
	if err != nil {
		return nil, "", errors.ErrSummaryFailed(err)
	}

	doc, parsed := s.normalizer.NormalizeSummary(raw)
	if !parsed {
		s.logFallback("summary", raw)
		return doc, NoteSummaryFallback, nil
	}
	return doc, "", nil
}

// AnalyzeSentiment scores the sentiment of a transcript text
func (s *service) AnalyzeSentiment(ctx context.Context, text string) (*entities.SentimentResult, string, error) {
	raw, err := s.invoke(ctx, pkgai.SentimentPrompt(text))
	if err != nil {
		return nil, "", errors.ErrSentimentFailed(err)
	}

	result, parsed := s.normalizer.NormalizeSentiment(raw)
	if !parsed {
		s.logFallback("sentiment", raw)
		return result, NoteSentimentFallback, nil
	}
	return result, "", nil
}

// ExtractActionItems pulls the action-item set out of a transcript
func (s *service) ExtractActionItems(ctx context.Context, transcriptData json.RawMessage) (*entities.ActionItemSet, string, error) {
	raw, err := s.invoke(ctx, pkgai.ActionItemsPrompt(string(transcriptData)))
	if err != nil {
		return nil, "", errors.ErrActionItemsFailed(err)
	}

	set, parsed := s.normalizer.NormalizeActionItems(raw)
	if !parsed {
		s.logFallback("action_items", raw)
		return set, NoteActionItemsFallback, nil
	}
	return set, "", nil
}

// invoke issues exactly one model call with an explicit deadline
func (s *service) invoke(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.textModel.InvokeText(callCtx, prompt)
}

func (s *service) logFallback(kind string, raw string) {
	if s.logger != nil {
		s.logger.Warn("model reply did not parse, using fallback document",
			zap.String("kind", kind),
			zap.Int("raw_len", len(raw)),
		)
	}
}

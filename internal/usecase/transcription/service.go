package transcription

import (
	"context"
	"encoding/json"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	"github.com/meetscribe/meetscribe/internal/domain/entities"
	"github.com/meetscribe/meetscribe/internal/infrastructure/cache"
	"github.com/meetscribe/meetscribe/internal/infrastructure/upload"
	aiuse "github.com/meetscribe/meetscribe/internal/usecase/ai"
	pkgai "github.com/meetscribe/meetscribe/pkg/ai"
	"github.com/meetscribe/meetscribe/pkg/config"
)

// Advisory notes attached when the model reply did not parse. The
// request still reports status "completed".
const (
	NoteTranscriptionFallback = "Transcription completed but response parsing failed"
	NoteSummaryFallback       = "Summary generated but response parsing failed"
)

// Transcoder converts source audio to the canonical mono/16kHz WAV.
// The cleanup func must remove the temp output and is safe to call once.
type Transcoder interface {
	Transcode(ctx context.Context, src string) (string, func(), error)
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// Archive persists accepted uploads and hands out playable URLs
type Archive interface {
	Store(ctx context.Context, objectName, filePath, contentType string) error
	PlayableURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Result is the outcome of a full upload-and-analyze pipeline
type Result struct {
	Transcription *entities.TranscriptionDocument
	Summary       *entities.SummaryDocument
	Duration      float64
	AudioURL      string
	Note          string
}

// Service orchestrates ingest, transcode, model call and normalization
type Service interface {
	// ProcessUpload transcribes the upload, generates the summary,
	// archives the audio and records it in the recent-uploads registry.
	ProcessUpload(ctx context.Context, f *upload.StoredFile) (*Result, error)
	// Transcribe runs transcription only; callers own upload disposal.
	Transcribe(ctx context.Context, f *upload.StoredFile) (*entities.TranscriptionDocument, string, error)
	// Recent lists unexpired upload records.
	Recent() []cache.UploadRecord
}

type service struct {
	audioModel  aiuse.AudioInvoker
	textModel   aiuse.TextInvoker
	transcoder  Transcoder
	archive     Archive // nil when the MinIO archive is disabled
	registry    *cache.UploadRegistry
	normalizer  *aiuse.Normalizer
	cfg         *config.Config
	logger      *zap.Logger
	pipelineSem chan struct{} // limit concurrent transcode+model pipelines
}

// NewService constructs the transcription service
func NewService(
	audioModel aiuse.AudioInvoker,
	textModel aiuse.TextInvoker,
	transcoder Transcoder,
	archive Archive,
	registry *cache.UploadRegistry,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	maxInFlight := cfg.Upload.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = 2
	}
	return &service{
		audioModel:  audioModel,
		textModel:   textModel,
		transcoder:  transcoder,
		archive:     archive,
		registry:    registry,
		normalizer:  aiuse.NewNormalizer(),
		cfg:         cfg,
		logger:      logger,
		pipelineSem: make(chan struct{}, maxInFlight),
	}
}

// Transcribe converts the upload to canonical WAV, invokes the model once
// with the diarization prompt and normalizes the reply. The temp WAV is
// removed on every exit path.
func (s *service) Transcribe(ctx context.Context, f *upload.StoredFile) (*entities.TranscriptionDocument, string, error) {
	s.pipelineSem <- struct{}{}
	defer func() { <-s.pipelineSem }()

	wavPath, cleanup, err := s.transcoder.Transcode(ctx, f.Path)
	if err != nil {
		return nil, "", errors.ErrTranscodeFailed(err)
	}
	defer cleanup()

	// Duration feeds the fallback document; the pipeline survives a probe failure.
	duration, err := s.transcoder.ProbeDuration(ctx, wavPath)
	if err != nil {
		duration = 0
		if s.logger != nil {
			s.logger.Warn("duration probe failed",
				zap.String("file", f.FileName),
				zap.Error(err),
			)
		}
	}

	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, "", errors.ErrInternal(err)
	}

	if s.logger != nil {
		s.logger.Info("submitting audio to model",
			zap.String("file", f.FileName),
			zap.Int64("size", f.Size),
			zap.Float64("duration", duration),
		)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Gemini.Timeout)
	defer cancel()
	raw, err := s.audioModel.InvokeAudio(callCtx, pkgai.TranscribePrompt(), audio, "audio/wav")
	if err != nil {
		return nil, "", errors.ErrTranscriptionFailed(err)
	}

	doc, parsed := s.normalizer.NormalizeTranscription(raw, duration)
	note := ""
	if !parsed {
		note = NoteTranscriptionFallback
		if s.logger != nil {
			s.logger.Warn("model reply did not parse, using fallback transcription",
				zap.String("file", f.FileName),
				zap.Int("raw_len", len(raw)),
			)
		}
	}
	return doc, note, nil
}

// ProcessUpload runs the full pipeline: transcription, summary, archive,
// registry. The upload itself stays on disk for playback.
func (s *service) ProcessUpload(ctx context.Context, f *upload.StoredFile) (*Result, error) {
	doc, note, err := s.Transcribe(ctx, f)
	if err != nil {
		return nil, err
	}

	transcriptJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Gemini.Timeout)
	defer cancel()
	rawSummary, err := s.textModel.InvokeText(callCtx, pkgai.SummaryPrompt(string(transcriptJSON)))
	if err != nil {
		return nil, errors.ErrSummaryFailed(err)
	}

	summaryDoc, summaryParsed := s.normalizer.NormalizeSummary(rawSummary)
	if note == "" && !summaryParsed {
		note = NoteSummaryFallback
	}

	audioURL := s.archiveUpload(ctx, f)

	rec := cache.UploadRecord{
		ID:         f.ID,
		FileName:   f.FileName,
		FileSize:   f.Size,
		AudioURL:   audioURL,
		Duration:   doc.Duration,
		UploadedAt: time.Now().UTC(),
	}
	if s.registry != nil {
		s.registry.Put(rec)
	}

	return &Result{
		Transcription: doc,
		Summary:       summaryDoc,
		Duration:      doc.Duration,
		AudioURL:      audioURL,
		Note:          note,
	}, nil
}

// Recent lists unexpired upload records
func (s *service) Recent() []cache.UploadRecord {
	if s.registry == nil {
		return []cache.UploadRecord{}
	}
	return s.registry.Recent()
}

// archiveUpload copies the upload into the MinIO archive with retry and
// returns the playable URL. Archive failure is not fatal; the local
// static route covers playback.
func (s *service) archiveUpload(ctx context.Context, f *upload.StoredFile) string {
	localURL := "/uploads/" + f.StoredName
	if s.archive == nil {
		return localURL
	}

	storeFn := func() error {
		return s.archive.Store(ctx, f.StoredName, f.Path, f.MimeType)
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(storeFn, bo); err != nil {
		if s.logger != nil {
			s.logger.Warn("audio archive upload failed, serving local file",
				zap.String("object", f.StoredName),
				zap.Error(err),
			)
		}
		return localURL
	}

	url, err := s.archive.PlayableURL(ctx, f.StoredName, 24*time.Hour)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("presigned URL generation failed, serving local file",
				zap.String("object", f.StoredName),
				zap.Error(err),
			)
		}
		return localURL
	}
	return url
}

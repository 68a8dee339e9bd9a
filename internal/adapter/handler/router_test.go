package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/internal/infrastructure/cache"
	"github.com/meetscribe/meetscribe/internal/infrastructure/upload"
	summaryuse "github.com/meetscribe/meetscribe/internal/usecase/summary"
	transcriptionuse "github.com/meetscribe/meetscribe/internal/usecase/transcription"
	"github.com/meetscribe/meetscribe/pkg/config"
	pkgvalidator "github.com/meetscribe/meetscribe/pkg/validator"
)

// newRouterEnv wires the full route table the way main does, with a
// small per-file limit so oversize bodies are cheap to build.
func newRouterEnv(t *testing.T, model *fakeModel) (*echo.Echo, *fakeTranscoder, string) {
	t.Helper()

	uploads := t.TempDir()
	cfg := &config.Config{
		Gemini: config.GeminiConfig{Timeout: 5 * time.Second},
		Upload: config.UploadConfig{
			Dir:         uploads,
			MaxFileSize: 1024 * 1024,
			MaxInFlight: 2,
		},
	}

	store, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxFileSize)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	tc := &fakeTranscoder{dir: t.TempDir()}
	registry := cache.NewUploadRegistry(time.Minute)
	transcriptionSvc := transcriptionuse.NewService(model, model, tc, nil, registry, cfg, zap.NewNop())
	summarySvc := summaryuse.NewService(model, 5*time.Second, zap.NewNop())

	e := echo.New()
	e.Validator = pkgvalidator.New()

	router := NewRouter(cfg,
		NewTranscriptionHandler(transcriptionSvc, store, cfg, zap.NewNop()),
		NewSummaryHandler(summarySvc, zap.NewNop()),
	)
	router.Setup(e)

	return e, tc, uploads
}

func TestRouter_RejectsOversizeBodyBeforeSpooling(t *testing.T) {
	e, tc, uploads := newRouterEnv(t, &fakeModel{})

	// 3 MiB body against a 1 MiB file limit (2M body limit with headroom)
	big := bytes.Repeat([]byte("a"), 3*1024*1024)
	req := audioRequest(t, "huge.wav", "audio/wav", big)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := dirEntries(t, uploads); got != 0 {
		t.Fatalf("oversize body must not reach the store, found %d files", got)
	}
	if len(tc.outputs) != 0 {
		t.Fatal("oversize body must not reach the transcoder")
	}
}

func TestRouter_AcceptsBodyWithinLimit(t *testing.T) {
	e, _, _ := newRouterEnv(t, &fakeModel{audioReply: transcriptionReply, textReply: "{}"})

	req := audioRequest(t, "standup.wav", "audio/wav", []byte("RIFFsound"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

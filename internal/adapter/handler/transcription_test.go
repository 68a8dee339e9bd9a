package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/internal/infrastructure/cache"
	"github.com/meetscribe/meetscribe/internal/infrastructure/upload"
	transcriptionuse "github.com/meetscribe/meetscribe/internal/usecase/transcription"
	"github.com/meetscribe/meetscribe/pkg/config"
	pkgvalidator "github.com/meetscribe/meetscribe/pkg/validator"
)

const transcriptionReply = `{"transcript":[{"speaker":"Speaker 1","text":"hi","startTime":0,"endTime":2,"confidence":0.95}],` +
	`"speakers":[{"id":"Speaker 1","totalSpeakingTime":2,"speakingPercentage":100,"characteristics":"calm"}],` +
	`"keyTopics":[],"actionItems":[],"summary":"greeting","duration":2,"wordCount":1,"speakingRate":30}`

type fakeModel struct {
	audioReply string
	audioErr   error
	textReply  string
	textErr    error
}

func (m *fakeModel) InvokeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	return m.audioReply, m.audioErr
}

func (m *fakeModel) InvokeText(ctx context.Context, prompt string) (string, error) {
	return m.textReply, m.textErr
}

type fakeTranscoder struct {
	dir     string
	outputs []string
}

func (f *fakeTranscoder) Transcode(ctx context.Context, src string) (string, func(), error) {
	out := filepath.Join(f.dir, filepath.Base(src)+".wav")
	if err := os.WriteFile(out, []byte("RIFFfakewav"), 0o644); err != nil {
		return "", nil, err
	}
	f.outputs = append(f.outputs, out)
	return out, func() { os.Remove(out) }, nil
}

func (f *fakeTranscoder) ProbeDuration(ctx context.Context, path string) (float64, error) {
	return 2.0, nil
}

type transcriptionEnv struct {
	e       *echo.Echo
	handler *TranscriptionHandler
	model   *fakeModel
	tc      *fakeTranscoder
	uploads string
}

func newTranscriptionEnv(t *testing.T, model *fakeModel) *transcriptionEnv {
	t.Helper()

	uploads := t.TempDir()
	cfg := &config.Config{
		Gemini: config.GeminiConfig{Timeout: 5 * time.Second},
		Upload: config.UploadConfig{
			Dir:         uploads,
			MaxFileSize: 100 * 1024 * 1024,
			MaxInFlight: 2,
		},
	}

	store, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxFileSize)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	tc := &fakeTranscoder{dir: t.TempDir()}
	registry := cache.NewUploadRegistry(time.Minute)
	svc := transcriptionuse.NewService(model, model, tc, nil, registry, cfg, zap.NewNop())

	e := echo.New()
	e.Validator = pkgvalidator.New()

	return &transcriptionEnv{
		e:       e,
		handler: NewTranscriptionHandler(svc, store, cfg, zap.NewNop()),
		model:   model,
		tc:      tc,
		uploads: uploads,
	}
}

func audioRequest(t *testing.T, filename, contentType string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="audio"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/transcription/upload", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return len(entries)
}

func TestUpload_ReturnsTranscriptAndSummary(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{
		audioReply: "```json\n" + transcriptionReply + "\n```",
		textReply:  `{"executiveSummary":"short sync","keyDecisions":[],"actionItems":[],"discussionPoints":[],"nextSteps":[],"sentiment":{"overall":"positive","score":0.8,"highlights":[]}}`,
	})

	req := audioRequest(t, "standup.wav", "audio/wav", []byte("RIFFsound"))
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Upload(c); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status        string `json:"status"`
		Note          string `json:"note"`
		AudioURL      string `json:"audioURL"`
		Transcription struct {
			Transcript []struct {
				Text string `json:"text"`
			} `json:"transcript"`
		} `json:"transcription"`
		Summary struct {
			ExecutiveSummary string `json:"executiveSummary"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Status != StatusCompleted {
		t.Fatalf("expected status completed, got %q", resp.Status)
	}
	if resp.Note != "" {
		t.Fatalf("no note expected on clean parse, got %q", resp.Note)
	}
	if len(resp.Transcription.Transcript) != 1 || resp.Transcription.Transcript[0].Text != "hi" {
		t.Fatalf("unexpected transcript: %+v", resp.Transcription)
	}
	if resp.Summary.ExecutiveSummary != "short sync" {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
	if !strings.HasPrefix(resp.AudioURL, "/uploads/") {
		t.Fatalf("expected local audio URL, got %q", resp.AudioURL)
	}

	// upload stays on disk for playback, temp WAV does not
	if got := dirEntries(t, env.uploads); got != 1 {
		t.Fatalf("expected 1 stored upload, got %d", got)
	}
	for _, out := range env.tc.outputs {
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Fatalf("temp file %s left behind", out)
		}
	}
}

func TestUpload_UnparsableReplyDegradesToFallback(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{
		audioReply: "sorry, I could not produce JSON today",
		textReply:  "{}",
	})

	req := audioRequest(t, "standup.mp3", "audio/mpeg", []byte("ID3sound"))
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Upload(c); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("fallback must still report 200, got %d", rec.Code)
	}

	var resp struct {
		Status        string `json:"status"`
		Note          string `json:"note"`
		Transcription struct {
			Transcript []struct {
				Speaker string `json:"speaker"`
				Text    string `json:"text"`
			} `json:"transcript"`
			WordCount int `json:"wordCount"`
		} `json:"transcription"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Status != StatusCompleted {
		t.Fatalf("expected status completed, got %q", resp.Status)
	}
	if resp.Note != transcriptionuse.NoteTranscriptionFallback {
		t.Fatalf("expected fallback note, got %q", resp.Note)
	}
	if len(resp.Transcription.Transcript) != 1 || resp.Transcription.Transcript[0].Speaker != "Speaker 1" {
		t.Fatalf("expected single synthetic segment, got %+v", resp.Transcription)
	}
	if resp.Transcription.WordCount != 7 {
		t.Fatalf("expected wordCount 7, got %d", resp.Transcription.WordCount)
	}
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{})

	req := audioRequest(t, "notes.txt", "text/plain", []byte("just text"))
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Upload(c); err != nil {
		t.Fatalf("handler should write the error response: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid file type") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if got := dirEntries(t, env.uploads); got != 0 {
		t.Fatalf("rejected upload must not be stored, found %d files", got)
	}
	if len(env.tc.outputs) != 0 {
		t.Fatal("rejected upload must not reach the transcoder")
	}
}

func TestUpload_RejectsOversizeFile(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{})
	env.handler.store, _ = upload.NewStore(env.uploads, 4)

	req := audioRequest(t, "big.wav", "audio/wav", []byte("RIFFmorethanfour"))
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Upload(c); err != nil {
		t.Fatalf("handler should write the error response: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "File too large") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if got := dirEntries(t, env.uploads); got != 0 {
		t.Fatalf("rejected upload must not be stored, found %d files", got)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("comment", "no file here")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/transcription/upload", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Upload(c); err != nil {
		t.Fatalf("handler should write the error response: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No audio file provided") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpload_RemovesUploadOnModelFailure(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{audioErr: stdErrors.New("upstream 503")})

	req := audioRequest(t, "standup.wav", "audio/wav", []byte("RIFFsound"))
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Upload(c); err != nil {
		t.Fatalf("handler should write the error response: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Transcription failed") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if got := dirEntries(t, env.uploads); got != 0 {
		t.Fatalf("failed upload must be discarded, found %d files", got)
	}
	for _, out := range env.tc.outputs {
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Fatalf("temp file %s left behind on failure", out)
		}
	}
}

func TestTranscribe_DeletesUploadAfterProcessing(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{audioReply: transcriptionReply})

	req := audioRequest(t, "standup.wav", "audio/wav", []byte("RIFFsound"))
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Transcribe(c); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := dirEntries(t, env.uploads); got != 0 {
		t.Fatalf("transcribe-only upload must be deleted, found %d files", got)
	}
}

func TestFormats_ListsCapabilities(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{})

	req := httptest.NewRequest(http.MethodGet, "/api/transcription/formats", nil)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if err := env.handler.Formats(c); err != nil {
		t.Fatalf("Formats returned error: %v", err)
	}

	var resp struct {
		SupportedFormats  []struct{ Extension string } `json:"supportedFormats"`
		MaxFileSize       string                       `json:"maxFileSize"`
		RecommendedFormat string                       `json:"recommendedFormat"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.SupportedFormats) != 7 {
		t.Fatalf("expected 7 formats, got %d", len(resp.SupportedFormats))
	}
	if resp.MaxFileSize != "100MB" {
		t.Fatalf("expected 100MB, got %q", resp.MaxFileSize)
	}
	if resp.RecommendedFormat != "wav" {
		t.Fatalf("expected wav, got %q", resp.RecommendedFormat)
	}
}

func TestRecent_ReflectsProcessedUploads(t *testing.T) {
	env := newTranscriptionEnv(t, &fakeModel{audioReply: transcriptionReply, textReply: "{}"})

	// empty registry first
	req := httptest.NewRequest(http.MethodGet, "/api/transcription/recent", nil)
	rec := httptest.NewRecorder()
	if err := env.handler.Recent(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	var resp struct {
		Uploads []json.RawMessage `json:"uploads"`
		Count   int               `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 0 || resp.Uploads == nil {
		t.Fatalf("expected empty listing, got %s", rec.Body.String())
	}

	// one processed upload shows up
	upReq := audioRequest(t, "standup.wav", "audio/wav", []byte("RIFFsound"))
	upRec := httptest.NewRecorder()
	if err := env.handler.Upload(env.e.NewContext(upReq, upRec)); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	rec = httptest.NewRecorder()
	if err := env.handler.Recent(env.e.NewContext(req, rec)); err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected 1 recent upload, got %d", resp.Count)
	}
}

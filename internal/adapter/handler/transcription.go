package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	dto "github.com/meetscribe/meetscribe/internal/adapter/dto/transcription"
	"github.com/meetscribe/meetscribe/internal/infrastructure/upload"
	transcriptionuse "github.com/meetscribe/meetscribe/internal/usecase/transcription"
	"github.com/meetscribe/meetscribe/pkg/config"
)

// TranscriptionHandler handles audio upload and transcription endpoints
type TranscriptionHandler struct {
	svc    transcriptionuse.Service
	store  *upload.Store
	cfg    *config.Config
	logger *zap.Logger
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(svc transcriptionuse.Service, store *upload.Store, cfg *config.Config, logger *zap.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{svc: svc, store: store, cfg: cfg, logger: logger}
}

// Upload transcribes and analyzes an uploaded audio file
// @Summary      Upload and process meeting audio
// @Description  Accepts one audio file, transcribes it with speaker diarization and generates the meeting summary
// @Tags         Transcription
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio  formData  file  true  "Audio file (mp3/wav/m4a/ogg/webm/mp4/aac)"
// @Success      200    {object}  dto.UploadResponse
// @Failure      400    {object}  map[string]interface{}  "Missing file, bad type or oversize"
// @Failure      500    {object}  map[string]interface{}  "Upstream model failure"
// @Router       /transcription/upload [post]
func (h *TranscriptionHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrNoAudioFile())
	}

	f, err := h.store.Save(fh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.logger != nil {
		h.logger.Info("processing audio file",
			zap.String("file", f.FileName),
			zap.Int64("size", f.Size),
			zap.String("mime_type", f.MimeType),
		)
	}

	result, err := h.svc.ProcessUpload(c.Request().Context(), f)
	if err != nil {
		// Discard the upload on failure; nothing references it anymore.
		if rmErr := h.store.Remove(f); rmErr != nil && h.logger != nil {
			h.logger.Warn("failed to remove upload", zap.String("file", f.Path), zap.Error(rmErr))
		}
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.UploadResponse{
		ID:            f.ID,
		FileName:      f.FileName,
		FileSize:      f.Size,
		UploadedAt:    time.Now().UTC(),
		AudioURL:      result.AudioURL,
		Duration:      result.Duration,
		Transcription: result.Transcription,
		Summary:       result.Summary,
		Status:        StatusCompleted,
		Note:          result.Note,
	})
}

// Transcribe transcribes an uploaded audio file without summary analysis.
// The upload is deleted after processing regardless of outcome.
// @Summary      Transcribe meeting audio
// @Tags         Transcription
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio  formData  file  true  "Audio file"
// @Success      200    {object}  dto.TranscribeResponse
// @Failure      400    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]interface{}
// @Router       /transcription/transcribe [post]
func (h *TranscriptionHandler) Transcribe(c echo.Context) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrNoAudioFile())
	}

	f, err := h.store.Save(fh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer func() {
		if rmErr := h.store.Remove(f); rmErr != nil && h.logger != nil {
			h.logger.Warn("failed to remove upload", zap.String("file", f.Path), zap.Error(rmErr))
		}
	}()

	doc, note, err := h.svc.Transcribe(c.Request().Context(), f)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.TranscribeResponse{
		ID:            f.ID,
		FileName:      f.FileName,
		Transcription: doc,
		Status:        StatusCompleted,
		Note:          note,
	})
}

// Formats returns the static capability listing
// @Summary      List supported audio formats
// @Tags         Transcription
// @Produce      json
// @Success      200  {object}  dto.FormatsResponse
// @Router       /transcription/formats [get]
func (h *TranscriptionHandler) Formats(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.FormatsResponse{
		SupportedFormats: []dto.SupportedFormat{
			{Extension: "mp3", MimeType: "audio/mpeg", Description: "MP3 Audio"},
			{Extension: "wav", MimeType: "audio/wav", Description: "WAV Audio"},
			{Extension: "m4a", MimeType: "audio/m4a", Description: "M4A Audio"},
			{Extension: "ogg", MimeType: "audio/ogg", Description: "OGG Audio"},
			{Extension: "webm", MimeType: "audio/webm", Description: "WebM Audio"},
			{Extension: "mp4", MimeType: "audio/mp4", Description: "MP4 Audio"},
			{Extension: "aac", MimeType: "audio/aac", Description: "AAC Audio"},
		},
		MaxFileSize:       fmt.Sprintf("%dMB", h.cfg.Upload.MaxFileSize/(1024*1024)),
		RecommendedFormat: "wav",
		RecommendedSettings: dto.RecommendedSettings{
			SampleRate: "16kHz",
			Channels:   "mono",
			BitRate:    "128kbps",
		},
	})
}

// Recent lists recent uploads from the in-process registry
// @Summary      List recent uploads
// @Tags         Transcription
// @Produce      json
// @Success      200  {object}  dto.RecentResponse
// @Router       /transcription/recent [get]
func (h *TranscriptionHandler) Recent(c echo.Context) error {
	uploads := h.svc.Recent()
	return c.JSON(http.StatusOK, dto.RecentResponse{
		Uploads: uploads,
		Count:   len(uploads),
	})
}

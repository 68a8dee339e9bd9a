package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetscribe/meetscribe/errors"
	dto "github.com/meetscribe/meetscribe/internal/adapter/dto/summary"
	summaryuse "github.com/meetscribe/meetscribe/internal/usecase/summary"
)

// SummaryHandler handles the text-only analysis endpoints
type SummaryHandler struct {
	svc    summaryuse.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc summaryuse.Service, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{svc: svc, logger: logger}
}

// Generate produces a meeting summary from transcript data
// @Summary      Generate meeting summary
// @Tags         Summary
// @Accept       json
// @Produce      json
// @Param        request  body      dto.GenerateRequest  true  "Transcript data"
// @Success      200      {object}  dto.GenerateResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /summary/generate [post]
func (h *SummaryHandler) Generate(c echo.Context) error {
	var req dto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil || string(req.TranscriptData) == "null" {
		return HandleError(h.logger, c, errors.ErrMissingTranscriptData())
	}

	doc, note, err := h.svc.Generate(c.Request().Context(), req.TranscriptData)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.GenerateResponse{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Summary:     doc,
		Status:      StatusCompleted,
		Note:        note,
	})
}

// AnalyzeSentiment scores the sentiment of a transcript text
// @Summary      Analyze transcript sentiment
// @Tags         Summary
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AnalyzeSentimentRequest  true  "Transcript text"
// @Success      200      {object}  dto.AnalyzeSentimentResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /summary/analyze-sentiment [post]
func (h *SummaryHandler) AnalyzeSentiment(c echo.Context) error {
	var req dto.AnalyzeSentimentRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingText())
	}

	result, note, err := h.svc.AnalyzeSentiment(c.Request().Context(), req.Text)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.AnalyzeSentimentResponse{
		ID:         uuid.New().String(),
		AnalyzedAt: time.Now().UTC(),
		Sentiment:  result,
		Status:     StatusCompleted,
		Note:       note,
	})
}

// ExtractActionItems extracts the action-item set from transcript data
// @Summary      Extract action items
// @Tags         Summary
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ExtractActionItemsRequest  true  "Transcript data"
// @Success      200      {object}  dto.ExtractActionItemsResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /summary/extract-action-items [post]
func (h *SummaryHandler) ExtractActionItems(c echo.Context) error {
	var req dto.ExtractActionItemsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil || string(req.TranscriptData) == "null" {
		return HandleError(h.logger, c, errors.ErrMissingTranscriptData())
	}

	set, note, err := h.svc.ExtractActionItems(c.Request().Context(), req.TranscriptData)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.ExtractActionItemsResponse{
		ID:          uuid.New().String(),
		ExtractedAt: time.Now().UTC(),
		ActionItems: set,
		Status:      StatusCompleted,
		Note:        note,
	})
}

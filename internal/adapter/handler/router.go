package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/meetscribe/meetscribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                  *config.Config
	transcriptionHandler *TranscriptionHandler
	summaryHandler       *SummaryHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, transcriptionHandler *TranscriptionHandler, summaryHandler *SummaryHandler) *Router {
	return &Router{
		cfg:                  cfg,
		transcriptionHandler: transcriptionHandler,
		summaryHandler:       summaryHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Reject oversize request bodies before the multipart reader spools
	// them to disk; the upload store re-checks the per-file limit.
	e.Use(middleware.BodyLimit(bodyLimit(rt.cfg.Upload.MaxFileSize)))

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Playable audio for uploads kept on local disk
	e.Static("/uploads", rt.cfg.Upload.Dir)

	api := e.Group("/api")
	rt.setupTranscriptionRoutes(api)
	rt.setupSummaryRoutes(api)
}

// setupTranscriptionRoutes configures audio upload and transcription routes
func (rt *Router) setupTranscriptionRoutes(g *echo.Group) {
	group := g.Group("/transcription")
	group.POST("/upload", rt.transcriptionHandler.Upload)
	group.POST("/transcribe", rt.transcriptionHandler.Transcribe)
	group.GET("/formats", rt.transcriptionHandler.Formats)
	group.GET("/recent", rt.transcriptionHandler.Recent)
}

// setupSummaryRoutes configures summary and analysis routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	group := g.Group("/summary")
	group.POST("/generate", rt.summaryHandler.Generate)
	group.POST("/analyze-sentiment", rt.summaryHandler.AnalyzeSentiment)
	group.POST("/extract-action-items", rt.summaryHandler.ExtractActionItems)
}

// bodyLimit converts the per-file byte limit into the echo body-limit
// string, with one extra MiB of headroom for multipart framing
func bodyLimit(maxFileSize int64) string {
	return fmt.Sprintf("%dM", maxFileSize/(1024*1024)+1)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

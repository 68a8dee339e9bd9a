package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meetscribe/meetscribe/pkg/validator"

	"github.com/meetscribe/meetscribe/internal/adapter/handler"
	"github.com/meetscribe/meetscribe/internal/infrastructure/cache"
	"github.com/meetscribe/meetscribe/internal/infrastructure/media"
	"github.com/meetscribe/meetscribe/internal/infrastructure/storage"
	"github.com/meetscribe/meetscribe/internal/infrastructure/upload"
	aiuse "github.com/meetscribe/meetscribe/internal/usecase/ai"
	summaryuse "github.com/meetscribe/meetscribe/internal/usecase/summary"
	transcriptionuse "github.com/meetscribe/meetscribe/internal/usecase/transcription"
	pkgai "github.com/meetscribe/meetscribe/pkg/ai"
	"github.com/meetscribe/meetscribe/pkg/config"
)

// @title           Meetscribe API
// @version         1.0
// @description     Meeting transcription backend: audio upload, diarized transcription, summary, sentiment and action-item extraction via a generative model.

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Model gateway: Gemini always handles audio; text prompts can be
	// routed to an OpenAI-compatible endpoint instead.
	log.Println("🤖 Initializing model gateway...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	var textModel aiuse.TextInvoker = geminiClient
	if cfg.TextModel.Provider == "openai" {
		log.Printf("💬 Text prompts routed to OpenAI-compatible model %s", cfg.TextModel.Model)
		textModel = pkgai.NewChatClient(&cfg.TextModel)
	}

	// Audio ingest and transcode
	log.Println("🎙️  Initializing audio pipeline...")
	store, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}
	transcoder := media.NewTranscoder(cfg.Upload.TempDir)

	// Optional MinIO archive for playable URLs
	var archive transcriptionuse.Archive
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to MinIO archive...")
		minioArchive, err := storage.NewAudioArchive(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize audio archive: %v", err)
		}
		archive = minioArchive
	} else {
		log.Println("📦 Audio archive disabled; uploads served from local disk")
	}

	// Transient registry of recent uploads
	registry := cache.NewUploadRegistry(cfg.RecentTTL())

	// Usecase services
	log.Println("⚙️  Initializing services...")
	transcriptionService := transcriptionuse.NewService(geminiClient, textModel, transcoder, archive, registry, cfg, logger)
	summaryService := summaryuse.NewService(textModel, cfg.Gemini.Timeout, logger)

	// Handlers and routes
	log.Println("🛣️  Setting up routes...")
	transcriptionHandler := handler.NewTranscriptionHandler(transcriptionService, store, cfg, logger)
	summaryHandler := handler.NewSummaryHandler(summaryService, logger)

	router := handler.NewRouter(cfg, transcriptionHandler, summaryHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

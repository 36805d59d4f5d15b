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
	"gorm.io/gorm"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/johnquangdev/meeting-digest/internal/adapter/handler"
	"github.com/johnquangdev/meeting-digest/internal/adapter/repository"
	"github.com/johnquangdev/meeting-digest/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-digest/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-digest/internal/usecase/digest"
	pkgai "github.com/johnquangdev/meeting-digest/pkg/ai"
	"github.com/johnquangdev/meeting-digest/pkg/config"
	"github.com/johnquangdev/meeting-digest/pkg/executor"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.RequestID())
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

	// Uploads larger than MAX_UPLOAD_SIZE are rejected before parsing; the router renders the rejection on the form page
	e.Use(middleware.BodyLimit(cfg.Server.MaxUploadSize))

	renderer, err := handler.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema is normally created with cmd/initdb; DB_AUTO_MIGRATE runs the same step at startup.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run cmd/initdb instead.")
		}
		log.Println("🔄 Initializing schema (development only) ...")
		if _, err := database.InitSchema(db); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Println("🔄 Skipping schema init; run cmd/initdb to create tables")
	}

	// Initialize storage
	log.Printf("📁 Preparing upload folder %s...", cfg.Upload.Folder)
	disk, err := storage.NewDiskStore(cfg.Upload.Folder)
	if err != nil {
		log.Fatalf("Failed to prepare upload folder: %v", err)
	}
	var store storage.FileStore = disk
	if cfg.Storage.Backend == "minio" {
		log.Printf("🪣 Mirroring uploads to MinIO bucket %s...", cfg.Storage.BucketName)
		store, err = storage.NewMinIOStore(context.Background(), &cfg.Storage, disk, logger)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)

	// Initialize AI models
	log.Println("🤖 Initializing AI components...")
	transcriberHandle := newTranscriberHandle(cfg, logger)
	summarizerHandle := pkgai.NewHandle[pkgai.Summarizer](
		cfg.Summarization.Model,
		pkgai.Lifecycle(cfg.Summarization.Lifecycle),
		pkgai.NewHuggingFaceLoader(cfg.Summarization, logger),
	)
	defer summarizerHandle.Close()
	defer transcriberHandle.Close()

	for _, warm := range []func(context.Context) error{transcriberHandle.Warm, summarizerHandle.Warm} {
		if err := warm(context.Background()); err != nil {
			log.Fatalf("Failed to load model: %v", err)
		}
	}
	log.Printf("✅ Models ready (transcription: %s/%s, summarization: %s/%s)",
		cfg.Transcription.Backend, transcriberHandle.Lifecycle(),
		cfg.Summarization.Model, summarizerHandle.Lifecycle(),
	)

	// Initialize digest service
	log.Println("🧠 Initializing digest service...")
	digestService := digest.NewService(
		meetingRepo,
		store,
		pkgai.NewManagedTranscriber(transcriberHandle),
		digest.NewDigester(pkgai.NewManagedSummarizer(summarizerHandle), logger),
		digest.Options{CleanupOnFailure: cfg.Upload.CleanupOnFailure},
		logger,
	)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	uploadHandler := handler.NewUpload(digestService, logger)
	router := handler.NewRouter(cfg, uploadHandler, pingDB(db))
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
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
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newTranscriberHandle(cfg *config.Config, logger *zap.Logger) *pkgai.Handle[pkgai.Transcriber] {
	var (
		name   string
		loader pkgai.Loader[pkgai.Transcriber]
	)
	switch cfg.Transcription.Backend {
	case "assemblyai":
		name = "assemblyai"
		loader = pkgai.NewAssemblyAILoader(cfg.Transcription, logger)
	default:
		name = fmt.Sprintf("whisper (%s)", cfg.Transcription.WhisperModel)
		loader = pkgai.NewWhisperLoader(executor.New(), cfg.Transcription, logger)
	}
	return pkgai.NewHandle(name, pkgai.Lifecycle(cfg.Transcription.Lifecycle), loader)
}

func pingDB(db *gorm.DB) handler.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

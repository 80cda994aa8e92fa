package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"darkroom/internal/auth"
	"darkroom/internal/config"
	"darkroom/internal/export"
	"darkroom/internal/handler"
	"darkroom/internal/library"
	"darkroom/internal/middleware"
	"darkroom/internal/service"
	"darkroom/internal/sidecar"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging: JSON to stdout and a timestamped log file
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logWriter := io.Writer(os.Stdout)
	logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
	if err != nil {
		log.Printf("warning: file logging disabled: %v", err)
	} else {
		defer logFile.Close()
		logWriter = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"base_dir", cfg.BaseDir,
	)

	// Token service for the single-user auth gate
	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.Password, cfg.AccessTTL, cfg.RefreshTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	// Core services over the on-disk asset tree
	store := sidecar.NewStore()
	lib := library.New(cfg.BaseDir, store, logger)
	imageService := service.NewImageService(lib, store, logger)
	exportService := export.NewService(lib, store, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(tokens, logger)
	imagesHandler := handler.NewImagesHandler(imageService, logger)
	movesHandler := handler.NewMovesHandler(imageService, logger)
	annotationsHandler := handler.NewAnnotationsHandler(imageService, logger)
	exportHandler := handler.NewExportHandler(exportService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", imagesHandler.HealthCheck)

	// Auth routes
	mux.HandleFunc("POST /api/auth/token/get", authHandler.Login)
	mux.HandleFunc("POST /api/auth/token/refresh", authHandler.Refresh)

	// Listing routes
	mux.HandleFunc("GET /api/images", imagesHandler.ListImages)
	mux.HandleFunc("GET /api/images/trash", imagesHandler.ListTrash)
	mux.HandleFunc("GET /api/images/picks", imagesHandler.ListPicks)

	// Annotation route
	mux.HandleFunc("PUT /api/image/update-metadata", annotationsHandler.UpdateMetadata)

	// Lifecycle transition routes
	mux.HandleFunc("POST /api/move-images/to-trash", movesHandler.ToTrash)
	mux.HandleFunc("POST /api/move-images/to-picks", movesHandler.ToPicks)
	mux.HandleFunc("POST /api/move-images/restore-from-trash", movesHandler.RestoreFromTrash)
	mux.HandleFunc("POST /api/move-images/demote-pick", movesHandler.DemotePick)
	mux.HandleFunc("POST /api/move-images/delete-all-trash", movesHandler.PurgeTrash)

	// Export routes
	mux.HandleFunc("GET /api/export/prompts", exportHandler.Prompts)
	mux.HandleFunc("GET /api/export/picks", exportHandler.Picks)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestID → Auth → Routes
	root = middleware.Auth(tokens, logger)(root)
	root = middleware.RequestID(logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Zip exports can take a while on large trees
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

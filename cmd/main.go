package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/winsonteo/GripRank-next-sub000/config"
	"github.com/winsonteo/GripRank-next-sub000/db"
	"github.com/winsonteo/GripRank-next-sub000/handlers"
	"github.com/winsonteo/GripRank-next-sub000/live"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
	api "github.com/winsonteo/GripRank-next-sub000/routes"
	"github.com/winsonteo/GripRank-next-sub000/services"
	"github.com/winsonteo/GripRank-next-sub000/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.String("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live event hub started")

	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	athleteRepo := repositories.NewPostgresAthleteRepository(dbConn)
	qualifierRepo := repositories.NewPostgresQualifierRepository(dbConn)
	bracketRepo := repositories.NewPostgresBracketRepository(dbConn)
	judgeRepo := repositories.NewPostgresJudgeRepository(dbConn)

	authService := services.NewAuthService(judgeRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	athleteService := services.NewAthleteService(athleteRepo, categoryRepo, uploader, logger)
	standingsService := services.NewStandingsService(categoryRepo, athleteRepo, qualifierRepo)
	bracketService := services.NewBracketService(dbConn, categoryRepo, athleteRepo, qualifierRepo, bracketRepo, hub, logger)
	resultService := services.NewResultService(dbConn, categoryRepo, bracketRepo, hub, logger)
	rankingService := services.NewRankingService(categoryRepo, athleteRepo, qualifierRepo, bracketRepo)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	athleteHandler := handlers.NewAthleteHandler(athleteService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	matchHandler := handlers.NewMatchHandler(resultService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		categoryHandler,
		athleteHandler,
		standingsHandler,
		bracketHandler,
		matchHandler,
		rankingHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}

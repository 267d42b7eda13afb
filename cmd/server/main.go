package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rowjay/link-batch-shortener/internal/config"
	"github.com/rowjay/link-batch-shortener/internal/database"
	"github.com/rowjay/link-batch-shortener/internal/handlers"
	"github.com/rowjay/link-batch-shortener/internal/logger"
	"github.com/rowjay/link-batch-shortener/internal/metrics"
	"github.com/rowjay/link-batch-shortener/internal/repository"
	"github.com/rowjay/link-batch-shortener/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	logCloser := logger.Setup(logger.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		FilePath:    cfg.LogFile,
	})
	defer logCloser.Close()

	if envErr != nil {
		log.Info().Msg("No .env file found")
	}
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("storage_driver", cfg.StorageDriver).Str("base_url", cfg.BaseURL).Msg("Starting link shortening service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Initialize(ctx, database.Options{
		Driver:        cfg.StorageDriver,
		Path:          cfg.StoragePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer store.Close()

	m := metrics.New()
	linkRepo := repository.NewLinkRepository(store, cfg.StorageKey)
	linkService := services.NewLinkService(linkRepo, services.Options{
		ShortCodeLength:         cfg.ShortCodeLength,
		MaxRetries:              cfg.MaxRetries,
		EnforceUniqueShortcodes: cfg.EnforceUniqueShortcodes,
		Metrics:                 m,
	})

	r := handlers.NewRouter(handlers.RouterOptions{
		Service:            linkService,
		Store:              store,
		Metrics:            m,
		BaseURL:            cfg.BaseURL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

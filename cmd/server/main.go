package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cisclab/registrar-backend/internal/config"
	"github.com/cisclab/registrar-backend/internal/handler"
	"github.com/cisclab/registrar-backend/internal/logger"
	"github.com/cisclab/registrar-backend/internal/model"
	"github.com/cisclab/registrar-backend/internal/repository"
	"github.com/cisclab/registrar-backend/internal/router"
	"github.com/cisclab/registrar-backend/internal/service"
	"github.com/cisclab/registrar-backend/internal/store"
	"github.com/cisclab/registrar-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("data_dir", cfg.DataDir).
		Msg("Starting Registrar Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Open Collection Stores ────────────────────────────────────────
	sectionStore := store.New[model.Section](cfg.SectionsPath(), "sections")
	classStore := store.New[model.Class](cfg.ClassesPath(), "classes")
	adminStore := store.New[model.Admin](cfg.AdminsPath(), "admins")

	for _, ensure := range []func() error{
		sectionStore.EnsureExists, classStore.EnsureExists, adminStore.EnsureExists,
	} {
		if err := ensure(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize data files")
		}
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	sectionRepo := repository.NewSectionRepository(sectionStore)
	classRepo := repository.NewClassRepository(classStore, sectionRepo)
	adminRepo := repository.NewAdminRepository(adminStore)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, adminRepo)
	sectionService := service.NewSectionService(sectionRepo, log)
	classService := service.NewClassService(classRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Section: handler.NewSectionHandler(sectionService),
		Class:   handler.NewClassHandler(classService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

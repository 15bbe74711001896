package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/config"
	"github.com/stemsi/quiz-app/internal/database"
	"github.com/stemsi/quiz-app/internal/handler"
	"github.com/stemsi/quiz-app/internal/logger"
	"github.com/stemsi/quiz-app/internal/repository"
	"github.com/stemsi/quiz-app/internal/router"
	"github.com/stemsi/quiz-app/internal/service"
	"github.com/stemsi/quiz-app/internal/validator"
	"github.com/stemsi/quiz-app/internal/web"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting quiz app")

	if insecure := cfg.InsecureDefaults(); len(insecure) > 0 {
		ev := log.Warn()
		if cfg.GinMode == gin.ReleaseMode {
			ev = log.Error()
		}
		ev.Str("settings", strings.Join(insecure, ",")).
			Msg("Running with built-in development secrets; set them in the environment before deploying")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := database.Migrate(cfg.DatabaseURL, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate schema")
	}

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(pool)
	quizSessionRepo := repository.NewQuizSessionRepository(rdb, cfg.SessionTTL)
	adminGrantRepo := repository.NewAdminGrantRepository(rdb, cfg.SessionTTL)

	// ─── Seed Sample Data ──────────────────────────────────────────────
	if cfg.SeedSampleData {
		if _, err := service.SeedSampleQuestions(ctx, questionRepo, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed sample questions")
		}
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, adminGrantRepo)
	quizService := service.NewQuizService(questionRepo, quizSessionRepo, log)
	questionService := service.NewQuestionService(questionRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Quiz:   handler.NewQuizHandler(quizService, cfg.DefaultQuizSize, log),
		Admin:  handler.NewAdminHandler(authService, questionService, cfg.CookieSecure, log),
		Health: handler.NewHealthHandler(questionRepo, quizSessionRepo, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	pages, err := web.Templates()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse page templates")
	}
	r := router.SetupRouter(authService, handlers, pages, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

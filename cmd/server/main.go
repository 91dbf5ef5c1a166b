package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/database"
	"github.com/stemsi/quizlingua/internal/handler"
	"github.com/stemsi/quizlingua/internal/logger"
	"github.com/stemsi/quizlingua/internal/middleware"
	"github.com/stemsi/quizlingua/internal/repository"
	"github.com/stemsi/quizlingua/internal/router"
	"github.com/stemsi/quizlingua/internal/service"
	"github.com/stemsi/quizlingua/internal/validator"
	"github.com/stemsi/quizlingua/internal/worker"
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
		Msg("Starting QuizLingua")

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

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	quizRepo := repository.NewQuizRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg.JWTSecret)
	subjectService := service.NewSubjectService(subjectRepo, log)
	quizCache := service.NewRedisQuizCache(rdb, cfg.QuizCacheTTL)
	quizService := service.NewQuizService(quizRepo, subjectService, quizCache, log)
	importService := service.NewImportService(rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Quiz:    handler.NewQuizHandler(quizService, importService),
		Subject: handler.NewSubjectHandler(subjectService),
		System:  handler.NewSystemHandler(pool, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	for i := 0; i < max(cfg.MaxBulkImportWorkers, 1); i++ {
		w := worker.NewImportWorker(rdb, quizService, importService, log.With().Int("worker", i).Logger())
		workers.Go(func() { w.Start(workerCtx) })
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	importLimiter := middleware.NewRateLimiter(max(cfg.ImportRatePerMinute, 1), time.Minute)
	defer importLimiter.Stop()

	r := router.SetupRouter(authService, handlers, importLimiter, cfg)

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

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop import workers; each drains the queue before returning.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

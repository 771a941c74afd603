package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mhartley/sqeprep/internal/api"
	"github.com/mhartley/sqeprep/internal/config"
	"github.com/mhartley/sqeprep/internal/db"
	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/repository/sqlite"
	"github.com/mhartley/sqeprep/internal/scheduler"
	"github.com/mhartley/sqeprep/internal/services"
	"github.com/mhartley/sqeprep/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("SQE Prep Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("worker_queue_size=%d", cfg.WorkerQueueSize)
	log.Debug("challenge_size=%d", cfg.ChallengeSize)
	log.Debug("challenge_rotation=%s", cfg.ChallengeRotation)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	flashcardRepo := sqlite.NewFlashcardRepository(database.DB)
	questionRepo := sqlite.NewQuestionRepository(database.DB)
	examRepo := sqlite.NewExamRepository(database.DB)
	challengeRepo := sqlite.NewChallengeRepository(database.DB)
	gamificationRepo := sqlite.NewGamificationRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	// Background workers
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)

	// Services
	userService := services.NewUserService(userRepo)
	gamificationService := services.NewGamificationService(gamificationRepo)
	statsService := services.NewStatsService(statsRepo, examRepo)
	queue := worker.NewQueue(pool, statsService)
	flashcardService := services.NewFlashcardService(flashcardRepo, gamificationService, cfg.SessionDefault, cfg.SessionMax)
	practiceService := services.NewPracticeService(questionRepo, gamificationService)
	examService := services.NewExamService(examRepo, questionRepo, gamificationService, queue)
	challengeService := services.NewChallengeService(challengeRepo, questionRepo, gamificationService, cfg.ChallengeSize)
	importService := services.NewImportService(questionRepo)

	srv := &api.Server{
		DB:                  database.DB,
		UserService:         userService,
		FlashcardService:    flashcardService,
		PracticeService:     practiceService,
		ExamService:         examService,
		ChallengeService:    challengeService,
		GamificationService: gamificationService,
		StatsService:        statsService,
		ImportService:       importService,
		Pool:                pool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	if cfg.SeedFile != "" {
		log.Info("queueing seed import: %s", cfg.SeedFile)
		queue.EnqueueImport(importService, cfg.SeedFile)
	}

	// Rotate the daily challenge at the configured time and make sure one
	// exists for today before serving traffic.
	sched := scheduler.New(challengeService, cfg.ChallengeRotation)
	if err := sched.Start(ctx); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}
	if err := challengeService.EnsureToday(logger.NewContext(ctx, log)); err != nil {
		log.Warn("could not create today's challenge yet: %v", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	sched.Stop()

	log.Debug("stopping workers")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	pool.Stop()

	log.Info("===========================================")
	log.Info("SQE Prep Server Stopped")
	log.Info("===========================================")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbratke/buergertest/internal/api"
	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/config"
	"github.com/mbratke/buergertest/internal/db"
	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/repository/sqlite"
	"github.com/mbratke/buergertest/internal/selection"
	"github.com/mbratke/buergertest/internal/services"
	"github.com/mbratke/buergertest/internal/session"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Buergertest Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("questions_path=%s", cfg.QuestionsPath)
	log.Debug("states_path=%s", cfg.StatesPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("exam_duration_seconds=%d", cfg.ExamDurationSeconds)
	log.Debug("exam_question_count=%d", cfg.ExamQuestionCount)
	log.Debug("exam_state_question_count=%d", cfg.ExamStateQuestionCount)
	log.Debug("flashcard_timer_seconds=%d", cfg.FlashcardTimerSeconds)
	log.Debug("session_ttl_minutes=%d", cfg.SessionTTLMinutes)

	// Load the question bank
	b, err := bank.Load(cfg.QuestionsPath, cfg.StatesPath)
	if err != nil {
		log.Error("failed to load question bank: %v", err)
		os.Exit(1)
	}
	summary := b.Summarize()
	log.Info("question bank loaded: %d questions, %d states", summary.TotalQuestions, len(b.States()))

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	attemptRepo := sqlite.NewAttemptRepository(database)
	prefRepo := sqlite.NewPreferenceRepository(database)

	// Session registry with its one-second clock and idle eviction
	registry := session.NewRegistry(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	go registry.Run(ctx, time.Duration(cfg.CleanupIntervalMinutes)*time.Minute)

	selector := selection.New(nil)

	srv := &api.Server{
		Bank:              b,
		ExamService:       services.NewExamService(b, selector, registry, attemptRepo, cfg.ExamDurationSeconds, cfg.ExamQuestionCount, cfg.ExamStateQuestionCount),
		PracticeService:   services.NewPracticeService(b, selector, registry, attemptRepo),
		FlashcardService:  services.NewFlashcardService(b, selector, registry, cfg.FlashcardTimerSeconds),
		HistoryService:    services.NewHistoryService(attemptRepo),
		PreferenceService: services.NewPreferenceService(b, prefRepo),
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

	log.Debug("stopping session registry clock")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Buergertest Server Stopped")
	log.Info("===========================================")
}

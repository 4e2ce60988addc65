package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                   string
	DBPath                 string
	QuestionsPath          string
	StatesPath             string
	LogLevel               string
	ExamDurationSeconds    int
	ExamQuestionCount      int
	ExamStateQuestionCount int
	FlashcardTimerSeconds  int
	SessionTTLMinutes      int
	CleanupIntervalMinutes int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                   envOr("ADDR", ":8080"),
		DBPath:                 envOr("DB_PATH", "file:buergertest.db"),
		QuestionsPath:          envOr("QUESTIONS_PATH", "data/questions.json"),
		StatesPath:             envOr("STATES_PATH", "data/states.json"),
		LogLevel:               envOr("LOG_LEVEL", "INFO"),
		ExamDurationSeconds:    envIntOr("EXAM_DURATION_SECONDS", 3600),
		ExamQuestionCount:      envIntOr("EXAM_QUESTION_COUNT", 33),
		ExamStateQuestionCount: envIntOr("EXAM_STATE_QUESTION_COUNT", 3),
		FlashcardTimerSeconds:  envIntOr("FLASHCARD_TIMER_SECONDS", 15),
		SessionTTLMinutes:      envIntOr("SESSION_TTL_MINUTES", 240),
		CleanupIntervalMinutes: envIntOr("CLEANUP_INTERVAL_MINUTES", 10),
	}
}

// Validate checks that the configuration is usable before anything is wired.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.QuestionsPath == "" {
		return fmt.Errorf("QUESTIONS_PATH cannot be empty")
	}
	if c.StatesPath == "" {
		return fmt.Errorf("STATES_PATH cannot be empty")
	}
	if c.ExamDurationSeconds <= 0 {
		return fmt.Errorf("EXAM_DURATION_SECONDS must be positive, got %d", c.ExamDurationSeconds)
	}
	if c.ExamQuestionCount <= 0 {
		return fmt.Errorf("EXAM_QUESTION_COUNT must be positive, got %d", c.ExamQuestionCount)
	}
	if c.ExamStateQuestionCount < 0 || c.ExamStateQuestionCount > c.ExamQuestionCount {
		return fmt.Errorf("EXAM_STATE_QUESTION_COUNT must be between 0 and EXAM_QUESTION_COUNT, got %d", c.ExamStateQuestionCount)
	}
	if c.FlashcardTimerSeconds <= 0 {
		return fmt.Errorf("FLASHCARD_TIMER_SECONDS must be positive, got %d", c.FlashcardTimerSeconds)
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMinutes)
	}
	if c.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL_MINUTES must be positive, got %d", c.CleanupIntervalMinutes)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

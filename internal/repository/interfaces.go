package repository

import (
	"context"

	"github.com/mbratke/buergertest/internal/models"
)

// AttemptRepository handles attempt-history data access
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error)
	Count(ctx context.Context, filter models.AttemptFilter) (int, error)
	Stats(ctx context.Context) (*models.AttemptStats, error)
}

// PreferenceRepository handles per-client preference data access
type PreferenceRepository interface {
	Get(ctx context.Context, clientID string) (*models.Preference, error)
	Upsert(ctx context.Context, pref models.Preference) error
	Delete(ctx context.Context, clientID string) error
}

package services

import (
	"context"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/repository"
)

// HistoryService exposes the persisted attempt history
type HistoryService interface {
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, int, error)
	Stats(ctx context.Context) (*models.AttemptStats, error)
}

type historyService struct {
	attemptRepo repository.AttemptRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(attemptRepo repository.AttemptRepository) HistoryService {
	return &historyService{attemptRepo: attemptRepo}
}

func (s *historyService) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, int, error) {
	log := logger.FromContext(ctx)

	if filter.Mode != "" && filter.Mode != models.ModeExam && filter.Mode != models.ModePractice {
		return nil, 0, errors.NewValidationError("mode", "must be 'exam' or 'practice'")
	}

	attempts, err := s.attemptRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.attemptRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return attempts, total, nil
}

func (s *historyService) Stats(ctx context.Context) (*models.AttemptStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.attemptRepo.Stats(ctx)
	if err != nil {
		log.Error("failed to aggregate attempt stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

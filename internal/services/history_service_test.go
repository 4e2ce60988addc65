package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/services"
	"github.com/mbratke/buergertest/internal/testutil/mocks"
)

func TestHistoryService_ListPassesFilter(t *testing.T) {
	filter := models.AttemptFilter{Mode: models.ModeExam, StateCode: "BW", Limit: 10}
	attempts := []models.Attempt{{ID: 1, Mode: models.ModeExam}}

	repo := new(mocks.MockAttemptRepository)
	repo.On("List", mock.Anything, filter).Return(attempts, nil).Once()
	repo.On("Count", mock.Anything, filter).Return(3, nil).Once()

	svc := services.NewHistoryService(repo)

	got, total, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, attempts, got)
	assert.Equal(t, 3, total)
	repo.AssertExpectations(t)
}

func TestHistoryService_ListRejectsUnknownMode(t *testing.T) {
	repo := new(mocks.MockAttemptRepository)
	svc := services.NewHistoryService(repo)

	_, _, err := svc.List(context.Background(), models.AttemptFilter{Mode: "rush"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHistoryService_Stats(t *testing.T) {
	stats := &models.AttemptStats{TotalAttempts: 7, ExamsTaken: 4, ExamsPassed: 3}

	repo := new(mocks.MockAttemptRepository)
	repo.On("Stats", mock.Anything).Return(stats, nil).Once()

	svc := services.NewHistoryService(repo)

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/repository"
	"github.com/mbratke/buergertest/internal/repository/sqlite"
	"github.com/mbratke/buergertest/internal/testutil"
)

type AttemptRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.AttemptRepository
}

func (s *AttemptRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAttemptRepository(s.db)
}

func (s *AttemptRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AttemptRepositorySuite) insert(mode, state string, correct, total int, passed bool) int64 {
	id, err := s.repo.Insert(context.Background(), models.Attempt{
		Mode:             mode,
		StateCode:        state,
		TotalCount:       total,
		CorrectCount:     correct,
		ScorePercent:     100 * correct / total,
		Passed:           passed,
		TimeTakenSeconds: 600,
	})
	s.Require().NoError(err)
	return id
}

func (s *AttemptRepositorySuite) TestInsertAndList() {
	ctx := context.Background()

	id := s.insert(models.ModeExam, "BW", 20, 33, true)
	s.Assert().Greater(id, int64(0))

	attempts, err := s.repo.List(ctx, models.AttemptFilter{})
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)

	a := attempts[0]
	s.Assert().Equal(models.ModeExam, a.Mode)
	s.Assert().Equal("BW", a.StateCode)
	s.Assert().Equal(20, a.CorrectCount)
	s.Assert().Equal(33, a.TotalCount)
	s.Assert().True(a.Passed)
	s.Assert().Equal(600, a.TimeTakenSeconds)
	s.Assert().False(a.CreatedAt.IsZero())
}

func (s *AttemptRepositorySuite) TestListFilters() {
	ctx := context.Background()

	s.insert(models.ModeExam, "BW", 20, 33, true)
	s.insert(models.ModeExam, "BY", 10, 33, false)
	s.insert(models.ModePractice, "BW", 5, 10, false)

	byMode, err := s.repo.List(ctx, models.AttemptFilter{Mode: models.ModeExam})
	s.Require().NoError(err)
	s.Assert().Len(byMode, 2)

	byState, err := s.repo.List(ctx, models.AttemptFilter{StateCode: "BW"})
	s.Require().NoError(err)
	s.Assert().Len(byState, 2)

	passed := true
	byPassed, err := s.repo.List(ctx, models.AttemptFilter{Passed: &passed})
	s.Require().NoError(err)
	s.Require().Len(byPassed, 1)
	s.Assert().Equal("BW", byPassed[0].StateCode)

	combined, err := s.repo.List(ctx, models.AttemptFilter{Mode: models.ModeExam, StateCode: "BW"})
	s.Require().NoError(err)
	s.Assert().Len(combined, 1)
}

func (s *AttemptRepositorySuite) TestListPagination() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.insert(models.ModePractice, "", 1, 2, false)
	}

	page, err := s.repo.List(ctx, models.AttemptFilter{Limit: 2})
	s.Require().NoError(err)
	s.Assert().Len(page, 2)

	rest, err := s.repo.List(ctx, models.AttemptFilter{Limit: 10, Offset: 4})
	s.Require().NoError(err)
	s.Assert().Len(rest, 1)
}

func (s *AttemptRepositorySuite) TestCount() {
	ctx := context.Background()

	s.insert(models.ModeExam, "BW", 20, 33, true)
	s.insert(models.ModePractice, "", 5, 10, false)

	total, err := s.repo.Count(ctx, models.AttemptFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(2, total)

	exams, err := s.repo.Count(ctx, models.AttemptFilter{Mode: models.ModeExam})
	s.Require().NoError(err)
	s.Assert().Equal(1, exams)
}

func (s *AttemptRepositorySuite) TestStats() {
	ctx := context.Background()

	s.insert(models.ModeExam, "BW", 20, 33, true)
	s.insert(models.ModeExam, "BY", 10, 33, false)
	s.insert(models.ModePractice, "", 5, 10, false)

	stats, err := s.repo.Stats(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(3, stats.TotalAttempts)
	s.Assert().Equal(2, stats.ExamsTaken)
	s.Assert().Equal(1, stats.ExamsPassed)
	s.Assert().InDelta(0.5, stats.PassRate, 0.001)
	s.Assert().Equal(60, stats.BestPercent)
}

func (s *AttemptRepositorySuite) TestStatsEmpty() {
	stats, err := s.repo.Stats(context.Background())
	s.Require().NoError(err)
	s.Assert().Zero(stats.TotalAttempts)
	s.Assert().Zero(stats.PassRate)
	s.Assert().Zero(stats.BestPercent)
}

func TestAttemptRepositorySuite(t *testing.T) {
	suite.Run(t, new(AttemptRepositorySuite))
}

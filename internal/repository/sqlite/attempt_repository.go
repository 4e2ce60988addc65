package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: mode=%s, state=%s, score=%d/%d", a.Mode, a.StateCode, a.CorrectCount, a.TotalCount)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (mode, state_code, total_count, correct_count, score_percent, passed, time_taken_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.Mode, a.StateCode, a.TotalCount, a.CorrectCount, a.ScorePercent, a.Passed, a.TimeTakenSeconds)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	log.Debug("attempt inserted: id=%d", id)
	return id, nil
}

// listQuery builds the filtered SELECT shared by List and Count.
func listQuery(columns []string, filter models.AttemptFilter) squirrel.SelectBuilder {
	query := sqlBuilder.Select(columns...).From("attempts")

	if filter.Mode != "" {
		query = query.Where(squirrel.Eq{"mode": filter.Mode})
	}
	if filter.StateCode != "" {
		query = query.Where(squirrel.Eq{"state_code": filter.StateCode})
	}
	if filter.Passed != nil {
		query = query.Where(squirrel.Eq{"passed": *filter.Passed})
	}
	return query
}

func (r *attemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: mode=%s, state=%s", filter.Mode, filter.StateCode)

	query := listQuery([]string{
		"id", "mode", "state_code", "total_count", "correct_count",
		"score_percent", "passed", "time_taken_seconds", "created_at",
	}, filter)

	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("created_at " + orderDir)

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.Mode, &a.StateCode, &a.TotalCount, &a.CorrectCount,
			&a.ScorePercent, &a.Passed, &a.TimeTakenSeconds, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

func (r *attemptRepository) Count(ctx context.Context, filter models.AttemptFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	sqlStr, args, err := listQuery([]string{"COUNT(*)"}, filter).ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *attemptRepository) Stats(ctx context.Context) (*models.AttemptStats, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("aggregating attempt stats")

	var stats models.AttemptStats
	var best sql.NullInt64
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN mode = 'exam' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN mode = 'exam' AND passed THEN 1 ELSE 0 END), 0),
    MAX(score_percent),
    AVG(score_percent)
FROM attempts
`).Scan(&stats.TotalAttempts, &stats.ExamsTaken, &stats.ExamsPassed, &best, &avg)
	if err != nil {
		log.Error("failed to aggregate stats: %v", err)
		return nil, err
	}

	if best.Valid {
		stats.BestPercent = int(best.Int64)
	}
	if avg.Valid {
		stats.AveragePercent = avg.Float64
	}
	if stats.ExamsTaken > 0 {
		stats.PassRate = float64(stats.ExamsPassed) / float64(stats.ExamsTaken)
	}
	return &stats, nil
}

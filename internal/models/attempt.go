package models

import "time"

// Session modes as persisted in attempt history.
const (
	ModeExam     = "exam"
	ModePractice = "practice"
)

// Attempt is one finished exam or practice run, persisted for the history and
// stats screens.
type Attempt struct {
	ID               int64     `json:"id"`
	Mode             string    `json:"mode"`
	StateCode        string    `json:"state_code,omitempty"`
	TotalCount       int       `json:"total_count"`
	CorrectCount     int       `json:"correct_count"`
	ScorePercent     int       `json:"score_percent"`
	Passed           bool      `json:"passed"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

// AttemptFilter narrows history listings. Zero values mean "no filter".
type AttemptFilter struct {
	Mode      string
	StateCode string
	Passed    *bool
	Limit     int
	Offset    int
	OrderDir  string // "ASC" or "DESC", default DESC
}

// AttemptStats aggregates history for the stats endpoint.
type AttemptStats struct {
	TotalAttempts  int     `json:"total_attempts"`
	ExamsTaken     int     `json:"exams_taken"`
	ExamsPassed    int     `json:"exams_passed"`
	PassRate       float64 `json:"pass_rate"`
	BestPercent    int     `json:"best_percent"`
	AveragePercent float64 `json:"average_percent"`
}

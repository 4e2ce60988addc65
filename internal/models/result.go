package models

// ScoredResult is derived from a finished session's answer map. It is never
// stored as-is; history rows are built from it.
type ScoredResult struct {
	CorrectCount     int  `json:"correct_count"`
	TotalCount       int  `json:"total_count"`
	ScorePercent     int  `json:"score_percent"`
	Passed           bool `json:"passed"`
	TimeTakenSeconds int  `json:"time_taken_seconds"`
}

// QuestionOutcome is the per-question breakdown attached to an exam result.
type QuestionOutcome struct {
	QuestionID      string   `json:"question_id"`
	ChosenOptionID  OptionID `json:"chosen_option_id,omitempty"`
	CorrectOptionID OptionID `json:"correct_option_id"`
	Correct         bool     `json:"correct"`
	Answered        bool     `json:"answered"`
}

// Package scoring derives results from a finished session's answer map.
package scoring

import (
	"math"

	"github.com/mbratke/buergertest/internal/models"
)

// PassFraction is the official exam threshold: 17 correct answers out of 33.
const PassFraction = 17.0 / 33.0

// Score computes the result for a question list and answer map. Pure: no side
// effects, defined for every well-formed input including empty questions and
// an empty or partial answer map. Missing entries count as wrong.
func Score(questions []models.Question, answers map[string]models.OptionID, passFraction float64) models.ScoredResult {
	result := models.ScoredResult{TotalCount: len(questions)}
	if len(questions) == 0 {
		return result
	}

	for _, q := range questions {
		if chosen, ok := answers[q.ID]; ok && chosen == q.CorrectOptionID {
			result.CorrectCount++
		}
	}

	result.ScorePercent = int(math.Round(100 * float64(result.CorrectCount) / float64(result.TotalCount)))
	threshold := int(math.Ceil(float64(result.TotalCount) * passFraction))
	result.Passed = result.CorrectCount >= threshold
	return result
}

// Outcomes returns the per-question breakdown in question order.
func Outcomes(questions []models.Question, answers map[string]models.OptionID) []models.QuestionOutcome {
	out := make([]models.QuestionOutcome, 0, len(questions))
	for _, q := range questions {
		chosen, answered := answers[q.ID]
		out = append(out, models.QuestionOutcome{
			QuestionID:      q.ID,
			ChosenOptionID:  chosen,
			CorrectOptionID: q.CorrectOptionID,
			Correct:         answered && chosen == q.CorrectOptionID,
			Answered:        answered,
		})
	}
	return out
}

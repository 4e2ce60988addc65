// Package bank loads the static question catalog and state list and
// normalizes raw records into the Question shape the rest of the application
// operates on. The bank is loaded once at startup and read-only afterwards.
package bank

import (
	"sort"

	"github.com/mbratke/buergertest/internal/models"
)

// Bank is the in-memory question repository.
type Bank struct {
	questions   []models.Question
	byID        map[string]models.Question
	states      []models.State
	stateByCode map[string]models.State
}

// New builds a bank from already-normalized questions. Load is the production
// path; New exists for wiring pre-built fixtures.
func New(questions []models.Question, states []models.State) *Bank {
	b := &Bank{
		byID:        make(map[string]models.Question, len(questions)),
		states:      states,
		stateByCode: make(map[string]models.State, len(states)),
	}
	for _, s := range states {
		b.stateByCode[s.Code] = s
	}
	for _, q := range questions {
		if _, dup := b.byID[q.ID]; dup {
			continue
		}
		b.byID[q.ID] = q
		b.questions = append(b.questions, q)
	}
	return b
}

// Questions returns a copy of all questions.
func (b *Bank) Questions() []models.Question {
	out := make([]models.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Question returns the question with the given id.
func (b *Bank) Question(id string) (models.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// General returns all nationwide questions.
func (b *Bank) General() []models.Question {
	var out []models.Question
	for _, q := range b.questions {
		if q.General() {
			out = append(out, q)
		}
	}
	return out
}

// ForState returns all questions scoped to the given state code.
func (b *Bank) ForState(code string) []models.Question {
	var out []models.Question
	for _, q := range b.questions {
		if q.ScopeStateCode == code {
			out = append(out, q)
		}
	}
	return out
}

// States returns the selectable federal states.
func (b *Bank) States() []models.State {
	out := make([]models.State, len(b.states))
	copy(out, b.states)
	return out
}

// StateByCode looks up a state by its code.
func (b *Bank) StateByCode(code string) (models.State, bool) {
	s, ok := b.stateByCode[code]
	return s, ok
}

// Languages returns the sorted set of translation language codes present
// anywhere in the bank.
func (b *Bank) Languages() []string {
	seen := map[string]bool{}
	for _, q := range b.questions {
		for lang := range q.Translations {
			seen[lang] = true
		}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Summary describes the loaded bank for the overview endpoint.
type Summary struct {
	TotalQuestions   int            `json:"total_questions"`
	GeneralQuestions int            `json:"general_questions"`
	StateQuestions   map[string]int `json:"state_questions"`
	Languages        []string       `json:"languages"`
}

// Summarize computes question counts per scope.
func (b *Bank) Summarize() Summary {
	s := Summary{
		TotalQuestions: len(b.questions),
		StateQuestions: map[string]int{},
		Languages:      b.Languages(),
	}
	for _, q := range b.questions {
		if q.General() {
			s.GeneralQuestions++
		} else {
			s.StateQuestions[q.ScopeStateCode]++
		}
	}
	return s
}

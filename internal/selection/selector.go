// Package selection builds the ordered question list for a new session. All
// selectors are pure apart from the injected randomness source.
package selection

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/models"
)

// Selector draws question subsets from the bank. Safe for concurrent use; the
// rng is guarded so one Selector can serve all session starts.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Selector using the given randomness source. A nil rng gets a
// time-seeded one.
func New(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// ForPractice returns all general questions unioned with the questions scoped
// to stateCode, de-duplicated by id and shuffled. An empty stateCode means
// the whole bank.
func (s *Selector) ForPractice(b *bank.Bank, stateCode string) []models.Question {
	var pool []models.Question
	if stateCode == "" {
		pool = b.Questions()
	} else {
		pool = dedupe(append(b.General(), b.ForState(stateCode)...))
	}
	s.shuffle(pool)
	return pool
}

// ForFlashcards selects the same pool as practice.
func (s *Selector) ForFlashcards(b *bank.Bank, stateCode string) []models.Question {
	return s.ForPractice(b, stateCode)
}

// ForExam draws up to stateCount questions from the state-scoped subset and
// fills the remainder up to total from the general subset, both without
// replacement, then shuffles the combined list so state and general questions
// are interleaved. The result is shorter than total only when the bank itself
// runs out of questions.
func (s *Selector) ForExam(b *bank.Bank, stateCode string, total, stateCount int) ([]models.Question, error) {
	if stateCode == "" {
		return nil, errors.NewValidationError("state_code", "an exam requires a federal state")
	}

	statePool := b.ForState(stateCode)
	s.shuffle(statePool)
	if len(statePool) > stateCount {
		statePool = statePool[:stateCount]
	}

	generalPool := b.General()
	s.shuffle(generalPool)
	remaining := total - len(statePool)
	if len(generalPool) > remaining {
		generalPool = generalPool[:remaining]
	}

	selected := dedupe(append(statePool, generalPool...))
	s.shuffle(selected)
	return selected, nil
}

// shuffle permutes qs in place (Fisher-Yates).
func (s *Selector) shuffle(qs []models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}

func dedupe(qs []models.Question) []models.Question {
	seen := make(map[string]bool, len(qs))
	out := qs[:0:0]
	for _, q := range qs {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

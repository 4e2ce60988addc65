package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
)

// rawQuestion is the record shape of the questions file. State questions
// carry their state in the num field, e.g. "BW-3"; general questions a bare
// number. The translation map is keyed by language code.
type rawQuestion struct {
	Num         string                    `json:"num"`
	Question    string                    `json:"question"`
	A           string                    `json:"a"`
	B           string                    `json:"b"`
	C           string                    `json:"c"`
	D           string                    `json:"d"`
	Solution    string                    `json:"solution"`
	Context     string                    `json:"context,omitempty"`
	Translation map[string]rawTranslation `json:"translation,omitempty"`
}

type rawTranslation struct {
	Question string `json:"question"`
	A        string `json:"a"`
	B        string `json:"b"`
	C        string `json:"c"`
	D        string `json:"d"`
	Context  string `json:"context,omitempty"`
}

// Load reads and normalizes the questions and states files. Malformed
// question records are skipped with a warning; an unreadable file is fatal.
func Load(questionsPath, statesPath string) (*Bank, error) {
	log := logger.Default().WithPrefix("bank")

	states, err := loadStates(statesPath)
	if err != nil {
		return nil, fmt.Errorf("loading states from %s: %w", statesPath, err)
	}
	log.Info("loaded %d states from %s", len(states), statesPath)

	data, err := os.ReadFile(questionsPath)
	if err != nil {
		return nil, fmt.Errorf("reading questions file: %w", err)
	}
	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing questions file %s: %w", questionsPath, err)
	}

	b := &Bank{
		byID:        map[string]models.Question{},
		states:      states,
		stateByCode: map[string]models.State{},
	}
	for _, s := range states {
		b.stateByCode[s.Code] = s
	}

	skipped := 0
	for _, r := range raw {
		q, err := normalize(r, b.stateByCode)
		if err != nil {
			log.Warn("skipping question %q: %v", r.Num, err)
			skipped++
			continue
		}
		if _, dup := b.byID[q.ID]; dup {
			log.Warn("skipping question %q: duplicate id", q.ID)
			skipped++
			continue
		}
		b.byID[q.ID] = q
		b.questions = append(b.questions, q)
	}

	log.Info("loaded %d questions (%d skipped) from %s", len(b.questions), skipped, questionsPath)
	return b, nil
}

// normalize converts a raw record into the canonical Question shape, resolving
// the state prefix and validating the invariants the core relies on.
func normalize(r rawQuestion, states map[string]models.State) (models.Question, error) {
	if r.Num == "" {
		return models.Question{}, fmt.Errorf("missing num")
	}
	if strings.TrimSpace(r.Question) == "" {
		return models.Question{}, fmt.Errorf("empty question text")
	}

	solution := models.OptionID(strings.ToLower(strings.TrimSpace(r.Solution)))
	if !solution.Valid() {
		return models.Question{}, fmt.Errorf("invalid solution %q", r.Solution)
	}

	options := []models.Option{
		{ID: models.OptionA, Text: r.A},
		{ID: models.OptionB, Text: r.B},
		{ID: models.OptionC, Text: r.C},
		{ID: models.OptionD, Text: r.D},
	}
	for _, o := range options {
		if strings.TrimSpace(o.Text) == "" {
			return models.Question{}, fmt.Errorf("empty text for option %s", o.ID)
		}
	}

	scope := ""
	if idx := strings.IndexByte(r.Num, '-'); idx > 0 {
		prefix := r.Num[:idx]
		if _, ok := states[prefix]; !ok {
			return models.Question{}, fmt.Errorf("unknown state prefix %q", prefix)
		}
		scope = prefix
	}

	q := models.Question{
		ID:              r.Num,
		Text:            r.Question,
		Options:         options,
		CorrectOptionID: solution,
		ScopeStateCode:  scope,
		Explanation:     r.Context,
	}

	if len(r.Translation) > 0 {
		q.Translations = make(map[string]models.Translation, len(r.Translation))
		for lang, tr := range r.Translation {
			q.Translations[lang] = models.Translation{
				Text: tr.Question,
				Options: map[models.OptionID]string{
					models.OptionA: tr.A,
					models.OptionB: tr.B,
					models.OptionC: tr.C,
					models.OptionD: tr.D,
				},
				Explanation: tr.Context,
			}
		}
	}
	return q, nil
}

// loadStates parses the states file. JSON and YAML are both accepted so the
// list can be maintained alongside either kind of deployment data.
func loadStates(path string) ([]models.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var states []models.State
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &states); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &states); err != nil {
			return nil, err
		}
	}

	var out []models.State
	for _, s := range states {
		if s.Code == "" || s.Name == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

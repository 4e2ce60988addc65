package models

// OptionID is the letter identity of an answer option. Option identity is the
// letter, not the position in the options slice.
type OptionID string

const (
	OptionA OptionID = "a"
	OptionB OptionID = "b"
	OptionC OptionID = "c"
	OptionD OptionID = "d"
)

// Valid reports whether the id is one of the four known letters.
func (o OptionID) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Option is one of the four answer choices of a question.
type Option struct {
	ID              OptionID `json:"id"`
	Text            string   `json:"text"`
	TextTranslation string   `json:"text_translation,omitempty"`
}

// Question is the normalized question record the core operates on. Raw bank
// records are converted into this shape at load time; nothing downstream ever
// sees the bank file's field layout.
type Question struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	TextTranslation string   `json:"text_translation,omitempty"`
	Options         []Option `json:"options"`
	CorrectOptionID OptionID `json:"correct_option_id,omitempty"`
	// ScopeStateCode is empty for general (nationwide) questions and holds a
	// federal state code for state-scoped ones.
	ScopeStateCode string `json:"scope_state_code,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
	// Translations is keyed by language code. It is bank-internal and never
	// serialized; Localized picks the one language a response needs.
	Translations map[string]Translation `json:"-"`
}

// General reports whether the question is nationwide rather than tied to a
// single federal state.
func (q Question) General() bool {
	return q.ScopeStateCode == ""
}

// Option returns the option with the given id, if present.
func (q Question) Option(id OptionID) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Redacted returns a copy safe to send to a client that has not earned the
// reveal yet: the correct option id and the explanation are stripped.
func (q Question) Redacted() Question {
	out := q
	out.CorrectOptionID = ""
	out.Explanation = ""
	return out
}

// Translation is a per-language rendering of a question. The bank keeps the
// full map; sessions serve the one language the client picked.
type Translation struct {
	Text        string
	Options     map[OptionID]string
	Explanation string
}

// Localized returns a copy of the question with the translation fields filled
// in for the given language. An unknown or empty language code returns the
// question unchanged.
func (q Question) Localized(lang string) Question {
	tr, ok := q.Translations[lang]
	if !ok {
		return q
	}
	out := q
	out.Text = q.Text
	out.TextTranslation = tr.Text
	out.Options = make([]Option, len(q.Options))
	copy(out.Options, q.Options)
	for i := range out.Options {
		out.Options[i].TextTranslation = tr.Options[out.Options[i].ID]
	}
	if tr.Explanation != "" {
		out.Explanation = tr.Explanation
	}
	return out
}

// State is a selectable federal state from the states file.
type State struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

package models

import "time"

// Preference holds the two per-client settings the app remembers: the chosen
// federal state and the chosen translation language. Empty values mean the
// client has not picked one yet and should be prompted.
type Preference struct {
	ClientID     string    `json:"-"`
	StateCode    string    `json:"state_code"`
	LanguageCode string    `json:"language_code"`
	UpdatedAt    time.Time `json:"updated_at"`
}

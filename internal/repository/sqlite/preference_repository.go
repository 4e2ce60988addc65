package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/repository"
)

type preferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository implementation
func NewPreferenceRepository(db *sql.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, clientID string) (*models.Preference, error) {
	log := logger.FromContext(ctx).WithPrefix("preference_repo")
	log.Debug("getting preferences: client_id=%s", clientID)

	var p models.Preference
	err := r.db.QueryRowContext(ctx, `
SELECT client_id, state_code, language_code, updated_at
FROM preferences
WHERE client_id = ?
`, clientID).Scan(&p.ClientID, &p.StateCode, &p.LanguageCode, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Not an error: the client simply has not chosen anything yet.
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get preferences: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref models.Preference) error {
	log := logger.FromContext(ctx).WithPrefix("preference_repo")
	log.Debug("upserting preferences: client_id=%s, state=%s, lang=%s", pref.ClientID, pref.StateCode, pref.LanguageCode)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO preferences (client_id, state_code, language_code, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(client_id) DO UPDATE SET
    state_code = excluded.state_code,
    language_code = excluded.language_code,
    updated_at = CURRENT_TIMESTAMP
`, pref.ClientID, pref.StateCode, pref.LanguageCode)
	if err != nil {
		log.Error("failed to upsert preferences: %v", err)
	}
	return err
}

func (r *preferenceRepository) Delete(ctx context.Context, clientID string) error {
	log := logger.FromContext(ctx).WithPrefix("preference_repo")
	log.Debug("deleting preferences: client_id=%s", clientID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE client_id = ?`, clientID)
	if err != nil {
		log.Error("failed to delete preferences: %v", err)
	}
	return err
}

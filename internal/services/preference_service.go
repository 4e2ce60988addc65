package services

import (
	"context"

	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/logger"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/repository"
)

// PreferenceService stores per-client defaults such as home state and answer
// language
type PreferenceService interface {
	Get(ctx context.Context, clientID string) (*models.Preference, error)
	Save(ctx context.Context, pref models.Preference) (*models.Preference, error)
	Clear(ctx context.Context, clientID string) error
}

type preferenceService struct {
	bank     *bank.Bank
	prefRepo repository.PreferenceRepository
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(b *bank.Bank, prefRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{bank: b, prefRepo: prefRepo}
}

func (s *preferenceService) Get(ctx context.Context, clientID string) (*models.Preference, error) {
	log := logger.FromContext(ctx)

	pref, err := s.prefRepo.Get(ctx, clientID)
	if err != nil {
		log.Error("failed to get preference: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return pref, nil
}

func (s *preferenceService) Save(ctx context.Context, pref models.Preference) (*models.Preference, error) {
	log := logger.FromContext(ctx)

	if pref.ClientID == "" {
		return nil, errors.NewValidationError("client_id", "is required")
	}
	if pref.StateCode != "" {
		if _, ok := s.bank.StateByCode(pref.StateCode); !ok {
			return nil, errors.NewValidationError("state_code", "unknown state")
		}
	}
	if pref.LanguageCode != "" {
		if !s.knownLanguage(pref.LanguageCode) {
			return nil, errors.NewValidationError("language_code", "no translations available for language")
		}
	}

	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		log.Error("failed to save preference: %v", err)
		return nil, errors.NewInternalError(err)
	}

	saved, err := s.prefRepo.Get(ctx, pref.ClientID)
	if err != nil {
		log.Error("failed to reload preference: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return saved, nil
}

func (s *preferenceService) Clear(ctx context.Context, clientID string) error {
	log := logger.FromContext(ctx)

	if err := s.prefRepo.Delete(ctx, clientID); err != nil {
		log.Error("failed to clear preference: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *preferenceService) knownLanguage(code string) bool {
	if code == "de" {
		return true
	}
	for _, lang := range s.bank.Languages() {
		if lang == code {
			return true
		}
	}
	return false
}

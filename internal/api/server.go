// Package api is the HTTP surface of the trainer. Handlers stay thin: decode,
// call a service, respond. All responses are JSON.
package api

import (
	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/services"
)

type Server struct {
	Bank              *bank.Bank
	ExamService       services.ExamService
	PracticeService   services.PracticeService
	FlashcardService  services.FlashcardService
	HistoryService    services.HistoryService
	PreferenceService services.PreferenceService
}

package services_test

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mbratke/buergertest/internal/bank"
	"github.com/mbratke/buergertest/internal/models"
	"github.com/mbratke/buergertest/internal/selection"
	"github.com/mbratke/buergertest/internal/session"
)

func question(id, scope string) models.Question {
	return models.Question{
		ID:   id,
		Text: "question " + id,
		Options: []models.Option{
			{ID: models.OptionA, Text: "first"},
			{ID: models.OptionB, Text: "second"},
			{ID: models.OptionC, Text: "third"},
			{ID: models.OptionD, Text: "fourth"},
		},
		CorrectOptionID: models.OptionB,
		ScopeStateCode:  scope,
	}
}

func testBank(general, perState int) *bank.Bank {
	var questions []models.Question
	for i := 0; i < general; i++ {
		questions = append(questions, question(fmt.Sprintf("g%d", i), ""))
	}
	for i := 0; i < perState; i++ {
		questions = append(questions, question(fmt.Sprintf("bw%d", i), "BW"))
	}
	states := []models.State{
		{Code: "BW", Name: "Baden-Württemberg"},
		{Code: "BY", Name: "Bayern"},
	}
	return bank.New(questions, states)
}

func testSelector() *selection.Selector {
	return selection.New(rand.New(rand.NewSource(42)))
}

func testRegistry() *session.Registry {
	return session.NewRegistry(time.Hour)
}

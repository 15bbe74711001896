package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/model"
)

// SampleQuestions returns the fixed starter bank.
func SampleQuestions() []model.Question {
	str := func(s string) *string { return &s }
	opt := func(text string, correct bool) model.Option {
		return model.Option{Text: text, IsCorrect: correct}
	}

	return []model.Question{
		{
			Text:        "What is 2+2?",
			Type:        model.QuestionTypeSingleChoice,
			Difficulty:  str("easy"),
			Category:    str("Math"),
			Explanation: str("Basic arithmetic."),
			Options:     []model.Option{opt("3", false), opt("4", true), opt("5", false)},
		},
		{
			Text:        "Which are prime numbers?",
			Type:        model.QuestionTypeMultipleChoice,
			Difficulty:  str("medium"),
			Category:    str("Math"),
			Explanation: str("Prime numbers have only two distinct factors: 1 and themselves."),
			Options:     []model.Option{opt("2", true), opt("3", true), opt("4", false), opt("5", true)},
		},
		{
			Text:          "What is the capital of France?",
			Type:          model.QuestionTypeShortAnswer,
			Difficulty:    str("easy"),
			Category:      str("Geography"),
			Explanation:   str("Paris is the capital city of France."),
			CorrectAnswer: str("Paris"),
		},
		{
			Text:          "Who wrote 'Hamlet'?",
			Type:          model.QuestionTypeShortAnswer,
			Difficulty:    str("medium"),
			Category:      str("Literature"),
			Explanation:   str("William Shakespeare wrote Hamlet."),
			CorrectAnswer: str("Shakespeare"),
		},
		{
			Text:        "Which of the following are programming languages?",
			Type:        model.QuestionTypeMultipleChoice,
			Difficulty:  str("easy"),
			Category:    str("Technology"),
			Explanation: str("Python, Java, and Ruby are programming languages."),
			Options:     []model.Option{opt("Python", true), opt("Java", true), opt("Ruby", true), opt("HTML", false)},
		},
		{
			Text:        "What is the boiling point of water at sea level (°C)?",
			Type:        model.QuestionTypeSingleChoice,
			Difficulty:  str("easy"),
			Category:    str("Science"),
			Explanation: str("Water boils at 100°C at sea level."),
			Options:     []model.Option{opt("90", false), opt("100", true), opt("110", false)},
		},
	}
}

// SeedSampleQuestions inserts the starter bank when the store is empty.
// It returns the number of questions inserted.
func SeedSampleQuestions(ctx context.Context, store QuestionStore, log zerolog.Logger) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if n > 0 {
		log.Debug().Int("questions", n).Msg("Question bank not empty, skipping sample data")
		return 0, nil
	}

	samples := SampleQuestions()
	for i := range samples {
		if err := store.Create(ctx, &samples[i]); err != nil {
			return i, fmt.Errorf("insert sample question %d: %w", i+1, err)
		}
	}

	log.Info().Int("questions", len(samples)).Msg("Sample questions inserted")
	return len(samples), nil
}

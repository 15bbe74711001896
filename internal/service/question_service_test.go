package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/model"
	"github.com/stemsi/quiz-app/internal/repository"
	"github.com/stemsi/quiz-app/internal/testutil"
)

func TestQuestionServiceCreateShortAnswer(t *testing.T) {
	store := testutil.NewQuestionStore()
	svc := NewQuestionService(store, zerolog.Nop())

	q, err := svc.Create(context.Background(), &model.CreateQuestionRequest{
		Text:          "What is the capital of France?",
		Type:          "short_answer",
		Category:      "Geography",
		Difficulty:    "  ",
		CorrectAnswer: "Paris",
		Options:       []model.OptionInput{{Text: "ignored", IsCorrect: true}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CorrectAnswer == nil || *got.CorrectAnswer != "Paris" {
		t.Errorf("CorrectAnswer = %v, want Paris", got.CorrectAnswer)
	}
	if got.Difficulty != nil {
		t.Errorf("blank difficulty stored as %q, want NULL", *got.Difficulty)
	}
	if len(got.Options) != 0 {
		t.Errorf("short_answer kept %d options, want 0", len(got.Options))
	}
}

func TestQuestionServiceCreateShortAnswerWithoutKey(t *testing.T) {
	store := testutil.NewQuestionStore()
	svc := NewQuestionService(store, zerolog.Nop())

	q, err := svc.Create(context.Background(), &model.CreateQuestionRequest{
		Text:     "Name a colour",
		Type:     "short_answer",
		Category: "Misc",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.CorrectAnswer != nil {
		t.Errorf("CorrectAnswer = %q, want NULL", *q.CorrectAnswer)
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestQuestionServiceCreateChoice(t *testing.T) {
	store := testutil.NewQuestionStore()
	svc := NewQuestionService(store, zerolog.Nop())

	q, err := svc.Create(context.Background(), &model.CreateQuestionRequest{
		Text:          "Which are prime?",
		Type:          "multiple_choice",
		Category:      "Math",
		CorrectAnswer: "ignored",
		Options: []model.OptionInput{
			{Text: "2", IsCorrect: true},
			{Text: "", IsCorrect: true},
			{Text: "4"},
			{Text: "5", IsCorrect: true},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.CorrectAnswer != nil {
		t.Errorf("choice question kept correct_answer %q", *q.CorrectAnswer)
	}

	var texts []string
	for _, o := range q.Options {
		if o.QuestionID != q.ID || o.ID == 0 {
			t.Errorf("option %+v not linked to question %d", o, q.ID)
		}
		texts = append(texts, o.Text)
	}
	if want := []string{"2", "4", "5"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("options = %v, want %v", texts, want)
	}
	if n := len(q.CorrectOptions()); n != 2 {
		t.Errorf("correct options = %d, want 2", n)
	}
}

func TestQuestionServiceCreateAcceptsUnknownType(t *testing.T) {
	store := testutil.NewQuestionStore()
	svc := NewQuestionService(store, zerolog.Nop())

	q, err := svc.Create(context.Background(), &model.CreateQuestionRequest{
		Text: "True or false?", Type: "true_false", Category: "Misc",
		Options: []model.OptionInput{{Text: "true", IsCorrect: true}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(q.Options) != 0 {
		t.Errorf("unknown type kept %d options, want 0", len(q.Options))
	}
}

func TestQuestionServiceAddOption(t *testing.T) {
	store := testutil.NewQuestionStore(model.Question{
		Text: "Pick a prime", Type: model.QuestionTypeSingleChoice,
		Options: []model.Option{{Text: "4"}},
	})
	svc := NewQuestionService(store, zerolog.Nop())
	ctx := context.Background()

	o, err := svc.AddOption(ctx, 1, "  7 ", true)
	if err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	if o.ID == 0 || o.QuestionID != 1 || o.Text != "7" || !o.IsCorrect {
		t.Errorf("option = %+v", o)
	}

	q, err := store.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(q.Options) != 2 || q.Options[1].ID != o.ID {
		t.Errorf("options = %+v, want the new option appended", q.Options)
	}
	if n := len(q.CorrectOptions()); n != 1 {
		t.Errorf("correct options = %d, want 1", n)
	}

	if _, err := svc.AddOption(ctx, 99, "x", false); !errors.Is(err, repository.ErrQuestionNotFound) {
		t.Errorf("unknown question: err = %v, want ErrQuestionNotFound", err)
	}
	if _, err := svc.AddOption(ctx, 1, "   ", false); !errors.Is(err, ErrEmptyOption) {
		t.Errorf("blank text: err = %v, want ErrEmptyOption", err)
	}
}

func TestQuestionServiceListAndCategories(t *testing.T) {
	store := testutil.NewQuestionStore(SampleQuestions()...)
	svc := NewQuestionService(store, zerolog.Nop())
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("len(List) = %d, want 6", len(all))
	}

	math, err := svc.List(ctx, "Math")
	if err != nil {
		t.Fatalf("List(Math): %v", err)
	}
	if len(math) != 2 {
		t.Errorf("len(List(Math)) = %d, want 2", len(math))
	}

	none, err := svc.List(ctx, "Astrology")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("List(Astrology) = (%v, %v), want empty non-nil slice", none, err)
	}

	cats, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []string{"Geography", "Literature", "Math", "Science", "Technology"}
	if !reflect.DeepEqual(cats, want) {
		t.Errorf("Categories = %v, want %v", cats, want)
	}
}

func TestSeedSampleQuestionsOnlyWhenEmpty(t *testing.T) {
	store := testutil.NewQuestionStore()
	ctx := context.Background()

	n, err := SeedSampleQuestions(ctx, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("SeedSampleQuestions: %v", err)
	}
	if n != 6 {
		t.Errorf("inserted = %d, want 6", n)
	}

	n, err = SeedSampleQuestions(ctx, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("second SeedSampleQuestions: %v", err)
	}
	if n != 0 {
		t.Errorf("second run inserted %d, want 0", n)
	}
	if total, _ := store.Count(ctx); total != 6 {
		t.Errorf("Count = %d, want 6", total)
	}
}

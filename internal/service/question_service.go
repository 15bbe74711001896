package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/model"
)

// ErrEmptyOption is returned when an option is added without text.
var ErrEmptyOption = errors.New("option text is empty")

// QuestionService handles question bank business logic.
type QuestionService struct {
	questions QuestionStore
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// Create stores a question built from the admin form, together with its options.
// Options are kept only for choice types; correct_answer only for short_answer.
// Shape problems (unknown type, missing answer key) are logged, not rejected.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	category := req.Category
	q := &model.Question{
		Text:        req.Text,
		Type:        model.QuestionType(req.Type),
		Difficulty:  optional(req.Difficulty),
		Category:    &category,
		Explanation: optional(req.Explanation),
		Options:     []model.Option{},
	}

	if q.Type == model.QuestionTypeShortAnswer {
		q.CorrectAnswer = optional(req.CorrectAnswer)
	}
	if q.Type.IsChoice() {
		for _, in := range req.Options {
			if in.Text == "" {
				continue
			}
			q.Options = append(q.Options, model.Option{Text: in.Text, IsCorrect: in.IsCorrect})
		}
	}

	s.warnOnShape(q)

	if err := s.questions.Create(ctx, q); err != nil {
		s.log.Error().Err(err).Msg("failed to create question")
		return nil, err
	}
	return q, nil
}

// AddOption appends one option to an existing question.
func (s *QuestionService) AddOption(ctx context.Context, questionID int64, text string, isCorrect bool) (*model.Option, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyOption
	}

	o := &model.Option{QuestionID: questionID, Text: text, IsCorrect: isCorrect}
	if err := s.questions.AddOption(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns the whole bank, or only one category when category is non-empty.
func (s *QuestionService) List(ctx context.Context, category string) ([]model.Question, error) {
	var (
		questions []model.Question
		err       error
	)
	if category != "" {
		questions, err = s.questions.ListByCategory(ctx, category)
	} else {
		questions, err = s.questions.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Categories returns the sorted distinct categories of the bank.
func (s *QuestionService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.questions.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *QuestionService) warnOnShape(q *model.Question) {
	var msg string
	switch {
	case q.Type == model.QuestionTypeShortAnswer && q.CorrectAnswer == nil:
		msg = "short_answer question without correct answer can never be answered correctly"
	case q.Type == model.QuestionTypeSingleChoice && len(q.CorrectOptions()) != 1:
		msg = "single_choice question should have exactly one correct option"
	case q.Type.IsChoice() && len(q.Options) < 2:
		msg = "choice question has fewer than two options"
	case q.Type != model.QuestionTypeShortAnswer && !q.Type.IsChoice():
		msg = "unknown question type, answers will not be graded"
	default:
		return
	}

	s.log.Warn().
		Str("type", string(q.Type)).
		Str("text", q.Text).
		Int("options", len(q.Options)).
		Int("correct_options", len(q.CorrectOptions())).
		Msg(msg)
}

// optional maps blank form values to NULL.
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

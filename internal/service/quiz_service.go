package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/model"
	"github.com/stemsi/quiz-app/internal/repository"
)

// Quiz walk errors.
var (
	ErrNoActiveQuiz  = errors.New("no active quiz")
	ErrQuizExhausted = errors.New("all quiz questions answered")
	ErrNoAnswers     = errors.New("quiz finished without answers")
)

// CurrentQuestion is the question at the walk cursor.
type CurrentQuestion struct {
	Question *model.Question
	Position int // 1-based
	Total    int
}

// QuizService walks one quiz attempt per browser session.
type QuizService struct {
	questions QuestionStore
	sessions  QuizSessionStore
	log       zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(questions QuestionStore, sessions QuizSessionStore, log zerolog.Logger) *QuizService {
	return &QuizService{
		questions: questions,
		sessions:  sessions,
		log:       log.With().Str("component", "quiz_service").Logger(),
	}
}

// Start samples up to n questions and begins a new attempt, discarding any previous one.
func (s *QuizService) Start(ctx context.Context, sessionID string, n int) (*model.QuizSession, error) {
	if n < 0 {
		n = 0
	}

	ids, err := s.questions.SampleIDs(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}

	state := &model.QuizSession{
		QuestionIDs: ids,
		Answers:     []model.AnswerRecord{},
	}
	if err := s.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	s.log.Debug().Str("session_id", sessionID).Int("requested", n).Int("sampled", len(ids)).Msg("quiz started")
	return state, nil
}

// CurrentQuestion returns the question at the cursor, fetched fresh from the store.
func (s *QuizService) CurrentQuestion(ctx context.Context, sessionID string) (*CurrentQuestion, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Exhausted() {
		return nil, ErrQuizExhausted
	}

	q, err := s.questions.GetByID(ctx, state.QuestionIDs[state.CurrentIndex])
	if err != nil {
		return nil, err
	}

	return &CurrentQuestion{
		Question: q,
		Position: state.CurrentIndex + 1,
		Total:    len(state.QuestionIDs),
	}, nil
}

// SubmitAnswer grades sub against the question at the cursor, records the
// outcome and advances the cursor by one. An attempt finished concurrently
// stays finished.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, sub model.Submission) (bool, error) {
	var correct bool
	err := s.sessions.Update(ctx, sessionID, func(state *model.QuizSession) error {
		if state.Exhausted() {
			return ErrQuizExhausted
		}

		questionID := state.QuestionIDs[state.CurrentIndex]
		q, err := s.questions.GetByID(ctx, questionID)
		if err != nil {
			return err
		}

		correct, err = Grade(q, sub)
		if err != nil {
			if !errors.Is(err, ErrUngradable) {
				return err
			}
			s.log.Warn().Err(err).Int64("question_id", q.ID).Msg("ungradable question recorded as incorrect")
			correct = false
		}

		state.Answers = append(state.Answers, model.AnswerRecord{QuestionID: questionID, IsCorrect: correct})
		state.CurrentIndex++
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrQuizSessionNotFound) {
			return false, ErrNoActiveQuiz
		}
		return false, err
	}
	return correct, nil
}

// Finish scores the attempt and clears the session state.
// Incorrectly answered questions are resolved in answer order.
func (s *QuizService) Finish(ctx context.Context, sessionID string) (*model.QuizResult, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(state.Answers) == 0 {
		if _, err := s.sessions.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, ErrNoAnswers
	}

	result := &model.QuizResult{
		Total:     len(state.Answers),
		Incorrect: []model.Question{},
	}
	for _, a := range state.Answers {
		if a.IsCorrect {
			result.Score++
			continue
		}

		q, err := s.questions.GetByID(ctx, a.QuestionID)
		if err != nil {
			if errors.Is(err, repository.ErrQuestionNotFound) {
				s.log.Warn().Int64("question_id", a.QuestionID).Msg("answered question no longer exists")
				continue
			}
			return nil, err
		}
		result.Incorrect = append(result.Incorrect, *q)
	}

	// Another request may have finished the same attempt meanwhile; only one wins.
	existed, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !existed {
		return nil, ErrNoActiveQuiz
	}

	s.log.Debug().Str("session_id", sessionID).Int("score", result.Score).Int("total", result.Total).Msg("quiz finished")
	return result, nil
}

func (s *QuizService) load(ctx context.Context, sessionID string) (*model.QuizSession, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrQuizSessionNotFound) {
			return nil, ErrNoActiveQuiz
		}
		return nil, err
	}
	return state, nil
}

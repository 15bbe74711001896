package service

import (
	"context"

	"github.com/stemsi/quiz-app/internal/model"
)

// QuestionStore is the persistence contract of the question bank.
// repository.QuestionRepository is the PostgreSQL implementation.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	AddOption(ctx context.Context, o *model.Option) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	ListAll(ctx context.Context) ([]model.Question, error)
	ListByCategory(ctx context.Context, category string) ([]model.Question, error)
	ListCategories(ctx context.Context) ([]string, error)
	SampleIDs(ctx context.Context, n int) ([]int64, error)
	Count(ctx context.Context) (int, error)
}

// QuizSessionStore keeps per-browser quiz state.
// repository.QuizSessionRepository is the Redis implementation.
type QuizSessionStore interface {
	Get(ctx context.Context, sessionID string) (*model.QuizSession, error)
	Save(ctx context.Context, sessionID string, s *model.QuizSession) error
	// Update atomically modifies existing state; it never recreates deleted state.
	Update(ctx context.Context, sessionID string, fn func(*model.QuizSession) error) error
	Delete(ctx context.Context, sessionID string) (bool, error)
}

// AdminGrantStore records which browser sessions hold an admin login.
// repository.AdminGrantRepository is the Redis implementation.
type AdminGrantStore interface {
	Grant(ctx context.Context, sessionID string) error
	Revoke(ctx context.Context, sessionID string) error
	IsGranted(ctx context.Context, sessionID string) (bool, error)
}

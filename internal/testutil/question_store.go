// Package testutil holds in-memory stand-ins for the quiz stores.
package testutil

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quiz-app/internal/model"
	"github.com/stemsi/quiz-app/internal/repository"
)

// QuestionStore is an in-memory question bank with the same contract as
// repository.QuestionRepository.
type QuestionStore struct {
	mu        sync.Mutex
	questions []model.Question
	nextQID   int64
	nextOptID int64

	// Err, when set, is returned by every method.
	Err error

	// BeforeGet, when set, runs at the start of every GetByID call.
	// Tests use it to interleave a concurrent request.
	BeforeGet func(id int64)
}

// NewQuestionStore creates a store preloaded with qs.
func NewQuestionStore(qs ...model.Question) *QuestionStore {
	s := &QuestionStore{}
	for i := range qs {
		_ = s.Create(context.Background(), &qs[i])
	}
	return s
}

func (s *QuestionStore) Create(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	s.nextQID++
	q.ID = s.nextQID
	q.CreatedAt = time.Now()
	for i := range q.Options {
		s.nextOptID++
		q.Options[i].ID = s.nextOptID
		q.Options[i].QuestionID = q.ID
	}
	s.questions = append(s.questions, clone(*q))
	return nil
}

func (s *QuestionStore) AddOption(_ context.Context, o *model.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	for i := range s.questions {
		if s.questions[i].ID == o.QuestionID {
			s.nextOptID++
			o.ID = s.nextOptID
			s.questions[i].Options = append(s.questions[i].Options, *o)
			return nil
		}
	}
	return repository.ErrQuestionNotFound
}

func (s *QuestionStore) GetByID(_ context.Context, id int64) (*model.Question, error) {
	if s.BeforeGet != nil {
		s.BeforeGet(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, q := range s.questions {
		if q.ID == id {
			c := clone(q)
			return &c, nil
		}
	}
	return nil, repository.ErrQuestionNotFound
}

func (s *QuestionStore) ListAll(_ context.Context) ([]model.Question, error) {
	return s.filter(func(model.Question) bool { return true })
}

func (s *QuestionStore) ListByCategory(_ context.Context, category string) ([]model.Question, error) {
	return s.filter(func(q model.Question) bool {
		return q.Category != nil && *q.Category == category
	})
}

func (s *QuestionStore) ListCategories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	seen := map[string]struct{}{}
	var out []string
	for _, q := range s.questions {
		if q.Category == nil || *q.Category == "" {
			continue
		}
		if _, ok := seen[*q.Category]; ok {
			continue
		}
		seen[*q.Category] = struct{}{}
		out = append(out, *q.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (s *QuestionStore) SampleIDs(_ context.Context, n int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	ids := make([]int64, len(s.questions))
	for i, q := range s.questions {
		ids[i] = q.ID
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if n < len(ids) {
		ids = ids[:n]
	}
	return ids, nil
}

func (s *QuestionStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.questions), nil
}

// Ping fails with Err, like a lost database connection.
func (s *QuestionStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

// Remove drops a question, as an out-of-band admin edit would.
func (s *QuestionStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return
		}
	}
}

func (s *QuestionStore) filter(keep func(model.Question) bool) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := []model.Question{}
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, clone(q))
		}
	}
	return out, nil
}

func clone(q model.Question) model.Question {
	q.Options = append([]model.Option{}, q.Options...)
	return q
}

// ErrStoreDown is a convenience failure for outage tests.
var ErrStoreDown = errors.New("connection refused")

// NewRedis starts a miniredis server for the duration of the test.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quiz-app/internal/config"
	"github.com/stemsi/quiz-app/internal/model"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*QuizSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewQuizSessionRepository(rdb, ttl), mr
}

func TestQuizSessionRepositoryRoundTrip(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := context.Background()

	want := &model.QuizSession{
		QuestionIDs:  []int64{3, 1, 2},
		CurrentIndex: 1,
		Answers:      []model.AnswerRecord{{QuestionID: 3, IsCorrect: true}},
	}
	if err := repo.Save(ctx, "abc", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	key := config.CacheKey.QuizSessionKey("abc")
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("TTL = %s, want 1h", ttl)
	}

	got, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestQuizSessionRepositoryMissingAndDelete(t *testing.T) {
	repo, _ := newTestRepo(t, 0)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "nope"); !errors.Is(err, ErrQuizSessionNotFound) {
		t.Fatalf("Get on missing session: err = %v, want ErrQuizSessionNotFound", err)
	}

	if err := repo.Save(ctx, "s1", &model.QuizSession{QuestionIDs: []int64{1}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	existed, err := repo.Delete(ctx, "s1")
	if err != nil || !existed {
		t.Fatalf("first Delete = (%v, %v), want (true, nil)", existed, err)
	}
	existed, err = repo.Delete(ctx, "s1")
	if err != nil || existed {
		t.Fatalf("second Delete = (%v, %v), want (false, nil)", existed, err)
	}
}

func TestQuizSessionRepositoryUpdate(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := context.Background()

	if err := repo.Save(ctx, "sid", &model.QuizSession{QuestionIDs: []int64{4, 5}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	mr.FastForward(30 * time.Minute)

	err := repo.Update(ctx, "sid", func(s *model.QuizSession) error {
		s.Answers = append(s.Answers, model.AnswerRecord{QuestionID: 4, IsCorrect: true})
		s.CurrentIndex++
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, "sid")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CurrentIndex != 1 || len(got.Answers) != 1 {
		t.Errorf("state = %+v, want cursor 1 with one answer", got)
	}
	if ttl := mr.TTL(config.CacheKey.QuizSessionKey("sid")); ttl != time.Hour {
		t.Errorf("TTL = %s, want refreshed to 1h", ttl)
	}
}

func TestQuizSessionRepositoryUpdateMissing(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)

	called := false
	err := repo.Update(context.Background(), "nope", func(*model.QuizSession) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrQuizSessionNotFound) {
		t.Fatalf("err = %v, want ErrQuizSessionNotFound", err)
	}
	if called {
		t.Error("fn ran for a missing session")
	}
	if mr.Exists(config.CacheKey.QuizSessionKey("nope")) {
		t.Error("Update created state for a missing session")
	}
}

func TestQuizSessionRepositoryUpdateLosesToConcurrentDelete(t *testing.T) {
	repo, mr := newTestRepo(t, time.Hour)
	ctx := context.Background()

	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = other.Close() })
	otherRepo := NewQuizSessionRepository(other, time.Hour)

	if err := repo.Save(ctx, "sid", &model.QuizSession{QuestionIDs: []int64{1}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	calls := 0
	err := repo.Update(ctx, "sid", func(s *model.QuizSession) error {
		calls++
		if _, err := otherRepo.Delete(ctx, "sid"); err != nil {
			t.Fatalf("concurrent Delete: %v", err)
		}
		s.CurrentIndex++
		return nil
	})
	if !errors.Is(err, ErrQuizSessionNotFound) {
		t.Fatalf("err = %v, want ErrQuizSessionNotFound", err)
	}
	if calls != 1 {
		t.Errorf("fn ran %d times, want 1", calls)
	}
	if mr.Exists(config.CacheKey.QuizSessionKey("sid")) {
		t.Error("deleted state was written back")
	}
}

func TestQuizSessionRepositoryUpdateKeepsStateOnError(t *testing.T) {
	repo, _ := newTestRepo(t, time.Hour)
	ctx := context.Background()

	if err := repo.Save(ctx, "sid", &model.QuizSession{QuestionIDs: []int64{1}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	boom := errors.New("boom")
	err := repo.Update(ctx, "sid", func(s *model.QuizSession) error {
		s.CurrentIndex = 9
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	got, _ := repo.Get(ctx, "sid")
	if got.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", got.CurrentIndex)
	}
}

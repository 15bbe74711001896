package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quiz-app/internal/config"
	"github.com/stemsi/quiz-app/internal/model"
)

var (
	// ErrQuizSessionNotFound is returned when a browser session has no quiz state.
	ErrQuizSessionNotFound = errors.New("quiz session not found")
	// ErrQuizSessionConflict is returned when Update keeps losing to concurrent writers.
	ErrQuizSessionConflict = errors.New("quiz session modified concurrently")
)

// maxUpdateAttempts bounds the optimistic retries of Update.
const maxUpdateAttempts = 3

// QuizSessionRepository keeps quiz attempt state in Redis, keyed by session id.
type QuizSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuizSessionRepository creates a new QuizSessionRepository.
// A zero ttl stores state without expiry.
func NewQuizSessionRepository(rdb *redis.Client, ttl time.Duration) *QuizSessionRepository {
	return &QuizSessionRepository{rdb: rdb, ttl: ttl}
}

// Get loads the quiz state of a session.
func (r *QuizSessionRepository) Get(ctx context.Context, sessionID string) (*model.QuizSession, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.QuizSessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrQuizSessionNotFound
		}
		return nil, fmt.Errorf("get quiz session: %w", err)
	}

	return decodeQuizSession(raw)
}

// Update applies fn to the stored state and writes the result back, but only
// if nobody changed or deleted the key in between (WATCH/MULTI). A state that
// disappears meanwhile yields ErrQuizSessionNotFound and is not recreated.
// fn may run more than once.
func (r *QuizSessionRepository) Update(ctx context.Context, sessionID string, fn func(*model.QuizSession) error) error {
	key := config.CacheKey.QuizSessionKey(sessionID)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrQuizSessionNotFound
			}
			return fmt.Errorf("get quiz session: %w", err)
		}
		s, err := decodeQuizSession(raw)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}

		raw, err = json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode quiz session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, r.ttl)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := r.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return ErrQuizSessionConflict
}

// Save overwrites the quiz state of a session and refreshes its expiry.
func (r *QuizSessionRepository) Save(ctx context.Context, sessionID string, s *model.QuizSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode quiz session: %w", err)
	}
	if err := r.rdb.Set(ctx, config.CacheKey.QuizSessionKey(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save quiz session: %w", err)
	}
	return nil
}

// Delete removes the quiz state of a session. It reports whether state existed.
func (r *QuizSessionRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.rdb.Del(ctx, config.CacheKey.QuizSessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete quiz session: %w", err)
	}
	return n > 0, nil
}

func decodeQuizSession(raw []byte) (*model.QuizSession, error) {
	var s model.QuizSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode quiz session: %w", err)
	}
	return &s, nil
}

// Ping checks the Redis connection.
func (r *QuizSessionRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/quiz-app/internal/model"
)

// ErrQuestionNotFound is returned when no question has the requested id.
var ErrQuestionNotFound = errors.New("question not found")

// pgForeignKeyViolation is the SQLSTATE of an options row pointing at no question.
const pgForeignKeyViolation = "23503"

const questionColumns = `id, text, type, difficulty, category, explanation, correct_answer, created_at`

// rowQuerier is satisfied by both the pool and a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuestionRepository handles question and option data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create inserts a question and its options in one transaction.
// IDs are written back into q and q.Options.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (text, type, difficulty, category, explanation, correct_answer)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at`,
			q.Text, q.Type, q.Difficulty, q.Category, q.Explanation, q.CorrectAnswer,
		).Scan(&q.ID, &q.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert question: %w", err)
		}

		for i := range q.Options {
			q.Options[i].QuestionID = q.ID
			if err := insertOption(ctx, tx, &q.Options[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddOption appends a single option to an existing question.
// It returns ErrQuestionNotFound when o.QuestionID does not exist.
func (r *QuestionRepository) AddOption(ctx context.Context, o *model.Option) error {
	err := insertOption(ctx, r.pool, o)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrQuestionNotFound
	}
	return err
}

func insertOption(ctx context.Context, db rowQuerier, o *model.Option) error {
	err := db.QueryRow(ctx,
		`INSERT INTO options (question_id, text, is_correct) VALUES ($1, $2, $3) RETURNING id`,
		o.QuestionID, o.Text, o.IsCorrect,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert option: %w", err)
	}
	return nil
}

// GetByID retrieves a question with its options.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)

	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	questions := []model.Question{*q}
	if err := r.attachOptions(ctx, questions); err != nil {
		return nil, err
	}
	return &questions[0], nil
}

// ListAll retrieves every question, ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	return r.list(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

// ListByCategory retrieves the questions of one category, ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category string) ([]model.Question, error) {
	return r.list(ctx, `SELECT `+questionColumns+` FROM questions WHERE category = $1 ORDER BY id`, category)
}

// ListCategories returns the sorted distinct non-empty categories.
func (r *QuestionRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT category FROM questions
		 WHERE category IS NOT NULL AND category <> ''
		 ORDER BY category`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// SampleIDs returns up to n question ids in random order, without replacement.
func (r *QuestionRepository) SampleIDs(ctx context.Context, n int) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM questions ORDER BY random() LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// Count returns the number of stored questions.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

// Ping performs a trivial round-trip to the database.
func (r *QuestionRepository) Ping(ctx context.Context) error {
	var one int
	return r.pool.QueryRow(ctx, `SELECT 1`).Scan(&one)
}

func (r *QuestionRepository) list(ctx context.Context, query string, args ...any) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachOptions(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// attachOptions loads the options of all given questions with a single query.
func (r *QuestionRepository) attachOptions(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]int64, len(questions))
	index := make(map[int64]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		index[q.ID] = i
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, text, is_correct FROM options
		 WHERE question_id = ANY($1)
		 ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o model.Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect); err != nil {
			return err
		}
		i := index[o.QuestionID]
		questions[i].Options = append(questions[i].Options, o)
	}
	return rows.Err()
}

func scanQuestion(row pgx.Row) (*model.Question, error) {
	q := &model.Question{}
	err := row.Scan(&q.ID, &q.Text, &q.Type, &q.Difficulty, &q.Category, &q.Explanation, &q.CorrectAnswer, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

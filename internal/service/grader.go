package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stemsi/quiz-app/internal/model"
)

// ErrUngradable is returned for questions whose type has no grading rule.
var ErrUngradable = errors.New("question type cannot be graded")

// Grade decides whether a submission answers q correctly.
// It has no side effects; an unknown question type yields false and ErrUngradable.
func Grade(q *model.Question, sub model.Submission) (bool, error) {
	switch q.Type {
	case model.QuestionTypeShortAnswer:
		if q.CorrectAnswer == nil {
			return false, nil
		}
		return normalizeAnswer(sub.Text) == normalizeAnswer(*q.CorrectAnswer), nil

	case model.QuestionTypeSingleChoice:
		if len(sub.OptionIDs) != 1 {
			return false, nil
		}
		_, ok := correctOptionIDs(q)[sub.OptionIDs[0]]
		return ok, nil

	case model.QuestionTypeMultipleChoice:
		submitted := make(map[string]struct{}, len(sub.OptionIDs))
		for _, id := range sub.OptionIDs {
			submitted[id] = struct{}{}
		}
		correct := correctOptionIDs(q)
		if len(submitted) != len(correct) {
			return false, nil
		}
		for id := range submitted {
			if _, ok := correct[id]; !ok {
				return false, nil
			}
		}
		return true, nil

	default:
		return false, fmt.Errorf("%w: %q", ErrUngradable, q.Type)
	}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// correctOptionIDs returns the ids of the correct options in their form encoding.
func correctOptionIDs(q *model.Question) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, o := range q.Options {
		if o.IsCorrect {
			ids[strconv.FormatInt(o.ID, 10)] = struct{}{}
		}
	}
	return ids
}

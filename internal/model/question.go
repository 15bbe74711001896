package model

import "time"

// QuestionType decides which fields of a Question are meaningful and how it is graded.
type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// IsChoice reports whether answers are given by selecting options.
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultipleChoice
}

// Question is a gradable prompt in the question bank.
type Question struct {
	ID            int64        `json:"id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Difficulty    *string      `json:"difficulty,omitempty"`
	Category      *string      `json:"category,omitempty"`
	Explanation   *string      `json:"explanation,omitempty"`
	CorrectAnswer *string      `json:"correct_answer,omitempty"`
	Options       []Option     `json:"options"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Option is a selectable choice of a choice-type Question.
type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// CorrectOptions returns the options flagged as correct, in option order.
func (q *Question) CorrectOptions() []Option {
	var out []Option
	for _, o := range q.Options {
		if o.IsCorrect {
			out = append(out, o)
		}
	}
	return out
}

// CreateQuestionRequest is the admin form payload for a new question.
// Option rows (option_text_i / option_correct_i) are read separately.
type CreateQuestionRequest struct {
	Text          string        `form:"text" binding:"required"`
	Type          string        `form:"type" binding:"required"`
	Difficulty    string        `form:"difficulty"`
	Category      string        `form:"category" binding:"required"`
	Explanation   string        `form:"explanation"`
	CorrectAnswer string        `form:"correct_answer"`
	Options       []OptionInput `form:"-"`
}

// OptionInput is one filled-in option row of the admin form.
type OptionInput struct {
	Text      string
	IsCorrect bool
}

// MaxFormOptions is the number of option rows on the admin form.
const MaxFormOptions = 4

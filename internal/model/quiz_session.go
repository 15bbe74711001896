package model

// QuizSession is the server-side state of one in-progress quiz attempt.
type QuizSession struct {
	QuestionIDs  []int64        `json:"question_ids"`
	CurrentIndex int            `json:"current_index"`
	Answers      []AnswerRecord `json:"answers"`
}

// AnswerRecord is the graded outcome of one answered question.
type AnswerRecord struct {
	QuestionID int64 `json:"question_id"`
	IsCorrect  bool  `json:"is_correct"`
}

// Exhausted reports whether every sampled question has been answered.
func (s *QuizSession) Exhausted() bool {
	return s.CurrentIndex >= len(s.QuestionIDs)
}

// Submission is a raw answer as posted by the question form.
type Submission struct {
	// Text is the free-text answer of a short_answer question.
	Text string
	// OptionIDs are the selected option identifiers, as posted.
	OptionIDs []string
}

// QuizResult summarizes a finished attempt.
type QuizResult struct {
	Score     int
	Total     int
	Incorrect []Question
}

// StartQuizRequest is the landing page form.
type StartQuizRequest struct {
	NumQuestions string `form:"num_questions"`
}

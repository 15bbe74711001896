package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/middleware"
	"github.com/stemsi/quiz-app/internal/model"
	"github.com/stemsi/quiz-app/internal/repository"
	"github.com/stemsi/quiz-app/internal/response"
	"github.com/stemsi/quiz-app/internal/service"
	"github.com/stemsi/quiz-app/internal/web"
)

// QuizHandler serves the quiz-taking pages.
type QuizHandler struct {
	quizService     *service.QuizService
	defaultQuizSize int
	log             zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, defaultQuizSize int, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService:     quizService,
		defaultQuizSize: defaultQuizSize,
		log:             log.With().Str("component", "quiz_handler").Logger(),
	}
}

// Home godoc
// GET /
// Renders the landing page with the quiz size selection.
func (h *QuizHandler) Home(c *gin.Context) {
	response.HTML(c, http.StatusOK, web.PageHome, gin.H{
		"DefaultQuizSize": h.defaultQuizSize,
	})
}

// StartQuiz godoc
// POST /start_quiz
// Samples a new set of questions for the session and sends the user to the first one.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req model.StartQuizRequest
	_ = c.ShouldBind(&req)

	n := h.quizSize(req.NumQuestions)
	if _, err := h.quizService.Start(c.Request.Context(), middleware.GetSession(c).ID, n); err != nil {
		h.fail(c, err, "failed to start quiz")
		return
	}

	response.Redirect(c, "/question")
}

// ShowQuestion godoc
// GET /question
// Renders the question at the session's cursor.
func (h *QuizHandler) ShowQuestion(c *gin.Context) {
	cur, err := h.quizService.CurrentQuestion(c.Request.Context(), middleware.GetSession(c).ID)
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}

	response.HTML(c, http.StatusOK, web.PageQuestion, gin.H{
		"Title":    "Question " + strconv.Itoa(cur.Position),
		"Question": cur.Question,
		"Position": cur.Position,
		"Total":    cur.Total,
	})
}

// SubmitQuestion godoc
// POST /question
// Grades the posted answer, advances the cursor and redirects back to /question.
func (h *QuizHandler) SubmitQuestion(c *gin.Context) {
	sub := model.Submission{
		Text:      c.PostForm("answer"),
		OptionIDs: c.PostFormArray("options"),
	}

	if _, err := h.quizService.SubmitAnswer(c.Request.Context(), middleware.GetSession(c).ID, sub); err != nil {
		h.redirectOrFail(c, err)
		return
	}

	response.Redirect(c, "/question")
}

// Results godoc
// GET /results
// Scores the attempt, clears it, and renders the outcome with the missed questions.
func (h *QuizHandler) Results(c *gin.Context) {
	result, err := h.quizService.Finish(c.Request.Context(), middleware.GetSession(c).ID)
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}

	response.HTML(c, http.StatusOK, web.PageResults, gin.H{
		"Title":     "Results",
		"Score":     result.Score,
		"Total":     result.Total,
		"Incorrect": result.Incorrect,
	})
}

// redirectOrFail maps walk errors to the page the user should land on.
func (h *QuizHandler) redirectOrFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuizExhausted):
		response.Redirect(c, "/results")
	case errors.Is(err, service.ErrNoActiveQuiz),
		errors.Is(err, service.ErrNoAnswers),
		errors.Is(err, repository.ErrQuestionNotFound):
		response.Redirect(c, "/")
	case errors.Is(err, repository.ErrQuizSessionConflict):
		// another tab won; show wherever the attempt is now
		response.Redirect(c, "/question")
	default:
		h.fail(c, err, "quiz request failed")
	}
}

func (h *QuizHandler) fail(c *gin.Context, err error, msg string) {
	h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg(msg)
	response.AbortHTMLError(c, http.StatusInternalServerError, response.ErrInternal)
}

// quizSize parses num_questions, falling back to the default for blank,
// non-numeric or non-positive input.
func (h *QuizHandler) quizSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return h.defaultQuizSize
	}
	return n
}

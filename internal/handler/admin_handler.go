package handler

import (
	"errors"
	"fmt"
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
	"github.com/stemsi/quiz-app/internal/validator"
	"github.com/stemsi/quiz-app/internal/web"
)

// questionTypes are offered by the add-question form.
var questionTypes = []model.QuestionType{
	model.QuestionTypeSingleChoice,
	model.QuestionTypeMultipleChoice,
	model.QuestionTypeShortAnswer,
}

// AdminHandler serves the admin login and question bank pages.
type AdminHandler struct {
	authService     *service.AuthService
	questionService *service.QuestionService
	cookieSecure    bool
	log             zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	authService *service.AuthService,
	questionService *service.QuestionService,
	cookieSecure bool,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		authService:     authService,
		questionService: questionService,
		cookieSecure:    cookieSecure,
		log:             log.With().Str("component", "admin_handler").Logger(),
	}
}

// LoginForm godoc
// GET /admin/login
// Renders the login form, with the reason when the admin gate sent the user here.
func (h *AdminHandler) LoginForm(c *gin.Context) {
	var msg string
	if code := response.CodeFromString(c.Query("error")); code != "" {
		msg = response.GetMessage(code)
	}
	h.renderLogin(c, http.StatusOK, "", msg)
}

// Login godoc
// POST /admin/login
// Checks the credential pair and marks the session as admin on success.
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	_ = c.ShouldBind(&req)

	if err := h.authService.CheckAdminCredentials(req.Username, req.Password); err != nil {
		h.log.Warn().Str("username", req.Username).Str("ip", c.ClientIP()).Msg("admin login failed")
		h.renderLogin(c, http.StatusUnauthorized, req.Username, response.GetMessage(response.ErrInvalidCredentials))
		return
	}

	sess := middleware.GetSession(c)
	if err := h.authService.GrantAdmin(c.Request.Context(), sess.ID); err != nil {
		h.fail(c, err, "failed to grant admin")
		return
	}
	sess.Admin = true
	if err := middleware.SaveSession(c, h.authService, h.cookieSecure); err != nil {
		h.fail(c, err, "failed to save admin session")
		return
	}

	h.log.Info().Str("ip", c.ClientIP()).Msg("admin logged in")
	response.Redirect(c, "/admin")
}

// LoginRateLimited renders the login form for clients over the attempt limit.
func (h *AdminHandler) LoginRateLimited(c *gin.Context) {
	h.log.Warn().Str("ip", c.ClientIP()).Msg("admin login rate limit exceeded")
	h.renderLogin(c, http.StatusTooManyRequests, c.PostForm("username"), response.GetMessage(response.ErrRateLimitExceeded))
}

// Logout godoc
// GET /admin/logout
// Revokes the admin login and clears the admin flag. Quiz progress of the
// session is kept.
func (h *AdminHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.authService.RevokeAdmin(c.Request.Context(), sess.ID); err != nil {
		h.fail(c, err, "failed to revoke admin")
		return
	}
	if sess.Admin {
		sess.Admin = false
		if err := middleware.SaveSession(c, h.authService, h.cookieSecure); err != nil {
			h.fail(c, err, "failed to save session")
			return
		}
	}
	response.Redirect(c, "/")
}

// Dashboard godoc
// GET /admin?category=
// Lists the question bank, optionally filtered by category.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	questions, err := h.questionService.List(ctx, category)
	if err != nil {
		h.fail(c, err, "failed to list questions")
		return
	}
	categories, err := h.questionService.Categories(ctx)
	if err != nil {
		h.fail(c, err, "failed to list categories")
		return
	}

	response.HTML(c, http.StatusOK, web.PageAdminDashboard, gin.H{
		"Title":      "Admin",
		"Questions":  questions,
		"Categories": categories,
		"Category":   category,
	})
}

// AddForm godoc
// GET /admin/add
// Renders an empty add-question form.
func (h *AdminHandler) AddForm(c *gin.Context) {
	h.renderAdd(c, http.StatusOK, &model.CreateQuestionRequest{}, "", nil)
}

// Add godoc
// POST /admin/add
// Creates a question with up to four options. text, type and category are required.
func (h *AdminHandler) Add(c *gin.Context) {
	var req model.CreateQuestionRequest
	fields := validator.BindForm(c, &req)
	req.Options = readOptionRows(c)

	if fields != nil {
		h.renderAdd(c, http.StatusBadRequest, &req, response.GetMessage(response.ErrValidation), fields)
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, "failed to create question")
		return
	}

	h.log.Info().Int64("question_id", q.ID).Str("type", string(q.Type)).Msg("question created")
	response.Redirect(c, "/admin")
}

// AddOption godoc
// POST /admin/questions/:id/options
// Appends one option (option_text, option_correct) to an existing question.
func (h *AdminHandler) AddOption(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.AbortHTMLError(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	o, err := h.questionService.AddOption(c.Request.Context(), id, c.PostForm("option_text"), c.PostForm("option_correct") != "")
	switch {
	case errors.Is(err, service.ErrEmptyOption):
		response.AbortHTMLError(c, http.StatusBadRequest, response.ErrValidation)
		return
	case errors.Is(err, repository.ErrQuestionNotFound):
		response.AbortHTMLError(c, http.StatusNotFound, response.ErrNotFound)
		return
	case err != nil:
		h.fail(c, err, "failed to add option")
		return
	}

	h.log.Info().Int64("question_id", id).Int64("option_id", o.ID).Msg("option added")
	response.Redirect(c, "/admin")
}

func (h *AdminHandler) renderLogin(c *gin.Context, status int, username, errMsg string) {
	response.HTML(c, status, web.PageAdminLogin, gin.H{
		"Title":    "Admin login",
		"Username": username,
		"Error":    errMsg,
	})
}

func (h *AdminHandler) renderAdd(c *gin.Context, status int, req *model.CreateQuestionRequest, errMsg string, fields map[string]string) {
	rows := make([]web.OptionRow, model.MaxFormOptions)
	for i := range rows {
		rows[i].Index = i + 1
	}
	// Filled rows come back in order, so re-show them at the top.
	for i, in := range req.Options {
		rows[i].Text = in.Text
		rows[i].IsCorrect = in.IsCorrect
	}

	response.HTML(c, status, web.PageAdminAdd, gin.H{
		"Title":      "Add question",
		"Form":       req,
		"Types":      questionTypes,
		"OptionRows": rows,
		"Error":      errMsg,
		"Fields":     fields,
	})
}

func (h *AdminHandler) fail(c *gin.Context, err error, msg string) {
	h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg(msg)
	response.AbortHTMLError(c, http.StatusInternalServerError, response.ErrInternal)
}

// readOptionRows collects the non-empty option_text_i / option_correct_i pairs.
// Any non-empty option_correct_i value marks the option correct.
func readOptionRows(c *gin.Context) []model.OptionInput {
	var opts []model.OptionInput
	for i := 1; i <= model.MaxFormOptions; i++ {
		text := strings.TrimSpace(c.PostForm(fmt.Sprintf("option_text_%d", i)))
		if text == "" {
			continue
		}
		opts = append(opts, model.OptionInput{
			Text:      text,
			IsCorrect: c.PostForm(fmt.Sprintf("option_correct_%d", i)) != "",
		})
	}
	return opts
}

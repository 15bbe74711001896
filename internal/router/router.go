package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/config"
	"github.com/stemsi/quiz-app/internal/handler"
	"github.com/stemsi/quiz-app/internal/middleware"
	"github.com/stemsi/quiz-app/internal/response"
	"github.com/stemsi/quiz-app/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz   *handler.QuizHandler
	Admin  *handler.AdminHandler
	Health *handler.HealthHandler
}

// SetupRouter configures all Gin routes with their middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	pages *template.Template,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.SetHTMLTemplate(pages)

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.HTMLError(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Health check. No session is created for monitoring requests.
	router.GET("/health", handlers.Health.Health)

	pagesGroup := router.Group("/")
	pagesGroup.Use(
		middleware.LoadSession(authService, cfg.CookieSecure, log),
		middleware.NoStore(),
	)

	// ─── 1. Quiz ───────────────────────────────────────────────────────
	{
		pagesGroup.GET("/", handlers.Quiz.Home)
		pagesGroup.POST("/start_quiz", handlers.Quiz.StartQuiz)
		pagesGroup.GET("/question", handlers.Quiz.ShowQuestion)
		pagesGroup.POST("/question", handlers.Quiz.SubmitQuestion)
		pagesGroup.GET("/results", handlers.Quiz.Results)
	}

	// ─── 2. Admin login (public, optionally rate limited) ──────────────
	loginHandlers := []gin.HandlerFunc{handlers.Admin.Login}
	if cfg.LoginRateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
		loginHandlers = append([]gin.HandlerFunc{limiter.Middleware(handlers.Admin.LoginRateLimited)}, loginHandlers...)
	}
	{
		pagesGroup.GET(middleware.AdminLoginPath, handlers.Admin.LoginForm)
		pagesGroup.POST(middleware.AdminLoginPath, loginHandlers...)
		pagesGroup.GET("/admin/logout", handlers.Admin.Logout)
	}

	// ─── 3. Admin (admin flag + grant) ─────────────────────────────────
	adminGroup := pagesGroup.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(authService, log))
	{
		adminGroup.GET("", handlers.Admin.Dashboard)
		adminGroup.GET("/add", handlers.Admin.AddForm)
		adminGroup.POST("/add", handlers.Admin.Add)
		adminGroup.POST("/questions/:id/options", handlers.Admin.AddOption)
	}

	return router
}

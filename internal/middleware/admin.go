package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/response"
	"github.com/stemsi/quiz-app/internal/service"
)

// AdminLoginPath is where unauthenticated admin requests are sent.
const AdminLoginPath = "/admin/login"

// Authorization is the outcome of the admin gate.
type Authorization struct {
	Authorized bool
	// RedirectTo is set when the request is not authorized.
	RedirectTo string
}

// AuthorizeAdmin decides from the cookie alone whether sess may use the admin
// area. RequireAdmin additionally checks the server-side grant.
func AuthorizeAdmin(sess *Session) Authorization {
	if sess != nil && sess.Admin {
		return Authorization{Authorized: true}
	}
	q := url.Values{"error": {string(response.ErrLoginRequired)}}
	return Authorization{RedirectTo: AdminLoginPath + "?" + q.Encode()}
}

// RequireAdmin guards admin-only routes. Requests without the admin flag, or
// whose admin login was revoked, are redirected to the login page instead of
// being rejected.
func RequireAdmin(authService *service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "admin_gate").Logger()

	return func(c *gin.Context) {
		sess := GetSession(c)
		auth := AuthorizeAdmin(sess)
		if !auth.Authorized {
			response.Redirect(c, auth.RedirectTo)
			return
		}

		granted, err := authService.IsAdmin(c.Request.Context(), sess.ID)
		if err != nil {
			log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("failed to check admin grant")
			response.AbortHTMLError(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		if !granted {
			log.Warn().Str("session_id", sess.ID).Msg("admin cookie without grant")
			response.Redirect(c, AuthorizeAdmin(nil).RedirectTo)
			return
		}
		c.Next()
	}
}

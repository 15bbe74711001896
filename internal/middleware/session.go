package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/service"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "quiz_session"
	// ContextKeySession is the Gin context key for the request's *Session.
	ContextKeySession = "session"
)

// Session is the per-request view of the browser session.
// Quiz progress is not kept here; it lives in the session store under ID.
type Session struct {
	ID    string
	Admin bool
}

// LoadSession reads the session cookie, or starts a new session when the
// cookie is missing, expired or forged.
func LoadSession(authService *service.AuthService, secure bool, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "session").Logger()

	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
			claims, err := authService.ParseSessionToken(token)
			if err == nil {
				c.Set(ContextKeySession, &Session{ID: claims.ID, Admin: claims.Admin})
				c.Next()
				return
			}
			log.Debug().Err(err).Msg("discarding invalid session cookie")
		}

		sess := &Session{ID: uuid.NewString()}
		c.Set(ContextKeySession, sess)
		if err := writeSessionCookie(c, authService, sess, secure); err != nil {
			log.Error().Err(err).Msg("failed to issue session cookie")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Next()
	}
}

// GetSession retrieves the session loaded by LoadSession.
func GetSession(c *gin.Context) *Session {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil
	}
	sess, ok := val.(*Session)
	if !ok {
		return nil
	}
	return sess
}

// SaveSession re-signs the session cookie after a change to the session.
// It must run before the response body is written.
func SaveSession(c *gin.Context, authService *service.AuthService, secure bool) error {
	sess := GetSession(c)
	if sess == nil {
		return nil
	}
	return writeSessionCookie(c, authService, sess, secure)
}

func writeSessionCookie(c *gin.Context, authService *service.AuthService, sess *Session, secure bool) error {
	token, err := authService.IssueSessionToken(sess.ID, sess.Admin)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(authService.SessionTTL().Seconds()), "/", "", secure, true)
	return nil
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quiz-app/internal/web"
)

// HTML renders a page template. Every page receives the request ID.
func HTML(c *gin.Context, statusCode int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["RequestID"] = RequestID(c)
	c.HTML(statusCode, name, data)
}

// HTMLError renders the generic error page for code.
func HTMLError(c *gin.Context, statusCode int, code ErrCode) {
	HTML(c, statusCode, web.PageError, gin.H{
		"Status":  statusCode,
		"Code":    code,
		"Message": GetMessage(code),
	})
}

// AbortHTMLError aborts the middleware chain and renders the error page.
func AbortHTMLError(c *gin.Context, statusCode int, code ErrCode) {
	HTMLError(c, statusCode, code)
	c.Abort()
}

// Redirect sends a 302 to location and stops the chain.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

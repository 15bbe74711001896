// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageHome           = "home.html"
	PageQuestion       = "question.html"
	PageResults        = "results.html"
	PageAdminLogin     = "admin_login.html"
	PageAdminDashboard = "admin_dashboard.html"
	PageAdminAdd       = "admin_add_question.html"
	PageError          = "error.html"
)

// OptionRow is one option input row of the add-question form.
type OptionRow struct {
	Index     int
	Text      string
	IsCorrect bool
}

var funcs = template.FuncMap{
	"title": func(s string) string {
		return strings.ReplaceAll(s, "_", " ")
	},
	"percent": func(score, total int) int {
		if total == 0 {
			return 0
		}
		return score * 100 / total
	},
}

// Templates parses every page together with the shared layout.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stemsi/quiz-app/internal/model"
)

func TestTemplatesRender(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}

	geo := "Geography"
	paris := "Paris"
	q := model.Question{ID: 7, Text: "What is the capital of France?", Type: model.QuestionTypeShortAnswer, Category: &geo, CorrectAnswer: &paris}

	pages := map[string]map[string]any{
		PageHome:       {"DefaultQuizSize": 10},
		PageQuestion:   {"Question": &q, "Position": 1, "Total": 1},
		PageResults:    {"Score": 0, "Total": 1, "Incorrect": []model.Question{q}},
		PageAdminLogin: {"Error": "Invalid credentials.", "Username": "admin"},
		PageAdminDashboard: {
			"Questions":  []model.Question{q},
			"Categories": []string{"Geography"},
			"Category":   "Geography",
		},
		PageAdminAdd: {
			"Form":       model.CreateQuestionRequest{},
			"Types":      []model.QuestionType{model.QuestionTypeShortAnswer},
			"OptionRows": []OptionRow{{Index: 1, Text: "Paris", IsCorrect: true}},
		},
		PageError: {"Status": 500, "Message": "boom"},
	}

	for name, data := range pages {
		t.Run(name, func(t *testing.T) {
			data["RequestID"] = "req-1"
			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
				t.Fatalf("ExecuteTemplate: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, "req-1") {
				t.Error("request id missing from footer")
			}
			if strings.Contains(out, "<nil>") {
				t.Error("rendered a nil pointer")
			}
		})
	}
}

func TestAddQuestionFormExplainsBlankAnswerKey(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, PageAdminAdd, map[string]any{
		"Form":       model.CreateQuestionRequest{},
		"Types":      []model.QuestionType{model.QuestionTypeShortAnswer},
		"OptionRows": []OptionRow{{Index: 1}},
	})
	if err != nil {
		t.Fatalf("ExecuteTemplate: %v", err)
	}
	if !strings.Contains(buf.String(), "even an empty one, is marked incorrect") {
		t.Error("add form does not explain what a blank correct answer means")
	}
}

package mailer

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestRender_AllStages(t *testing.T) {
	data := TemplateData{
		FirstName: "Jordan",
		Title:     "Local Hero Saves Day",
		Link:      "https://example.com/preview/local-hero-saves-day-7",
	}

	for stage := range stageTemplates {
		t.Run(stage, func(t *testing.T) {
			subject, html, err := Render(stage, data)
			assert.Equal(t, nil, err)
			assert.NotEqual(t, "", subject)
			assert.Equal(t, true, strings.Contains(html, "<html>"))
		})
	}
}

func TestRender_ReviewContainsLink(t *testing.T) {
	data := TemplateData{
		Title: "Local Hero Saves Day",
		Link:  "https://example.com/preview/local-hero-saves-day-7",
	}

	_, html, err := Render("review", data)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(html, data.Link))
	assert.Equal(t, true, strings.Contains(html, "Local Hero Saves Day"))
}

func TestRender_EscapesUserContent(t *testing.T) {
	data := TemplateData{
		Title: `<script>alert("x")</script>`,
	}

	_, html, err := Render("editorial", data)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, strings.Contains(html, "<script>"))
}

func TestRender_UnknownStage(t *testing.T) {
	_, _, err := Render("weekly_digest", TemplateData{})
	assert.NotEqual(t, nil, err)
}

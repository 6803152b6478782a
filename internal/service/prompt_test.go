package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vzahanych/activity-recommender/internal/model"
)

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt("Reykjavík", model.WeatherRecord{Temperature: -2, Conditions: "Snow", Humidity: 93, WindSpeed: 24})

	assert.True(t, strings.HasPrefix(prompt, "City: Reykjavík\n"))
	assert.Contains(t, prompt, "- Temperature: -2°F\n")
	assert.Contains(t, prompt, "- Conditions: Snow\n")
	assert.Contains(t, prompt, "- Humidity: 93%\n")
	assert.Contains(t, prompt, "- Wind Speed: 24 mph\n")
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt()

	for _, want := range []string{"name", "description", "category", "'Food & Drink'", "up to 3", `"activities"`} {
		assert.Contains(t, prompt, want)
	}
}

func TestParseActivities(t *testing.T) {
	three := `{"name":"A","description":"a","category":"Sports"},{"name":"B","description":"b","category":"Cultural"},{"name":"C","description":"c","category":"Entertainment"}`

	tests := []struct {
		name    string
		content string
		wantLen int
		wantErr string
	}{
		{name: "plain", content: `{"activities":[` + three + `]}`, wantLen: 3},
		{name: "empty list", content: `{"activities":[]}`, wantLen: 0},
		{name: "fenced", content: "```json\n{\"activities\":[" + three + "]}\n```", wantLen: 3},
		{name: "bare fence", content: "```\n{\"activities\":[]}\n```", wantLen: 0},
		{name: "extra keys echoed", content: `{"city":"Seattle","weather":{"temperature":55},"activities":[` + three + `]}`, wantLen: 3},
		{name: "truncated to three", content: `{"activities":[` + three + `,{"name":"D","description":"d","category":"Sports"}]}`, wantLen: 3},
		{name: "blank", content: "   ", wantErr: "empty"},
		{name: "prose", content: "here you go", wantErr: "not valid JSON"},
		{name: "missing activities", content: `{"suggestions":[]}`, wantErr: `"activities"`},
		{name: "null activities", content: `{"activities":null}`, wantErr: `"activities"`},
		{name: "wrong type", content: `{"activities":[{"name":1,"description":"d","category":"c"}]}`, wantErr: "not valid JSON"},
		{name: "blank field", content: `{"activities":[{"name":"A","description":" ","category":"c"}]}`, wantErr: "activity 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseActivities(tt.content)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			for _, a := range got {
				assert.NotEmpty(t, a.Name)
				assert.NotEmpty(t, a.Description)
				assert.NotEmpty(t, a.Category)
			}
		})
	}
}

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vzahanych/activity-recommender/internal/model"
)

const activitySchema = `{
  "type": "object",
  "properties": {
    "activities": {
      "type": "array",
      "maxItems": 3,
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "description": "Name of the activity"},
          "description": {"type": "string", "description": "Brief description of the activity"},
          "category": {"type": "string", "description": "Category of the activity (e.g., 'Sports', 'Cultural')"}
        },
        "required": ["name", "description", "category"]
      }
    }
  },
  "required": ["activities"]
}`

const systemPrompt = `You are an expert travel and activities consultant. Your task is to suggest suitable activities
based on the current weather conditions in a city. Focus on activities that make sense given
the current weather.

For each activity, include the following information:
- name: A short, descriptive name for the activity
- description: A brief description of what the activity involves
- category: The category the activity belongs to (e.g., 'Food & Drink', 'Cultural', 'Sports', 'Entertainment')

Return up to 3 activities in the specified JSON format.

The output should be a single JSON object (no markdown, no code fences, no extra text) that conforms to this JSON schema:
` + activitySchema

func buildSystemPrompt() string {
	return systemPrompt
}

func buildUserPrompt(city string, w model.WeatherRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "City: %s\n\n", city)
	b.WriteString("Weather:\n")
	fmt.Fprintf(&b, "- Temperature: %s°F\n", formatNumber(w.Temperature))
	fmt.Fprintf(&b, "- Conditions: %s\n", w.Conditions)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", w.Humidity)
	fmt.Fprintf(&b, "- Wind Speed: %s mph\n", formatNumber(w.WindSpeed))
	b.WriteString("\nPlease suggest activities appropriate for these conditions.")
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type activityEnvelope struct {
	Activities *[]model.Activity `json:"activities"`
}

// parseActivities decodes model output into at most model.MaxActivities
// suggestions. A single malformed activity fails the whole parse.
func parseActivities(content string) ([]model.Activity, error) {
	raw := stripCodeFence(content)
	if raw == "" {
		return nil, errors.New("empty model output")
	}

	var env activityEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("output is not valid JSON: %w", err)
	}

	if env.Activities == nil {
		return nil, errors.New(`output has no "activities" array`)
	}

	activities := *env.Activities
	for i, a := range activities {
		if err := model.Validate(a); err != nil {
			return nil, fmt.Errorf("activity %d does not match schema: %w", i, err)
		}
	}

	if len(activities) > model.MaxActivities {
		activities = activities[:model.MaxActivities]
	}

	out := make([]model.Activity, len(activities))
	copy(out, activities)
	return out, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

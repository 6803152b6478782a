package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vzahanych/activity-recommender/internal/model"
)

var sample = &model.ActivityResponse{
	City:    "Seattle",
	Weather: model.WeatherRecord{Temperature: 55, Conditions: "Rain", Humidity: 80, WindSpeed: 10},
	Activities: []model.Activity{
		{Name: "Seattle Art Museum", Description: "Browse the galleries", Category: "Cultural"},
		{Name: "Pike Place Chowder", Description: "Warm up with chowder", Category: "Food & Drink"},
	},
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, sample))

	out := buf.String()
	assert.Contains(t, out, "Seattle: 55°F, Rain, humidity 80%, wind 10 mph")
	assert.Contains(t, out, "1. Seattle Art Museum [Cultural]")
	assert.Contains(t, out, "2. Pike Place Chowder [Food & Drink]")
}

func TestWriteText_NoActivities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, &model.ActivityResponse{City: "Oslo", Activities: []model.Activity{}}))

	assert.Contains(t, buf.String(), "No activities suggested.")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sample))

	var got model.ActivityResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sample, got)
}

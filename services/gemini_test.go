package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramishrazaza/IndiaTravel/logger"
)

// geminiEnvelope wraps a model text blob in the generateContent response shape.
func geminiEnvelope(t *testing.T, text string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	require.NoError(t, err)
	return string(body)
}

func validPlanJSON() string {
	return `{
		"destination": "Goa",
		"days": 2,
		"month": "December",
		"budgetEstimate": "₹20,000 - ₹35,000",
		"hotelType": "Beach Resorts",
		"itinerary": {
			"Day 1": {"summary": "Beaches and shacks", "activity": "North Goa beaches", "hotel": "Beach resort", "meals": "Breakfast, Lunch, Dinner"},
			"Day 2": {"activity": "Old Goa churches"}
		},
		"highlights": ["Beach hopping", "Portuguese heritage"],
		"tips": ["Rent a scooter"]
	}`
}

func newTestClient(t *testing.T, serverURL, apiKey string) *GeminiClient {
	return NewGeminiClient(GeminiConfig{
		APIKey:  apiKey,
		BaseURL: serverURL,
		Timeout: 2 * time.Second,
	}, logger.NewTest(t))
}

func TestGeminiClient_NotConfigured(t *testing.T) {
	client := NewGeminiClient(GeminiConfig{}, nil)
	assert.False(t, client.IsConfigured())

	_, _, err := client.GeneratePlan(context.Background(), testRequest("Goa", 2))
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeminiClient_ValidResponse(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		prompt := req.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, "Goa")
		assert.Contains(t, prompt, "2-day")
		assert.Contains(t, prompt, "HARD LIMIT")

		w.Write([]byte(geminiEnvelope(t, validPlanJSON())))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "test-key")
	plan, raw, err := client.GeneratePlan(context.Background(), testRequest("Goa", 2))
	require.NoError(t, err)
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.NotEmpty(t, raw)

	assert.Equal(t, "Goa", plan.Destination)
	assert.Equal(t, 2, plan.Days)
	assert.Equal(t, "₹20,000 - ₹35,000", plan.BudgetEstimate)
	assert.Equal(t, []string{"Beach hopping", "Portuguese heritage"}, plan.Highlights)
	assert.Contains(t, plan.WhatsAppLink, "Goa")
	assert.Empty(t, plan.Source, "provenance is the orchestrator's job")

	// Defensive defaults fill the second day's omitted fields.
	day2 := plan.Itinerary["Day 2"]
	assert.Equal(t, "Old Goa churches", day2.Activity)
	assert.Equal(t, "Hotel to be finalized", day2.Hotel)
	assert.Equal(t, "Meals included", day2.Meals)
}

func TestGeminiClient_FencedJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "json fence", text: "```json\n" + validPlanJSON() + "\n```"},
		{name: "bare fence", text: "```\n" + validPlanJSON() + "\n```"},
		{name: "no fence", text: validPlanJSON()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiEnvelope(t, tt.text)))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, "test-key")
			plan, _, err := client.GeneratePlan(context.Background(), testRequest("Goa", 2))
			require.NoError(t, err)
			assert.Equal(t, "Goa", plan.Destination)
		})
	}
}

func TestGeminiClient_FailureModes(t *testing.T) {
	missingHighlights := `{
		"destination": "Goa", "days": 2, "month": "December",
		"budgetEstimate": "x", "hotelType": "y",
		"itinerary": {"Day 1": {"activity": "a"}}
	}`

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			},
		},
		{
			name: "empty candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates": []}`))
			},
		},
		{
			name: "envelope not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>gateway timeout</html>"))
			},
		},
		{
			name: "plan not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiEnvelope(t, "Here is your itinerary: Day 1 ...")))
			},
		},
		{
			name: "missing required fields",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiEnvelope(t, missingHighlights)))
			},
			check: func(t *testing.T, err error) {
				var incomplete *IncompleteError
				require.ErrorAs(t, err, &incomplete)
				assert.Equal(t, []string{"highlights"}, incomplete.Missing)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(t, server.URL, "test-key")
			plan, _, err := client.GeneratePlan(context.Background(), testRequest("Goa", 2))
			assert.Nil(t, plan, "no partial plan may escape")
			assert.ErrorIs(t, err, ErrUnavailable)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestGeminiClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(geminiEnvelope(t, validPlanJSON())))
	}))
	defer server.Close()

	client := NewGeminiClient(GeminiConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	}, logger.NewNop())

	_, _, err := client.GeneratePlan(context.Background(), testRequest("Goa", 2))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json tag", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "no tag", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestMissingPlanFields(t *testing.T) {
	draft := &planDraft{}
	missing := missingPlanFields(draft)
	assert.ElementsMatch(t, []string{"destination", "days", "budgetEstimate", "hotelType", "itinerary", "highlights"}, missing)

	err := &IncompleteError{Missing: missing}
	assert.True(t, errors.Is(err, ErrUnavailable))
}

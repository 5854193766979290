package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramishrazaza/IndiaTravel/logger"
)

func newTestPlanner(t *testing.T, gemini *GeminiClient) *Planner {
	return NewPlanner(gemini, NewRulePlanner(DefaultKnowledgeBase(), ""), logger.NewTest(t))
}

func TestBucketBudget(t *testing.T) {
	tests := []struct {
		raw  string
		want BudgetTier
	}{
		{"15000", BudgetLow},
		{"30000", BudgetLow},
		{"30001", BudgetMid},
		{"100000", BudgetMid},
		{"100001", BudgetLuxury},
		{"200000", BudgetLuxury},
		{"200001", BudgetPremium},
		{"999999", BudgetPremium},
		{"budget", BudgetLow},
		{"LUXURY", BudgetLuxury},
		{"premium", BudgetPremium},
		{"mid", BudgetMid},
		{"", BudgetMid},
		{"whatever", BudgetMid},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketBudget(tt.raw))
		})
	}
}

func TestValidateTripRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TripRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(r *TripRequest) {}},
		{name: "no destination", mutate: func(r *TripRequest) { r.Destination = " " }, wantErr: "Destination is required"},
		{name: "zero days", mutate: func(r *TripRequest) { r.Days = 0 }, wantErr: "Days must be between 1 and 365"},
		{name: "too many days", mutate: func(r *TripRequest) { r.Days = 366 }, wantErr: "Days must be between 1 and 365"},
		{name: "no month", mutate: func(r *TripRequest) { r.Month = "" }, wantErr: "Month is required"},
		{name: "no name", mutate: func(r *TripRequest) { r.Contact.Name = "" }, wantErr: "Name is required"},
		{name: "no email", mutate: func(r *TripRequest) { r.Contact.Email = "" }, wantErr: "Email is required"},
		{name: "bad email", mutate: func(r *TripRequest) { r.Contact.Email = "not-an-email" }, wantErr: "Email is not valid"},
		{name: "no phone", mutate: func(r *TripRequest) { r.Contact.Phone = "" }, wantErr: "Phone is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest("Goa", 4)
			tt.mutate(&req)
			err := ValidateTripRequest(req)
			if tt.wantErr == "" {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Contains(t, err.Errors, tt.wantErr)
			}
		})
	}
}

func TestPlanner_InvalidInputRejectedBeforeGeneration(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(geminiEnvelope(t, validPlanJSON())))
	}))
	defer server.Close()

	planner := newTestPlanner(t, newTestClient(t, server.URL, "test-key"))

	req := testRequest("Goa", 0)
	result, err := planner.ProducePlan(context.Background(), req)
	assert.Nil(t, result)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, inputErr.Errors, "Days must be between 1 and 365")
	assert.Zero(t, calls, "no generation attempt may happen on caller error")
}

func TestPlanner_ProvenanceGemini(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiEnvelope(t, validPlanJSON())))
	}))
	defer server.Close()

	planner := newTestPlanner(t, newTestClient(t, server.URL, "test-key"))
	result, err := planner.ProducePlan(context.Background(), testRequest("Goa", 2))
	require.NoError(t, err)

	assert.Equal(t, SourceGemini, result.Source)
	assert.Equal(t, SourceGemini, result.Plan.Source)
	assert.NotEmpty(t, result.RawResponse, "raw model output kept for the audit trail")
}

func TestPlanner_FallbackOnGatewayFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "malformed plan JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiEnvelope(t, "not json at all")))
			},
		},
		{
			name: "missing required fields",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiEnvelope(t, `{"destination":"Goa"}`)))
			},
		},
		{
			name: "http 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			planner := newTestPlanner(t, newTestClient(t, server.URL, "test-key"))
			result, err := planner.ProducePlan(context.Background(), testRequest("Goa", 4))
			require.NoError(t, err, "generation failures must never surface to the caller")

			assert.Equal(t, SourceRuleBased, result.Source)
			assert.Equal(t, SourceRuleBased, result.Plan.Source)
			assert.Empty(t, result.RawResponse)
			assert.Len(t, result.Plan.Itinerary, 4)
			assert.NotEmpty(t, result.Plan.Highlights)
		})
	}
}

func TestPlanner_FallbackOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(geminiEnvelope(t, validPlanJSON())))
	}))
	defer server.Close()

	gemini := NewGeminiClient(GeminiConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	}, logger.NewNop())

	planner := newTestPlanner(t, gemini)
	result, err := planner.ProducePlan(context.Background(), testRequest("Goa", 3))
	require.NoError(t, err)
	assert.Equal(t, SourceRuleBased, result.Source)
}

func TestPlanner_NoCredentialSkipsNetworkAndIsDeterministic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call may happen without a credential")
	}))
	defer server.Close()

	planner := newTestPlanner(t, newTestClient(t, server.URL, ""))

	req := testRequest("Taj Mahal", 3)
	req.Style = StringList{"luxury"}

	first, err := planner.ProducePlan(context.Background(), req)
	require.NoError(t, err)
	second, err := planner.ProducePlan(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, SourceRuleBased, first.Source)
	firstJSON, _ := json.Marshal(first.Plan)
	secondJSON, _ := json.Marshal(second.Plan)
	assert.Equal(t, firstJSON, secondJSON, "fallback output must be byte-identical across calls")
}

func TestPlanner_TotalityOverRequestSpace(t *testing.T) {
	planner := newTestPlanner(t, NewGeminiClient(GeminiConfig{}, nil))

	for _, days := range []int{1, 2, 5, 6, 7, 30, 365} {
		for _, dest := range []string{"Taj Mahal", "Kerala Backwaters", "Unknown Island"} {
			result, err := planner.ProducePlan(context.Background(), testRequest(dest, days))
			require.NoError(t, err, "dest=%s days=%d", dest, days)
			require.NotNil(t, result.Plan)

			plan := result.Plan
			assert.Equal(t, days, plan.Days)
			assert.Len(t, plan.Itinerary, days)
			for day := 1; day <= days; day++ {
				entry, ok := plan.Itinerary[DayKey(day)]
				require.True(t, ok, "missing %s for dest=%s days=%d", DayKey(day), dest, days)
				assert.NotEmpty(t, entry.Activity)
			}
			assert.NotEmpty(t, plan.BudgetEstimate)
			assert.NotEmpty(t, plan.HotelType)
			assert.NotEmpty(t, plan.Highlights)
			assert.NotEmpty(t, plan.WhatsAppLink)
		}
	}
}

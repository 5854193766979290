package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramishrazaza/IndiaTravel/database"
	"github.com/ramishrazaza/IndiaTravel/logger"
	"github.com/ramishrazaza/IndiaTravel/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTest(t)
	planner := services.NewPlanner(
		services.NewGeminiClient(services.GeminiConfig{}, log),
		services.NewRulePlanner(services.DefaultKnowledgeBase(), ""),
		log,
	)
	h := New(planner, log)

	r := gin.New()
	r.GET("/api/health", h.Health)
	r.POST("/api/ai-plan", h.GenerateAIPlan)
	r.POST("/api/bookings", h.SubmitBooking)
	r.GET("/api/plans/:id", h.GetPlan)
	r.GET("/api/plans/:id/pdf", h.DownloadPlanPDF)
	return r
}

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		db.Close()
	})
	return mock
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validPlanRequest() map[string]any {
	return map[string]any{
		"destination": "Taj Mahal",
		"days":        3,
		"month":       "June",
		"style":       []string{"luxury"},
		"travelType":  "couple",
		"budget":      "75000",
		"pace":        "balanced",
		"name":        "Asha",
		"email":       "asha@example.com",
		"phone":       "+919000000000",
	}
}

func TestGenerateAIPlan_RuleBased(t *testing.T) {
	r := newTestRouter(t)
	mock := withMockDB(t)
	mock.ExpectExec("INSERT INTO ai_plans").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postJSON(t, r, "/api/ai-plan", validPlanRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AIPlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Your personalized itinerary has been generated!", resp.Message)
	assert.NotEmpty(t, resp.PlanID)
	assert.Equal(t, services.SourceRuleBased, resp.Source)

	require.NotNil(t, resp.Plan)
	assert.Equal(t, "Taj Mahal", resp.Plan.Destination)
	assert.Equal(t, "₹50,000 - ₹80,000", resp.Plan.BudgetEstimate)
	assert.Len(t, resp.Plan.Itinerary, 3)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateAIPlan_NumericBudget(t *testing.T) {
	r := newTestRouter(t)

	body := validPlanRequest()
	body["budget"] = 25000 // number, not string
	w := postJSON(t, r, "/api/ai-plan", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestGenerateAIPlan_MissingFields(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(t, r, "/api/ai-plan", map[string]any{
		"destination": "Goa",
		"days":        4,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Missing required fields", resp.Message)
	assert.Contains(t, resp.Errors, "Month is required")
	assert.Contains(t, resp.Errors, "Name is required")
	assert.Contains(t, resp.Errors, "Phone is required")
}

func TestGenerateAIPlan_MalformedBody(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ai-plan", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateAIPlan_PersistenceFailureDoesNotFailRequest(t *testing.T) {
	r := newTestRouter(t)
	mock := withMockDB(t)
	mock.ExpectExec("INSERT INTO ai_plans").
		WillReturnError(assert.AnError)

	w := postJSON(t, r, "/api/ai-plan", validPlanRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AIPlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.PlanID, "no ID when the insert failed")
	require.NotNil(t, resp.Plan)
}

func TestGenerateAIPlan_NoDatabase(t *testing.T) {
	r := newTestRouter(t)
	prev := database.DB
	database.DB = nil
	t.Cleanup(func() { database.DB = prev })

	w := postJSON(t, r, "/api/ai-plan", validPlanRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AIPlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.PlanID)
}

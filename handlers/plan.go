package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ramishrazaza/IndiaTravel/database"
	"github.com/ramishrazaza/IndiaTravel/services"
)

// flexString accepts a JSON string or number; the planner form posts the
// budget either as a slider value or a tier name.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type AIPlanRequest struct {
	Destination string              `json:"destination"`
	Days        int                 `json:"days"`
	Month       string              `json:"month"`
	Style       services.StringList `json:"style"`
	TravelType  string              `json:"travelType"`
	Budget      flexString          `json:"budget"`
	Pace        string              `json:"pace"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
}

type AIPlanResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	PlanID  string                  `json:"planId,omitempty"`
	Plan    *services.ItineraryPlan `json:"plan,omitempty"`
	Source  services.PlanSource     `json:"source,omitempty"`
}

// GenerateAIPlan handles POST /api/ai-plan: validates the request, produces a
// plan (Gemini with rule-based fallback), and persists the lead best-effort.
func (h *Handler) GenerateAIPlan(c *gin.Context) {
	var req AIPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	tripReq := services.TripRequest{
		Destination: req.Destination,
		Days:        req.Days,
		Month:       req.Month,
		Style:       req.Style,
		TravelType:  services.TravelType(req.TravelType),
		BudgetTier:  services.BucketBudget(string(req.Budget)),
		Pace:        services.Pace(req.Pace),
		Contact: services.Contact{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
	}

	result, err := h.planner.ProducePlan(c.Request.Context(), tripReq)
	if err != nil {
		var inputErr *services.InputError
		if errors.As(err, &inputErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Missing required fields",
				"errors":  inputErr.Errors,
			})
			return
		}
		h.log.Error("plan generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate itinerary. Please try again.",
		})
		return
	}

	planID := h.savePlan(&req, &tripReq, result)

	message := "Your personalized itinerary has been generated!"
	if result.Source == services.SourceGemini {
		message = "Your AI-powered itinerary has been generated!"
	}
	c.JSON(http.StatusOK, AIPlanResponse{
		Success: true,
		Message: message,
		PlanID:  planID,
		Plan:    result.Plan,
		Source:  result.Source,
	})
}

// savePlan persists the lead and plan for follow-up. Persistence failures are
// logged, never surfaced: the caller already has their plan.
func (h *Handler) savePlan(req *AIPlanRequest, tripReq *services.TripRequest, result *services.PlanResult) string {
	if database.DB == nil {
		return ""
	}

	styleJSON, _ := json.Marshal([]string(tripReq.Style))
	itineraryJSON, _ := json.Marshal(result.Plan.Itinerary)
	highlightsJSON, _ := json.Marshal(result.Plan.Highlights)
	tipsJSON, _ := json.Marshal(result.Plan.Tips)

	record := &database.AIPlan{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Destination:    tripReq.Destination,
		Days:           tripReq.Days,
		Month:          tripReq.Month,
		StyleJSON:      string(styleJSON),
		TravelType:     string(tripReq.TravelType),
		Budget:         string(tripReq.BudgetTier),
		Pace:           string(tripReq.Pace),
		BudgetEstimate: result.Plan.BudgetEstimate,
		HotelType:      result.Plan.HotelType,
		ItineraryJSON:  string(itineraryJSON),
		HighlightsJSON: string(highlightsJSON),
		TipsJSON:       string(tipsJSON),
		WhatsAppLink:   result.Plan.WhatsAppLink,
		AIResponse:     result.RawResponse,
		PlanSource:     string(result.Source),
	}

	if err := database.SaveAIPlan(record); err != nil {
		h.log.Warn("could not save AI plan", zap.Error(err))
		return ""
	}
	return record.ID
}

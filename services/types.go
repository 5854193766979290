package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ─── Enums ────────────────────────────────────────────────────────────────────

type TravelType string

const (
	TravelSolo   TravelType = "solo"
	TravelCouple TravelType = "couple"
	TravelFamily TravelType = "family"
	TravelGroup  TravelType = "group"
)

type BudgetTier string

const (
	BudgetLow     BudgetTier = "budget"
	BudgetMid     BudgetTier = "mid"
	BudgetLuxury  BudgetTier = "luxury"
	BudgetPremium BudgetTier = "premium"
)

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceBalanced Pace = "balanced"
	PaceFast     Pace = "fast"
)

// PlanSource records which generator produced a plan. It is set by the
// orchestrator, never by the generators themselves.
type PlanSource string

const (
	SourceGemini    PlanSource = "gemini"
	SourceRuleBased PlanSource = "rule-based"
)

const (
	MinTripDays = 1
	MaxTripDays = 365
)

// ─── Request ──────────────────────────────────────────────────────────────────

// StringList accepts either a single JSON string or an array of strings.
// Form submissions send "adventure", multi-selects send ["adventure","food"].
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*s = nil
		} else {
			*s = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// TripRequest is the normalized planner input, built fresh per call.
type TripRequest struct {
	Destination string     `json:"destination"`
	Days        int        `json:"days"`
	Month       string     `json:"month"`
	Style       StringList `json:"style"`
	TravelType  TravelType `json:"travelType"`
	BudgetTier  BudgetTier `json:"budget"`
	Pace        Pace       `json:"pace"`
	Contact     Contact    `json:"contact"`
}

// ApplyDefaults fills the enum fields the same way the booking form does.
func (r *TripRequest) ApplyDefaults() {
	if r.TravelType == "" {
		r.TravelType = TravelSolo
	}
	if r.BudgetTier == "" {
		r.BudgetTier = BudgetMid
	}
	if r.Pace == "" {
		r.Pace = PaceBalanced
	}
}

// ─── Plan ─────────────────────────────────────────────────────────────────────

type DayPlan struct {
	Summary  string `json:"summary,omitempty"`
	Activity string `json:"activity"`
	Hotel    string `json:"hotel"`
	Meals    string `json:"meals"`
}

// ItineraryPlan is the single canonical output shape. Both generation paths
// produce it; once returned it is immutable.
type ItineraryPlan struct {
	Destination    string             `json:"destination"`
	Days           int                `json:"days"`
	Month          string             `json:"month"`
	BudgetEstimate string             `json:"budgetEstimate"`
	HotelType      string             `json:"hotelType"`
	Itinerary      map[string]DayPlan `json:"itinerary"`
	Highlights     []string           `json:"highlights"`
	Tips           []string           `json:"tips"`
	WhatsAppLink   string             `json:"whatsappLink"`
	Source         PlanSource         `json:"source,omitempty"`
}

// DayKey returns the itinerary map key for a 1-based day number.
func DayKey(day int) string {
	return fmt.Sprintf("Day %d", day)
}

// DayKeys returns the itinerary keys in day order.
func (p *ItineraryPlan) DayKeys() []string {
	keys := make([]string, 0, p.Days)
	for d := 1; d <= p.Days; d++ {
		keys = append(keys, DayKey(d))
	}
	return keys
}

// ─── Caller input errors ──────────────────────────────────────────────────────

// InputError rejects a request before any generation attempt. It is the only
// error the planner core surfaces to callers.
type InputError struct {
	Errors []string
}

func (e *InputError) Error() string {
	return "invalid trip request: " + strings.Join(e.Errors, "; ")
}

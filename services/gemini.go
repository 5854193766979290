package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ─── Errors ───────────────────────────────────────────────────────────────────

// ErrUnavailable means the generation service could not produce a usable plan
// for any reason: transport failure, timeout, bad status, unparseable body or
// an incomplete plan. The orchestrator absorbs it and falls back.
var ErrUnavailable = errors.New("gemini: generation unavailable")

// ErrNotConfigured means no API key is set. Expected in deployments without a
// Gemini credential; no network attempt is made.
var ErrNotConfigured = fmt.Errorf("%w: API key not configured", ErrUnavailable)

// IncompleteError reports a syntactically valid response that failed the
// required-field gate.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("gemini: response missing required fields: %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrUnavailable }

// ─── Client ───────────────────────────────────────────────────────────────────

const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiTimeout = 30 * time.Second
)

type GeminiConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	Timeout        time.Duration
	WhatsAppNumber string
}

// GeminiClient wraps the Gemini generateContent endpoint. Configuration is
// injected at construction so availability and generation are testable with
// fake configs and servers.
type GeminiClient struct {
	cfg        GeminiConfig
	httpClient *http.Client
	log        *zap.Logger
}

func NewGeminiClient(cfg GeminiConfig, log *zap.Logger) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultGeminiTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

func (c *GeminiClient) IsConfigured() bool {
	return c.cfg.APIKey != ""
}

// ─── Wire types ───────────────────────────────────────────────────────────────

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// planDraft is the raw plan shape the model is asked to emit, before
// validation and defensive formatting.
type planDraft struct {
	Destination    string             `json:"destination"`
	Days           int                `json:"days"`
	Month          string             `json:"month"`
	BudgetEstimate string             `json:"budgetEstimate"`
	HotelType      string             `json:"hotelType"`
	Itinerary      map[string]DayPlan `json:"itinerary"`
	Highlights     []string           `json:"highlights"`
	Tips           []string           `json:"tips"`
}

// ─── Generation ───────────────────────────────────────────────────────────────

// GeneratePlan attempts one generation call. On success it returns the
// validated, normalized plan plus the raw model text for the audit trail.
// Every failure mode maps to an error wrapping ErrUnavailable; no partial
// plan ever escapes.
func (c *GeminiClient) GeneratePlan(ctx context.Context, req TripRequest) (*ItineraryPlan, string, error) {
	if !c.IsConfigured() {
		return nil, "", ErrNotConfigured
	}

	prompt := buildItineraryPrompt(req)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: marshal request: %v", ErrUnavailable, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Model, c.cfg.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, "", fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, truncate(string(respBody), 200))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return nil, "", fmt.Errorf("%w: parse response envelope: %v", ErrUnavailable, err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, "", fmt.Errorf("%w: empty candidates", ErrUnavailable)
	}

	raw := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	if raw == "" {
		return nil, "", fmt.Errorf("%w: empty candidate text", ErrUnavailable)
	}

	var draft planDraft
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &draft); err != nil {
		return nil, "", fmt.Errorf("%w: parse plan JSON: %v", ErrUnavailable, err)
	}

	if missing := missingPlanFields(&draft); len(missing) > 0 {
		return nil, "", &IncompleteError{Missing: missing}
	}

	plan := c.formatPlan(&draft)
	c.log.Info("gemini plan generated",
		zap.String("destination", plan.Destination),
		zap.Int("days", plan.Days),
		zap.String("model", c.cfg.Model))
	return plan, raw, nil
}

// buildItineraryPrompt embeds every request field as an explicit constraint.
// Deterministic for a given request.
func buildItineraryPrompt(req TripRequest) string {
	return fmt.Sprintf(`You are an expert Indian travel planner creating a personalized itinerary.

Create a realistic %d-day travel itinerary for %s, India, strictly within the user's budget and preferences.

USER PROFILE (STRICT CONSTRAINTS):
- Traveler type: %s
- Travel style: %s
- Budget range: %s (THIS IS A HARD LIMIT)
- Travel pace: %s
- Travel month: %s

BUDGET RULES (VERY IMPORTANT):
- The itinerary MUST stay within the given budget range.
- If budget is "budget", avoid luxury hotels, premium transport, or expensive experiences.
- If budget is "mid", suggest 3-star or equivalent hotels only.
- If budget is "luxury" or "premium", premium hotels and experiences are allowed.
- budgetEstimate MUST realistically match the hotel type and activities.
- Do NOT suggest experiences that exceed the user's budget.

PLANNING RULES:
- Activities must be geographically practical and time-efficient.
- Daily plans should feel achievable, not rushed.
- Hotel recommendations must match the budget category.
- Meals should follow typical Indian travel patterns.
- Tips should help travelers save money when possible.

IMPORTANT RESPONSE RULES (STRICT):
- Respond ONLY with valid JSON.
- Do NOT include markdown, explanations, or extra text.
- Do NOT change key names or structure.
- Ensure all strings are properly escaped.
- The "itinerary" object must use keys "Day 1" through "Day %d", exactly %d entries.
- Keep day summaries under 60 characters.

REQUIRED JSON FORMAT (DO NOT MODIFY):

{
  "destination": "%s",
  "days": %d,
  "month": "%s",
  "budgetEstimate": "₹XX,XXX - ₹XX,XXX",
  "hotelType": "Hotel type recommendation",
  "itinerary": {
    "Day 1": {
      "summary": "Brief one-line summary of the day (max 60 characters)",
      "activity": "Detailed activity description",
      "hotel": "Hotel recommendation",
      "meals": "Breakfast, Lunch, Dinner"
    }
  },
  "highlights": ["Highlight 1", "Highlight 2", "Highlight 3", "Highlight 4", "Highlight 5"],
  "tips": ["Practical tip 1", "Practical tip 2", "Practical tip 3"]
}`,
		req.Days, req.Destination,
		req.TravelType, strings.Join(req.Style, ", "), req.BudgetTier, req.Pace, req.Month,
		req.Days, req.Days,
		req.Destination, req.Days, req.Month)
}

// stripCodeFences removes leading/trailing markdown fences, with or without a
// language tag, before JSON parsing.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 && !strings.ContainsAny(s[:idx], "{[") {
		// first fence line carries a language tag such as "json"
		s = s[idx+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// missingPlanFields is the hard validation gate: a syntactically valid but
// semantically incomplete response must not reach the caller.
func missingPlanFields(draft *planDraft) []string {
	var missing []string
	if strings.TrimSpace(draft.Destination) == "" {
		missing = append(missing, "destination")
	}
	if draft.Days <= 0 {
		missing = append(missing, "days")
	}
	if strings.TrimSpace(draft.BudgetEstimate) == "" {
		missing = append(missing, "budgetEstimate")
	}
	if strings.TrimSpace(draft.HotelType) == "" {
		missing = append(missing, "hotelType")
	}
	if len(draft.Itinerary) == 0 {
		missing = append(missing, "itinerary")
	}
	if len(draft.Highlights) == 0 {
		missing = append(missing, "highlights")
	}
	return missing
}

// formatPlan defensively defaults every optional slot so the returned plan
// always satisfies the full shape regardless of upstream omissions.
func (c *GeminiClient) formatPlan(draft *planDraft) *ItineraryPlan {
	itinerary := make(map[string]DayPlan, len(draft.Itinerary))
	for day, entry := range draft.Itinerary {
		if entry.Activity == "" {
			entry.Activity = "Activity to be planned"
		}
		if entry.Hotel == "" {
			entry.Hotel = "Hotel to be finalized"
		}
		if entry.Meals == "" {
			entry.Meals = "Meals included"
		}
		itinerary[day] = entry
	}

	highlights := draft.Highlights
	if len(highlights) == 0 {
		highlights = []string{"Experience the destination", "Local adventures", "Cultural immersion"}
	}
	tips := draft.Tips
	if tips == nil {
		tips = []string{}
	}

	plan := &ItineraryPlan{
		Destination:    draft.Destination,
		Days:           draft.Days,
		Month:          draft.Month,
		BudgetEstimate: draft.BudgetEstimate,
		HotelType:      draft.HotelType,
		Itinerary:      itinerary,
		Highlights:     highlights,
		Tips:           tips,
	}
	if plan.Month == "" {
		plan.Month = "Month"
	}
	plan.WhatsAppLink = WhatsAppLink(c.cfg.WhatsAppNumber, plan.Destination, plan.Days, plan.Month)
	return plan
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

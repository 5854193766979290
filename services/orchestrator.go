package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ─── Budget bucketing ─────────────────────────────────────────────────────────

// BucketBudget maps a raw form value to a budget tier. Numeric inputs use the
// production thresholds; the luxury-below-premium ordering matches the live
// site and is kept for behavioral parity (see DESIGN.md).
func BucketBudget(raw string) BudgetTier {
	raw = strings.TrimSpace(raw)
	if amount, err := strconv.Atoi(raw); err == nil {
		switch {
		case amount <= 30000:
			return BudgetLow
		case amount <= 100000:
			return BudgetMid
		case amount <= 200000:
			return BudgetLuxury
		default:
			return BudgetPremium
		}
	}
	switch BudgetTier(strings.ToLower(raw)) {
	case BudgetLow, BudgetMid, BudgetLuxury, BudgetPremium:
		return BudgetTier(strings.ToLower(raw))
	}
	return BudgetMid
}

// ─── Validation ───────────────────────────────────────────────────────────────

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateTripRequest enforces the pre-conditions for plan generation. A
// failure here is a caller error, reported before any generation attempt.
func ValidateTripRequest(req TripRequest) *InputError {
	var errs []string
	if strings.TrimSpace(req.Destination) == "" {
		errs = append(errs, "Destination is required")
	}
	if req.Days < MinTripDays || req.Days > MaxTripDays {
		errs = append(errs, "Days must be between 1 and 365")
	}
	if strings.TrimSpace(req.Month) == "" {
		errs = append(errs, "Month is required")
	}
	if strings.TrimSpace(req.Contact.Name) == "" {
		errs = append(errs, "Name is required")
	}
	if strings.TrimSpace(req.Contact.Email) == "" {
		errs = append(errs, "Email is required")
	} else if !emailPattern.MatchString(req.Contact.Email) {
		errs = append(errs, "Email is not valid")
	}
	if strings.TrimSpace(req.Contact.Phone) == "" {
		errs = append(errs, "Phone is required")
	}
	if len(errs) > 0 {
		return &InputError{Errors: errs}
	}
	return nil
}

// ─── Orchestrator ─────────────────────────────────────────────────────────────

// PlanResult carries the finished plan, its provenance and, for generated
// plans, the raw model text kept as an audit trail.
type PlanResult struct {
	Plan        *ItineraryPlan
	Source      PlanSource
	RawResponse string
}

// Planner composes the Gemini gateway and the rule-based fallback. One
// gateway attempt per call, no retries: a single failure of any kind
// immediately produces a rule-based plan, so the caller-facing latency
// ceiling is the gateway timeout plus negligible fallback work.
type Planner struct {
	gemini *GeminiClient
	rules  *RulePlanner
	log    *zap.Logger
}

func NewPlanner(gemini *GeminiClient, rules *RulePlanner, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{gemini: gemini, rules: rules, log: log}
}

// ProducePlan validates the request, tries the gateway once, and falls back
// to the rule-based planner on any generation failure. The only error it
// returns is *InputError; generation failures never surface.
func (p *Planner) ProducePlan(ctx context.Context, req TripRequest) (*PlanResult, error) {
	req.ApplyDefaults()
	if inputErr := ValidateTripRequest(req); inputErr != nil {
		return nil, inputErr
	}

	if p.gemini != nil && p.gemini.IsConfigured() {
		plan, raw, err := p.gemini.GeneratePlan(ctx, req)
		if err == nil {
			plan.Source = SourceGemini
			return &PlanResult{Plan: plan, Source: SourceGemini, RawResponse: raw}, nil
		}
		p.log.Warn("gemini generation failed, falling back to rule-based planner",
			zap.String("destination", req.Destination),
			zap.Error(err))
	}

	plan := p.rules.GeneratePlan(req)
	plan.Source = SourceRuleBased
	return &PlanResult{Plan: plan, Source: SourceRuleBased}, nil
}

package services

// RulePlanner produces deterministic itineraries from the static knowledge
// base. GeneratePlan is total: given a request that passed basic validation it
// always returns a complete plan, so the orchestrator can fall back to it
// unconditionally.
type RulePlanner struct {
	kb             *KnowledgeBase
	whatsappNumber string
}

func NewRulePlanner(kb *KnowledgeBase, whatsappNumber string) *RulePlanner {
	if kb == nil {
		kb = DefaultKnowledgeBase()
	}
	return &RulePlanner{kb: kb, whatsappNumber: whatsappNumber}
}

// defaultActivities are the generic day phases used when a destination has no
// canned itinerary. Days beyond the list get a per-day placeholder.
var defaultActivities = []string{
	"Arrive and explore",
	"Local sightseeing and cultural experiences",
	"Adventure activities",
	"Market shopping and local cuisine",
	"Rest and relaxation",
	"Final exploration and departure",
}

const (
	defaultBudgetEstimate = "₹25,000 - ₹50,000"
	defaultHotelType      = "3-4 star Hotels"
)

// GeneratePlan selects the best-matching canned itinerary, in strict priority:
// exact (destination, primary style, days) match, then the destination's first
// declared style with the exact day count, then a fully synthesized plan.
func (p *RulePlanner) GeneratePlan(req TripRequest) *ItineraryPlan {
	primaryStyle := p.primaryStyle(req)

	if fragment, ok := p.kb.Lookup(req.Destination, primaryStyle, req.Days); ok {
		return p.fromFragment(req, fragment)
	}
	if fragment, ok := p.kb.LookupAnyStyle(req.Destination, req.Days); ok {
		return p.fromFragment(req, fragment)
	}
	return p.synthesize(req)
}

func (p *RulePlanner) primaryStyle(req TripRequest) string {
	if len(req.Style) > 0 {
		return normalizeKey(req.Style[0])
	}
	if req.BudgetTier == BudgetLuxury {
		return "luxury"
	}
	return "adventure"
}

func (p *RulePlanner) fromFragment(req TripRequest, fragment PlanFragment) *ItineraryPlan {
	itinerary := make(map[string]DayPlan, len(fragment.Itinerary))
	for day, entry := range fragment.Itinerary {
		itinerary[day] = entry
	}
	return &ItineraryPlan{
		Destination:    req.Destination,
		Days:           req.Days,
		Month:          req.Month,
		BudgetEstimate: fragment.BudgetEstimate,
		HotelType:      fragment.HotelType,
		Itinerary:      itinerary,
		Highlights:     append([]string(nil), fragment.Highlights...),
		Tips:           append([]string(nil), fragment.Tips...),
		WhatsAppLink:   WhatsAppLink(p.whatsappNumber, req.Destination, req.Days, req.Month),
	}
}

func (p *RulePlanner) synthesize(req TripRequest) *ItineraryPlan {
	itinerary := make(map[string]DayPlan, req.Days)
	for day := 1; day <= req.Days; day++ {
		activity := DayKey(day) + " activities"
		if day <= len(defaultActivities) {
			activity = defaultActivities[day-1]
		}
		itinerary[DayKey(day)] = DayPlan{
			Activity: activity,
			Hotel:    "To be finalized",
			Meals:    "Breakfast, Lunch, Dinner",
		}
	}

	return &ItineraryPlan{
		Destination:    req.Destination,
		Days:           req.Days,
		Month:          req.Month,
		BudgetEstimate: defaultBudgetEstimate,
		HotelType:      defaultHotelType,
		Itinerary:      itinerary,
		Highlights: []string{
			"Explore " + req.Destination,
			"Local experiences",
			"Cultural immersion",
			"Adventure activities",
			"Shopping and dining",
		},
		Tips:         nil,
		WhatsAppLink: WhatsAppLink(p.whatsappNumber, req.Destination, req.Days, req.Month),
	}
}

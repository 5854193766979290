package services

import "strings"

// ─── Knowledge base ───────────────────────────────────────────────────────────

// PlanFragment is a canned itinerary for one (destination, style, day-count)
// combination. Fragments never carry the request echo fields or the contact
// link; the planner adds those.
type PlanFragment struct {
	BudgetEstimate string
	HotelType      string
	Highlights     []string
	Tips           []string
	Itinerary      map[string]DayPlan
}

type destinationEntry struct {
	// styles preserves authoring order; the destination-only fallback scans
	// styles in this order, so it is an explicit priority list rather than
	// incidental map ordering.
	styles []string
	plans  map[string]map[int]PlanFragment
}

// KnowledgeBase is the static canned-itinerary table. Keys are normalized at
// insertion so lookups never fail on casing or whitespace drift. Read-only
// after construction, safe for concurrent use.
type KnowledgeBase struct {
	destinations map[string]*destinationEntry
}

func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{destinations: map[string]*destinationEntry{}}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add registers a fragment. The first Add for a (destination, style) pair
// fixes that style's position in the destination's fallback order.
func (kb *KnowledgeBase) Add(destination, style string, days int, fragment PlanFragment) *KnowledgeBase {
	destKey := normalizeKey(destination)
	styleKey := normalizeKey(style)

	entry, ok := kb.destinations[destKey]
	if !ok {
		entry = &destinationEntry{plans: map[string]map[int]PlanFragment{}}
		kb.destinations[destKey] = entry
	}
	if _, ok := entry.plans[styleKey]; !ok {
		entry.styles = append(entry.styles, styleKey)
		entry.plans[styleKey] = map[int]PlanFragment{}
	}
	entry.plans[styleKey][days] = fragment
	return kb
}

// Lookup returns the exact (destination, style, days) fragment.
func (kb *KnowledgeBase) Lookup(destination, style string, days int) (PlanFragment, bool) {
	entry, ok := kb.destinations[normalizeKey(destination)]
	if !ok {
		return PlanFragment{}, false
	}
	byDays, ok := entry.plans[normalizeKey(style)]
	if !ok {
		return PlanFragment{}, false
	}
	fragment, ok := byDays[days]
	return fragment, ok
}

// LookupAnyStyle scans the destination's styles in declared priority order and
// returns the first fragment with the exact day count. Styles that know the
// destination but not this day count are skipped, never truncated or reused.
func (kb *KnowledgeBase) LookupAnyStyle(destination string, days int) (PlanFragment, bool) {
	entry, ok := kb.destinations[normalizeKey(destination)]
	if !ok {
		return PlanFragment{}, false
	}
	for _, style := range entry.styles {
		if fragment, ok := entry.plans[style][days]; ok {
			return fragment, true
		}
	}
	return PlanFragment{}, false
}

// ─── Seed data ────────────────────────────────────────────────────────────────

// DefaultKnowledgeBase returns the curated itinerary table used in production.
func DefaultKnowledgeBase() *KnowledgeBase {
	kb := NewKnowledgeBase()

	kb.Add("Taj Mahal", "luxury", 2, PlanFragment{
		BudgetEstimate: "₹40,000 - ₹60,000",
		HotelType:      "5-star Hotels",
		Highlights: []string{
			"Taj Mahal sunrise visit",
			"Agra Fort exploration",
			"Mughal gardens",
			"Local handicraft shopping",
			"Fine dining experience",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Agra. Check into luxury hotel. Evening visit to Mehtab Bagh for sunset view of Taj Mahal.",
				Hotel:    "5-star resort with river view",
				Meals:    "Lunch, Dinner",
			},
			"Day 2": {
				Activity: "Early morning Taj Mahal sunrise tour. Visit Agra Fort. Afternoon at local markets. Evening departure.",
				Hotel:    "5-star resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
		},
	})

	kb.Add("Taj Mahal", "luxury", 3, PlanFragment{
		BudgetEstimate: "₹50,000 - ₹80,000",
		HotelType:      "5-star Hotels",
		Highlights: []string{
			"Taj Mahal sunrise & sunset views",
			"Agra Fort deep exploration",
			"Mughal gardens & heritage sites",
			"Luxury spa & wellness",
			"Fine dining & wine tasting",
			"Private guide experience",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Agra. Check into luxury hotel. Wellness spa session. Evening at Mehtab Bagh.",
				Hotel:    "5-star luxury resort",
				Meals:    "Lunch, Dinner (fine dining)",
			},
			"Day 2": {
				Activity: "Early Taj Mahal sunrise. Private guide tour of Agra Fort. Lunch at heritage restaurant. Afternoon shopping.",
				Hotel:    "5-star luxury resort",
				Meals:    "Breakfast, Lunch, Dinner (wine pairing)",
			},
			"Day 3": {
				Activity: "Taj Mahal sunset view. Local heritage experiences. Farewell dinner. Evening departure.",
				Hotel:    "5-star luxury resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
		},
	})

	kb.Add("Taj Mahal", "budget", 2, PlanFragment{
		BudgetEstimate: "₹8,000 - ₹12,000",
		HotelType:      "2-3 star Hotels",
		Highlights: []string{
			"Taj Mahal visit",
			"Agra Fort",
			"Local market exploration",
			"Street food experience",
			"Budget-friendly activities",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Agra. Budget hotel check-in. Local market visit. Evening at public garden.",
				Hotel:    "2-3 star hotel",
				Meals:    "Lunch, Dinner",
			},
			"Day 2": {
				Activity: "Taj Mahal visit. Agra Fort tour. Street food tasting. Evening departure.",
				Hotel:    "2-3 star hotel",
				Meals:    "Breakfast, Lunch, Street snacks, Dinner",
			},
		},
	})

	kb.Add("Taj Mahal", "budget", 3, PlanFragment{
		BudgetEstimate: "₹12,000 - ₹18,000",
		HotelType:      "2-3 star Hotels & Homestays",
		Highlights: []string{
			"Taj Mahal (sunrise or sunset)",
			"Agra Fort exploration",
			"Local street food tour",
			"Market shopping",
			"Budget-friendly sightseeing",
			"Local homestay experience",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Agra. Homestay check-in. Explore local markets. Evening stroll.",
				Hotel:    "Budget hotel or homestay",
				Meals:    "Lunch, Dinner",
			},
			"Day 2": {
				Activity: "Taj Mahal sunrise visit. Agra Fort tour. Local street food lunch. Afternoon rest.",
				Hotel:    "Budget hotel or homestay",
				Meals:    "Breakfast, Lunch (street food), Dinner",
			},
			"Day 3": {
				Activity: "Local experiences. Market shopping. Departure.",
				Hotel:    "Budget hotel or homestay",
				Meals:    "Breakfast, Lunch, Dinner",
			},
		},
	})

	kb.Add("Kerala Backwaters", "luxury", 3, PlanFragment{
		BudgetEstimate: "₹60,000 - ₹90,000",
		HotelType:      "5-star Resorts & Houseboats",
		Highlights: []string{
			"Private houseboat experience",
			"Backwater cruise",
			"Ayurveda spa treatments",
			"Beach resort luxury",
			"Water sports & activities",
			"Kerala cuisine dining",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Kochi. Beach resort check-in. Evening beach walk. Sunset cocktails.",
				Hotel:    "5-star beach resort",
				Meals:    "Lunch, Dinner (seafood specialty)",
			},
			"Day 2": {
				Activity: "Full day private houseboat cruise. Ayurveda spa session. Evening meditation.",
				Hotel:    "Luxury houseboat with amenities",
				Meals:    "Breakfast, Lunch (on boat), Dinner (shore dining)",
			},
			"Day 3": {
				Activity: "Spa treatments. Beach resort. Water sports. Departure.",
				Hotel:    "5-star beach resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
		},
	})

	kb.Add("Kerala Backwaters", "luxury", 4, PlanFragment{
		BudgetEstimate: "₹80,000 - ₹1,20,000",
		HotelType:      "Ultra-luxury Resorts & Premium Houseboats",
		Highlights: []string{
			"Premium houseboat with private chef",
			"Ayurveda wellness package",
			"Water villas experience",
			"Private beach access",
			"Cooking classes",
			"Wildlife safari",
			"Personal guide service",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "VIP arrival. Ultra-luxury resort check-in. Beach spa. Evening fine dining.",
				Hotel:    "Luxury 5-star beach villa",
				Meals:    "Lunch, Dinner (Michelin standard)",
			},
			"Day 2": {
				Activity: "Private houseboat with chef. Cooking class. Backwater exploration.",
				Hotel:    "Premium houseboat",
				Meals:    "All meals prepared by private chef",
			},
			"Day 3": {
				Activity: "Wildlife sanctuary visit. Ayurveda treatments. Evening sunset cruise.",
				Hotel:    "Luxury resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
			"Day 4": {
				Activity: "Beach relaxation. Departure with memories.",
				Hotel:    "Luxury resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
		},
	})

	kb.Add("Kerala Backwaters", "nature", 3, PlanFragment{
		BudgetEstimate: "₹20,000 - ₹35,000",
		HotelType:      "Eco-resorts & Nature Lodges",
		Highlights: []string{
			"Backwater houseboat cruise",
			"Bird watching",
			"Jungle trek",
			"Wildlife sanctuary visit",
			"Local village experiences",
			"Sunset viewing",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Kochi. Eco-resort check-in. Evening nature walk.",
				Hotel:    "Eco-friendly resort",
				Meals:    "Lunch, Dinner",
			},
			"Day 2": {
				Activity: "Full day houseboat cruise. Bird watching. Village visits.",
				Hotel:    "Budget houseboat",
				Meals:    "Breakfast, Lunch, Dinner",
			},
			"Day 3": {
				Activity: "Jungle trek. Wildlife sanctuary. Departure.",
				Hotel:    "Nature lodge",
				Meals:    "Breakfast, Lunch, Dinner",
			},
		},
	})

	kb.Add("Himalayan Mountains", "adventure", 4, PlanFragment{
		BudgetEstimate: "₹35,000 - ₹55,000",
		HotelType:      "Mountain Lodges & Adventure Camps",
		Highlights: []string{
			"Trekking expeditions",
			"Mountain peaks",
			"River rafting",
			"Paragliding",
			"Local mountain villages",
			"Panoramic views",
			"Adventure activities",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive at base. Adventure camp check-in. Briefing & equipment.",
				Hotel:    "Mountain lodge",
				Meals:    "Lunch, Dinner",
			},
			"Day 2": {
				Activity: "Trekking to base camp. Mountain views. Bonfire evening.",
				Hotel:    "Mountain lodge",
				Meals:    "Breakfast, Lunch, Dinner",
			},
			"Day 3": {
				Activity: "River rafting adventure. Local village visit.",
				Hotel:    "Adventure camp",
				Meals:    "Breakfast, Lunch, Dinner",
			},
			"Day 4": {
				Activity: "Final adventure activity. Departure.",
				Hotel:    "Mountain lodge",
				Meals:    "Breakfast, Lunch",
			},
		},
	})

	kb.Add("Himalayan Mountains", "adventure", 5, PlanFragment{
		BudgetEstimate: "₹50,000 - ₹80,000",
		HotelType:      "Premium Mountain Resorts",
		Highlights: []string{
			"Mountain peak trek",
			"High altitude camping",
			"Paragliding experience",
			"Rock climbing",
			"Helicopter tour",
			"Expert guides",
			"All-inclusive adventure",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrival & acclimatization at base.",
				Hotel:    "Premium mountain resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
			"Day 2": {
				Activity: "Mountain peak trek.",
				Hotel:    "High altitude camp",
				Meals:    "All meals provided",
			},
			"Day 3": {
				Activity: "Rock climbing & adventure sports.",
				Hotel:    "Premium resort",
				Meals:    "All meals",
			},
			"Day 4": {
				Activity: "Paragliding experience.",
				Hotel:    "Premium resort",
				Meals:    "All meals",
			},
			"Day 5": {
				Activity: "Helicopter tour & departure.",
				Hotel:    "Premium resort",
				Meals:    "Breakfast",
			},
		},
	})

	kb.Add("Goa", "beach", 3, PlanFragment{
		BudgetEstimate: "₹18,000 - ₹30,000",
		HotelType:      "Beach Resorts & Boutique Stays",
		Highlights: []string{
			"North Goa beach hopping",
			"Old Goa churches & Fontainhas walk",
			"Sunset cruise on the Mandovi",
			"Beach shack seafood",
			"Saturday night market",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Goa. Beach resort check-in. Relax at Candolim beach. Evening at a beach shack.",
				Hotel:    "Beach resort",
				Meals:    "Lunch, Dinner (seafood)",
			},
			"Day 2": {
				Activity: "North Goa beach hopping - Baga, Anjuna, Vagator. Fort Aguada visit. Night market.",
				Hotel:    "Beach resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
			"Day 3": {
				Activity: "Old Goa churches. Fontainhas heritage walk. Sunset river cruise. Departure.",
				Hotel:    "Beach resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
		},
	})

	kb.Add("Goa", "beach", 4, PlanFragment{
		BudgetEstimate: "₹25,000 - ₹40,000",
		HotelType:      "Beach Resorts",
		Highlights: []string{
			"North & South Goa beaches",
			"Water sports at Calangute",
			"Spice plantation tour",
			"Dudhsagar waterfalls",
			"Sunset cruise",
			"Goan cuisine trail",
		},
		Itinerary: map[string]DayPlan{
			"Day 1": {
				Activity: "Arrive in Goa. Resort check-in. Calangute beach & water sports.",
				Hotel:    "Beach resort",
				Meals:    "Lunch, Dinner",
			},
			"Day 2": {
				Activity: "Dudhsagar waterfalls day trip. Spice plantation lunch.",
				Hotel:    "Beach resort",
				Meals:    "Breakfast, Lunch (plantation), Dinner",
			},
			"Day 3": {
				Activity: "South Goa - Palolem and Colva beaches. Quiet beach day.",
				Hotel:    "Beach resort",
				Meals:    "Breakfast, Lunch, Dinner",
			},
			"Day 4": {
				Activity: "Old Goa heritage circuit. Souvenir shopping. Departure.",
				Hotel:    "Beach resort",
				Meals:    "Breakfast, Lunch",
			},
		},
	})

	return kb
}

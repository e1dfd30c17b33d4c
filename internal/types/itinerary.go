package types

// ItineraryRequest is the body of POST /itinerary/generate.
type ItineraryRequest struct {
	AttractionIDs []int  `json:"attraction_ids"`
	Days          int    `json:"days,omitempty"`
	StartLocation string `json:"start_location,omitempty"`
}

// DayPlan is one day's entry in a generated itinerary. Attraction is nil for
// buffer days.
type DayPlan struct {
	Day        int            `json:"day"`
	Attraction *AttractionRef `json:"attraction"`
	Activities []string       `json:"activities"`
	Duration   int            `json:"duration"`
	Difficulty string         `json:"difficulty"`
	Cost       float64        `json:"cost"`
	BestSeason string         `json:"best_season"`
	Notes      []string       `json:"notes"`
}

// ItinerarySummary aggregates totals over a full itinerary.
type ItinerarySummary struct {
	TotalDays        int      `json:"total_days"`
	TotalCost        float64  `json:"total_cost"`
	AverageDailyCost float64  `json:"average_daily_cost"`
	AttractionsCount int      `json:"attractions_count"`
	RegionsCovered   []string `json:"regions_covered"`
}

// ItineraryResult is the full response of a successful generation.
type ItineraryResult struct {
	Itinerary []DayPlan        `json:"itinerary"`
	Summary   ItinerarySummary `json:"summary"`
}

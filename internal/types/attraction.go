package types

// Attraction is one travel destination or activity in the catalog.
// Fields are denormalized display data; the catalog owns them, everything
// else (recommender, planner, workflow) treats them as read-only snapshots.
type Attraction struct {
	ID             int     `json:"attraction_id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Region         string  `json:"region"`
	Rating         float64 `json:"rating"`
	NumReviews     int     `json:"num_reviews"`
	AvgCostUSD     float64 `json:"avg_cost_usd"`
	DurationDays   int     `json:"duration_days"`
	Difficulty     string  `json:"difficulty"`
	BestSeason     string  `json:"best_season"`
	AltitudeMeters int     `json:"altitude_meters"`
	Description    string  `json:"description"`
}

// AttractionFilter narrows a catalog listing. Zero values mean "no filter".
type AttractionFilter struct {
	Category  string  `json:"category,omitempty"`
	Region    string  `json:"region,omitempty"`
	MaxCost   float64 `json:"max_cost,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

// AttractionRef is the compact identification block echoed back by the
// similar-attractions and explanation endpoints.
type AttractionRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Region   string `json:"region"`
}

// Ref returns the compact reference for an attraction.
func (a Attraction) Ref() AttractionRef {
	return AttractionRef{ID: a.ID, Name: a.Name, Category: a.Category, Region: a.Region}
}

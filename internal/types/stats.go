package types

// CostRange is the min/max attraction cost across the catalog.
type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Stats is the aggregate catalog snapshot served by GET /stats.
type Stats struct {
	TotalAttractions int            `json:"total_attractions"`
	Categories       map[string]int `json:"categories"`
	Regions          map[string]int `json:"regions"`
	AvgRating        float64        `json:"avg_rating"`
	AvgCost          float64        `json:"avg_cost"`
	CostRange        CostRange      `json:"cost_range"`
}

// AnalyticsEvent is one tracked recommendation interaction.
type AnalyticsEvent struct {
	SessionID          string            `json:"session_id"`
	RecommendationType string            `json:"recommendation_type"`
	AttractionID       int               `json:"attraction_id"`
	Clicked            bool              `json:"clicked"`
	Converted          bool              `json:"converted"`
	Preferences        map[string]string `json:"preferences,omitempty"`
}

package types

// ScoredAttraction is an attraction annotated with a content-similarity
// score in [0,1].
type ScoredAttraction struct {
	ID              int     `json:"attraction_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Region          string  `json:"region"`
	Rating          float64 `json:"rating"`
	AvgCostUSD      float64 `json:"avg_cost_usd"`
	SimilarityScore float64 `json:"similarity_score"`
}

// RankedAttraction is an attraction that passed a preference filter, ordered
// by popularity.
type RankedAttraction struct {
	ID           int     `json:"attraction_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Region       string  `json:"region"`
	Rating       float64 `json:"rating"`
	AvgCostUSD   float64 `json:"avg_cost_usd"`
	DurationDays int     `json:"duration_days"`
	Difficulty   string  `json:"difficulty"`
}

// PreferenceQuery is the body of POST /recommend/preferences. Empty fields
// are not applied.
type PreferenceQuery struct {
	Category   string  `json:"category,omitempty"`
	MaxCost    float64 `json:"max_cost,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`
	TopN       int     `json:"top_n,omitempty"`
}

// ExplainRequest asks why a given attraction suits the stated preferences.
type ExplainRequest struct {
	AttractionID *int            `json:"attraction_id"`
	Preferences  PreferenceQuery `json:"preferences"`
}

// ExplainResult carries the rule-based explanation strings.
type ExplainResult struct {
	Explanations []string      `json:"explanations"`
	Attraction   AttractionRef `json:"attraction"`
}

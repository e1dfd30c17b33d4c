package types

import "time"

// PreferenceRecord is the saved set of filter defaults tied to a session
// identifier. Exactly one current record exists per session; saves overwrite,
// they never merge.
type PreferenceRecord struct {
	ID                int       `json:"id,omitempty"`
	SessionID         string    `json:"session_id"`
	PreferredCategory string    `json:"preferred_category,omitempty"`
	MaxCost           float64   `json:"max_cost,omitempty"`
	Difficulty        string    `json:"difficulty,omitempty"`
	PreferredRegions  []string  `json:"preferred_regions,omitempty"`
	VisitCount        int       `json:"visit_count,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"-"`
}

// SavePreferencesRequest is the body of POST /preferences/save.
type SavePreferencesRequest struct {
	SessionID  string   `json:"session_id"`
	Email      string   `json:"email,omitempty"`
	Category   string   `json:"category,omitempty"`
	MaxCost    float64  `json:"max_cost,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Regions    []string `json:"regions,omitempty"`
}

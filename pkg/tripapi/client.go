// Package tripapi is a typed HTTP client for the trip planner API.
//
// Every response from the API carries a boolean success indicator. Methods
// return *APIError when the server explicitly reports failure, and wrapped
// transport errors otherwise, so callers can tell the two apart.
package tripapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nepaltrails/trip-planner/internal/types"
)

const defaultTimeout = 15 * time.Second

// APIError is a failure the server reported explicitly (success false).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// Client talks to one trip planner API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithTimeout overrides the default 15s per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the common part of every API response body.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw := json.RawMessage{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response envelope from %s: %w", path, err)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// ListAttractions returns catalog attractions matching the filter.
func (c *Client) ListAttractions(ctx context.Context, filter types.AttractionFilter) ([]types.Attraction, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Region != "" {
		q.Set("region", filter.Region)
	}
	if filter.MaxCost > 0 {
		q.Set("max_cost", strconv.FormatFloat(filter.MaxCost, 'f', -1, 64))
	}
	if filter.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}

	var out struct {
		Attractions []types.Attraction `json:"attractions"`
	}
	if err := c.do(ctx, http.MethodGet, "/attractions", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Attractions, nil
}

// GetAttraction returns a single attraction by ID.
func (c *Client) GetAttraction(ctx context.Context, id int) (*types.Attraction, error) {
	var out struct {
		Attraction types.Attraction `json:"attraction"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/attractions/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Attraction, nil
}

// SimilarResult is the response of the similarity endpoint.
type SimilarResult struct {
	Original        types.AttractionRef      `json:"original"`
	Recommendations []types.ScoredAttraction `json:"recommendations"`
}

// Similar returns attractions similar to the given one.
func (c *Client) Similar(ctx context.Context, id, topN int) (*SimilarResult, error) {
	q := url.Values{}
	if topN > 0 {
		q.Set("top_n", strconv.Itoa(topN))
	}
	var out SimilarResult
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recommend/similar/%d", id), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecommendByPreferences returns attractions ranked against the stated preferences.
func (c *Client) RecommendByPreferences(ctx context.Context, query types.PreferenceQuery) ([]types.RankedAttraction, error) {
	var out struct {
		Recommendations []types.RankedAttraction `json:"recommendations"`
	}
	if err := c.do(ctx, http.MethodPost, "/recommend/preferences", nil, query, &out); err != nil {
		return nil, err
	}
	return out.Recommendations, nil
}

// Explain returns the explanation strings for a recommendation.
func (c *Client) Explain(ctx context.Context, req types.ExplainRequest) (*types.ExplainResult, error) {
	var out types.ExplainResult
	if err := c.do(ctx, http.MethodPost, "/recommend/explain", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SavePreferences stores the preference record for a session.
func (c *Client) SavePreferences(ctx context.Context, req types.SavePreferencesRequest) error {
	return c.do(ctx, http.MethodPost, "/preferences/save", nil, req, nil)
}

// LoadPreferences returns the saved record for a session, or nil when the
// session has never saved preferences.
func (c *Client) LoadPreferences(ctx context.Context, sessionID string) (*types.PreferenceRecord, error) {
	q := url.Values{}
	q.Set("session_id", sessionID)

	var out struct {
		Preferences *types.PreferenceRecord `json:"preferences"`
	}
	if err := c.do(ctx, http.MethodGet, "/preferences/load", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Preferences, nil
}

// GenerateItinerary builds a day-by-day itinerary from the selection.
func (c *Client) GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResult, error) {
	var out types.ItineraryResult
	if err := c.do(ctx, http.MethodPost, "/itinerary/generate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConversionResult is the acknowledgement of a conversion request.
type ConversionResult struct {
	Message   string `json:"message"`
	LeadID    int    `json:"lead_id"`
	EmailSent bool   `json:"email_sent"`
}

// RequestConversion submits an email, expert or quote request.
func (c *Client) RequestConversion(ctx context.Context, req types.ConversionRequest) (*ConversionResult, error) {
	var out ConversionResult
	if err := c.do(ctx, http.MethodPost, "/conversion/request", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns aggregate catalog statistics.
func (c *Client) Stats(ctx context.Context) (*types.Stats, error) {
	var out struct {
		Stats *types.Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

package tripapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nepaltrails/trip-planner/internal/types"
)

func TestClient_ListAttractions(t *testing.T) {
	t.Run("encodes filter as query params", func(t *testing.T) {
		var gotPath, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"attractions": []types.Attraction{
					{ID: 1, Name: "Everest Base Camp Trek"},
				},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		list, err := client.ListAttractions(context.Background(), types.AttractionFilter{
			Category: "Trekking",
			MaxCost:  1500,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Everest Base Camp Trek", list[0].Name)
		assert.Equal(t, "/api/v1/attractions", gotPath)
		assert.Equal(t, "category=Trekking&max_cost=1500", gotQuery)
	})

	t.Run("server failure becomes APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "Failed to retrieve attractions",
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.ListAttractions(context.Background(), types.AttractionFilter{})
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "Failed to retrieve attractions", apiErr.Message)
	})

	t.Run("transport failure is not an APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		client := NewClient(srv.URL)
		_, err := client.ListAttractions(context.Background(), types.AttractionFilter{})
		require.Error(t, err)

		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
		assert.Contains(t, err.Error(), "request to /attractions failed")
	})
}

func TestClient_GetAttraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/attractions/5", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"attraction": types.Attraction{ID: 5, Name: "Chitwan Safari"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	a, err := client.GetAttraction(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Chitwan Safari", a.Name)
}

func TestClient_SavePreferences(t *testing.T) {
	var decoded types.SavePreferencesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/preferences/save", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&decoded))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "preference_id": 3})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.SavePreferences(context.Background(), types.SavePreferencesRequest{
		SessionID: "sess_abc",
		Category:  "Trekking",
	})
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", decoded.SessionID)
}

func TestClient_LoadPreferences(t *testing.T) {
	t.Run("saved record", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "sess_abc", r.URL.Query().Get("session_id"))
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"preferences": types.PreferenceRecord{
					SessionID:         "sess_abc",
					PreferredCategory: "Trekking",
				},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		rec, err := client.LoadPreferences(context.Background(), "sess_abc")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "Trekking", rec.PreferredCategory)
	})

	t.Run("absent record is nil, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"success": true, "preferences": nil})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		rec, err := client.LoadPreferences(context.Background(), "sess_new")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestClient_GenerateItinerary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.ItineraryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int{1, 3}, req.AttractionIDs)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"itinerary": []types.DayPlan{
				{Day: 1, Activities: []string{"Explore Boudhanath Stupa"}, Duration: 1},
			},
			"summary": types.ItinerarySummary{TotalDays: 5, AttractionsCount: 2},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.GenerateItinerary(context.Background(), types.ItineraryRequest{
		AttractionIDs: []int{1, 3},
		Days:          5,
	})
	require.NoError(t, err)
	require.Len(t, res.Itinerary, 1)
	assert.Equal(t, 5, res.Summary.TotalDays)
}

func TestClient_RequestConversion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"message":    "Your itinerary has been sent to your email!",
			"lead_id":    42,
			"email_sent": true,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.RequestConversion(context.Background(), types.ConversionRequest{
		Type:     types.LeadTypeEmail,
		UserData: map[string]string{"email": "asha@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, res.LeadID)
	assert.True(t, res.EmailSent)
}

func TestClient_Stats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"stats":   types.Stats{TotalAttractions: 30},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	st, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, st.TotalAttractions)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stats", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "stats": types.Stats{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	_, err := client.Stats(context.Background())
	require.NoError(t, err)
}

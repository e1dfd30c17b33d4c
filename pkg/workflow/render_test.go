package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nepaltrails/trip-planner/internal/types"
)

func TestRender_Summary(t *testing.T) {
	result := &types.ItineraryResult{
		Summary: types.ItinerarySummary{
			TotalDays:        5,
			TotalCost:        450,
			AverageDailyCost: 90,
			AttractionsCount: 3,
			RegionsCovered:   []string{"Kathmandu Valley", "Pokhara"},
		},
	}

	doc := Render(result)
	assert.Equal(t, "5", doc.Summary.TotalDays)
	assert.Equal(t, "$450", doc.Summary.TotalCost)
	assert.Equal(t, "$90", doc.Summary.AverageDailyCost)
	assert.Equal(t, "3", doc.Summary.AttractionsCount)
	assert.Equal(t, "Kathmandu Valley, Pokhara", doc.Summary.Regions)
}

func TestRender_Days(t *testing.T) {
	result := &types.ItineraryResult{
		Itinerary: []types.DayPlan{
			{
				Day: 1,
				Attraction: &types.AttractionRef{
					ID:       3,
					Name:     "Boudhanath Stupa",
					Category: "Cultural",
					Region:   "Kathmandu Valley",
				},
				Activities: []string{"Explore Boudhanath Stupa"},
				Duration:   1,
				Cost:       5,
				BestSeason: "Year-round",
				Difficulty: "Easy",
			},
			{
				Day:        2,
				Activities: []string{"Rest day / Travel day"},
				Duration:   1,
				Difficulty: "Easy",
				Notes:      []string{"Acclimatization day recommended"},
			},
		},
	}

	doc := Render(result)
	require.Len(t, doc.Days, 2)

	first := doc.Days[0]
	assert.Equal(t, "Day 1: Boudhanath Stupa", first.Header)
	assert.Equal(t, "Easy", first.Difficulty)
	assert.Equal(t, []string{
		"Region: Kathmandu Valley",
		"Category: Cultural",
		"Duration: 1 days",
		"Cost: $5",
		"Best Season: Year-round",
	}, first.Details)
	assert.Equal(t, []string{"Explore Boudhanath Stupa"}, first.Activities)
	assert.Empty(t, first.Notes)

	second := doc.Days[1]
	assert.Equal(t, "Day 2", second.Header)
	assert.Empty(t, second.Details)
	assert.Equal(t, []string{"Acclimatization day recommended"}, second.Notes)
}

func TestRender_NilResult(t *testing.T) {
	doc := Render(nil)
	assert.Equal(t, RenderDoc{}, doc)
	assert.Empty(t, doc.Days)
}

package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nepaltrails/trip-planner/internal/types"
)

func attraction(id int, name, category, region, difficulty string, duration int, cost float64) types.Attraction {
	return types.Attraction{
		ID:           id,
		Name:         name,
		Category:     category,
		Region:       region,
		Difficulty:   difficulty,
		DurationDays: duration,
		AvgCostUSD:   cost,
		BestSeason:   "Oct-Nov",
		Rating:       4.5,
	}
}

func TestPlan_RegionRoutingOrder(t *testing.T) {
	selected := []types.Attraction{
		attraction(1, "Everest Base Camp", "Trekking", "Everest Region", "Hard", 12, 1500),
		attraction(2, "Swayambhunath", "Cultural", "Kathmandu Valley", "Easy", 1, 10),
		attraction(3, "Phewa Lake", "Nature", "Pokhara Region", "Easy", 1, 20),
	}

	result := Plan(selected, 14)

	require.GreaterOrEqual(t, len(result.Itinerary), 3)
	assert.Equal(t, "Swayambhunath", result.Itinerary[0].Attraction.Name)
	assert.Equal(t, "Phewa Lake", result.Itinerary[1].Attraction.Name)
	assert.Equal(t, "Everest Base Camp", result.Itinerary[2].Attraction.Name)
}

func TestPlan_HardTrekGetsAcclimatizationDay(t *testing.T) {
	selected := []types.Attraction{
		attraction(1, "Annapurna Circuit", "Trekking", "Annapurna Region", "Hard", 10, 1200),
	}

	result := Plan(selected, 14)

	require.Len(t, result.Itinerary, 1)
	day := result.Itinerary[0]
	assert.Equal(t, 11, day.Duration, "hard trek should carry one extra day")
	assert.Contains(t, day.Notes, "Acclimatization recommended for high altitude")
	assert.Contains(t, day.Notes, "Multi-day trek - consider rest day after completion")
}

func TestPlan_EasyDayHasNoNotes(t *testing.T) {
	selected := []types.Attraction{
		attraction(1, "Boudhanath Stupa", "Cultural", "Kathmandu Valley", "Easy", 1, 5),
	}

	result := Plan(selected, 3)

	require.NotEmpty(t, result.Itinerary)
	assert.Empty(t, result.Itinerary[0].Notes)
}

func TestPlan_BufferDaysFillRemainder(t *testing.T) {
	selected := []types.Attraction{
		attraction(1, "Patan Durbar Square", "Cultural", "Kathmandu Valley", "Easy", 1, 15),
	}

	result := Plan(selected, 3)

	require.Len(t, result.Itinerary, 3)
	for _, day := range result.Itinerary[1:] {
		assert.Nil(t, day.Attraction)
		assert.Equal(t, []string{bufferDayActivity}, day.Activities)
		assert.Equal(t, []string{bufferDayNote}, day.Notes)
		assert.Equal(t, bufferDayCost, day.Cost)
	}
	// Buffer days do not contribute to the summary cost.
	assert.Equal(t, 15.0, result.Summary.TotalCost)
	assert.Equal(t, 3, result.Summary.TotalDays)
}

func TestPlan_SummaryTotals(t *testing.T) {
	selected := []types.Attraction{
		attraction(1, "Swayambhunath", "Cultural", "Kathmandu Valley", "Easy", 1, 10),
		attraction(2, "Phewa Lake", "Nature", "Pokhara Region", "Easy", 2, 40),
		attraction(3, "Bhaktapur", "Cultural", "Kathmandu Valley", "Easy", 1, 30),
	}

	result := Plan(selected, 5)

	assert.Equal(t, 3, result.Summary.AttractionsCount)
	assert.Equal(t, 80.0, result.Summary.TotalCost)
	assert.Equal(t, []string{"Kathmandu Valley", "Pokhara Region"}, result.Summary.RegionsCovered)
	assert.Equal(t, 5, result.Summary.TotalDays)
	assert.Equal(t, 16.0, result.Summary.AverageDailyCost)
}

func TestPlan_StopsWhenDaysExhausted(t *testing.T) {
	selected := []types.Attraction{
		attraction(1, "Short Trek", "Trekking", "Kathmandu Valley", "Moderate", 3, 300),
		attraction(2, "Chitwan Safari", "Wildlife", "Chitwan", "Easy", 3, 250),
	}

	result := Plan(selected, 4)

	// The second attraction starts on day 4 and still fits; a third would not.
	require.Len(t, result.Itinerary, 2)
	assert.Equal(t, 1, result.Itinerary[0].Day)
	assert.Equal(t, 4, result.Itinerary[1].Day)
	assert.Equal(t, 4, result.Summary.TotalDays)
}

func TestPlan_UnknownRegionSchedulesLast(t *testing.T) {
	selected := []types.Attraction{
		attraction(1, "Mystery Spot", "Nature", "Hidden Valley", "Easy", 1, 10),
		attraction(2, "Lumbini Gardens", "Cultural", "Lumbini", "Easy", 1, 20),
	}

	result := Plan(selected, 5)

	require.GreaterOrEqual(t, len(result.Itinerary), 2)
	assert.Equal(t, "Lumbini Gardens", result.Itinerary[0].Attraction.Name)
	assert.Equal(t, "Mystery Spot", result.Itinerary[1].Attraction.Name)
}

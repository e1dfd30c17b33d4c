package recommend

import (
	"fmt"
	"testing"

	"github.com/nepaltrails/trip-planner/internal/types"
)

func benchCatalog(n int) []types.Attraction {
	categories := []string{"Trekking", "Cultural", "Wildlife", "Adventure Sports"}
	regions := []string{"Everest Region", "Annapurna Region", "Kathmandu Valley", "Pokhara Region", "Chitwan"}
	difficulties := []string{"Easy", "Moderate", "Hard"}

	list := make([]types.Attraction, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, types.Attraction{
			ID:           i + 1,
			Name:         fmt.Sprintf("Attraction %d", i+1),
			Category:     categories[i%len(categories)],
			Region:       regions[i%len(regions)],
			Difficulty:   difficulties[i%len(difficulties)],
			BestSeason:   "Year-round",
			Rating:       3.5 + float64(i%15)*0.1,
			NumReviews:   100 + i*37,
			AvgCostUSD:   float64(20 + i*13%1500),
			DurationDays: 1 + i%14,
		})
	}
	return list
}

func BenchmarkFit(b *testing.B) {
	catalog := benchCatalog(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Fit(catalog)
	}
}

func BenchmarkEngine_Similar(b *testing.B) {
	engine := Fit(benchCatalog(500))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := engine.Similar(1+i%500, 5); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEngine_ByPreferences(b *testing.B) {
	engine := Fit(benchCatalog(500))
	query := types.PreferenceQuery{Category: "Trekking", MaxCost: 1000, TopN: 10}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.ByPreferences(query)
	}
}

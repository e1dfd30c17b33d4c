package itinerary

import (
	"math"
	"sort"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// regionOrder drives logical routing: low numbers are scheduled first so the
// trip flows outward from the Kathmandu Valley.
var regionOrder = map[string]int{
	"Kathmandu Valley": 1,
	"Pokhara Region":   2,
	"Everest Region":   3,
	"Annapurna Region": 2,
	"Mustang Region":   4,
	"Langtang Region":  3,
	"Manaslu Region":   3,
	"Chitwan":          5,
	"Lumbini":          5,
	"Far West Nepal":   6,
}

const unknownRegionOrder = 10

const (
	bufferDayCost     = 50.0
	bufferDayActivity = "Flexible day - explore local area or rest"
	bufferDayNote     = "Buffer day for rest or spontaneous activities"
)

// Plan builds a day-by-day itinerary from the selected attractions. The
// selection is ordered by region routing order, then difficulty, then
// duration; Hard/Extreme treks get an extra acclimatization day; buffer days
// fill the remainder of the requested trip length.
func Plan(selected []types.Attraction, days int) types.ItineraryResult {
	ordered := make([]types.Attraction, len(selected))
	copy(ordered, selected)
	sort.SliceStable(ordered, func(i, j int) bool {
		oi, oj := routingOrder(ordered[i].Region), routingOrder(ordered[j].Region)
		if oi != oj {
			return oi < oj
		}
		if ordered[i].Difficulty != ordered[j].Difficulty {
			return ordered[i].Difficulty < ordered[j].Difficulty
		}
		return ordered[i].DurationDays < ordered[j].DurationDays
	})

	var plan []types.DayPlan
	currentDay := 1
	totalCost := 0.0

	for _, a := range ordered {
		daysNeeded := a.DurationDays
		if daysNeeded < 1 {
			daysNeeded = 1
		}
		hardTrek := (a.Difficulty == "Hard" || a.Difficulty == "Extreme") && a.Category == "Trekking"
		if hardTrek {
			daysNeeded = a.DurationDays + 1
		}

		if currentDay > days {
			break
		}

		ref := a.Ref()
		entry := types.DayPlan{
			Day:        currentDay,
			Attraction: &ref,
			Activities: []string{a.Name},
			Duration:   daysNeeded,
			Difficulty: a.Difficulty,
			Cost:       a.AvgCostUSD,
			BestSeason: a.BestSeason,
			Notes:      []string{},
		}

		if a.Difficulty == "Hard" || a.Difficulty == "Extreme" {
			entry.Notes = append(entry.Notes, "Acclimatization recommended for high altitude")
		}
		if a.Category == "Trekking" && daysNeeded > 3 {
			entry.Notes = append(entry.Notes, "Multi-day trek - consider rest day after completion")
		}

		plan = append(plan, entry)
		totalCost += a.AvgCostUSD
		currentDay += daysNeeded
	}

	// Fill the remaining requested days with flexible buffer days.
	for currentDay <= days && len(plan) < days {
		plan = append(plan, types.DayPlan{
			Day:        currentDay,
			Attraction: nil,
			Activities: []string{bufferDayActivity},
			Duration:   1,
			Difficulty: "Easy",
			Cost:       bufferDayCost,
			BestSeason: "Year-round",
			Notes:      []string{bufferDayNote},
		})
		currentDay++
	}

	totalDays := currentDay - 1
	if totalDays > days {
		totalDays = days
	}

	avg := 0.0
	if totalDays > 0 {
		avg = round2(totalCost / float64(totalDays))
	}

	return types.ItineraryResult{
		Itinerary: plan,
		Summary: types.ItinerarySummary{
			TotalDays:        totalDays,
			TotalCost:        round2(totalCost),
			AverageDailyCost: avg,
			AttractionsCount: len(ordered),
			RegionsCovered:   uniqueRegions(ordered),
		},
	}
}

func routingOrder(region string) int {
	if o, ok := regionOrder[region]; ok {
		return o
	}
	return unknownRegionOrder
}

// uniqueRegions preserves first-appearance order over the routed selection.
func uniqueRegions(ordered []types.Attraction) []string {
	seen := make(map[string]struct{}, len(ordered))
	regions := make([]string, 0, len(ordered))
	for _, a := range ordered {
		if _, ok := seen[a.Region]; ok {
			continue
		}
		seen[a.Region] = struct{}{}
		regions = append(regions, a.Region)
	}
	return regions
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

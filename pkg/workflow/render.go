package workflow

import (
	"fmt"
	"strings"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// RenderDoc is a toolkit-neutral description of an itinerary display. It
// carries strings and lists only, so any front end (terminal, web template)
// can print it without knowing the domain types.
type RenderDoc struct {
	Summary SummaryView
	Days    []DayView
}

// SummaryView holds the four summary counters and the joined region list.
type SummaryView struct {
	TotalDays        string
	TotalCost        string
	AverageDailyCost string
	AttractionsCount string
	Regions          string
}

// DayView is one day's section. Details is empty for days without an
// assigned attraction, Notes is empty when the day carries no notes.
type DayView struct {
	Header     string
	Difficulty string
	Details    []string
	Activities []string
	Notes      []string
}

// Render converts an itinerary result into display instructions. It is a
// pure function: no controller state is read or written.
func Render(result *types.ItineraryResult) RenderDoc {
	if result == nil {
		return RenderDoc{}
	}

	doc := RenderDoc{
		Summary: SummaryView{
			TotalDays:        fmt.Sprintf("%d", result.Summary.TotalDays),
			TotalCost:        fmt.Sprintf("$%.0f", result.Summary.TotalCost),
			AverageDailyCost: fmt.Sprintf("$%.0f", result.Summary.AverageDailyCost),
			AttractionsCount: fmt.Sprintf("%d", result.Summary.AttractionsCount),
			Regions:          strings.Join(result.Summary.RegionsCovered, ", "),
		},
	}

	for _, day := range result.Itinerary {
		view := DayView{
			Header:     fmt.Sprintf("Day %d", day.Day),
			Difficulty: day.Difficulty,
			Activities: day.Activities,
		}
		if day.Attraction != nil {
			view.Header = fmt.Sprintf("Day %d: %s", day.Day, day.Attraction.Name)
			view.Details = []string{
				fmt.Sprintf("Region: %s", day.Attraction.Region),
				fmt.Sprintf("Category: %s", day.Attraction.Category),
				fmt.Sprintf("Duration: %d days", day.Duration),
				fmt.Sprintf("Cost: $%.0f", day.Cost),
				fmt.Sprintf("Best Season: %s", day.BestSeason),
			}
		}
		if len(day.Notes) > 0 {
			view.Notes = day.Notes
		}
		doc.Days = append(doc.Days, view)
	}
	return doc
}

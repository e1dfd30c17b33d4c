package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nepaltrails/trip-planner/pkg/tripapi"
	"github.com/nepaltrails/trip-planner/pkg/workflow"
)

// itineraryCmd runs the selection workflow end to end: select the given
// attraction IDs, request an itinerary and print the rendered result.
var itineraryCmd = &cobra.Command{
	Use:   "itinerary",
	Short: "Generate a day-by-day itinerary for selected attractions",
	Run: func(cmd *cobra.Command, args []string) {
		ids, _ := cmd.Flags().GetIntSlice("select")
		days, _ := cmd.Flags().GetInt("days")

		ctrl, err := workflow.NewController(apiClient(cmd))
		if err != nil {
			fail(err)
		}
		for _, id := range ids {
			ctrl.ToggleSelection(id)
		}

		result, err := ctrl.RequestItinerary(cmd.Context(), days)
		if err != nil {
			var apiErr *tripapi.APIError
			switch {
			case errors.Is(err, workflow.ErrEmptySelection):
				fail(errors.New("select at least one attraction with --select"))
			case errors.As(err, &apiErr):
				fail(fmt.Errorf("server rejected the request: %s", apiErr.Message))
			default:
				fail(err)
			}
		}

		printDoc(workflow.Render(result))
	},
}

func printDoc(doc workflow.RenderDoc) {
	fmt.Println("Trip Summary")
	fmt.Printf("  Days:        %s\n", doc.Summary.TotalDays)
	fmt.Printf("  Total cost:  %s\n", doc.Summary.TotalCost)
	fmt.Printf("  Daily cost:  %s\n", doc.Summary.AverageDailyCost)
	fmt.Printf("  Attractions: %s\n", doc.Summary.AttractionsCount)
	fmt.Printf("  Regions:     %s\n", doc.Summary.Regions)

	for _, day := range doc.Days {
		fmt.Printf("\n%s [%s]\n", day.Header, day.Difficulty)
		for _, d := range day.Details {
			fmt.Printf("  %s\n", d)
		}
		for _, a := range day.Activities {
			fmt.Printf("  - %s\n", a)
		}
		if len(day.Notes) > 0 {
			fmt.Println("  Notes:")
			for _, n := range day.Notes {
				fmt.Printf("    * %s\n", n)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(itineraryCmd)

	itineraryCmd.Flags().IntSlice("select", nil, "Attraction IDs to include")
	itineraryCmd.Flags().Int("days", 5, "Trip length in days (3-14)")
}

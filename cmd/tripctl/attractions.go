package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// attractionsCmd lists the catalog with optional filters.
var attractionsCmd = &cobra.Command{
	Use:   "attractions",
	Short: "List catalog attractions",
	Run: func(cmd *cobra.Command, args []string) {
		category, _ := cmd.Flags().GetString("category")
		region, _ := cmd.Flags().GetString("region")
		maxCost, _ := cmd.Flags().GetFloat64("max-cost")
		minRating, _ := cmd.Flags().GetFloat64("min-rating")

		client := apiClient(cmd)
		list, err := client.ListAttractions(cmd.Context(), types.AttractionFilter{
			Category:  category,
			Region:    region,
			MaxCost:   maxCost,
			MinRating: minRating,
		})
		if err != nil {
			fail(err)
		}

		fmt.Printf("%d attractions\n\n", len(list))
		for _, a := range list {
			fmt.Printf("%3d  %-40s %-22s %-18s %.1f★  $%.0f  %dd  %s\n",
				a.ID, a.Name, a.Category, a.Region, a.Rating, a.AvgCostUSD, a.DurationDays, a.Difficulty)
		}
	},
}

func init() {
	rootCmd.AddCommand(attractionsCmd)

	attractionsCmd.Flags().String("category", "", "Filter by category")
	attractionsCmd.Flags().String("region", "", "Filter by region")
	attractionsCmd.Flags().Float64("max-cost", 0, "Maximum cost in USD")
	attractionsCmd.Flags().Float64("min-rating", 0, "Minimum rating")
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// similarCmd shows content-based neighbours of one attraction.
var similarCmd = &cobra.Command{
	Use:   "similar <attraction-id>",
	Short: "Show attractions similar to the given one",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fail(fmt.Errorf("attraction ID must be an integer: %w", err))
		}
		topN, _ := cmd.Flags().GetInt("top-n")

		client := apiClient(cmd)
		res, err := client.Similar(cmd.Context(), id, topN)
		if err != nil {
			fail(err)
		}

		fmt.Printf("Similar to %s (%s, %s):\n\n", res.Original.Name, res.Original.Category, res.Original.Region)
		for _, rec := range res.Recommendations {
			fmt.Printf("%3d  %-40s %-22s %.1f★  $%.0f  score %.3f\n",
				rec.ID, rec.Name, rec.Category, rec.Rating, rec.AvgCostUSD, rec.SimilarityScore)
		}
	},
}

// recommendCmd ranks the catalog against stated preferences.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend attractions for your preferences",
	Run: func(cmd *cobra.Command, args []string) {
		category, _ := cmd.Flags().GetString("category")
		maxCost, _ := cmd.Flags().GetFloat64("max-cost")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		topN, _ := cmd.Flags().GetInt("top-n")

		client := apiClient(cmd)
		recs, err := client.RecommendByPreferences(cmd.Context(), types.PreferenceQuery{
			Category:   category,
			MaxCost:    maxCost,
			Difficulty: difficulty,
			TopN:       topN,
		})
		if err != nil {
			fail(err)
		}

		for _, rec := range recs {
			fmt.Printf("%3d  %-40s %-22s %-18s %.1f★  $%.0f\n",
				rec.ID, rec.Name, rec.Category, rec.Region, rec.Rating, rec.AvgCostUSD)
		}
	},
}

func init() {
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(recommendCmd)

	similarCmd.Flags().Int("top-n", 5, "Number of recommendations")

	recommendCmd.Flags().String("category", "", "Preferred category")
	recommendCmd.Flags().Float64("max-cost", 0, "Budget ceiling in USD")
	recommendCmd.Flags().String("difficulty", "", "Preferred difficulty")
	recommendCmd.Flags().Int("top-n", 10, "Number of recommendations")
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// statsCmd prints the aggregate catalog snapshot.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Run: func(cmd *cobra.Command, args []string) {
		client := apiClient(cmd)
		st, err := client.Stats(cmd.Context())
		if err != nil {
			fail(err)
		}

		fmt.Printf("Attractions: %d\n", st.TotalAttractions)
		fmt.Printf("Average rating: %.2f\n", st.AvgRating)
		fmt.Printf("Average cost: $%.2f\n", st.AvgCost)
		fmt.Printf("Cost range: $%.0f - $%.0f\n\n", st.CostRange.Min, st.CostRange.Max)

		fmt.Println("By category:")
		printCounts(st.Categories)
		fmt.Println("\nBy region:")
		printCounts(st.Regions)
	},
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-25s %d\n", k, counts[k])
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

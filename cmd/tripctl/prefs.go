package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nepaltrails/trip-planner/pkg/workflow"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Save or load filter preferences",
}

// prefsSaveCmd writes preferences remotely and to the local fallback store.
var prefsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save preferences for this session",
	Run: func(cmd *cobra.Command, args []string) {
		category, _ := cmd.Flags().GetString("category")
		maxCost, _ := cmd.Flags().GetFloat64("max-cost")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		regions, _ := cmd.Flags().GetStringSlice("regions")
		sessionID, _ := cmd.Flags().GetString("session")

		ctrl := newController(cmd, sessionID)
		ctrl.SavePreferences(cmd.Context(), workflow.Preferences{
			Category:   category,
			MaxCost:    maxCost,
			Difficulty: difficulty,
			Regions:    regions,
		})
		fmt.Printf("Preferences saved (session %s)\n", ctrl.SessionID())
	},
}

// prefsLoadCmd loads preferences, falling back to the local store when the
// server is unreachable or holds nothing for the session.
var prefsLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load saved preferences",
	Run: func(cmd *cobra.Command, args []string) {
		sessionID, _ := cmd.Flags().GetString("session")

		ctrl := newController(cmd, sessionID)
		p := ctrl.LoadPreferences(cmd.Context())

		if p.Category == "" && p.MaxCost == 0 && p.Difficulty == "" && len(p.Regions) == 0 {
			fmt.Println("No saved preferences found.")
			return
		}
		if p.Category != "" {
			fmt.Printf("Category:   %s\n", p.Category)
		}
		if p.MaxCost > 0 {
			fmt.Printf("Max cost:   $%.0f\n", p.MaxCost)
		}
		if p.Difficulty != "" {
			fmt.Printf("Difficulty: %s\n", p.Difficulty)
		}
		if len(p.Regions) > 0 {
			fmt.Printf("Regions:    %s\n", strings.Join(p.Regions, ", "))
		}
	},
}

func newController(cmd *cobra.Command, sessionID string) *workflow.Controller {
	opts := []workflow.Option{}
	if sessionID != "" {
		opts = append(opts, workflow.WithSessionID(sessionID))
	}
	ctrl, err := workflow.NewController(apiClient(cmd), opts...)
	if err != nil {
		fail(err)
	}
	return ctrl
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsSaveCmd)
	prefsCmd.AddCommand(prefsLoadCmd)

	prefsCmd.PersistentFlags().String("session", "", "Session ID (generated when empty)")

	prefsSaveCmd.Flags().String("category", "", "Preferred category")
	prefsSaveCmd.Flags().Float64("max-cost", 0, "Budget ceiling in USD")
	prefsSaveCmd.Flags().String("difficulty", "", "Preferred difficulty")
	prefsSaveCmd.Flags().StringSlice("regions", nil, "Preferred regions")
}

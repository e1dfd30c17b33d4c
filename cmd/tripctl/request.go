package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nepaltrails/trip-planner/internal/types"
)

// requestCmd submits a conversion request. Contact details come from flags
// instead of interactive prompts.
var requestCmd = &cobra.Command{
	Use:   "request <email|expert|quote>",
	Short: "Request an itinerary email, expert consultation or quote",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")
		ids, _ := cmd.Flags().GetIntSlice("select")

		userData := map[string]string{"email": email}
		if name != "" {
			userData["name"] = name
		}
		if phone != "" {
			userData["phone"] = phone
		}

		client := apiClient(cmd)
		res, err := client.RequestConversion(cmd.Context(), types.ConversionRequest{
			Type:          args[0],
			UserData:      userData,
			AttractionIDs: ids,
		})
		if err != nil {
			fail(err)
		}

		fmt.Println(res.Message)
	},
}

func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().String("email", "", "Contact email address")
	requestCmd.Flags().String("name", "", "Contact name")
	requestCmd.Flags().String("phone", "", "Contact phone number")
	requestCmd.Flags().IntSlice("select", nil, "Attraction IDs for the itinerary or quote")
	_ = requestCmd.MarkFlagRequired("email")
}

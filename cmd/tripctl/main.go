// tripctl is a terminal client for the trip planner API. It drives the same
// workflow controller the library exposes: browse the catalog, ask for
// recommendations, pick attractions and generate a day-by-day itinerary.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nepaltrails/trip-planner/pkg/tripapi"
)

var rootCmd = &cobra.Command{
	Use:   "tripctl",
	Short: "tripctl plans multi-day Nepal trips from the command line",
	Long:  `tripctl browses the attraction catalog, requests recommendations and generates day-by-day itineraries against a trip planner server.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "Base URL of the trip planner server")
	rootCmd.PersistentFlags().Duration("timeout", 15*time.Second, "Per-request timeout")
}

// apiClient builds the client from the persistent flags.
func apiClient(cmd *cobra.Command) *tripapi.Client {
	server, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return tripapi.NewClient(server, tripapi.WithTimeout(timeout))
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func main() {
	Execute()
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rescueline/dispatch-cli/internal/livestatus"
	"github.com/rescueline/dispatch-cli/internal/model"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Rank hospitals for an emergency pickup",
	Long: `Rank roster hospitals for a pickup location and patient condition.

Facilities are filtered by the specialty the condition requires, then
scored on distance, bed availability, load, specialty match, equipment,
and staffing against simulated live status.

Examples:
  # Cardiac emergency in central Delhi
  allocate --lat 28.6139 --lng 77.2090 --condition cardiac

  # Reproducible run with JSON output
  allocate --lat 28.61 --lng 77.21 --condition trauma --seed 42 --format json`,
	RunE: runAllocate,
}

func init() {
	f := allocateCmd.Flags()
	f.Float64("lat", 0, "pickup latitude")
	f.Float64("lng", 0, "pickup longitude")
	f.String("condition", "general", "patient condition (cardiac, stroke, trauma, pediatric, general)")
	f.Int64("seed", 0, "random seed for the status simulator (0=time-based)")
	f.String("format", "table", "output format: table or json")
	_ = allocateCmd.MarkFlagRequired("lat")
	_ = allocateCmd.MarkFlagRequired("lng")

	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate("core"); err != nil {
		return err
	}

	env, err := initEnv()
	if err != nil {
		return err
	}

	lat, _ := cmd.Flags().GetFloat64("lat")
	lng, _ := cmd.Flags().GetFloat64("lng")
	condition, _ := cmd.Flags().GetString("condition")
	seed, _ := cmd.Flags().GetInt64("seed")
	format, _ := cmd.Flags().GetString("format")

	if format != "table" && format != "json" {
		return eris.Errorf("allocate: --format must be table or json (got %q)", format)
	}

	store := livestatus.NewStore()
	livestatus.NewSimulator(store, env.roster, newRand(seed)).RefreshAll()

	pickup := model.Coordinate{Latitude: lat, Longitude: lng}
	result, err := env.engine.Allocate(pickup, condition, store.Snapshot())
	if err != nil {
		return err
	}

	zap.L().Info("allocation complete",
		zap.String("condition", condition),
		zap.Bool("allocated", result.Primary != nil),
	)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printAllocation(result)
	return nil
}

func printAllocation(result model.AllocationResult) {
	if result.Primary == nil {
		fmt.Printf("No qualifying facility for condition %q.\n", result.Condition)
		return
	}

	fmt.Printf("Condition: %s\n\n", result.Condition)
	printRecommendation("Primary", *result.Primary)
	for _, alt := range result.Alternatives {
		printRecommendation(fmt.Sprintf("Alternative %d", alt.Rank-1), alt)
	}
}

func printRecommendation(label string, rec model.Recommendation) {
	fmt.Printf("%s: %s (%s)\n", label, rec.Facility.Name, rec.Facility.ID)
	fmt.Printf("  Score:    %.2f\n", rec.Score)
	fmt.Printf("  Distance: %.1f km\n", rec.DistanceKM)
	fmt.Printf("  ETA:      %.1f min\n", rec.ETAMinutes)
	fmt.Printf("  Beds:     %d emergency / %d ICU available\n",
		rec.Status.AvailableEmergencyBeds, rec.Status.AvailableICUBeds)
	fmt.Printf("  Reason:   %s\n\n", rec.Reason())
}

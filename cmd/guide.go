package main

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/rescueline/dispatch-cli/internal/vitals"
)

var guideCmd = &cobra.Command{
	Use:   "guide {cpr|bleeding}",
	Short: "Print bystander first-aid guidance",
	Long: `Print step-by-step first-aid guidance for a bystander waiting
for the ambulance.

Supported guides:
  cpr       hands-only CPR walkthrough
  bleeding  severe bleeding control`,
	Args: cobra.ExactArgs(1),
	RunE: runGuide,
}

func init() {
	rootCmd.AddCommand(guideCmd)
}

func runGuide(_ *cobra.Command, args []string) error {
	switch args[0] {
	case "cpr":
		guidance := vitals.GetCPRGuidance()
		fmt.Println("CPR walkthrough")
		for _, step := range guidance.Steps {
			fmt.Printf("  %d. %s (%s)\n", step.Step, step.Instruction, step.Duration)
		}
		fmt.Printf("Rate:  %s\n", guidance.Rate)
		fmt.Printf("Depth: %s\n", guidance.Depth)
	case "bleeding":
		guidance := vitals.GetBleedingControlGuidance()
		fmt.Println("Bleeding control")
		for i, step := range guidance.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		fmt.Println("Pressure points:")
		areas := make([]string, 0, len(guidance.PressurePoints))
		for area := range guidance.PressurePoints {
			areas = append(areas, area)
		}
		sort.Strings(areas)
		for _, area := range areas {
			fmt.Printf("  %-5s %s\n", area, guidance.PressurePoints[area])
		}
	default:
		return eris.Errorf("guide: unknown guide %q (want cpr or bleeding)", args[0])
	}
	return nil
}

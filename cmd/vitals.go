package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/rescueline/dispatch-cli/internal/model"
	"github.com/rescueline/dispatch-cli/internal/vitals"
)

var vitalsCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Assess patient vital signs",
	Long: `Classify a set of vital-sign readings against reference bands,
derive the overall risk tier, predict a candidate condition, and print
the matching first-response protocol steps.

Only the vitals you pass are assessed; the rest are left out of the
per-vital report but the condition rules fall back to nominal values.

Examples:
  vitals --hr 145 --systolic 85
  vitals --hr 40 --spo2 85 --format json`,
	RunE: runVitals,
}

func init() {
	f := vitalsCmd.Flags()
	f.Float64("hr", 0, "heart rate (bpm)")
	f.Float64("systolic", 0, "systolic blood pressure (mmHg)")
	f.Float64("diastolic", 0, "diastolic blood pressure (mmHg)")
	f.Float64("spo2", 0, "oxygen saturation (%)")
	f.Float64("rr", 0, "respiratory rate (breaths/min)")
	f.Float64("temp", 0, "body temperature (C)")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(vitalsCmd)
}

func runVitals(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("vitals: --format must be table or json (got %q)", format)
	}

	snapshot := model.VitalsSnapshot{}
	flags := map[string]string{
		"hr":        model.VitalHeartRate,
		"systolic":  model.VitalSystolic,
		"diastolic": model.VitalDiastolic,
		"spo2":      model.VitalOxygenSaturation,
		"rr":        model.VitalRespiratoryRate,
		"temp":      model.VitalTemperature,
	}
	for flag, vital := range flags {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetFloat64(flag)
			snapshot[vital] = v
		}
	}
	if len(snapshot) == 0 {
		return eris.New("vitals: at least one vital sign flag is required")
	}

	assessment := vitals.NewClassifier().Assess(snapshot)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}

	printAssessment(assessment)
	return nil
}

func printAssessment(a model.VitalsAssessment) {
	for name, status := range a.VitalStatus {
		fmt.Printf("%-28s %8.1f  [%s] %s\n", name, status.Value, status.Level, status.Message)
	}
	fmt.Printf("\nRisk level: %s\n", a.RiskLevel)

	if a.PredictedCondition != nil {
		fmt.Printf("Predicted condition: %s\n", *a.PredictedCondition)
	}
	if len(a.RecommendedActions) > 0 {
		fmt.Println("\nImmediate actions:")
		for i, action := range a.RecommendedActions {
			fmt.Printf("  %d. %s\n", i+1, action)
		}
	}
	if len(a.MedicationSuggestions) > 0 {
		fmt.Println("\nMedication suggestions:")
		for _, med := range a.MedicationSuggestions {
			fmt.Printf("  - %s\n", med)
		}
	}
	if a.EscalateToDoctor {
		fmt.Println("\nEscalate to doctor immediately.")
	}
}

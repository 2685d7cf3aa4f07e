package main

import (
	"fmt"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rescueline/dispatch-cli/internal/livestatus"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the live facility status simulator",
	Long: `Seed simulated live status for every roster facility and print
the table, optionally refreshing on an interval until interrupted.

Examples:
  # One snapshot
  simulate

  # Reproducible snapshot
  simulate --seed 42

  # Keep refreshing every config-interval seconds
  simulate --watch`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.Int64("seed", 0, "random seed (0=time-based)")
	f.Bool("watch", false, "keep refreshing until interrupted")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("simulate"); err != nil {
		return err
	}

	env, err := initEnv()
	if err != nil {
		return err
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	watch, _ := cmd.Flags().GetBool("watch")

	store := livestatus.NewStore()
	sim := livestatus.NewSimulator(store, env.roster, newRand(seed))
	sim.RefreshAll()
	printStatusTable(env, store)

	if !watch {
		return nil
	}

	interval := time.Duration(cfg.Simulator.RefreshSecs) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("simulate: stopped")
			return nil
		case <-ticker.C:
			sim.RefreshAll()
			printStatusTable(env, store)
		}
	}
}

func printStatusTable(env *dispatchEnv, store *livestatus.Store) {
	snapshot := store.Snapshot()

	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("%-6s %-40s %6s %5s %5s %6s %8s\n",
		"ID", "Facility", "Load", "ER", "ICU", "Wait", "Doctors")
	for _, id := range ids {
		status := snapshot[id]
		name := id
		if f, ok := env.engine.Facility(id); ok {
			name = f.Name
		}
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Printf("%-6s %-40s %5.0f%% %5d %5d %5dm %8d\n",
			id, name,
			status.CurrentLoad*100,
			status.AvailableEmergencyBeds,
			status.AvailableICUBeds,
			status.AverageWaitMinutes,
			status.Staffing.EmergencyDoctors,
		)
	}
	fmt.Println()
}

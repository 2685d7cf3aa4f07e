package main

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/rescueline/dispatch-cli/internal/allocator"
	"github.com/rescueline/dispatch-cli/internal/model"
	"github.com/rescueline/dispatch-cli/internal/refdata"
	"github.com/rescueline/dispatch-cli/internal/routing"
	"github.com/rescueline/dispatch-cli/internal/vitals"
)

// dispatchEnv bundles the loaded reference data and the decision
// components shared by every command.
type dispatchEnv struct {
	roster     []model.Facility
	traffic    refdata.Traffic
	engine     *allocator.Engine
	planner    *routing.Planner
	classifier *vitals.Classifier
}

// initEnv loads the reference fixtures and wires the decision
// components from config.
func initEnv() (*dispatchEnv, error) {
	roster, err := refdata.LoadFacilities(cfg.Data.FacilitiesPath)
	if err != nil {
		return nil, err
	}
	traffic, err := refdata.LoadTraffic(cfg.Data.TrafficPath)
	if err != nil {
		return nil, err
	}

	zap.L().Info("reference data loaded",
		zap.Int("facilities", len(roster)),
		zap.Int("congestion_zones", len(traffic.CongestionZones)),
		zap.Int("accident_hotspots", len(traffic.IncidentHotspots)),
	)

	return &dispatchEnv{
		roster:     roster,
		traffic:    traffic,
		engine:     allocator.NewEngine(roster, cfg.Routing.ArrivalSpeedKMH),
		planner:    routing.NewPlanner(newRand(cfg.Simulator.Seed), cfg.Routing.AverageSpeedKMH),
		classifier: vitals.NewClassifier(),
	}, nil
}

// newRand builds the shared randomness source. Seed 0 means
// non-reproducible.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

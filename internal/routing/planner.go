// Package routing builds naive waypoint paths that nudge around known
// congestion points. It is a stand-in for real road-graph routing: the
// detour waypoints are random offsets, not drivable geometry.
package routing

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rotisserie/eris"

	"github.com/rescueline/dispatch-cli/internal/geo"
	"github.com/rescueline/dispatch-cli/internal/model"
)

const (
	// A congestion zone triggers a detour when it is this close to the
	// pickup point and at least this congested. The check runs against
	// the start only, never the end or midpoint; that asymmetry is
	// documented existing behavior.
	congestionRadiusKM  = 2.0
	congestionThreshold = 0.7

	// avoidanceOffsetDeg displaces the detour waypoint from the zone,
	// sign chosen independently at random per axis.
	avoidanceOffsetDeg = 0.01

	// alertRadiusKM flags incident hotspots near any waypoint.
	alertRadiusKM = 1.0

	// Alternates: per-index offset step and ETA jitter bounds.
	alternateCount     = 2
	alternateOffsetDeg = 0.005
	jitterMinMinutes   = 2
	jitterMaxMinutes   = 8
)

// Planner produces waypoint paths and travel-time estimates. The
// randomness source is injected so tests can fix outcomes.
type Planner struct {
	rng      *rand.Rand
	speedKMH float64
}

// NewPlanner creates a Planner. speedKMH is the assumed average
// city-traffic travel speed used for time estimates.
func NewPlanner(rng *rand.Rand, speedKMH float64) *Planner {
	return &Planner{rng: rng, speedKMH: speedKMH}
}

// Plan builds the path from start to end, detouring around congestion
// zones judged to affect it, and flags incident hotspots near the
// resulting waypoints.
func (p *Planner) Plan(start, end model.Coordinate, zones []model.CongestionZone, hotspots []model.IncidentHotspot) (model.RouteResult, error) {
	if err := start.Validate(); err != nil {
		return model.RouteResult{}, eris.Wrap(err, "routing: start")
	}
	if err := end.Validate(); err != nil {
		return model.RouteResult{}, eris.Wrap(err, "routing: end")
	}

	waypoints := []model.Coordinate{start}
	for _, zone := range zones {
		if p.affectsRoute(start, zone) {
			waypoints = append(waypoints, p.avoidanceWaypoint(zone))
		}
	}
	waypoints = append(waypoints, end)

	return model.RouteResult{
		Waypoints:  waypoints,
		ETAMinutes: p.estimateMinutes(waypoints),
		Alerts:     alertsNear(waypoints, hotspots),
	}, nil
}

// Alternatives generates exactly two fallback paths through a random
// offset waypoint. They exist to give the caller choice, not to be
// optimal.
func (p *Planner) Alternatives(start, end model.Coordinate) ([]model.AlternativeRoute, error) {
	if err := start.Validate(); err != nil {
		return nil, eris.Wrap(err, "routing: start")
	}
	if err := end.Validate(); err != nil {
		return nil, eris.Wrap(err, "routing: end")
	}

	alternatives := make([]model.AlternativeRoute, 0, alternateCount)
	for i := 0; i < alternateCount; i++ {
		step := alternateOffsetDeg * float64(i+1)
		waypoint := model.Coordinate{
			Latitude:  start.Latitude + step*p.randomSign(),
			Longitude: start.Longitude + step*p.randomSign(),
		}
		route := []model.Coordinate{start, waypoint, end}

		jitter := float64(p.rng.Intn(jitterMaxMinutes-jitterMinMinutes+1) + jitterMinMinutes)
		alternatives = append(alternatives, model.AlternativeRoute{
			Waypoints:   route,
			ETAMinutes:  p.estimateMinutes(route) + jitter,
			Description: fmt.Sprintf("Alternative route %d", i+1),
		})
	}

	return alternatives, nil
}

// affectsRoute approximates whether the direct path crosses the zone.
// It is a proximity check on the start point, not a segment
// intersection test; keep it that way to preserve behavior.
func (p *Planner) affectsRoute(start model.Coordinate, zone model.CongestionZone) bool {
	return geo.HaversineKM(start, zone.Location) < congestionRadiusKM &&
		zone.CongestionLevel > congestionThreshold
}

func (p *Planner) avoidanceWaypoint(zone model.CongestionZone) model.Coordinate {
	return model.Coordinate{
		Latitude:  zone.Location.Latitude + avoidanceOffsetDeg*p.randomSign(),
		Longitude: zone.Location.Longitude + avoidanceOffsetDeg*p.randomSign(),
	}
}

func (p *Planner) randomSign() float64 {
	if p.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// estimateMinutes converts the leg-sum path length into minutes at the
// configured speed, rounded to one decimal.
func (p *Planner) estimateMinutes(waypoints []model.Coordinate) float64 {
	minutes := geo.PathLengthKM(waypoints) / p.speedKMH * 60
	return math.Round(minutes*10) / 10
}

// alertsNear flags every hotspot within alertRadiusKM of any waypoint,
// one alert per waypoint/hotspot pair.
func alertsNear(waypoints []model.Coordinate, hotspots []model.IncidentHotspot) []model.TrafficAlert {
	var alerts []model.TrafficAlert
	for _, point := range waypoints {
		for _, hotspot := range hotspots {
			if geo.HaversineKM(point, hotspot.Location) < alertRadiusKM {
				alerts = append(alerts, model.TrafficAlert{
					Type:     "accident",
					Severity: hotspot.Severity,
					Hotspot:  hotspot,
					Message:  fmt.Sprintf("Accident reported - %s severity", hotspot.Severity),
				})
			}
		}
	}
	return alerts
}

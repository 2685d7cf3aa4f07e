// Package dispatch ties the decision components together into emergency
// lifecycle management: create an emergency, track vitals en route, and
// hand off a report to the receiving facility.
package dispatch

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/rescueline/dispatch-cli/internal/allocator"
	"github.com/rescueline/dispatch-cli/internal/livestatus"
	"github.com/rescueline/dispatch-cli/internal/model"
	"github.com/rescueline/dispatch-cli/internal/refdata"
	"github.com/rescueline/dispatch-cli/internal/routing"
	"github.com/rescueline/dispatch-cli/internal/vitals"
)

// ErrNotFound is returned for lookups of unknown emergency IDs.
var ErrNotFound = eris.New("dispatch: emergency not found")

// Coordinator runs the full dispatch flow over in-memory emergency
// records. Records do not survive a restart.
type Coordinator struct {
	engine     *allocator.Engine
	planner    *routing.Planner
	classifier *vitals.Classifier
	status     *livestatus.Store
	traffic    refdata.Traffic

	mu          sync.RWMutex
	emergencies map[string]*model.Emergency
	histories   map[string][]model.VitalsSnapshot
}

// NewCoordinator wires the decision components into a Coordinator.
func NewCoordinator(engine *allocator.Engine, planner *routing.Planner, classifier *vitals.Classifier, status *livestatus.Store, traffic refdata.Traffic) *Coordinator {
	return &Coordinator{
		engine:      engine,
		planner:     planner,
		classifier:  classifier,
		status:      status,
		traffic:     traffic,
		emergencies: make(map[string]*model.Emergency),
		histories:   make(map[string][]model.VitalsSnapshot),
	}
}

// CreateEmergency allocates a facility for the pickup, plans the route
// to the primary plus fallback alternatives, and registers the record.
// No qualifying facility still creates the record; it just has no
// route.
func (c *Coordinator) CreateEmergency(pickup model.Coordinate, condition string) (model.Emergency, error) {
	allocation, err := c.engine.Allocate(pickup, condition, c.status.Snapshot())
	if err != nil {
		return model.Emergency{}, eris.Wrap(err, "dispatch: allocate")
	}

	now := time.Now()
	emergency := model.Emergency{
		ID:               uuid.NewString(),
		PickupLocation:   pickup,
		PatientCondition: condition,
		Allocation:       &allocation,
		Status:           model.EmergencyDispatched,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if allocation.Primary != nil {
		destination := allocation.Primary.Facility.Location

		route, err := c.planner.Plan(pickup, destination, c.traffic.CongestionZones, c.traffic.IncidentHotspots)
		if err != nil {
			return model.Emergency{}, eris.Wrap(err, "dispatch: plan route")
		}
		emergency.Route = &route

		alternatives, err := c.planner.Alternatives(pickup, destination)
		if err != nil {
			return model.Emergency{}, eris.Wrap(err, "dispatch: plan alternatives")
		}
		emergency.Alternatives = alternatives
	}

	c.mu.Lock()
	c.emergencies[emergency.ID] = &emergency
	c.mu.Unlock()

	zap.L().Info("dispatch: emergency created",
		zap.String("id", emergency.ID),
		zap.String("condition", condition),
		zap.Bool("allocated", allocation.Primary != nil),
	)

	return cloneEmergency(&emergency), nil
}

// RecordVitals appends a snapshot to the emergency's history, runs the
// classifier over it, and attaches the resulting guidance. The first
// vitals report moves a dispatched emergency to en_route.
func (c *Coordinator) RecordVitals(id string, snapshot model.VitalsSnapshot) (model.Emergency, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	emergency, ok := c.emergencies[id]
	if !ok {
		return model.Emergency{}, ErrNotFound
	}

	assessment := c.classifier.Assess(snapshot)

	c.histories[id] = append(c.histories[id], cloneSnapshot(snapshot))
	emergency.Vitals = cloneSnapshot(snapshot)
	emergency.Guidance = &assessment
	if emergency.Status == model.EmergencyDispatched {
		emergency.Status = model.EmergencyEnRoute
	}
	emergency.UpdatedAt = time.Now()

	if assessment.EscalateToDoctor {
		zap.L().Warn("dispatch: critical vitals",
			zap.String("id", id),
			zap.String("risk", string(assessment.RiskLevel)),
		)
	}

	return cloneEmergency(emergency), nil
}

// Report builds the receiving-facility handoff summary from the vitals
// history and the planned route's arrival estimate.
func (c *Coordinator) Report(id string) (model.HospitalReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	emergency, ok := c.emergencies[id]
	if !ok {
		return model.HospitalReport{}, ErrNotFound
	}

	var predicted *model.Condition
	if emergency.Guidance != nil {
		predicted = emergency.Guidance.PredictedCondition
	}
	var eta float64
	if emergency.Route != nil {
		eta = emergency.Route.ETAMinutes
	}

	return c.classifier.Report(c.histories[id], predicted, eta), nil
}

// Emergency returns one record by ID.
func (c *Coordinator) Emergency(id string) (model.Emergency, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	emergency, ok := c.emergencies[id]
	if !ok {
		return model.Emergency{}, ErrNotFound
	}
	return cloneEmergency(emergency), nil
}

// Emergencies lists all records, oldest first.
func (c *Coordinator) Emergencies() []model.Emergency {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]model.Emergency, 0, len(c.emergencies))
	for _, e := range c.emergencies {
		list = append(list, cloneEmergency(e))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// UpdateStatus moves an emergency through its lifecycle.
func (c *Coordinator) UpdateStatus(id string, status model.EmergencyStatus) (model.Emergency, error) {
	switch status {
	case model.EmergencyDispatched, model.EmergencyEnRoute, model.EmergencyArrived, model.EmergencyClosed:
	default:
		return model.Emergency{}, eris.Errorf("dispatch: unknown status %q", status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	emergency, ok := c.emergencies[id]
	if !ok {
		return model.Emergency{}, ErrNotFound
	}
	emergency.Status = status
	emergency.UpdatedAt = time.Now()
	return cloneEmergency(emergency), nil
}

func cloneSnapshot(snapshot model.VitalsSnapshot) model.VitalsSnapshot {
	clone := make(model.VitalsSnapshot, len(snapshot))
	for k, v := range snapshot {
		clone[k] = v
	}
	return clone
}

// cloneEmergency copies the record so callers cannot mutate the stored
// one. Nested pointers are replaced wholesale on update, never mutated
// in place, so copying the pointer values is enough.
func cloneEmergency(e *model.Emergency) model.Emergency {
	clone := *e
	if e.Vitals != nil {
		clone.Vitals = cloneSnapshot(e.Vitals)
	}
	return clone
}

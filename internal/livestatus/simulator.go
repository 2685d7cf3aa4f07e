package livestatus

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/rescueline/dispatch-cli/internal/model"
)

// Simulator stands in for a live facility status feed by seeding and
// periodically refreshing plausible values. The randomness source is
// injected for reproducible runs.
type Simulator struct {
	store  *Store
	roster []model.Facility
	rng    *rand.Rand
}

// NewSimulator creates a Simulator over the given store and roster.
func NewSimulator(store *Store, roster []model.Facility, rng *rand.Rand) *Simulator {
	return &Simulator{store: store, roster: roster, rng: rng}
}

// RefreshAll regenerates status for every roster facility.
func (s *Simulator) RefreshAll() {
	for _, f := range s.roster {
		s.store.Set(f.ID, s.generate(f))
	}
}

// Run refreshes the table on the given interval until the context is
// canceled. The table is seeded immediately on entry.
func (s *Simulator) Run(ctx context.Context, interval time.Duration) error {
	s.RefreshAll()
	zap.L().Info("livestatus: simulator started",
		zap.Int("facilities", len(s.roster)),
		zap.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("livestatus: simulator stopped")
			return ctx.Err()
		case <-ticker.C:
			s.RefreshAll()
		}
	}
}

// generate produces one plausible status for a facility.
func (s *Simulator) generate(f model.Facility) model.FacilityStatus {
	equipment := map[string]model.EquipmentState{
		model.EquipCTScanner: s.pick(model.EquipmentAvailable, model.EquipmentBusy, model.EquipmentMaintenance),
		model.EquipMRI:       s.pick(model.EquipmentAvailable, model.EquipmentBusy),
	}
	if f.CardiacCathLab {
		equipment[model.EquipCathLab] = s.pick(model.EquipmentAvailable, model.EquipmentBusy)
	} else {
		equipment[model.EquipCathLab] = model.EquipmentNotAvailable
	}

	return model.FacilityStatus{
		CurrentLoad:            0.3 + s.rng.Float64()*0.6,
		AvailableICUBeds:       s.intBetween(2, f.ICUBeds/2),
		AvailableEmergencyBeds: s.intBetween(1, f.EmergencyBeds/2),
		AverageWaitMinutes:     s.intBetween(5, 45),
		Staffing: model.Staffing{
			EmergencyDoctors:  s.intBetween(2, 8),
			Nurses:            s.intBetween(5, 20),
			SpecialistsOnCall: s.intBetween(1, 5),
		},
		Equipment: equipment,
		ORRooms:   s.intBetween(1, 5),
	}
}

// intBetween returns a uniform int in [lo, hi]; a degenerate range
// (small facilities) collapses to lo.
func (s *Simulator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Simulator) pick(states ...model.EquipmentState) model.EquipmentState {
	return states[s.rng.Intn(len(states))]
}

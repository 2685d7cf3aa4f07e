package allocator

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/rescueline/dispatch-cli/internal/geo"
	"github.com/rescueline/dispatch-cli/internal/model"
)

// maxRecommendations caps the ranked list at a primary plus two
// alternatives.
const maxRecommendations = 3

// conditionSpecialty maps a presenting condition tag to the specialty
// required of a facility. Unknown tags fall back to general.
var conditionSpecialty = map[string]model.Specialty{
	"cardiac":      model.SpecialtyCardiac,
	"heart_attack": model.SpecialtyCardiac,
	"stroke":       model.SpecialtyNeuro,
	"trauma":       model.SpecialtyTrauma,
	"accident":     model.SpecialtyTrauma,
	"pediatric":    model.SpecialtyPediatric,
	"general":      model.SpecialtyGeneral,
}

// RequiredSpecialty returns the specialty a facility must list to take
// the given condition.
func RequiredSpecialty(condition string) model.Specialty {
	if s, ok := conditionSpecialty[condition]; ok {
		return s
	}
	return model.SpecialtyGeneral
}

// Engine ranks roster facilities for a pickup location and condition
// against a live status snapshot.
type Engine struct {
	roster          []model.Facility
	arrivalSpeedKMH float64
}

// NewEngine creates an Engine over a static roster. arrivalSpeedKMH is
// the assumed emergency-vehicle speed for the arrival estimate; it is
// independent of the route planner's travel speed.
func NewEngine(roster []model.Facility, arrivalSpeedKMH float64) *Engine {
	return &Engine{roster: roster, arrivalSpeedKMH: arrivalSpeedKMH}
}

// Roster returns the static facility roster.
func (e *Engine) Roster() []model.Facility {
	return e.roster
}

// Facility looks up a roster facility by ID.
func (e *Engine) Facility(id string) (model.Facility, bool) {
	for _, f := range e.roster {
		if f.ID == id {
			return f, true
		}
	}
	return model.Facility{}, false
}

// Allocate filters the roster by the condition's required specialty,
// scores every qualifying facility, and returns the ranked result. An
// empty qualifying set yields a nil primary, not an error. Facilities
// missing from the status snapshot are scored against a zero-value
// status.
func (e *Engine) Allocate(pickup model.Coordinate, condition string, statusByID map[string]model.FacilityStatus) (model.AllocationResult, error) {
	if err := pickup.Validate(); err != nil {
		return model.AllocationResult{}, eris.Wrap(err, "allocator: pickup location")
	}

	qualifying := e.filterBySpecialty(condition)

	type scored struct {
		facility model.Facility
		score    float64
	}
	candidates := make([]scored, 0, len(qualifying))
	for _, f := range qualifying {
		candidates = append(candidates, scored{
			facility: f,
			score:    Score(f, pickup, condition, statusByID[f.ID]),
		})
	}

	// Stable: equal scores keep roster order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxRecommendations {
		candidates = candidates[:maxRecommendations]
	}

	result := model.AllocationResult{
		Condition:    condition,
		Alternatives: []model.Recommendation{},
	}
	for i, c := range candidates {
		status, known := statusByID[c.facility.ID]
		distanceKM := geo.HaversineKM(pickup, c.facility.Location)
		rec := model.Recommendation{
			Rank:          i + 1,
			Facility:      c.facility,
			Score:         math.Round(c.score*100) / 100,
			DistanceKM:    distanceKM,
			ETAMinutes:    math.Round(distanceKM/e.arrivalSpeedKMH*60*10) / 10,
			Status:        status,
			Justification: justify(c.facility, condition, c.score, status, known),
		}
		if i == 0 {
			result.Primary = &rec
		} else {
			result.Alternatives = append(result.Alternatives, rec)
		}
	}

	if result.Primary == nil {
		zap.L().Warn("allocator: no qualifying facility",
			zap.String("condition", condition),
			zap.String("required_specialty", string(RequiredSpecialty(condition))),
		)
	}

	return result, nil
}

// filterBySpecialty returns the roster facilities able to take the
// condition. A general requirement does not filter at all.
func (e *Engine) filterBySpecialty(condition string) []model.Facility {
	required := RequiredSpecialty(condition)
	if required == model.SpecialtyGeneral {
		return e.roster
	}

	var qualifying []model.Facility
	for _, f := range e.roster {
		if f.HasSpecialty(required) {
			qualifying = append(qualifying, f)
		}
	}
	return qualifying
}

// justify builds the ordered human-readable reason fragments for one
// recommendation. Fragments append; they never replace earlier ones.
// The load and bed fragments state observed facts, so they are skipped
// for a facility the snapshot carries no entry for.
func justify(facility model.Facility, condition string, score float64, status model.FacilityStatus, known bool) []string {
	var reasons []string

	if score > 0.8 {
		reasons = append(reasons, "Excellent match for patient condition")
	} else if score > 0.6 {
		reasons = append(reasons, "Good match for patient condition")
	}

	switch condition {
	case "cardiac", "heart_attack":
		if facility.CardiacCathLab {
			reasons = append(reasons, "Has cardiac catheterization lab")
		}
	case "stroke":
		if facility.StrokeCenter {
			reasons = append(reasons, "Designated stroke center")
		}
	case "trauma", "accident":
		switch facility.TraumaCenterLevel {
		case 1:
			reasons = append(reasons, "Level 1 trauma center")
		case 2:
			reasons = append(reasons, "Level 2 trauma center")
		}
	}

	if known && status.CurrentLoad < 0.5 {
		reasons = append(reasons, "Low emergency room load")
	}
	if known && status.AvailableEmergencyBeds > 5 {
		reasons = append(reasons, "Good bed availability")
	}

	return reasons
}

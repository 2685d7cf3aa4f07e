// Package allocator picks a destination facility for a patient using a
// weighted multi-factor score over distance, capacity, specialty fit,
// equipment, and staffing.
package allocator

import (
	"math"

	"github.com/rescueline/dispatch-cli/internal/geo"
	"github.com/rescueline/dispatch-cli/internal/model"
)

// Scoring weights. Fixed business rules; they must sum to exactly 1.0
// (asserted in tests).
const (
	WeightDistance  = 0.25
	WeightBeds      = 0.20
	WeightLoad      = 0.20
	WeightSpecialty = 0.15
	WeightEquipment = 0.10
	WeightStaff     = 0.10
)

// maxDistanceKM is where the distance score bottoms out at zero.
const maxDistanceKM = 20.0

// fullStaffDoctors is the emergency-doctor headcount that earns a full
// staff score.
const fullStaffDoctors = 5

// equipmentBaseScore is the floor every facility gets before
// condition-specific equipment bonuses.
const equipmentBaseScore = 0.5

// Score combines the component scores for one facility into a single
// value in [0, 1]. The status snapshot is read-only for the duration of
// the call. Absent capability flags and equipment entries degrade to
// their safe defaults; there are no error paths.
func Score(facility model.Facility, pickup model.Coordinate, condition string, status model.FacilityStatus) float64 {
	distanceKM := geo.HaversineKM(pickup, facility.Location)

	return distanceScore(distanceKM)*WeightDistance +
		bedScore(status.AvailableEmergencyBeds, facility.EmergencyBeds)*WeightBeds +
		loadScore(status.CurrentLoad)*WeightLoad +
		specialtyScore(facility, condition)*WeightSpecialty +
		equipmentScore(condition, status)*WeightEquipment +
		staffScore(status.Staffing.EmergencyDoctors)*WeightStaff
}

// distanceScore normalizes distance into [0, 1]; closer is better and
// anything beyond maxDistanceKM scores zero.
func distanceScore(distanceKM float64) float64 {
	return math.Max(0, 1-distanceKM/maxDistanceKM)
}

// bedScore is the fraction of emergency beds currently free. A
// facility with no emergency beds contributes zero rather than a
// division fault.
func bedScore(available, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(available) / float64(total)
}

func loadScore(currentLoad float64) float64 {
	return 1 - currentLoad
}

// specialtyScore grades how well the facility's specialties and
// capability flags fit the condition.
func specialtyScore(facility model.Facility, condition string) float64 {
	switch condition {
	case "cardiac", "heart_attack":
		if facility.HasSpecialty(model.SpecialtyCardiac) {
			if facility.CardiacCathLab {
				return 1.0
			}
			return 0.8
		}
		return 0.3
	case "stroke":
		if facility.HasSpecialty(model.SpecialtyNeuro) {
			if facility.StrokeCenter {
				return 1.0
			}
			return 0.8
		}
		return 0.2
	case "trauma", "accident":
		if facility.HasSpecialty(model.SpecialtyTrauma) {
			switch facility.TraumaCenterLevel {
			case 1:
				return 1.0
			case 2:
				return 0.8
			default:
				return 0.6
			}
		}
		return 0.4
	default:
		// Any facility can take a general case.
		return 0.7
	}
}

// equipmentScore starts from a base and adds condition-specific
// availability bonuses, capped at 1.0. Equipment absent from the
// status map counts as unavailable.
func equipmentScore(condition string, status model.FacilityStatus) float64 {
	score := equipmentBaseScore
	equipment := status.Equipment

	switch condition {
	case "cardiac", "heart_attack":
		switch equipment[model.EquipCathLab] {
		case model.EquipmentAvailable:
			score += 0.5
		case model.EquipmentBusy:
			score += 0.2
		}
	case "stroke":
		if equipment[model.EquipCTScanner] == model.EquipmentAvailable {
			score += 0.3
		}
		if equipment[model.EquipMRI] == model.EquipmentAvailable {
			score += 0.2
		}
	case "trauma", "accident":
		if equipment[model.EquipCTScanner] == model.EquipmentAvailable {
			score += 0.3
		}
		if status.ORRooms > 2 {
			score += 0.2
		}
	}

	return math.Min(1.0, score)
}

func staffScore(emergencyDoctors int) float64 {
	return math.Min(1, float64(emergencyDoctors)/fullStaffDoctors)
}

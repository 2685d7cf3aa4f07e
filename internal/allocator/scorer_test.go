package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rescueline/dispatch-cli/internal/model"
)

func testFacility() model.Facility {
	return model.Facility{
		ID:       "H001",
		Name:     "City General",
		Location: model.Coordinate{Latitude: 28.6139, Longitude: 77.2090},
		Specialties: []string{
			"cardiac", "trauma", "general",
		},
		EmergencyBeds:     20,
		ICUBeds:           40,
		CardiacCathLab:    true,
		StrokeCenter:      false,
		TraumaCenterLevel: 1,
	}
}

func testStatus() model.FacilityStatus {
	return model.FacilityStatus{
		CurrentLoad:            0.4,
		AvailableEmergencyBeds: 10,
		Staffing:               model.Staffing{EmergencyDoctors: 4},
		Equipment: map[string]model.EquipmentState{
			model.EquipCTScanner: model.EquipmentAvailable,
			model.EquipMRI:       model.EquipmentBusy,
			model.EquipCathLab:   model.EquipmentAvailable,
		},
		ORRooms: 3,
	}
}

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightDistance + WeightBeds + WeightLoad + WeightSpecialty + WeightEquipment + WeightStaff
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestScore_InUnitRange(t *testing.T) {
	pickup := model.Coordinate{Latitude: 28.6, Longitude: 77.2}
	got := Score(testFacility(), pickup, "cardiac", testStatus())
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
}

func TestDistanceScore_MonotonicNonIncreasing(t *testing.T) {
	prev := distanceScore(0)
	for _, km := range []float64{1, 5, 10, 19, 20, 25, 100} {
		cur := distanceScore(km)
		assert.LessOrEqual(t, cur, prev, "distance %v", km)
		prev = cur
	}
	assert.Zero(t, distanceScore(20))
	assert.Zero(t, distanceScore(50))
}

func TestBedScore(t *testing.T) {
	assert.InDelta(t, 0.5, bedScore(10, 20), 1e-9)
	assert.InDelta(t, 1.0, bedScore(20, 20), 1e-9)

	// Zero-bed facility contributes 0, not a division fault.
	assert.Zero(t, bedScore(0, 0))
	assert.Zero(t, bedScore(5, 0))
}

func TestBedScore_MonotonicNonDecreasing(t *testing.T) {
	prev := -1.0
	for beds := 0; beds <= 20; beds++ {
		cur := bedScore(beds, 20)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestSpecialtyScore(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		mutate    func(*model.Facility)
		want      float64
	}{
		{"cardiac with cath lab", "cardiac", nil, 1.0},
		{"heart_attack same as cardiac", "heart_attack", nil, 1.0},
		{
			"cardiac without cath lab", "cardiac",
			func(f *model.Facility) { f.CardiacCathLab = false }, 0.8,
		},
		{
			"cardiac without specialty", "cardiac",
			func(f *model.Facility) { f.Specialties = []string{"general"} }, 0.3,
		},
		{
			"stroke without neuro", "stroke", nil, 0.2,
		},
		{
			"stroke with neuro and stroke center", "stroke",
			func(f *model.Facility) {
				f.Specialties = append(f.Specialties, "neuro")
				f.StrokeCenter = true
			},
			1.0,
		},
		{
			"stroke with neuro only", "stroke",
			func(f *model.Facility) { f.Specialties = append(f.Specialties, "neuro") }, 0.8,
		},
		{"trauma level 1", "trauma", nil, 1.0},
		{
			"trauma level 2", "accident",
			func(f *model.Facility) { f.TraumaCenterLevel = 2 }, 0.8,
		},
		{
			"trauma level 3", "trauma",
			func(f *model.Facility) { f.TraumaCenterLevel = 3 }, 0.6,
		},
		{
			"trauma without specialty", "trauma",
			func(f *model.Facility) { f.Specialties = []string{"general"} }, 0.4,
		},
		{"general condition is flat", "general", nil, 0.7},
		{"unknown condition is flat", "food_poisoning", nil, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFacility()
			if tt.mutate != nil {
				tt.mutate(&f)
			}
			assert.InDelta(t, tt.want, specialtyScore(f, tt.condition), 1e-9)
		})
	}
}

func TestEquipmentScore(t *testing.T) {
	status := testStatus()

	// Cardiac: cath lab available earns the full bonus.
	assert.InDelta(t, 1.0, equipmentScore("cardiac", status), 1e-9)

	busy := testStatus()
	busy.Equipment[model.EquipCathLab] = model.EquipmentBusy
	assert.InDelta(t, 0.7, equipmentScore("cardiac", busy), 1e-9)

	// Stroke: CT available (+0.3), MRI busy (no bonus).
	assert.InDelta(t, 0.8, equipmentScore("stroke", status), 1e-9)

	// Trauma: CT available (+0.3), OR rooms > 2 (+0.2).
	assert.InDelta(t, 1.0, equipmentScore("trauma", status), 1e-9)

	fewRooms := testStatus()
	fewRooms.ORRooms = 2
	assert.InDelta(t, 0.8, equipmentScore("trauma", fewRooms), 1e-9)

	// Unrelated condition keeps the base only.
	assert.InDelta(t, equipmentBaseScore, equipmentScore("general", status), 1e-9)

	// Nil equipment map degrades to the base, no panic.
	assert.InDelta(t, equipmentBaseScore, equipmentScore("cardiac", model.FacilityStatus{}), 1e-9)
}

func TestStaffScore(t *testing.T) {
	assert.Zero(t, staffScore(0))
	assert.InDelta(t, 0.6, staffScore(3), 1e-9)
	assert.InDelta(t, 1.0, staffScore(5), 1e-9)
	// Capped at 1.
	assert.InDelta(t, 1.0, staffScore(9), 1e-9)
}

func TestScore_MonotonicInDistance(t *testing.T) {
	f := testFacility()
	status := testStatus()

	// Move the pickup progressively further north; all else fixed.
	var prev float64 = 2
	for _, dLat := range []float64{0, 0.02, 0.05, 0.1, 0.2} {
		pickup := model.Coordinate{
			Latitude:  f.Location.Latitude + dLat,
			Longitude: f.Location.Longitude,
		}
		cur := Score(f, pickup, "cardiac", status)
		assert.LessOrEqual(t, cur, prev, "dLat %v", dLat)
		prev = cur
	}
}

func TestScore_MonotonicInBedAvailability(t *testing.T) {
	f := testFacility()
	pickup := model.Coordinate{Latitude: 28.6, Longitude: 77.2}

	prev := -1.0
	for beds := 0; beds <= f.EmergencyBeds; beds += 5 {
		status := testStatus()
		status.AvailableEmergencyBeds = beds
		cur := Score(f, pickup, "cardiac", status)
		assert.GreaterOrEqual(t, cur, prev, "beds %v", beds)
		prev = cur
	}
}

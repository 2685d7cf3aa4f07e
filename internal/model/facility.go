package model

import (
	"strings"
	"time"
)

// Specialty is a named clinical capability used to filter eligible
// facilities.
type Specialty string

const (
	SpecialtyCardiac   Specialty = "cardiac"
	SpecialtyNeuro     Specialty = "neuro"
	SpecialtyTrauma    Specialty = "trauma"
	SpecialtyPediatric Specialty = "pediatric"
	SpecialtyGeneral   Specialty = "general"
)

// Facility is a hospital candidate for patient routing. The roster is
// static for the process lifetime.
type Facility struct {
	ID                string     `json:"id" yaml:"id"`
	Name              string     `json:"name" yaml:"name"`
	Location          Coordinate `json:"location" yaml:"location"`
	Specialties       []string   `json:"specialties" yaml:"specialties"`
	TotalBeds         int        `json:"total_beds" yaml:"total_beds"`
	ICUBeds           int        `json:"icu_beds" yaml:"icu_beds"`
	EmergencyBeds     int        `json:"emergency_beds" yaml:"emergency_beds"`
	CardiacCathLab    bool       `json:"cardiac_cath_lab" yaml:"cardiac_cath_lab"`
	StrokeCenter      bool       `json:"stroke_center" yaml:"stroke_center"`
	TraumaCenterLevel int        `json:"trauma_center_level" yaml:"trauma_center_level"`
	Contact           string     `json:"contact,omitempty" yaml:"contact,omitempty"`
}

// HasSpecialty reports whether the facility lists the given specialty.
func (f Facility) HasSpecialty(s Specialty) bool {
	for _, sp := range f.Specialties {
		if sp == string(s) {
			return true
		}
	}
	return false
}

// EquipmentState describes the availability of one piece of equipment.
type EquipmentState string

const (
	EquipmentAvailable    EquipmentState = "available"
	EquipmentBusy         EquipmentState = "busy"
	EquipmentMaintenance  EquipmentState = "maintenance"
	EquipmentNotAvailable EquipmentState = "not_available"
)

// Equipment names tracked in live facility status.
const (
	EquipCTScanner = "ct_scanner"
	EquipMRI       = "mri"
	EquipCathLab   = "cath_lab"
)

// Staffing is the current on-duty staff at a facility.
type Staffing struct {
	EmergencyDoctors  int `json:"emergency_doctors"`
	Nurses            int `json:"nurses"`
	SpecialistsOnCall int `json:"specialists_on_call"`
}

// FacilityStatus is the live (or simulated) state of one facility. It
// is externally refreshed between calls; the scorer treats each
// snapshot as immutable.
type FacilityStatus struct {
	CurrentLoad            float64                   `json:"current_load"`
	AvailableICUBeds       int                       `json:"available_icu_beds"`
	AvailableEmergencyBeds int                       `json:"available_emergency_beds"`
	AverageWaitMinutes     int                       `json:"average_wait_minutes"`
	Staffing               Staffing                  `json:"staffing"`
	Equipment              map[string]EquipmentState `json:"equipment"`
	ORRooms                int                       `json:"or_rooms"`
	LastUpdated            time.Time                 `json:"last_updated"`
}

// AllocationResult is the outcome of one allocation call.
type AllocationResult struct {
	Primary      *Recommendation  `json:"primary"`
	Alternatives []Recommendation `json:"alternatives"`
	Condition    string           `json:"condition"`
}

// Recommendation is one ranked facility with its score and the reasons
// behind it.
type Recommendation struct {
	Rank          int            `json:"rank"`
	Facility      Facility       `json:"facility"`
	Score         float64        `json:"score"`
	DistanceKM    float64        `json:"distance_km"`
	ETAMinutes    float64        `json:"eta_minutes"`
	Status        FacilityStatus `json:"current_status"`
	Justification []string       `json:"justification"`
}

// Reason joins the justification fragments for display. A
// recommendation with no fragments still reads as a valid choice.
func (r Recommendation) Reason() string {
	if len(r.Justification) == 0 {
		return "Available for emergency care"
	}
	return strings.Join(r.Justification, "; ")
}

package model

import "time"

// EmergencyStatus tracks an active emergency through its lifecycle.
type EmergencyStatus string

const (
	EmergencyDispatched EmergencyStatus = "dispatched"
	EmergencyEnRoute    EmergencyStatus = "en_route"
	EmergencyArrived    EmergencyStatus = "arrived"
	EmergencyClosed     EmergencyStatus = "closed"
)

// Emergency is one active dispatch record. Held in memory only; the
// record is dropped when the process exits.
type Emergency struct {
	ID               string             `json:"id"`
	PickupLocation   Coordinate         `json:"pickup_location"`
	PatientCondition string             `json:"patient_condition"`
	Allocation       *AllocationResult  `json:"hospital,omitempty"`
	Route            *RouteResult       `json:"route,omitempty"`
	Alternatives     []AlternativeRoute `json:"alternative_routes,omitempty"`
	Vitals           VitalsSnapshot     `json:"vitals,omitempty"`
	Guidance         *VitalsAssessment  `json:"ai_guidance,omitempty"`
	Status           EmergencyStatus    `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

package model

import "github.com/rotisserie/eris"

// Coordinate is a WGS84 point. Immutable value type; validated at the
// edges so the decision core can assume in-range values.
type Coordinate struct {
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lng" yaml:"lng"`
}

// Validate checks that the coordinate is within valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return eris.Errorf("model: invalid latitude %v (must be in [-90, 90])", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return eris.Errorf("model: invalid longitude %v (must be in [-180, 180])", c.Longitude)
	}
	return nil
}

// Severity grades an incident hotspot.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// CongestionZone is a simulated traffic density point. Static reference
// data; only used to trigger path detours.
type CongestionZone struct {
	Location        Coordinate `json:"location" yaml:"location"`
	CongestionLevel float64    `json:"congestion_level" yaml:"congestion_level"`
}

// IncidentHotspot is a known accident-prone point.
type IncidentHotspot struct {
	Location Coordinate `json:"location" yaml:"location"`
	Severity Severity   `json:"severity" yaml:"severity"`
}

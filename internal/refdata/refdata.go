// Package refdata loads the static reference tables (facility roster,
// simulated traffic picture) once at process start.
// The loaded values are treated as immutable for the process lifetime.
package refdata

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/rescueline/dispatch-cli/internal/model"
)

// rosterFile is the on-disk shape of the facility fixture.
type rosterFile struct {
	Facilities []model.Facility `yaml:"facilities"`
}

// Traffic is the static traffic reference picture.
type Traffic struct {
	CongestionZones  []model.CongestionZone  `yaml:"high_traffic_zones"`
	IncidentHotspots []model.IncidentHotspot `yaml:"accident_hotspots"`
}

// LoadFacilities reads and validates the facility roster fixture.
func LoadFacilities(path string) ([]model.Facility, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: read facilities fixture")
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "refdata: unmarshal facilities fixture")
	}
	if len(file.Facilities) == 0 {
		return nil, eris.New("refdata: facilities fixture is empty")
	}

	seen := make(map[string]bool, len(file.Facilities))
	for _, f := range file.Facilities {
		if f.ID == "" {
			return nil, eris.Errorf("refdata: facility %q has no id", f.Name)
		}
		if seen[f.ID] {
			return nil, eris.Errorf("refdata: duplicate facility id %q", f.ID)
		}
		seen[f.ID] = true

		if err := f.Location.Validate(); err != nil {
			return nil, eris.Wrap(err, "refdata: facility "+f.ID)
		}
		if f.TotalBeds < 0 || f.ICUBeds < 0 || f.EmergencyBeds < 0 {
			return nil, eris.Errorf("refdata: facility %q has negative bed counts", f.ID)
		}
	}

	return file.Facilities, nil
}

// LoadTraffic reads and validates the traffic reference fixture.
func LoadTraffic(path string) (Traffic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Traffic{}, eris.Wrap(err, "refdata: read traffic fixture")
	}

	var traffic Traffic
	if err := yaml.Unmarshal(data, &traffic); err != nil {
		return Traffic{}, eris.Wrap(err, "refdata: unmarshal traffic fixture")
	}

	for i, zone := range traffic.CongestionZones {
		if err := zone.Location.Validate(); err != nil {
			return Traffic{}, eris.Wrapf(err, "refdata: congestion zone %d", i)
		}
		if zone.CongestionLevel < 0 || zone.CongestionLevel > 1 {
			return Traffic{}, eris.Errorf("refdata: congestion zone %d level %v out of [0, 1]", i, zone.CongestionLevel)
		}
	}
	for i, hotspot := range traffic.IncidentHotspots {
		if err := hotspot.Location.Validate(); err != nil {
			return Traffic{}, eris.Wrapf(err, "refdata: incident hotspot %d", i)
		}
		switch hotspot.Severity {
		case model.SeverityLow, model.SeverityMedium, model.SeverityHigh:
		default:
			return Traffic{}, eris.Errorf("refdata: incident hotspot %d has unknown severity %q", i, hotspot.Severity)
		}
	}

	return traffic, nil
}

package vitals

import "github.com/rescueline/dispatch-cli/internal/model"

// Physiological defaults substituted for readings absent from a
// snapshot during condition prediction. Prediction never fails on a
// sparse snapshot.
const (
	defaultHeartRate        = 70
	defaultSystolic         = 120
	defaultDiastolic        = 80
	defaultOxygenSaturation = 98
	defaultRespiratoryRate  = 16
	defaultTemperature      = 36.5
)

// defaultRanges holds the reference bands for each recognized vital
// sign. These are fixed business rules, not validated clinical
// guidelines; changing them changes classification behavior.
func defaultRanges() map[string]model.VitalRange {
	return map[string]model.VitalRange{
		model.VitalHeartRate:        {NormalLow: 60, NormalHigh: 100, CriticalLow: 50, CriticalHigh: 120},
		model.VitalSystolic:         {NormalLow: 90, NormalHigh: 140, CriticalLow: 80, CriticalHigh: 180},
		model.VitalDiastolic:        {NormalLow: 60, NormalHigh: 90, CriticalLow: 50, CriticalHigh: 110},
		model.VitalOxygenSaturation: {NormalLow: 95, NormalHigh: 100, CriticalLow: 90, CriticalHigh: 100},
		model.VitalRespiratoryRate:  {NormalLow: 12, NormalHigh: 20, CriticalLow: 8, CriticalHigh: 30},
		model.VitalTemperature:      {NormalLow: 36.1, NormalHigh: 37.2, CriticalLow: 35.0, CriticalHigh: 39.0},
	}
}

package vitals

import "github.com/rescueline/dispatch-cli/internal/model"

// specialRequirements maps predicted conditions to receiving-facility
// preparation lists.
var specialRequirements = map[model.Condition][]string{
	model.ConditionCardiacArrest: {
		"Cardiac team standby",
		"Defibrillator ready",
		"ICU bed preparation",
	},
	model.ConditionStroke: {
		"Stroke team activation",
		"CT scan ready",
		"Neurologist on standby",
	},
	model.ConditionTrauma: {
		"Trauma team activation",
		"Blood bank notification",
		"OR preparation if needed",
	},
}

// Report builds the handoff summary for the receiving facility from
// the vitals history and the route's arrival estimate. The risk level
// reflects the latest snapshot only.
func (c *Classifier) Report(history []model.VitalsSnapshot, predicted *model.Condition, etaMinutes float64) model.HospitalReport {
	report := model.HospitalReport{
		Condition:  "Unknown",
		RiskLevel:  model.RiskStable,
		ETAMinutes: etaMinutes,
	}

	if predicted != nil {
		report.Condition = string(*predicted)
		if reqs, ok := specialRequirements[*predicted]; ok {
			report.SpecialRequirements = append([]string(nil), reqs...)
		}
	}

	if len(history) > 0 {
		latest := history[len(history)-1]
		report.RiskLevel = c.Assess(latest).RiskLevel
	}

	if trends, err := c.Trend(history); err == nil {
		report.VitalTrends = trends
	}

	return report
}

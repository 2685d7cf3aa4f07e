// Package vitals classifies vital-sign readings into per-vital levels,
// an overall risk tier, and a candidate condition using fixed numeric
// thresholds. All operations are pure functions over the snapshot and
// the static reference tables.
package vitals

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/rescueline/dispatch-cli/internal/model"
)

// Risk tier thresholds on the count of critical-level vitals. The
// two-critical cutoff is a fixed business rule, not a tunable.
const (
	criticalRiskCount = 2
	highRiskCount     = 1
)

// criticalAlertAction is prepended to the action list when the overall
// risk is critical.
const criticalAlertAction = "ALERT: Critical vitals detected - prepare for emergency intervention"

// protocolStepsReturned caps how many protocol steps are surfaced as
// immediate actions.
const protocolStepsReturned = 3

// ErrInsufficientData is returned by Trend when the history is too
// short to compare.
var ErrInsufficientData = eris.New("vitals: insufficient data for trend analysis")

// trendedVitals are the vitals tracked by Trend.
var trendedVitals = []string{
	model.VitalHeartRate,
	model.VitalSystolic,
	model.VitalOxygenSaturation,
}

// Classifier assesses vital snapshots against static reference bands
// and registered care protocols.
type Classifier struct {
	ranges    map[string]model.VitalRange
	protocols map[model.Condition]Protocol
}

// NewClassifier returns a Classifier with the built-in reference bands
// and protocols.
func NewClassifier() *Classifier {
	return &Classifier{
		ranges:    defaultRanges(),
		protocols: defaultProtocols(),
	}
}

// Ranges returns the reference band for the named vital, if known.
func (c *Classifier) Ranges(vital string) (model.VitalRange, bool) {
	r, ok := c.ranges[vital]
	return r, ok
}

// Protocol returns the registered care protocol for a condition.
func (c *Classifier) Protocol(cond model.Condition) (Protocol, bool) {
	p, ok := c.protocols[cond]
	return p, ok
}

// Assess classifies every recognized vital in the snapshot, derives
// the overall risk tier from the count of critical vitals, predicts a
// candidate condition, and attaches the matching protocol's leading
// steps. Unknown vital names are ignored.
func (c *Classifier) Assess(vitals model.VitalsSnapshot) model.VitalsAssessment {
	assessment := model.VitalsAssessment{
		VitalStatus: make(map[string]model.VitalStatus),
		RiskLevel:   model.RiskStable,
	}

	criticalCount := 0
	for name, value := range vitals {
		ranges, ok := c.ranges[name]
		if !ok {
			continue
		}
		status := assessVitalSign(name, value, ranges)
		assessment.VitalStatus[name] = status
		if status.Level == model.VitalCritical {
			criticalCount++
		}
	}

	switch {
	case criticalCount >= criticalRiskCount:
		assessment.RiskLevel = model.RiskCritical
		assessment.EscalateToDoctor = true
	case criticalCount == highRiskCount:
		assessment.RiskLevel = model.RiskHigh
	}

	if predicted, ok := predictCondition(vitals); ok {
		assessment.PredictedCondition = &predicted
		if protocol, ok := c.protocols[predicted]; ok {
			steps := protocol.Steps
			if len(steps) > protocolStepsReturned {
				steps = steps[:protocolStepsReturned]
			}
			assessment.RecommendedActions = append([]string(nil), steps...)
			assessment.MedicationSuggestions = append([]string(nil), protocol.Medications...)
		}
	}

	if assessment.RiskLevel == model.RiskCritical {
		assessment.RecommendedActions = append(
			[]string{criticalAlertAction},
			assessment.RecommendedActions...,
		)
	}

	return assessment
}

// assessVitalSign bands a single reading. Values outside the critical
// band win over the abnormal band.
func assessVitalSign(name string, value float64, ranges model.VitalRange) model.VitalStatus {
	status := model.VitalStatus{
		Value:   value,
		Level:   model.VitalNormal,
		Message: "Within normal range",
	}

	switch {
	case value < ranges.CriticalLow:
		status.Level = model.VitalCritical
		status.Message = fmt.Sprintf("Critically low %s", name)
	case value > ranges.CriticalHigh:
		status.Level = model.VitalCritical
		status.Message = fmt.Sprintf("Critically high %s", name)
	case value < ranges.NormalLow || value > ranges.NormalHigh:
		status.Level = model.VitalAbnormal
		status.Message = fmt.Sprintf("Abnormal %s", name)
	}

	return status
}

// predictCondition evaluates the fixed rule tree in priority order;
// the first matching rule wins. The ordering is load-bearing.
func predictCondition(vitals model.VitalsSnapshot) (model.Condition, bool) {
	hr := readingOr(vitals, model.VitalHeartRate, defaultHeartRate)
	sys := readingOr(vitals, model.VitalSystolic, defaultSystolic)
	o2 := readingOr(vitals, model.VitalOxygenSaturation, defaultOxygenSaturation)
	rr := readingOr(vitals, model.VitalRespiratoryRate, defaultRespiratoryRate)

	switch {
	case hr < 50 || hr > 150 || sys < 80:
		return model.ConditionCardiacArrest, true
	case sys > 160 && hr < 80:
		return model.ConditionStroke, true
	case o2 < 92 || rr > 25:
		return model.ConditionRespiratoryDistress, true
	case sys < 90 && hr > 100:
		return model.ConditionTrauma, true
	}
	return "", false
}

func readingOr(vitals model.VitalsSnapshot, name string, fallback float64) float64 {
	if v, ok := vitals[name]; ok {
		return v
	}
	return fallback
}

// Trend compares the first and last sample per tracked vital across a
// history of snapshots. It is deliberately not a series regression.
// Snapshots missing a vital are skipped for that vital.
func (c *Classifier) Trend(history []model.VitalsSnapshot) (map[string]model.TrendDirection, error) {
	if len(history) < 2 {
		return nil, ErrInsufficientData
	}

	trends := make(map[string]model.TrendDirection)
	for _, vital := range trendedVitals {
		var values []float64
		for _, snapshot := range history {
			if v, ok := snapshot[vital]; ok {
				values = append(values, v)
			}
		}
		if len(values) < 2 {
			continue
		}

		first, last := values[0], values[len(values)-1]
		switch {
		case last > first:
			trends[vital] = model.TrendIncreasing
		case last < first:
			trends[vital] = model.TrendDecreasing
		default:
			trends[vital] = model.TrendStable
		}
	}

	return trends, nil
}

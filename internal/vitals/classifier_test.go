package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescueline/dispatch-cli/internal/model"
)

func normalVitals() model.VitalsSnapshot {
	return model.VitalsSnapshot{
		model.VitalHeartRate:        75,
		model.VitalSystolic:         115,
		model.VitalDiastolic:        75,
		model.VitalOxygenSaturation: 98,
		model.VitalRespiratoryRate:  16,
		model.VitalTemperature:      36.8,
	}
}

func TestAssess_AllNormal(t *testing.T) {
	c := NewClassifier()

	got := c.Assess(normalVitals())

	assert.Equal(t, model.RiskStable, got.RiskLevel)
	assert.Nil(t, got.PredictedCondition)
	assert.False(t, got.EscalateToDoctor)
	assert.Empty(t, got.RecommendedActions)
	for name, status := range got.VitalStatus {
		assert.Equal(t, model.VitalNormal, status.Level, name)
	}
}

func TestAssess_VitalBanding(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		vital string
		value float64
		level model.VitalLevel
	}{
		{"hr normal low edge", model.VitalHeartRate, 60, model.VitalNormal},
		{"hr abnormal", model.VitalHeartRate, 110, model.VitalAbnormal},
		{"hr critical high", model.VitalHeartRate, 121, model.VitalCritical},
		{"hr at critical high is abnormal not critical", model.VitalHeartRate, 120, model.VitalAbnormal},
		{"hr critical low", model.VitalHeartRate, 45, model.VitalCritical},
		{"hr at critical low is abnormal not critical", model.VitalHeartRate, 50, model.VitalAbnormal},
		{"sys abnormal low", model.VitalSystolic, 85, model.VitalAbnormal},
		{"sys critical low", model.VitalSystolic, 79, model.VitalCritical},
		{"spo2 critical", model.VitalOxygenSaturation, 88, model.VitalCritical},
		{"temp abnormal", model.VitalTemperature, 38.0, model.VitalAbnormal},
		{"temp critical", model.VitalTemperature, 39.5, model.VitalCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Assess(model.VitalsSnapshot{tt.vital: tt.value})
			require.Contains(t, got.VitalStatus, tt.vital)
			assert.Equal(t, tt.level, got.VitalStatus[tt.vital].Level)
		})
	}
}

func TestAssess_UnknownVitalIgnored(t *testing.T) {
	c := NewClassifier()

	got := c.Assess(model.VitalsSnapshot{
		"blood_glucose":      300,
		model.VitalHeartRate: 75,
	})

	assert.NotContains(t, got.VitalStatus, "blood_glucose")
	assert.Contains(t, got.VitalStatus, model.VitalHeartRate)
	assert.Equal(t, model.RiskStable, got.RiskLevel)
}

func TestAssess_RiskTiers(t *testing.T) {
	c := NewClassifier()

	// Exactly one critical vital (hr 145 > critical high 120; sys 85 is
	// abnormal, not below critical low 80).
	one := c.Assess(model.VitalsSnapshot{
		model.VitalHeartRate: 145,
		model.VitalSystolic:  85,
	})
	assert.Equal(t, model.RiskHigh, one.RiskLevel)
	assert.False(t, one.EscalateToDoctor)

	// Two critical vitals escalate.
	two := c.Assess(model.VitalsSnapshot{
		model.VitalHeartRate:        145,
		model.VitalOxygenSaturation: 85,
	})
	assert.Equal(t, model.RiskCritical, two.RiskLevel)
	assert.True(t, two.EscalateToDoctor)
}

func TestPredictCondition_RuleOrder(t *testing.T) {
	tests := []struct {
		name   string
		vitals model.VitalsSnapshot
		want   model.Condition
		none   bool
	}{
		{
			name:   "low hr is cardiac arrest",
			vitals: model.VitalsSnapshot{model.VitalHeartRate: 45},
			want:   model.ConditionCardiacArrest,
		},
		{
			name:   "very high hr is cardiac arrest",
			vitals: model.VitalsSnapshot{model.VitalHeartRate: 155},
			want:   model.ConditionCardiacArrest,
		},
		{
			name:   "very low systolic is cardiac arrest",
			vitals: model.VitalsSnapshot{model.VitalSystolic: 75},
			want:   model.ConditionCardiacArrest,
		},
		{
			name: "cardiac arrest outranks respiratory distress",
			vitals: model.VitalsSnapshot{
				model.VitalSystolic:         75,
				model.VitalOxygenSaturation: 85,
			},
			want: model.ConditionCardiacArrest,
		},
		{
			name: "high bp with low hr is stroke",
			vitals: model.VitalsSnapshot{
				model.VitalSystolic:  170,
				model.VitalHeartRate: 70,
			},
			want: model.ConditionStroke,
		},
		{
			name:   "low oxygen is respiratory distress",
			vitals: model.VitalsSnapshot{model.VitalOxygenSaturation: 90},
			want:   model.ConditionRespiratoryDistress,
		},
		{
			name:   "high respiratory rate is respiratory distress",
			vitals: model.VitalsSnapshot{model.VitalRespiratoryRate: 28},
			want:   model.ConditionRespiratoryDistress,
		},
		{
			name: "low bp with high hr is trauma",
			vitals: model.VitalsSnapshot{
				model.VitalSystolic:  85,
				model.VitalHeartRate: 110,
			},
			want: model.ConditionTrauma,
		},
		{
			// hr 145 is not >150 and sys 85 is not <80, so rule 1 does
			// not fire; rule 4 (sys<90, hr>100) does.
			name: "tachycardic hypotension matches trauma rule",
			vitals: model.VitalsSnapshot{
				model.VitalHeartRate: 145,
				model.VitalSystolic:  85,
			},
			want: model.ConditionTrauma,
		},
		{
			name:   "empty snapshot predicts nothing",
			vitals: model.VitalsSnapshot{},
			none:   true,
		},
		{
			name:   "normal vitals predict nothing",
			vitals: normalVitals(),
			none:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := predictCondition(tt.vitals)
			if tt.none {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssess_ProtocolActions(t *testing.T) {
	c := NewClassifier()

	// hr 45 is below critical low 50: one critical vital, risk high,
	// predicted cardiac arrest.
	got := c.Assess(model.VitalsSnapshot{model.VitalHeartRate: 45})

	require.NotNil(t, got.PredictedCondition)
	assert.Equal(t, model.ConditionCardiacArrest, *got.PredictedCondition)
	assert.Equal(t, model.RiskHigh, got.RiskLevel)

	protocol, ok := c.Protocol(model.ConditionCardiacArrest)
	require.True(t, ok)
	require.Len(t, got.RecommendedActions, protocolStepsReturned)
	assert.Equal(t, protocol.Steps[:protocolStepsReturned], got.RecommendedActions)
	assert.Equal(t, protocol.Medications, got.MedicationSuggestions)
}

func TestAssess_CriticalAlertPrepended(t *testing.T) {
	c := NewClassifier()

	got := c.Assess(model.VitalsSnapshot{
		model.VitalHeartRate:        45,
		model.VitalOxygenSaturation: 85,
	})

	assert.Equal(t, model.RiskCritical, got.RiskLevel)
	require.NotEmpty(t, got.RecommendedActions)
	assert.Equal(t, criticalAlertAction, got.RecommendedActions[0])
	assert.Len(t, got.RecommendedActions, protocolStepsReturned+1)
}

func TestAssess_Deterministic(t *testing.T) {
	c := NewClassifier()
	snapshot := model.VitalsSnapshot{
		model.VitalHeartRate:        145,
		model.VitalSystolic:         85,
		model.VitalOxygenSaturation: 93,
	}

	first := c.Assess(snapshot)
	second := c.Assess(snapshot)
	assert.Equal(t, first, second)
}

func TestTrend(t *testing.T) {
	c := NewClassifier()

	history := []model.VitalsSnapshot{
		{model.VitalHeartRate: 80, model.VitalSystolic: 120, model.VitalOxygenSaturation: 97},
		{model.VitalHeartRate: 95, model.VitalSystolic: 110},
		{model.VitalHeartRate: 110, model.VitalSystolic: 100, model.VitalOxygenSaturation: 97},
	}

	trends, err := c.Trend(history)
	require.NoError(t, err)
	assert.Equal(t, model.TrendIncreasing, trends[model.VitalHeartRate])
	assert.Equal(t, model.TrendDecreasing, trends[model.VitalSystolic])
	assert.Equal(t, model.TrendStable, trends[model.VitalOxygenSaturation])
}

func TestTrend_InsufficientData(t *testing.T) {
	c := NewClassifier()

	_, err := c.Trend(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = c.Trend([]model.VitalsSnapshot{{model.VitalHeartRate: 80}})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestTrend_SkipsSparseVitals(t *testing.T) {
	c := NewClassifier()

	// Oxygen saturation appears only once across the history, so no
	// trend is reported for it.
	history := []model.VitalsSnapshot{
		{model.VitalHeartRate: 80},
		{model.VitalHeartRate: 85, model.VitalOxygenSaturation: 95},
	}

	trends, err := c.Trend(history)
	require.NoError(t, err)
	assert.Contains(t, trends, model.VitalHeartRate)
	assert.NotContains(t, trends, model.VitalOxygenSaturation)
}

func TestReport(t *testing.T) {
	c := NewClassifier()
	cond := model.ConditionStroke

	history := []model.VitalsSnapshot{
		{model.VitalHeartRate: 70, model.VitalSystolic: 150},
		{model.VitalHeartRate: 68, model.VitalSystolic: 185},
	}

	report := c.Report(history, &cond, 12.5)

	assert.Equal(t, "stroke", report.Condition)
	assert.InDelta(t, 12.5, report.ETAMinutes, 0.001)
	assert.Contains(t, report.SpecialRequirements, "CT scan ready")
	// Latest snapshot has one critical vital (sys 185 > 180).
	assert.Equal(t, model.RiskHigh, report.RiskLevel)
	assert.Equal(t, model.TrendDecreasing, report.VitalTrends[model.VitalHeartRate])
}

func TestReport_EmptyHistory(t *testing.T) {
	c := NewClassifier()

	report := c.Report(nil, nil, 0)

	assert.Equal(t, "Unknown", report.Condition)
	assert.Equal(t, model.RiskStable, report.RiskLevel)
	assert.Empty(t, report.SpecialRequirements)
	assert.Nil(t, report.VitalTrends)
}

func TestGuidanceFixtures(t *testing.T) {
	cpr := GetCPRGuidance()
	assert.Len(t, cpr.Steps, 5)
	assert.True(t, cpr.AllowRecoil)

	bleeding := GetBleedingControlGuidance()
	assert.Len(t, bleeding.Steps, 5)
	assert.Contains(t, bleeding.PressurePoints, "arm")
}

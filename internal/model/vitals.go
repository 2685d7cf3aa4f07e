package model

// Vital sign names recognized by the classifier. Snapshots may carry
// other keys; they are ignored, not rejected.
const (
	VitalHeartRate        = "heart_rate"
	VitalSystolic         = "blood_pressure_systolic"
	VitalDiastolic        = "blood_pressure_diastolic"
	VitalOxygenSaturation = "oxygen_saturation"
	VitalRespiratoryRate  = "respiratory_rate"
	VitalTemperature      = "temperature"
)

// VitalsSnapshot maps vital-sign names to one numeric reading each.
// Ephemeral; the caller retains the sequence for trend analysis.
type VitalsSnapshot map[string]float64

// VitalRange holds the reference bands for one vital sign.
type VitalRange struct {
	NormalLow    float64 `yaml:"normal_low"`
	NormalHigh   float64 `yaml:"normal_high"`
	CriticalLow  float64 `yaml:"critical_low"`
	CriticalHigh float64 `yaml:"critical_high"`
}

// VitalLevel classifies one reading against its reference band.
type VitalLevel string

const (
	VitalNormal   VitalLevel = "normal"
	VitalAbnormal VitalLevel = "abnormal"
	VitalCritical VitalLevel = "critical"
)

// RiskLevel is the coarse severity bucket derived from counting
// critical vital signs.
type RiskLevel string

const (
	RiskStable   RiskLevel = "stable"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Condition is a candidate presenting condition predicted from vital
// patterns.
type Condition string

const (
	ConditionCardiacArrest       Condition = "cardiac_arrest"
	ConditionStroke              Condition = "stroke"
	ConditionRespiratoryDistress Condition = "respiratory_distress"
	ConditionTrauma              Condition = "trauma"
)

// VitalStatus is the assessment of a single vital sign.
type VitalStatus struct {
	Value   float64    `json:"value"`
	Level   VitalLevel `json:"level"`
	Message string     `json:"message"`
}

// VitalsAssessment is the full output of one classification call.
type VitalsAssessment struct {
	VitalStatus           map[string]VitalStatus `json:"vital_status"`
	RiskLevel             RiskLevel              `json:"risk_level"`
	PredictedCondition    *Condition             `json:"condition_prediction"`
	RecommendedActions    []string               `json:"immediate_actions"`
	MedicationSuggestions []string               `json:"medication_suggestions"`
	EscalateToDoctor      bool                   `json:"doctor_alert"`
}

// TrendDirection describes how a vital moved between the first and
// last samples of a history.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// HospitalReport is the handoff summary sent to the receiving facility.
type HospitalReport struct {
	Condition           string                    `json:"condition"`
	RiskLevel           RiskLevel                 `json:"risk_level"`
	ETAMinutes          float64                   `json:"eta_minutes"`
	SpecialRequirements []string                  `json:"special_requirements"`
	VitalTrends         map[string]TrendDirection `json:"vital_trends"`
}

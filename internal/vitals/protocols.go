package vitals

import "github.com/rescueline/dispatch-cli/internal/model"

// Protocol is a pre-hospital care protocol for one condition.
type Protocol struct {
	Steps       []string `json:"steps"`
	Medications []string `json:"medications"`
	Priority    string   `json:"priority"`
}

// defaultProtocols returns the registered care protocols keyed by
// predicted condition.
func defaultProtocols() map[model.Condition]Protocol {
	return map[model.Condition]Protocol{
		model.ConditionCardiacArrest: {
			Steps: []string{
				"Check responsiveness and breathing",
				"Call for AED if available",
				"Start CPR - 30 compressions, 2 breaths",
				"Continue until AED arrives or patient responds",
				"Monitor vitals continuously",
			},
			Medications: []string{"Epinephrine", "Amiodarone"},
			Priority:    "critical",
		},
		model.ConditionStroke: {
			Steps: []string{
				"Perform FAST assessment (Face, Arms, Speech, Time)",
				"Check blood pressure",
				"Maintain airway",
				"Do not give food or water",
				"Monitor neurological status",
			},
			Medications: []string{"Aspirin (if confirmed ischemic)"},
			Priority:    "critical",
		},
		model.ConditionTrauma: {
			Steps: []string{
				"Control bleeding with direct pressure",
				"Check for spinal injury",
				"Maintain airway",
				"Monitor for shock",
				"Immobilize suspected fractures",
			},
			Medications: []string{"Morphine for pain", "Saline for shock"},
			Priority:    "high",
		},
		model.ConditionRespiratoryDistress: {
			Steps: []string{
				"Position patient upright",
				"Administer oxygen",
				"Check for allergic reactions",
				"Monitor oxygen saturation",
				"Prepare for intubation if needed",
			},
			Medications: []string{"Albuterol", "Epinephrine (if anaphylaxis)"},
			Priority:    "high",
		},
	}
}

// CPRStep is one step of the CPR walkthrough.
type CPRStep struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
	Duration    string `json:"duration"`
}

// CPRGuidance holds the full CPR walkthrough.
type CPRGuidance struct {
	Steps       []CPRStep `json:"steps"`
	Rate        string    `json:"rate"`
	Depth       string    `json:"depth"`
	AllowRecoil bool      `json:"allow_recoil"`
}

// GetCPRGuidance returns step-by-step CPR instructions.
func GetCPRGuidance() CPRGuidance {
	return CPRGuidance{
		Steps: []CPRStep{
			{Step: 1, Instruction: "Place heel of hand on center of chest, between nipples", Duration: "Setup"},
			{Step: 2, Instruction: "Place other hand on top, interlace fingers", Duration: "Setup"},
			{Step: 3, Instruction: "Push hard and fast at least 2 inches deep", Duration: "30 compressions"},
			{Step: 4, Instruction: "Tilt head back, lift chin, give 2 rescue breaths", Duration: "2 breaths"},
			{Step: 5, Instruction: "Continue cycles of 30 compressions and 2 breaths", Duration: "Until help arrives"},
		},
		Rate:        "100-120 compressions per minute",
		Depth:       "At least 2 inches (5 cm)",
		AllowRecoil: true,
	}
}

// BleedingControlGuidance holds bleeding control instructions.
type BleedingControlGuidance struct {
	Steps          []string          `json:"steps"`
	PressurePoints map[string]string `json:"pressure_points"`
}

// GetBleedingControlGuidance returns bleeding control instructions.
func GetBleedingControlGuidance() BleedingControlGuidance {
	return BleedingControlGuidance{
		Steps: []string{
			"Apply direct pressure to wound with clean cloth",
			"If blood soaks through, add more cloth on top",
			"Elevate injured area above heart level if possible",
			"Apply pressure to pressure points if bleeding continues",
			"Do not remove embedded objects",
		},
		PressurePoints: map[string]string{
			"arm":  "Brachial artery - inside upper arm",
			"leg":  "Femoral artery - groin area",
			"head": "Temporal artery - in front of ear",
		},
	}
}

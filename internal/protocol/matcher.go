// Package protocol maps a risk tier to one of three hand-authored multi-week
// breathwork protocols.
//
// Matching is a pure lookup: every call builds a fresh value, and the optional
// condition label only changes the rationale text.
package protocol

import (
	"fmt"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// EvaluationScore is the composite instructional-design score shared by all protocols.
const EvaluationScore = 0.81

// Match returns the protocol for a tier. Unknown tiers get the standard protocol.
func Match(t models.ProtocolType, condition string) models.MatchedProtocol {
	switch t {
	case models.ProtocolGentle:
		return gentleProtocol(condition)
	case models.ProtocolModerate:
		return moderateProtocol(condition)
	default:
		return standardProtocol(condition)
	}
}

// Summary renders a one-line description of a protocol.
func Summary(p models.MatchedProtocol) string {
	return fmt.Sprintf("%s (%d weeks) - %s", p.Name, p.DurationWeeks, p.Description)
}

// Badge is a short safety label for display.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// SafetyBadge returns the display badge of a tier.
func SafetyBadge(t models.ProtocolType) Badge {
	switch t {
	case models.ProtocolGentle:
		return Badge{Label: "Maximum Safety", Color: "green"}
	case models.ProtocolModerate:
		return Badge{Label: "Modified for Safety", Color: "yellow"}
	default:
		return Badge{Label: "Standard Protocol", Color: "blue"}
	}
}

func profile(condition string) string {
	if condition == "" {
		return "Based on your health profile"
	}
	return fmt.Sprintf("Based on your health profile (%s)", condition)
}

func gentleProtocol(condition string) models.MatchedProtocol {
	return models.MatchedProtocol{
		Type:            models.ProtocolGentle,
		Name:            "Gentle Activation Protocol",
		Description:     "A conservative breathwork approach focused on parasympathetic activation without intensive techniques. Designed for conditions requiring extra caution.",
		DurationWeeks:   2,
		EvaluationScore: EvaluationScore,
		MBHTTracking:    false,
		AudioGuided:     true,
		Rationale:       profile(condition) + ", we recommend starting with our gentlest protocol. This focuses on parasympathetic activation through extended exhalation, avoiding breath holds or intensive techniques.",
		Weeks: []models.ProtocolWeek{
			{
				Week:  1,
				Title: "Foundation: Extended Exhalation",
				Focus: "Parasympathetic activation through 4:8 breathing pattern",
				Techniques: []string{
					"4:8 Extended Exhalation (4-second inhale, 8-second exhale)",
					"Diaphragmatic breathing awareness",
					"Gentle body scan",
				},
				Duration:  "10-15 minutes per session",
				Frequency: "Daily, preferably evening",
				Objectives: []string{
					"Execute 4:8 breathing pattern for 10+ minutes",
					"Understand physiological basis for breath-based healing",
				},
				Cautions: []string{
					"Stop if you feel dizzy or lightheaded",
					"No breath holds in this protocol",
					"Listen to your body - shorter sessions are fine",
				},
			},
			{
				Week:  2,
				Title: "Deepening: Relaxation Response",
				Focus: "Building consistency and body awareness",
				Techniques: []string{
					"4:8 Extended Exhalation (continued)",
					"Progressive muscle relaxation with breath",
					"Gentle visualization (optional)",
				},
				Duration:  "15-20 minutes per session",
				Frequency: "Daily",
				Objectives: []string{
					"Sustain 4:8 pattern with ease",
					"Notice relaxation response in body",
				},
				Cautions: []string{
					"Continue avoiding breath holds",
					"Consult healthcare provider before advancing",
				},
			},
		},
	}
}

func moderateProtocol(condition string) models.MatchedProtocol {
	return models.MatchedProtocol{
		Type:            models.ProtocolModerate,
		Name:            "Adaptive Healing Protocol",
		Description:     "A balanced breathwork approach with modified breath holds and visualization. Suitable for most conditions with some precautions.",
		DurationWeeks:   3,
		EvaluationScore: EvaluationScore,
		MBHTTracking:    true,
		AudioGuided:     true,
		Rationale:       profile(condition) + `, we recommend our adaptive protocol. This includes gentle breath retention with the "release at first urge" principle, ensuring safety while providing deeper benefits.`,
		Weeks: []models.ProtocolWeek{
			{
				Week:  1,
				Title: "Foundation: Extended Exhalation",
				Focus: "Parasympathetic activation through 4:8 breathing",
				Techniques: []string{
					"4:8 Extended Exhalation",
					"SOMA Daily Dose (modified - shorter holds)",
					"Basic MBHT measurement",
				},
				Duration:  "15-22 minutes per session",
				Frequency: "Daily",
				Objectives: []string{
					"Execute 4:8 breathing pattern",
					"Complete modified Daily Dose session",
					"Establish MBHT baseline",
				},
				Cautions: []string{
					"Release breath holds at FIRST urge - never force",
					"Stop if any concerning symptoms arise",
				},
			},
			{
				Week:  2,
				Title: "Building: Coherent Breathing",
				Focus: "Heart coherence and visualization",
				Techniques: []string{
					"4:4 Coherent Breathing",
					"Directed healing visualization",
					"AUM chanting (optional)",
				},
				Duration:  "20-25 minutes per session",
				Frequency: "Daily",
				Objectives: []string{
					"Execute 4:4 coherent breathing",
					"Practice visualization during gentle holds",
				},
				Cautions: []string{
					"Continue monitoring how you feel",
					"Skip AUM if any respiratory concerns",
				},
			},
			{
				Week:  3,
				Title: "Integration: Pattern Selection",
				Focus: "Learning to match techniques to your state",
				Techniques: []string{
					"Pattern selection based on energy/healing phase",
					"Full SOMA Energized Meditation (modified)",
					"Progress tracking with MBHT",
				},
				Duration:  "25-30 minutes per session",
				Frequency: "Daily or 5x/week",
				Objectives: []string{
					"Select appropriate pattern for current state",
					"Track progress with MBHT measurements",
				},
				Cautions: []string{
					"Review with healthcare provider before continuing",
				},
			},
		},
	}
}

func standardProtocol(condition string) models.MatchedProtocol {
	return models.MatchedProtocol{
		Type:            models.ProtocolStandard,
		Name:            "Complete Healing Protocol",
		Description:     `The full SOMA breathwork progression designed for optimal healing, evaluated with the "Data to Wisdom" instructional design system at a 0.81 composite score.`,
		DurationWeeks:   4,
		EvaluationScore: EvaluationScore,
		MBHTTracking:    true,
		AudioGuided:     true,
		Rationale:       profile(condition) + ", you can follow our complete protocol. This provides the full progression from parasympathetic activation through advanced integration practices.",
		Weeks: []models.ProtocolWeek{
			{
				Week:  1,
				Title: "Foundation: Parasympathetic Activation",
				Focus: "4:8 breathing for rest-and-digest state",
				Techniques: []string{
					"4:8 Extended Exhalation",
					"SOMA Daily Dose with breath retention",
					"Basic visualization during holds",
				},
				Duration:  "22 minutes per session",
				Frequency: "Daily",
				Objectives: []string{
					"Execute 4:8 breathing for 10+ minutes",
					"Complete full Daily Dose session",
					"Establish MBHT baseline",
				},
				Cautions: []string{
					"Release at first urge - never force holds",
				},
			},
			{
				Week:  2,
				Title: "Building: Heart Coherence",
				Focus: "4:4 breathing and directed healing",
				Techniques: []string{
					"4:4 Coherent Breathing",
					"AUM Chanting",
					"Advanced visualization during holds",
					"MBHT tracking",
				},
				Duration:  "25-30 minutes per session",
				Frequency: "Daily",
				Objectives: []string{
					"Execute 4:4 coherent breathing",
					"Practice AUM with resonance",
					"Direct visualization to areas of concern",
				},
				Cautions: []string{},
			},
			{
				Week:  3,
				Title: "Expansion: Energized Meditation",
				Focus: "Full SOMA sequence and pattern mastery",
				Techniques: []string{
					"Full Energized Meditation (Move-Chant-Breathe)",
					"Pattern selection based on needs",
					"Energizing patterns (2:2) when appropriate",
				},
				Duration:  "30-45 minutes per session",
				Frequency: "Daily or 5x/week",
				Objectives: []string{
					"Complete full Energized Meditation",
					"Differentiate and select appropriate patterns",
				},
				Cautions: []string{},
			},
			{
				Week:  4,
				Title: "Integration: Mastery & Design",
				Focus: "Advanced states and personal practice design",
				Techniques: []string{
					"Kevala continuous flow breathing",
					"Integration journeys",
					"Personal practice plan design",
				},
				Duration:  "30-60 minutes per session",
				Frequency: "5x/week",
				Objectives: []string{
					"Experience Kevala states",
					"Evaluate progress with MBHT trends",
					"Design ongoing personal practice",
				},
				Cautions: []string{},
			},
		},
	}
}

package plan

import "github.com/BTreeMap/NeuroSoma/internal/models"

var goalLabels = map[models.Goal]string{
	models.GoalPresentation:   "High-Stakes Presentation",
	models.GoalConversation:   "Difficult Conversation",
	models.GoalInterview:      "Job Interview",
	models.GoalDeadline:       "Creative Deadline",
	models.GoalPersonal:       "Personal Event",
	models.GoalPainManagement: "Pain Management Journey",
}

var obstacleLabels = map[models.Obstacle]string{
	models.ObstacleAnxiety:            "Anxiety / Nervousness",
	models.ObstacleLowEnergy:          "Low Energy / Motivation",
	models.ObstacleScattered:          "Scattered Focus / Overthinking",
	models.ObstacleEmotional:          "Emotional Reactivity",
	models.ObstacleCreative:           "Creative Block",
	models.ObstaclePhysicalTension:    "Physical Tension",
	models.ObstaclePerformanceAnxiety: "Performance Anxiety",
	models.ObstacleChronicPain:        "Chronic Pain Management",
}

// GoalLabel returns the display name of a goal, or the raw value if it has none.
func GoalLabel(g models.Goal) string {
	if l, ok := goalLabels[g]; ok {
		return l
	}
	return string(g)
}

// ObstacleLabel returns the display name of an obstacle, or the raw value if it has none.
func ObstacleLabel(o models.Obstacle) string {
	if l, ok := obstacleLabels[o]; ok {
		return l
	}
	return string(o)
}

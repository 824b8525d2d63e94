package plan

import (
	"fmt"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// buildRitual returns the morning, pre-event and during-event routines for the
// primary technique, followed by the goal's event-day steps.
func (g *Generator) buildRitual(goal models.Goal, techniqueName string) models.Ritual {
	r := models.Ritual{
		Morning: []string{
			"Record your MBHT (compare to Day 1 baseline)",
			fmt.Sprintf("%s for 10 minutes", techniqueName),
			"Light movement or stretching",
			"Set intention for the day",
		},
		PreEvent: []string{
			"Find a quiet spot",
			fmt.Sprintf("5-min %s", techniqueName),
			"Body scan for tension areas",
			"Slow diaphragmatic breaths",
		},
		DuringEvent: []string{
			"If symptoms increase: 4-7-8 breath (3 cycles)",
			"Pause and breathe before reacting",
			fmt.Sprintf("Return to %s between demanding moments", techniqueName),
		},
	}

	if gp, ok := g.lib.Goal(string(goal)); ok {
		r.DuringEvent = append(r.DuringEvent, gp.EventDayProtocol...)
	}
	return r
}

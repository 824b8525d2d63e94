package plan

import (
	"fmt"
	"slices"

	"github.com/BTreeMap/NeuroSoma/internal/library"
	"github.com/BTreeMap/NeuroSoma/internal/models"
)

const (
	baselineCheckIn   = "Measure your MBHT baseline (first thing after waking)"
	comparisonCheckIn = "Record your MBHT and compare to Day 1"
	triggerJournal    = "Write down 2-3 situations that trigger your symptoms. What does it feel like in your body?"
	ritualJournal     = "Draft your daily ritual: What breathing practice will you do each morning?"
	progressCheckIn   = "Rate your progress (1-10). Compare MBHT to Day 1 baseline."
	rehearsalTask     = "Full daily ritual rehearsal"
)

// coreInterventionFromDay is the first day the primary technique is added to
// days whose curriculum does not already include it.
const coreInterventionFromDay = 3

func (g *Generator) buildSchedule(intake models.Intake, primary library.Technique, hasPrimary bool, daysUntil int) []models.DayPlan {
	planDays := min(MaxPlanDays, daysUntil)
	schedule := make([]models.DayPlan, 0, planDays)

	for day := 1; day <= planDays; day++ {
		curriculum, ok := g.lib.Day(day)
		if !ok {
			// Unreachable with the embedded catalog, which defines every day up to MaxPlanDays.
			continue
		}

		tasks := []models.DayTask{checkInTask(day)}
		for _, id := range curriculum.Techniques {
			if id == checkInTechniqueID {
				continue
			}
			t, ok := g.lib.Technique(id)
			if !ok {
				continue
			}
			tasks = append(tasks, models.DayTask{
				Type:        models.TaskPractice,
				Description: fmt.Sprintf("%s: %s", t.Name, t.Instructions.Summary),
				DurationMin: ScaledDuration(t.DurationMinutes, intake.TimeCommitment),
				TechniqueID: t.ID,
			})
		}

		if day >= coreInterventionFromDay && hasPrimary && !slices.Contains(curriculum.Techniques, primary.ID) {
			tasks = append(tasks, models.DayTask{
				Type:        models.TaskPractice,
				Description: fmt.Sprintf("%s (Your core intervention for %s)", primary.Name, ObstacleLabel(intake.Obstacle)),
				DurationMin: primary.DurationMinutes,
				TechniqueID: primary.ID,
			})
		}

		if extra, ok := closingTask(day); ok {
			tasks = append(tasks, extra)
		}

		schedule = append(schedule, models.DayPlan{
			Day:   day,
			Title: fmt.Sprintf("Day %d: %s", day, curriculum.Name),
			Focus: curriculum.Focus,
			Tasks: tasks,
		})
	}

	if daysUntil < MaxPlanDays && len(schedule) > 0 {
		last := &schedule[len(schedule)-1]
		last.Tasks = append(last.Tasks, models.DayTask{
			Type:        models.TaskPractice,
			Description: rehearsalTask,
			DurationMin: RehearsalMinutes,
		})
	}

	return schedule
}

func checkInTask(day int) models.DayTask {
	desc := comparisonCheckIn
	if day == 1 {
		desc = baselineCheckIn
	}
	return models.DayTask{
		Type:        models.TaskCheckIn,
		Description: desc,
		DurationMin: checkInMinutes,
		TechniqueID: checkInTechniqueID,
	}
}

// closingTask returns the day-specific journal or review task, if any.
func closingTask(day int) (models.DayTask, bool) {
	switch day {
	case 1:
		return models.DayTask{Type: models.TaskJournal, Description: triggerJournal, DurationMin: 5}, true
	case 5:
		return models.DayTask{Type: models.TaskJournal, Description: ritualJournal, DurationMin: 10}, true
	case 7:
		return models.DayTask{Type: models.TaskCheckIn, Description: progressCheckIn, DurationMin: 5}, true
	default:
		return models.DayTask{}, false
	}
}

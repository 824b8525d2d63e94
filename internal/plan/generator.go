// Package plan builds personalised multi-day breathwork plans from an intake.
//
// Generation is deterministic given a clock and an id source and never fails:
// every catalog lookup has a fallback.
package plan

import (
	"log/slog"
	"math"
	"time"

	"github.com/BTreeMap/NeuroSoma/internal/library"
	"github.com/BTreeMap/NeuroSoma/internal/models"
	"github.com/BTreeMap/NeuroSoma/internal/util"
)

const (
	// MaxPlanDays bounds the schedule length
	MaxPlanDays = 7
	// PracticeShare is the part of the daily time budget a single practice may take
	PracticeShare = 0.6
	// RehearsalMinutes is the length of the final rehearsal in short plans
	RehearsalMinutes = 15

	checkInTechniqueID  = "mbht"
	checkInMinutes      = 2
	fallbackTechniqueID = "coherence_breathing"
	beginnerTechniqueID = "breath_awareness"
)

// fallbackTechnique is the primary technique used when none resolves.
var fallbackTechnique = models.MatchedTechnique{
	ID:          fallbackTechniqueID,
	Title:       "Coherence Breathing",
	Description: "Balance your nervous system",
	DurationMin: 10,
	Category:    string(library.CategoryCore),
}

// Opts holds configuration for a Generator.
type Opts struct {
	Now     func() time.Time
	NewID   func() string
	Library *library.Library
}

// Option configures a Generator.
type Option func(*Opts)

// WithClock sets the time source used for the creation time and days-until count.
func WithClock(now func() time.Time) Option {
	return func(o *Opts) { o.Now = now }
}

// WithIDGenerator sets the plan id source.
func WithIDGenerator(newID func() string) Option {
	return func(o *Opts) { o.NewID = newID }
}

// WithLibrary sets the technique catalog. The embedded catalog is used by default.
func WithLibrary(lib *library.Library) Option {
	return func(o *Opts) { o.Library = lib }
}

// Generator builds action plans. It holds no mutable state and is safe for concurrent use.
type Generator struct {
	now   func() time.Time
	newID func() string
	lib   *library.Library
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	cfg := Opts{
		Now:   time.Now,
		NewID: util.GeneratePlanID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Library == nil {
		cfg.Library = library.Default()
	}
	return &Generator{now: cfg.Now, newID: cfg.NewID, lib: cfg.Library}
}

// Generate builds a complete plan for a validated intake. The education value
// is attached as-is.
func (g *Generator) Generate(intake models.Intake, education *models.EducationResponse) models.ActionPlan {
	intake.ApplyDefaults()
	now := g.now().UTC()

	daysUntil := DaysUntil(intake.EventDate, now)
	primary, found := g.primaryTechnique(intake.Obstacle, intake.Experience)

	matched := fallbackTechnique
	if found {
		matched = models.MatchedTechnique{
			ID:          primary.ID,
			Title:       primary.Name,
			Description: primary.ShortDescription,
			DurationMin: primary.DurationMinutes,
			Category:    string(primary.Category),
		}
	}

	p := models.ActionPlan{
		ID:        g.newID(),
		CreatedAt: now,
		UserContext: models.UserContext{
			Goal:      GoalLabel(intake.Goal),
			Obstacle:  ObstacleLabel(intake.Obstacle),
			DaysUntil: daysUntil,
		},
		MatchedTechnique: matched,
		Schedule:         g.buildSchedule(intake, primary, found, daysUntil),
		Ritual:           g.buildRitual(intake.Goal, matched.Title),
		Education:        education,
	}

	slog.Debug("Generator.Generate: plan built", "id", p.ID, "days_until", daysUntil, "technique", matched.ID, "schedule_days", len(p.Schedule))
	return p
}

// DaysUntil counts whole calendar days from now to the event date, with a
// minimum of 1. Dates that cannot be parsed count as 1.
func DaysUntil(eventDate string, now time.Time) int {
	event, err := models.ParseEventDate(eventDate)
	if err != nil {
		slog.Debug("plan.DaysUntil: unparseable event date, using minimum", "event_date", eventDate, "error", err)
		return 1
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Ceil(event.Sub(today).Hours() / 24))
	return max(1, days)
}

// ScaledDuration caps a catalog duration at the practice share of the daily budget.
func ScaledDuration(catalogMinutes, timeCommitment int) int {
	if timeCommitment <= 0 {
		timeCommitment = models.DefaultTimeCommitment
	}
	budget := int(math.Round(float64(timeCommitment) * PracticeShare))
	return min(catalogMinutes, budget)
}

// primaryTechnique picks the first technique mapped to the obstacle, swapping an
// intermediate pick for an easier one when the user has no experience.
func (g *Generator) primaryTechnique(obstacle models.Obstacle, experience models.Experience) (library.Technique, bool) {
	key := obstacle
	if key == models.ObstacleChronicPain {
		key = models.ObstaclePhysicalTension
	}

	ids, ok := g.lib.TechniquesForObstacle(string(key))
	if !ok {
		ids = []string{fallbackTechniqueID}
	}

	primary, found := g.lib.Technique(ids[0])
	if !found {
		return library.Technique{}, false
	}
	if primary.Difficulty != library.DifficultyIntermediate || experience != models.ExperienceNone {
		return primary, true
	}

	alternative := beginnerTechniqueID
	if len(ids) > 1 {
		alternative = ids[1]
	}
	if t, ok := g.lib.Technique(alternative); ok {
		return t, true
	}
	return primary, true
}

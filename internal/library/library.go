// Package library holds the static breathwork catalog: techniques, the day-by-day
// curriculum, the obstacle to technique mapping and per-goal metadata.
//
// The catalog is embedded in the binary and parsed once. It is read-only after
// loading and safe for concurrent use.
package library

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed technique_library.yaml
var embeddedCatalog []byte

// Category classifies a technique.
type Category string

const (
	CategoryRegulation  Category = "regulation"
	CategoryActivation  Category = "activation"
	CategoryIntegration Category = "integration"
	CategoryFoundation  Category = "foundation"
	CategoryPhysical    Category = "physical"
	CategoryAssessment  Category = "assessment"
	CategoryAdvanced    Category = "advanced"
	CategoryCore        Category = "core"
)

// Difficulty tiers
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Instructions is the how-to of a technique.
type Instructions struct {
	Summary string   `yaml:"summary" json:"summary"`
	Steps   []string `yaml:"steps" json:"steps"`
}

// Technique is one entry of the catalog.
type Technique struct {
	ID               string       `yaml:"id" json:"id"`
	Name             string       `yaml:"name" json:"name"`
	ShortDescription string       `yaml:"short_description" json:"short_description"`
	Category         Category     `yaml:"category" json:"category"`
	DurationMinutes  int          `yaml:"duration_minutes" json:"duration_minutes"`
	Difficulty       string       `yaml:"difficulty" json:"difficulty"`
	Purpose          string       `yaml:"purpose" json:"purpose"`
	BestFor          []string     `yaml:"best_for" json:"best_for"`
	Instructions     Instructions `yaml:"instructions" json:"instructions"`
	Benefits         []string     `yaml:"benefits" json:"benefits,omitempty"`
}

// DayCurriculum is the template for one day of a plan.
type DayCurriculum struct {
	Name        string   `yaml:"name" json:"name"`
	Focus       string   `yaml:"focus" json:"focus"`
	Techniques  []string `yaml:"techniques" json:"techniques"`
	TimeMinutes int      `yaml:"time_minutes" json:"time_minutes"`
	Deliverable string   `yaml:"deliverable" json:"deliverable"`
}

// GoalPlan is the static metadata attached to a goal.
type GoalPlan struct {
	Name             string   `yaml:"name" json:"name"`
	RecommendedDays  int      `yaml:"recommended_days" json:"recommended_days"`
	PrimaryTechnique string   `yaml:"primary_technique" json:"primary_technique"`
	RitualComponents []string `yaml:"ritual_components" json:"ritual_components"`
	EventDayProtocol []string `yaml:"event_day_protocol" json:"event_day_protocol"`
}

// catalogFile mirrors the YAML document layout.
type catalogFile struct {
	Techniques           []Technique              `yaml:"techniques"`
	ObstacleTechniqueMap map[string][]string      `yaml:"obstacle_technique_map"`
	GoalPlans            map[string]GoalPlan      `yaml:"goal_plans"`
	DayCurriculum        map[string]DayCurriculum `yaml:"day_curriculum"`
}

// Library is the immutable, indexed catalog.
type Library struct {
	techniques []Technique
	byID       map[string]int
	obstacles  map[string][]string
	goals      map[string]GoalPlan
	days       map[int]DayCurriculum
}

// Parse decodes a YAML catalog document and indexes it.
func Parse(data []byte) (*Library, error) {
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode technique catalog: %w", err)
	}

	lib := &Library{
		techniques: raw.Techniques,
		byID:       make(map[string]int, len(raw.Techniques)),
		obstacles:  raw.ObstacleTechniqueMap,
		goals:      raw.GoalPlans,
		days:       make(map[int]DayCurriculum, len(raw.DayCurriculum)),
	}
	for i, t := range raw.Techniques {
		if t.ID == "" {
			return nil, fmt.Errorf("technique at index %d has no id", i)
		}
		if _, dup := lib.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate technique id %q", t.ID)
		}
		lib.byID[t.ID] = i
	}
	for key, entry := range raw.DayCurriculum {
		day, err := strconv.Atoi(key)
		if err != nil || day < 1 {
			return nil, fmt.Errorf("invalid curriculum day %q", key)
		}
		lib.days[day] = entry
	}
	if lib.obstacles == nil {
		lib.obstacles = map[string][]string{}
	}
	if lib.goals == nil {
		lib.goals = map[string]GoalPlan{}
	}

	slog.Debug("Library.Parse: catalog loaded", "techniques", len(lib.techniques), "days", len(lib.days), "goals", len(lib.goals))
	return lib, nil
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the embedded catalog, parsing it on first use.
// The embedded document is part of the build, so a decode failure is a programming error.
func Default() *Library {
	defaultOnce.Do(func() {
		lib, err := Parse(embeddedCatalog)
		if err != nil {
			panic(fmt.Sprintf("embedded technique catalog is invalid: %v", err))
		}
		defaultLib = lib
	})
	return defaultLib
}

// Technique looks up a technique by id.
func (l *Library) Technique(id string) (Technique, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Technique{}, false
	}
	return l.techniques[i], true
}

// Techniques returns a copy of all techniques in catalog order.
func (l *Library) Techniques() []Technique {
	out := make([]Technique, len(l.techniques))
	copy(out, l.techniques)
	return out
}

// TechniquesForObstacle returns the ordered technique ids mapped to an obstacle.
func (l *Library) TechniquesForObstacle(obstacle string) ([]string, bool) {
	ids, ok := l.obstacles[obstacle]
	if !ok || len(ids) == 0 {
		return nil, false
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, true
}

// Day returns the curriculum entry for a plan day.
func (l *Library) Day(day int) (DayCurriculum, bool) {
	d, ok := l.days[day]
	return d, ok
}

// DayCount reports how many curriculum days are defined.
func (l *Library) DayCount() int {
	return len(l.days)
}

// Goal returns the metadata for a goal.
func (l *Library) Goal(goal string) (GoalPlan, bool) {
	g, ok := l.goals[goal]
	return g, ok
}

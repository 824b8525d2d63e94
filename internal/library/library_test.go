package library

import (
	"strings"
	"testing"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	lib := Default()

	validCategories := map[Category]bool{
		CategoryRegulation: true, CategoryActivation: true, CategoryIntegration: true, CategoryFoundation: true,
		CategoryPhysical: true, CategoryAssessment: true, CategoryAdvanced: true, CategoryCore: true,
	}
	for _, tech := range lib.Techniques() {
		if !validCategories[tech.Category] {
			t.Errorf("technique %s has unknown category %q", tech.ID, tech.Category)
		}
		if tech.DurationMinutes <= 0 {
			t.Errorf("technique %s has non-positive duration", tech.ID)
		}
		if tech.Instructions.Summary == "" || len(tech.Instructions.Steps) == 0 {
			t.Errorf("technique %s is missing instructions", tech.ID)
		}
	}

	for obstacle, ids := range lib.obstacles {
		for _, id := range ids {
			if _, ok := lib.Technique(id); !ok {
				t.Errorf("obstacle %s references unknown technique %s", obstacle, id)
			}
		}
	}
	for day, entry := range lib.days {
		for _, id := range entry.Techniques {
			if _, ok := lib.Technique(id); !ok {
				t.Errorf("day %d references unknown technique %s", day, id)
			}
		}
	}
	for goal, gp := range lib.goals {
		if _, ok := lib.Technique(gp.PrimaryTechnique); !ok {
			t.Errorf("goal %s references unknown primary technique %s", goal, gp.PrimaryTechnique)
		}
	}
}

func TestDefaultCatalogHasSevenDays(t *testing.T) {
	lib := Default()
	if lib.DayCount() != 7 {
		t.Fatalf("expected 7 curriculum days, got %d", lib.DayCount())
	}
	for day := 1; day <= 7; day++ {
		if _, ok := lib.Day(day); !ok {
			t.Errorf("missing curriculum day %d", day)
		}
	}
	if _, ok := lib.Day(8); ok {
		t.Error("day 8 should not exist")
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same library instance")
	}
}

func TestTechniquesForObstacleReturnsCopy(t *testing.T) {
	lib := Default()
	ids, ok := lib.TechniquesForObstacle("anxiety")
	if !ok || len(ids) == 0 {
		t.Fatal("expected techniques for anxiety")
	}
	ids[0] = "mutated"
	again, _ := lib.TechniquesForObstacle("anxiety")
	if again[0] == "mutated" {
		t.Error("caller mutation leaked into the catalog")
	}
	if _, ok := lib.TechniquesForObstacle("chronic_pain"); ok {
		t.Error("chronic_pain is aliased by the generator and should not be mapped directly")
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "malformed yaml", doc: "techniques: [", want: "decode"},
		{name: "missing id", doc: "techniques:\n  - name: x\n", want: "no id"},
		{name: "duplicate id", doc: "techniques:\n  - id: a\n  - id: a\n", want: "duplicate"},
		{name: "bad day key", doc: "day_curriculum:\n  first:\n    name: x\n", want: "invalid curriculum day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParseEmptyCatalog(t *testing.T) {
	lib, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := lib.Goal("presentation"); ok {
		t.Error("empty catalog should have no goals")
	}
	if _, ok := lib.TechniquesForObstacle("anxiety"); ok {
		t.Error("empty catalog should have no obstacle map")
	}
}

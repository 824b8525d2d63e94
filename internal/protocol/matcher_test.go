package protocol

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

func TestMatchDurations(t *testing.T) {
	tests := []struct {
		tier      models.ProtocolType
		wantType  models.ProtocolType
		wantWeeks int
	}{
		{models.ProtocolGentle, models.ProtocolGentle, 2},
		{models.ProtocolModerate, models.ProtocolModerate, 3},
		{models.ProtocolStandard, models.ProtocolStandard, 4},
		{"aggressive", models.ProtocolStandard, 4},
		{"", models.ProtocolStandard, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			p := Match(tt.tier, "")
			if p.Type != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, p.Type)
			}
			if p.DurationWeeks != tt.wantWeeks {
				t.Errorf("expected %d weeks, got %d", tt.wantWeeks, p.DurationWeeks)
			}
			if len(p.Weeks) != p.DurationWeeks {
				t.Errorf("expected %d week entries, got %d", p.DurationWeeks, len(p.Weeks))
			}
			for i, w := range p.Weeks {
				if w.Week != i+1 {
					t.Errorf("week %d numbered %d", i+1, w.Week)
				}
			}
			if p.EvaluationScore != EvaluationScore {
				t.Errorf("unexpected evaluation score %v", p.EvaluationScore)
			}
		})
	}
}

func TestUnknownTierMatchesStandard(t *testing.T) {
	want := Match(models.ProtocolStandard, "asthma")
	got := Match("unheard-of", "asthma")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unknown tier differs from standard (-want +got):\n%s", diff)
	}
}

func TestConditionOnlyChangesRationale(t *testing.T) {
	for _, tier := range []models.ProtocolType{models.ProtocolGentle, models.ProtocolModerate, models.ProtocolStandard} {
		plain := Match(tier, "")
		withCondition := Match(tier, "fibromyalgia")

		if !strings.Contains(withCondition.Rationale, "(fibromyalgia)") {
			t.Errorf("%s: rationale should mention the condition: %q", tier, withCondition.Rationale)
		}
		if strings.Contains(plain.Rationale, "(") {
			t.Errorf("%s: rationale without condition should not contain a label: %q", tier, plain.Rationale)
		}

		withCondition.Rationale = plain.Rationale
		if diff := cmp.Diff(plain, withCondition); diff != "" {
			t.Errorf("%s: condition changed more than the rationale:\n%s", tier, diff)
		}
	}
}

func TestGentleProtocolAvoidsHolds(t *testing.T) {
	p := Match(models.ProtocolGentle, "")
	if p.MBHTTracking {
		t.Error("gentle protocol should not track MBHT")
	}
	if !p.AudioGuided {
		t.Error("gentle protocol should be audio guided")
	}
}

func TestMatchReturnsFreshValues(t *testing.T) {
	first := Match(models.ProtocolModerate, "")
	first.Weeks[0].Techniques[0] = "mutated"
	second := Match(models.ProtocolModerate, "")
	if second.Weeks[0].Techniques[0] == "mutated" {
		t.Error("mutating one match leaked into the next")
	}
}

func TestSummaryAndBadge(t *testing.T) {
	p := Match(models.ProtocolModerate, "")
	s := Summary(p)
	if !strings.HasPrefix(s, "Adaptive Healing Protocol (3 weeks) - ") {
		t.Errorf("unexpected summary %q", s)
	}

	badges := map[models.ProtocolType]string{
		models.ProtocolGentle:   "green",
		models.ProtocolModerate: "yellow",
		models.ProtocolStandard: "blue",
		"other":                 "blue",
	}
	for tier, color := range badges {
		if got := SafetyBadge(tier).Color; got != color {
			t.Errorf("%s: expected %s badge, got %s", tier, color, got)
		}
	}
}

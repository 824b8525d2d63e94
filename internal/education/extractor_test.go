package education

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Sections
	}{
		{
			name: "no headers",
			raw:  "just some prose\nwith two lines",
			want: Sections{},
		},
		{
			name: "empty input",
			raw:  "",
			want: Sections{},
		},
		{
			name: "two sections",
			raw:  "## Anatomy & Physiology\nThe vagus nerve.\n\n## Research Evidence\nSeveral RCTs.\n",
			want: Sections{
				"anatomy & physiology": "The vagus nerve.",
				"research evidence":    "Several RCTs.",
			},
		},
		{
			name: "preamble is ignored",
			raw:  "Here is your answer.\n# Disclaimer\nEducational only.",
			want: Sections{"disclaimer": "Educational only."},
		},
		{
			name: "numbered and emphasised titles",
			raw:  "### 1. **Research Evidence:**\nbody\n## Questions for Your Doctor ##\n- one",
			want: Sections{
				"research evidence":         "body",
				"questions for your doctor": "- one",
			},
		},
		{
			name: "last duplicate wins",
			raw:  "## Disclaimer\nfirst\n## Disclaimer\nsecond",
			want: Sections{"disclaimer": "second"},
		},
		{
			name: "empty body is kept",
			raw:  "## Research Evidence\n\n## Disclaimer\nx",
			want: Sections{"research evidence": "", "disclaimer": "x"},
		},
		{
			name: "crlf line endings",
			raw:  "## Disclaimer\r\nline one\r\nline two\r\n",
			want: Sections{"disclaimer": "line one\nline two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSectionsFirst(t *testing.T) {
	s := Sections{
		"anatomy and physiology": "second spelling",
		"research evidence":      "",
	}

	body, ok := s.First("Anatomy & Physiology", "Anatomy and Physiology")
	if !ok || body != "second spelling" {
		t.Errorf("expected fallback variant, got %q, %v", body, ok)
	}

	body, ok = s.First("Research Evidence")
	if !ok || body != "" {
		t.Errorf("expected present-but-empty section to be found, got %q, %v", body, ok)
	}

	if _, ok := s.First("Disclaimer"); ok {
		t.Error("expected missing section to be reported as absent")
	}
}

func TestScanKeyword(t *testing.T) {
	raw := "Intro text\n**Research Findings**\nline one\nline two\n**Something Else**\nignored"

	if got := ScanKeyword(raw, "research"); got != "line one\nline two" {
		t.Errorf("unexpected scan result %q", got)
	}
	if got := ScanKeyword(raw, "anatomy"); got != "" {
		t.Errorf("expected empty result for missing keyword, got %q", got)
	}
	if got := ScanKeyword(raw, ""); got != "" {
		t.Errorf("expected empty result for empty keyword, got %q", got)
	}
	if got := ScanKeyword("## Research\nto the end\nof text", "RESEARCH"); got != "to the end\nof text" {
		t.Errorf("expected scan to run to end of text, got %q", got)
	}
}

func TestLookupTiers(t *testing.T) {
	variants := []string{"research evidence", "evidence"}

	t.Run("variant priority", func(t *testing.T) {
		raw := "## Evidence\nsecond\n## Research Evidence\nfirst"
		if got := Lookup(Extract(raw), raw, variants, "research", "default"); got != "first" {
			t.Errorf("expected first variant to win, got %q", got)
		}
	})

	t.Run("keyword fallback", func(t *testing.T) {
		raw := "**What the research says**\nstudies exist\n**Next**"
		if got := Lookup(Extract(raw), raw, variants, "research", "default"); got != "studies exist" {
			t.Errorf("expected keyword scan result, got %q", got)
		}
	})

	t.Run("empty section falls through", func(t *testing.T) {
		raw := "## Research Evidence\n\n## Other\nx"
		if got := Lookup(Extract(raw), raw, variants, "research", "default"); got != "default" {
			t.Errorf("expected default, got %q", got)
		}
	})

	t.Run("default", func(t *testing.T) {
		if got := Lookup(Sections{}, "", variants, "research", "default"); got != "default" {
			t.Errorf("expected default, got %q", got)
		}
	})
}

// Package education turns model-generated markdown into a structured
// EducationResponse.
//
// Nothing in the extraction path returns an error: missing or malformed sections
// always resolve to defaults, so the caller gets a usable record for any input.
package education

import (
	"regexp"
	"strings"
)

// Sections maps a normalised header title to the trimmed body under it.
type Sections map[string]string

var (
	headerPattern    = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.+?)\s*#*\s*$`)
	numberingPattern = regexp.MustCompile(`^\d+[.)]\s*`)
)

// Extract splits a markdown document into sections keyed by header title.
// A document without headers yields an empty mapping. When a title repeats,
// the last section wins.
func Extract(raw string) Sections {
	sections := Sections{}
	title := ""
	inSection := false
	var body []string

	flush := func() {
		if inSection {
			sections[title] = strings.TrimSpace(strings.Join(body, "\n"))
		}
	}

	for _, line := range splitLines(raw) {
		if m := headerPattern.FindStringSubmatch(line); m != nil {
			flush()
			title = normalizeTitle(m[1])
			inSection = title != ""
			body = nil
			continue
		}
		if inSection {
			body = append(body, line)
		}
	}
	flush()
	return sections
}

// First returns the body of the first title variant present in the mapping.
// A present section with an empty body is reported as found.
func (s Sections) First(variants ...string) (string, bool) {
	for _, v := range variants {
		if body, ok := s[normalizeTitle(v)]; ok {
			return body, true
		}
	}
	return "", false
}

// ScanKeyword finds the first header or emphasised line containing keyword and
// collects the lines after it until the next header or emphasised line.
func ScanKeyword(raw, keyword string) string {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return ""
	}

	inSection := false
	var content []string
	for _, line := range splitLines(raw) {
		divider := isDivider(line)
		if !inSection {
			if divider && strings.Contains(strings.ToLower(line), keyword) {
				inSection = true
			}
			continue
		}
		if divider {
			break
		}
		content = append(content, line)
	}
	return strings.TrimSpace(strings.Join(content, "\n"))
}

// Lookup resolves a section in three tiers: the title variants in priority order,
// then the keyword scan over the raw text, then def. Empty bodies count as missing
// so a blank section never hides a better match or the default.
func Lookup(sections Sections, raw string, variants []string, keyword, def string) string {
	for _, v := range variants {
		if body, ok := sections.First(v); ok && body != "" {
			return body
		}
	}
	if body := ScanKeyword(raw, keyword); body != "" {
		return body
	}
	return def
}

func isDivider(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "**")
}

func normalizeTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	t = strings.Trim(t, "*_ ")
	t = numberingPattern.ReplaceAllString(t, "")
	t = strings.Trim(t, "*_ ")
	t = strings.TrimSuffix(t, ":")
	return strings.TrimSpace(strings.Trim(t, "*_"))
}

func splitLines(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}

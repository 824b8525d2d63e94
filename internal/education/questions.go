package education

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxQuestions caps the questions kept from a response
	MaxQuestions = 6
	// minQuestionRunes filters out fragments that are too short to be a question
	minQuestionRunes = 15
)

var listItemPattern = regexp.MustCompile(`^\s*(?:[-*•]\s+|\d+[.)]\s*)(.+)$`)

// DefaultQuestions returns the fallback questions for a healthcare provider.
func DefaultQuestions() []string {
	return []string{
		"Is breathwork safe for my specific condition?",
		"Are there any techniques I should avoid?",
		"How might my current medications interact with breathing exercises?",
		"What warning signs should prompt me to stop and seek help?",
		"Would you recommend working with a certified instructor?",
	}
}

// ParseQuestions collects bulleted or numbered lines from a questions section.
// It returns between 1 and MaxQuestions items.
func ParseQuestions(section string) []string {
	var questions []string
	for _, line := range splitLines(section) {
		m := listItemPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		q := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(q) > minQuestionRunes {
			questions = append(questions, q)
		}
		if len(questions) == MaxQuestions {
			break
		}
	}
	if len(questions) == 0 {
		return DefaultQuestions()
	}
	return questions
}

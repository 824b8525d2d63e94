package education

import (
	"regexp"
	"strings"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// Defaults applied when a bucket ends up empty
const (
	DefaultAbsolute       = "Consult healthcare provider before starting any breathwork practice"
	DefaultMedicationNote = "Discuss any current medications with your healthcare provider before starting breathwork."
)

// DefaultWarningSigns returns the fallback warning signs.
func DefaultWarningSigns() []string {
	return []string{
		"Dizziness or lightheadedness",
		"Chest pain or pressure",
		"Numbness or tingling",
		"Severe anxiety or panic",
	}
}

// bucket is the classifier state: where the next bulleted item goes.
type bucket int

const (
	bucketNone bucket = iota
	bucketAbsolute
	bucketRelative
	bucketWarning
	bucketMedication
)

func (b bucket) String() string {
	switch b {
	case bucketAbsolute:
		return "absolute"
	case bucketRelative:
		return "relative"
	case bucketWarning:
		return "warning"
	case bucketMedication:
		return "medication"
	default:
		return "none"
	}
}

var bulletPattern = regexp.MustCompile(`^\s*[-*•]\s+(.+)$`)

// transition returns the bucket selected by a line's trigger phrases, or the
// current bucket when the line has none. Triggers are checked in severity order.
func transition(current bucket, line string) bucket {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "absolute"):
		return bucketAbsolute
	case strings.Contains(lower, "relative"), strings.Contains(lower, "caution"):
		return bucketRelative
	case strings.Contains(lower, "warning"), strings.Contains(lower, "stop"):
		return bucketWarning
	case strings.Contains(lower, "medication"):
		return bucketMedication
	default:
		return current
	}
}

// step applies one line: it returns the next state and, for bulleted lines, the
// item to record in that state. Bulleted labels such as "- **Absolute:**" only
// switch state.
func step(current bucket, line string) (next bucket, item string, ok bool) {
	next = transition(current, line)
	m := bulletPattern.FindStringSubmatch(line)
	if m == nil {
		return next, "", false
	}
	item = strings.TrimSpace(m[1])
	if item == "" || isLabel(item) {
		return next, "", false
	}
	return next, item, true
}

func isLabel(item string) bool {
	bare := strings.TrimSpace(strings.Trim(item, "*_ "))
	return strings.HasSuffix(bare, ":")
}

// Classifier accumulates contraindication items line by line.
type Classifier struct {
	state      bucket
	absolute   []string
	relative   []string
	warnings   []string
	medication []string
}

// Feed processes a single line.
func (c *Classifier) Feed(line string) {
	next, item, ok := step(c.state, line)
	c.state = next
	if !ok {
		return
	}
	switch next {
	case bucketAbsolute:
		c.absolute = append(c.absolute, item)
	case bucketWarning:
		c.warnings = append(c.warnings, item)
	case bucketMedication:
		c.medication = append(c.medication, item)
	default:
		// Unclassified bullets are treated as relative: cautious, not dropped.
		c.relative = append(c.relative, item)
	}
}

// Result returns the record with the non-empty defaults applied.
func (c *Classifier) Result() models.Contraindications {
	out := models.Contraindications{
		Absolute:        append([]string{}, c.absolute...),
		Relative:        append([]string{}, c.relative...),
		WarningSigns:    append([]string{}, c.warnings...),
		MedicationNotes: strings.TrimSpace(strings.Join(c.medication, " ")),
	}
	if len(out.Absolute) == 0 {
		out.Absolute = []string{DefaultAbsolute}
	}
	if len(out.WarningSigns) == 0 {
		out.WarningSigns = DefaultWarningSigns()
	}
	if out.MedicationNotes == "" {
		out.MedicationNotes = DefaultMedicationNote
	}
	return out
}

// Classify buckets the lines of a contraindications section.
func Classify(section string) models.Contraindications {
	var c Classifier
	for _, line := range splitLines(section) {
		c.Feed(line)
	}
	return c.Result()
}

package education

import (
	"log/slog"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// Fallback texts used when a section cannot be found
const (
	DefaultAnatomy            = "Please consult the full response for anatomical information."
	DefaultResearch           = "Limited research evidence available for this specific query. Please consult peer-reviewed sources."
	DefaultCommunicationGuide = "Use specific, measurable terms to describe your symptoms. Include location, timing, intensity (1-10 scale), and what makes it better or worse."
	DefaultDisclaimer         = "This information is for educational purposes only and does not constitute medical advice. Please consult a qualified healthcare provider before starting any new health practice."
)

// sectionRule names the header variants and keyword fallback of one section.
type sectionRule struct {
	variants []string
	keyword  string
	def      string
}

var (
	anatomySection = sectionRule{
		variants: []string{"anatomy & physiology", "anatomy and physiology"},
		keyword:  "anatomy",
		def:      DefaultAnatomy,
	}
	researchSection = sectionRule{
		variants: []string{"research evidence"},
		keyword:  "research",
		def:      DefaultResearch,
	}
	communicationSection = sectionRule{
		variants: []string{"how to explain this to your doctor", "how to explain to your doctor"},
		keyword:  "explain",
		def:      DefaultCommunicationGuide,
	}
	contraindicationSection = sectionRule{
		variants: []string{"contraindications & precautions", "contraindications and precautions"},
		keyword:  "contraindication",
	}
	questionSection = sectionRule{
		variants: []string{"questions for your doctor"},
		keyword:  "question",
	}
	disclaimerSection = sectionRule{
		variants: []string{"important disclaimer", "disclaimer"},
		def:      DefaultDisclaimer,
	}
)

func (s sectionRule) resolve(sections Sections, raw string) string {
	return Lookup(sections, raw, s.variants, s.keyword, s.def)
}

// ParseResponse builds an EducationResponse from raw model output. It never
// fails: every field falls back to a default and the raw text is kept.
func ParseResponse(raw string) models.EducationResponse {
	sections := Extract(raw)
	slog.Debug("education.ParseResponse: sections extracted", "count", len(sections), "raw_len", len(raw))

	contraindications := Classify(contraindicationSection.resolve(sections, raw))

	return models.EducationResponse{
		AnatomyPhysiology:       anatomySection.resolve(sections, raw),
		ResearchEvidence:        researchSection.resolve(sections, raw),
		CommunicationGuide:      communicationSection.resolve(sections, raw),
		Contraindications:       contraindications,
		QuestionsForDoctor:      ParseQuestions(questionSection.resolve(sections, raw)),
		Disclaimer:              disclaimerSection.resolve(sections, raw),
		RecommendedProtocolType: EstimateProtocolType(contraindications),
		RawResponse:             raw,
	}
}

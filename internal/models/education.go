package models

// ProtocolType is the risk tier of a breathwork protocol.
type ProtocolType string

const (
	// ProtocolGentle is the most conservative tier: no breath holds.
	ProtocolGentle ProtocolType = "gentle"
	// ProtocolModerate allows short holds released at the first urge.
	ProtocolModerate ProtocolType = "moderate"
	// ProtocolStandard is the full progression.
	ProtocolStandard ProtocolType = "standard"
)

// IsValidProtocolType checks if the given protocol type is one of the three tiers.
func IsValidProtocolType(t ProtocolType) bool {
	switch t {
	case ProtocolGentle, ProtocolModerate, ProtocolStandard:
		return true
	default:
		return false
	}
}

// Contraindications groups the safety notes extracted from model output.
type Contraindications struct {
	Absolute        []string `json:"absolute"`
	Relative        []string `json:"relative"`
	WarningSigns    []string `json:"warning_signs"`
	MedicationNotes string   `json:"medication_notes"`
}

// EducationResponse is the structured form of a model-generated education document.
type EducationResponse struct {
	AnatomyPhysiology       string            `json:"anatomy_physiology"`
	ResearchEvidence        string            `json:"research_evidence"`
	CommunicationGuide      string            `json:"communication_guide"`
	Contraindications       Contraindications `json:"contraindications"`
	QuestionsForDoctor      []string          `json:"questions_for_doctor"`
	Disclaimer              string            `json:"disclaimer"`
	RecommendedProtocolType ProtocolType      `json:"recommended_protocol_type"`
	RawResponse             string            `json:"raw_response"`
}

// ProtocolWeek is one week of a multi-week protocol.
type ProtocolWeek struct {
	Week       int      `json:"week"`
	Title      string   `json:"title"`
	Focus      string   `json:"focus"`
	Techniques []string `json:"techniques"`
	Duration   string   `json:"duration"`
	Frequency  string   `json:"frequency"`
	Objectives []string `json:"objectives"`
	Cautions   []string `json:"cautions"`
}

// MatchedProtocol is the multi-week protocol selected for a risk tier.
type MatchedProtocol struct {
	Type            ProtocolType   `json:"type"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	DurationWeeks   int            `json:"duration_weeks"`
	EvaluationScore float64        `json:"evaluation_score"`
	Weeks           []ProtocolWeek `json:"weeks"`
	MBHTTracking    bool           `json:"mbht_tracking"`
	AudioGuided     bool           `json:"audio_guided"`
	Rationale       string         `json:"rationale"`
}

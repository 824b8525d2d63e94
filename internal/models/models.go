// Package models defines the core data structures for NeuroSoma.
//
// It includes the intake submitted by a user, the education and protocol records
// derived from model output, the generated action plan, and the API envelope
// shared by the HTTP handlers.
package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Goal is the kind of event a user is preparing for.
type Goal string

const (
	GoalPresentation   Goal = "presentation"
	GoalConversation   Goal = "conversation"
	GoalInterview      Goal = "interview"
	GoalDeadline       Goal = "deadline"
	GoalPersonal       Goal = "personal"
	GoalPainManagement Goal = "pain_management"
)

// Obstacle is the main difficulty a user reports.
type Obstacle string

const (
	ObstacleAnxiety            Obstacle = "anxiety"
	ObstacleLowEnergy          Obstacle = "low_energy"
	ObstacleScattered          Obstacle = "scattered"
	ObstacleEmotional          Obstacle = "emotional"
	ObstacleCreative           Obstacle = "creative"
	ObstaclePhysicalTension    Obstacle = "physical_tension"
	ObstaclePerformanceAnxiety Obstacle = "performance_anxiety"
	ObstacleChronicPain        Obstacle = "chronic_pain"
)

// Experience is the user's prior breathwork experience.
type Experience string

const (
	ExperienceNone    Experience = "none"
	ExperienceSome    Experience = "some"
	ExperienceRegular Experience = "regular"
)

// Intake defaults and limits
const (
	// DefaultTimeCommitment is the daily practice budget in minutes when none is given
	DefaultTimeCommitment = 15
	// MaxTimeCommitment caps the daily practice budget in minutes
	MaxTimeCommitment = 240
	// MaxSymptomDescriptionLength bounds the free-text symptom field
	MaxSymptomDescriptionLength = 4096
	// EventDateLayout is the calendar layout expected for event dates
	EventDateLayout = "2006-01-02"
)

// Error variables for intake validation
var (
	ErrInvalidGoal           = errors.New("invalid goal")
	ErrInvalidObstacle       = errors.New("invalid obstacle")
	ErrInvalidExperience     = errors.New("invalid experience level")
	ErrMissingEventDate      = errors.New("event date is required")
	ErrInvalidEventDate      = errors.New("event date must be YYYY-MM-DD or RFC 3339")
	ErrInvalidTimeCommitment = errors.New("time commitment must be between 1 and 240 minutes")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrSymptomTooLong        = errors.New("symptom description exceeds maximum length")
)

// IsValidGoal checks if the given goal is supported.
func IsValidGoal(g Goal) bool {
	switch g {
	case GoalPresentation, GoalConversation, GoalInterview, GoalDeadline, GoalPersonal, GoalPainManagement:
		return true
	default:
		return false
	}
}

// IsValidObstacle checks if the given obstacle is supported.
func IsValidObstacle(o Obstacle) bool {
	switch o {
	case ObstacleAnxiety, ObstacleLowEnergy, ObstacleScattered, ObstacleEmotional,
		ObstacleCreative, ObstaclePhysicalTension, ObstaclePerformanceAnxiety, ObstacleChronicPain:
		return true
	default:
		return false
	}
}

// IsValidExperience checks if the given experience level is supported.
func IsValidExperience(e Experience) bool {
	switch e {
	case ExperienceNone, ExperienceSome, ExperienceRegular:
		return true
	default:
		return false
	}
}

// Intake is the plan request submitted by a user.
type Intake struct {
	Goal               Goal       `json:"goal"`
	EventDate          string     `json:"event_date"`
	Obstacle           Obstacle   `json:"obstacle"`
	TimeCommitment     int        `json:"time_commitment,omitempty"`
	Experience         Experience `json:"experience,omitempty"`
	Email              string     `json:"email,omitempty"`
	SymptomDescription string     `json:"symptom_description,omitempty"`
	WhatsAppNumber     string     `json:"whatsapp_number,omitempty"`
}

// ApplyDefaults fills the optional fields that have documented defaults.
func (i *Intake) ApplyDefaults() {
	if i.TimeCommitment == 0 {
		i.TimeCommitment = DefaultTimeCommitment
	}
	if i.Experience == "" {
		i.Experience = ExperienceSome
	}
	i.Email = strings.TrimSpace(i.Email)
	i.WhatsAppNumber = strings.TrimSpace(i.WhatsAppNumber)
}

// Validate applies defaults and checks every field of the intake.
func (i *Intake) Validate() error {
	i.ApplyDefaults()

	if !IsValidGoal(i.Goal) {
		return ErrInvalidGoal
	}
	if !IsValidObstacle(i.Obstacle) {
		return ErrInvalidObstacle
	}
	if !IsValidExperience(i.Experience) {
		return ErrInvalidExperience
	}
	if strings.TrimSpace(i.EventDate) == "" {
		return ErrMissingEventDate
	}
	if _, err := ParseEventDate(i.EventDate); err != nil {
		return ErrInvalidEventDate
	}
	if i.TimeCommitment < 1 || i.TimeCommitment > MaxTimeCommitment {
		return ErrInvalidTimeCommitment
	}
	if i.Email != "" {
		if _, err := mail.ParseAddress(i.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	if len(i.SymptomDescription) > MaxSymptomDescriptionLength {
		return ErrSymptomTooLong
	}
	return nil
}

// WithoutEmail returns a copy of the intake with the email removed.
func (i Intake) WithoutEmail() Intake {
	i.Email = ""
	return i
}

// ParseEventDate parses a calendar date, accepting RFC 3339 timestamps as well.
// Only the calendar day is kept.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(EventDateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status    string      `json:"status"`              // status of the API response
	Message   string      `json:"message,omitempty"`   // optional message for error responses or additional info
	Result    interface{} `json:"result,omitempty"`    // optional result data for successful responses
	Retryable bool        `json:"retryable,omitempty"` // set when the client may retry later
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{
		response: APIResponse{},
	}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// WithRetryable marks the response as retryable.
func (b *APIResponseBuilder) WithRetryable(retryable bool) *APIResponseBuilder {
	b.response.Retryable = retryable
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithResult(result).
		Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		Build()
}

// RetryableError creates an error API response the client may retry.
func RetryableError(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		WithRetryable(true).
		Build()
}

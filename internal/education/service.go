package education

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BTreeMap/NeuroSoma/internal/models"
	"github.com/BTreeMap/NeuroSoma/internal/protocol"
)

// MinQuestionLength is the shortest health question accepted, in characters.
const MinQuestionLength = 20

const tracerName = "github.com/BTreeMap/NeuroSoma/internal/education"

// Error variables for the education flow
var (
	ErrQuestionRequired = errors.New("health question is required")
	ErrQuestionTooShort = errors.New("please provide more detail (at least 20 characters)")
	ErrModelUnavailable = errors.New("education model call failed")
	ErrNoCompleter      = errors.New("education model is not configured")
)

// Completer produces raw text for a system and user prompt.
type Completer interface {
	GeneratePromptWithContext(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Pinger reports whether the model endpoint is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Request is a health question with optional context.
type Request struct {
	HealthQuestion    string `json:"healthQuestion"`
	Condition         string `json:"condition,omitempty"`
	CurrentTreatments string `json:"currentTreatments,omitempty"`
}

// Validate checks the question length.
func (r Request) Validate() error {
	q := strings.TrimSpace(r.HealthQuestion)
	if q == "" {
		return ErrQuestionRequired
	}
	if utf8.RuneCountInString(q) < MinQuestionLength {
		return ErrQuestionTooShort
	}
	return nil
}

// Result pairs the parsed education with the matched protocol.
type Result struct {
	Education models.EducationResponse `json:"education"`
	Protocol  models.MatchedProtocol   `json:"protocol"`
}

// Service runs the education flow: model call, parse, protocol match.
type Service struct {
	completer Completer
	tracer    trace.Tracer
}

// NewService creates a Service backed by the given completer.
func NewService(completer Completer) *Service {
	return &Service{
		completer: completer,
		tracer:    otel.Tracer(tracerName),
	}
}

// Educate answers a health question. Errors come only from validation or the
// model call; parsing and matching always succeed.
func (s *Service) Educate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if s.completer == nil {
		return Result{}, ErrNoCompleter
	}

	ctx, span := s.tracer.Start(ctx, "education.Educate", trace.WithAttributes(
		attribute.Bool("education.has_condition", strings.TrimSpace(req.Condition) != ""),
		attribute.Bool("education.has_treatments", strings.TrimSpace(req.CurrentTreatments) != ""),
		attribute.Int("education.question_length", len(req.HealthQuestion)),
	))
	defer span.End()

	slog.Debug("Service.Educate: requesting education", "has_condition", req.Condition != "")
	text, err := s.completer.GeneratePromptWithContext(ctx, SystemPrompt, buildUserPrompt(req))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		slog.Error("Service.Educate: model call failed", "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	edu := ParseResponse(text)
	matched := protocol.Match(edu.RecommendedProtocolType, strings.TrimSpace(req.Condition))

	span.SetAttributes(
		attribute.String("education.protocol_type", string(matched.Type)),
		attribute.Int("education.absolute_count", len(edu.Contraindications.Absolute)),
		attribute.Int("education.relative_count", len(edu.Contraindications.Relative)),
	)
	slog.Info("Service.Educate: education generated", "protocol", matched.Type, "questions", len(edu.QuestionsForDoctor))
	return Result{Education: edu, Protocol: matched}, nil
}

// Healthy reports whether the model endpoint answers. A completer that cannot
// be pinged is assumed healthy.
func (s *Service) Healthy(ctx context.Context) bool {
	if s.completer == nil {
		return false
	}
	p, ok := s.completer.(Pinger)
	if !ok {
		return true
	}
	if err := p.Ping(ctx); err != nil {
		slog.Warn("Service.Healthy: model endpoint not reachable", "error", err)
		return false
	}
	return true
}

package education

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

type mockCompleter struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (m *mockCompleter) GeneratePromptWithContext(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	return m.response, m.err
}

type mockPingingCompleter struct {
	mockCompleter
	pingErr error
}

func (m *mockPingingCompleter) Ping(ctx context.Context) error {
	return m.pingErr
}

const validQuestion = "Is slow breathing safe for my chronic back pain?"

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantErr  error
	}{
		{"empty", "", ErrQuestionRequired},
		{"whitespace", "   \n\t", ErrQuestionRequired},
		{"too short", "Is it safe?", ErrQuestionTooShort},
		{"short after trimming", "   nineteen chars ok   ", ErrQuestionTooShort},
		{"exactly twenty", "twenty characters ok", nil},
		{"valid", validQuestion, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Request{HealthQuestion: tt.question}.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEducateValidationSkipsModel(t *testing.T) {
	m := &mockCompleter{response: wellFormedResponse}
	svc := NewService(m)

	_, err := svc.Educate(context.Background(), Request{HealthQuestion: "too short"})
	if !errors.Is(err, ErrQuestionTooShort) {
		t.Fatalf("expected ErrQuestionTooShort, got %v", err)
	}
	if m.calls != 0 {
		t.Errorf("expected no model calls, got %d", m.calls)
	}
}

func TestEducateWithoutCompleter(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.Educate(context.Background(), Request{HealthQuestion: validQuestion}); !errors.Is(err, ErrNoCompleter) {
		t.Fatalf("expected ErrNoCompleter, got %v", err)
	}
	if svc.Healthy(context.Background()) {
		t.Error("service without completer should not be healthy")
	}
}

func TestEducateModelError(t *testing.T) {
	upstream := errors.New("connection refused")
	svc := NewService(&mockCompleter{err: upstream})

	_, err := svc.Educate(context.Background(), Request{HealthQuestion: validQuestion})
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
	if !errors.Is(err, upstream) {
		t.Errorf("expected upstream error to be wrapped, got %v", err)
	}
}

func TestEducateSuccess(t *testing.T) {
	m := &mockCompleter{response: wellFormedResponse}
	svc := NewService(m)

	res, err := svc.Educate(context.Background(), Request{
		HealthQuestion:    validQuestion,
		Condition:         "  lumbar disc herniation ",
		CurrentTreatments: "ibuprofen",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.lastSystem != SystemPrompt {
		t.Error("expected the system prompt to be sent")
	}
	for _, want := range []string{validQuestion, "lumbar disc herniation", "ibuprofen"} {
		if !strings.Contains(m.lastUser, want) {
			t.Errorf("user prompt missing %q:\n%s", want, m.lastUser)
		}
	}

	if res.Education.RecommendedProtocolType != models.ProtocolModerate {
		t.Errorf("expected moderate tier, got %s", res.Education.RecommendedProtocolType)
	}
	if res.Protocol.Type != res.Education.RecommendedProtocolType {
		t.Errorf("protocol %s does not match recommended tier %s", res.Protocol.Type, res.Education.RecommendedProtocolType)
	}
	if !strings.Contains(res.Protocol.Rationale, "(lumbar disc herniation)") {
		t.Errorf("rationale should mention the trimmed condition: %q", res.Protocol.Rationale)
	}
}

func TestBuildUserPromptOmitsEmptyContext(t *testing.T) {
	prompt := buildUserPrompt(Request{HealthQuestion: validQuestion, Condition: "  "})
	if strings.Contains(prompt, "Specific condition") {
		t.Error("blank condition should be omitted")
	}
	if strings.Contains(prompt, "Current treatments") {
		t.Error("missing treatments should be omitted")
	}
}

func TestHealthy(t *testing.T) {
	ctx := context.Background()

	if !NewService(&mockCompleter{}).Healthy(ctx) {
		t.Error("completer without Ping should be reported healthy")
	}
	if !NewService(&mockPingingCompleter{}).Healthy(ctx) {
		t.Error("reachable endpoint should be healthy")
	}
	if NewService(&mockPingingCompleter{pingErr: errors.New("timeout")}).Healthy(ctx) {
		t.Error("unreachable endpoint should not be healthy")
	}
}

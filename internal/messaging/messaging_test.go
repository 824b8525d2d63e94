package messaging

import (
	"context"
	"errors"
	"strings"
	"testing"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

type fakeCreator struct {
	params []*twilioApi.CreateMessageParams
	err    error
}

func (f *fakeCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return &twilioApi.ApiV2010Message{}, nil
}

func TestCanonicalizeRecipient(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+1 (555) 010-9999", "+15550109999", false},
		{"15550109999", "+15550109999", false},
		{"+44 20 7946 0018", "+442079460018", false},
		{"", "", true},
		{"12345", "", true},
		{"call me", "", true},
	}
	for _, tt := range tests {
		got, err := CanonicalizeRecipient(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidRecipient) {
				t.Errorf("CanonicalizeRecipient(%q): expected ErrInvalidRecipient, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("CanonicalizeRecipient(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestNewTwilioSenderRequiresCredentials(t *testing.T) {
	if _, err := NewTwilioSender(WithAccountSID("AC123")); err == nil {
		t.Error("expected error without auth token")
	}
	if _, err := NewTwilioSender(WithAccountSID("AC123"), WithAuthToken("secret")); err == nil {
		t.Error("expected error without from number")
	}
	s, err := NewTwilioSender(WithAccountSID("AC123"), WithAuthToken("secret"), WithFromNumber("+14155238886"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.from != "whatsapp:+14155238886" {
		t.Errorf("expected whatsapp-prefixed sender, got %q", s.from)
	}
}

func TestTwilioSenderSendMessage(t *testing.T) {
	fake := &fakeCreator{}
	s := &TwilioSender{api: fake, from: whatsappAddress("whatsapp:+14155238886")}

	if err := s.SendMessage(context.Background(), "+1 555 010 9999", "hello"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if len(fake.params) != 1 {
		t.Fatalf("expected one API call, got %d", len(fake.params))
	}
	p := fake.params[0]
	if *p.To != "whatsapp:+15550109999" {
		t.Errorf("unexpected To %q", *p.To)
	}
	if *p.From != "whatsapp:+14155238886" {
		t.Errorf("unexpected From %q", *p.From)
	}
	if *p.Body != "hello" {
		t.Errorf("unexpected Body %q", *p.Body)
	}
}

func TestTwilioSenderErrors(t *testing.T) {
	upstream := errors.New("21211 invalid 'To' phone number")
	s := &TwilioSender{api: &fakeCreator{err: upstream}, from: "whatsapp:+14155238886"}

	if err := s.SendMessage(context.Background(), "+15550109999", "hi"); !errors.Is(err, upstream) {
		t.Errorf("expected wrapped upstream error, got %v", err)
	}
	if err := s.SendMessage(context.Background(), "123", "hi"); !errors.Is(err, ErrInvalidRecipient) {
		t.Errorf("expected ErrInvalidRecipient, got %v", err)
	}
}

func samplePlan() models.ActionPlan {
	return models.ActionPlan{
		ID: "ns-1234",
		UserContext: models.UserContext{
			Goal:      "Job Interview",
			Obstacle:  "Anxiety / Nervousness",
			DaysUntil: 1,
		},
		MatchedTechnique: models.MatchedTechnique{
			ID:          "extended_exhale",
			Title:       "4:8 Extended Exhalation",
			Description: "Slow the exhale to calm the system",
			DurationMin: 10,
		},
		Schedule: []models.DayPlan{{
			Day:   1,
			Title: "Day 1: Foundation & Baseline",
			Tasks: []models.DayTask{
				{Type: models.TaskCheckIn, Description: "Measure your MBHT baseline (first thing after waking)", DurationMin: 2},
				{Type: models.TaskPractice, Description: "Full daily ritual rehearsal", DurationMin: 15},
			},
		}},
	}
}

func TestFormatPlanSummary(t *testing.T) {
	got := FormatPlanSummary(samplePlan(), "https://neurosoma.example/plan/ns-1234")

	for _, want := range []string{
		"Job Interview, 1 day to go.",
		"Core technique: 4:8 Extended Exhalation (10 min).",
		"Day 1: Foundation & Baseline",
		"- Measure your MBHT baseline (first thing after waking) (2 min)",
		"- Full daily ritual rehearsal (15 min)",
		"Plan ID: ns-1234",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "https://neurosoma.example/plan/ns-1234") {
		t.Errorf("summary should end with the link:\n%s", got)
	}

	p := samplePlan()
	p.UserContext.DaysUntil = 5
	if !strings.Contains(FormatPlanSummary(p, ""), "5 days to go") {
		t.Error("expected plural days")
	}
}

func TestPlanNotifier(t *testing.T) {
	mock := NewMockSender()
	n := NewPlanNotifier(mock, "https://neurosoma.example/")

	if err := n.NotifyPlan(context.Background(), "+15550109999", samplePlan()); err != nil {
		t.Fatalf("NotifyPlan failed: %v", err)
	}
	sent := mock.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one message, got %d", len(sent))
	}
	if sent[0].To != "+15550109999" {
		t.Errorf("unexpected recipient %q", sent[0].To)
	}
	if !strings.HasSuffix(sent[0].Body, "https://neurosoma.example/plan/ns-1234") {
		t.Errorf("expected plan link, got:\n%s", sent[0].Body)
	}

	mock.Err = errors.New("rate limited")
	if err := n.NotifyPlan(context.Background(), "+15550109999", samplePlan()); !errors.Is(err, mock.Err) {
		t.Errorf("expected wrapped sender error, got %v", err)
	}
}

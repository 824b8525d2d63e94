package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIntakeValidation(t *testing.T) {
	tests := []struct {
		name    string
		intake  Intake
		wantErr error
	}{
		{
			name:   "valid intake with all fields",
			intake: Intake{Goal: GoalInterview, EventDate: "2026-03-01", Obstacle: ObstacleAnxiety, TimeCommitment: 20, Experience: ExperienceRegular, Email: "a@example.com"},
		},
		{
			name:   "valid intake with minimal fields",
			intake: Intake{Goal: GoalPainManagement, EventDate: "2026-03-01", Obstacle: ObstacleChronicPain},
		},
		{
			name:   "rfc3339 event date",
			intake: Intake{Goal: GoalPersonal, EventDate: "2026-03-01T09:30:00Z", Obstacle: ObstacleCreative},
		},
		{
			name:    "unknown goal",
			intake:  Intake{Goal: "wedding", EventDate: "2026-03-01", Obstacle: ObstacleAnxiety},
			wantErr: ErrInvalidGoal,
		},
		{
			name:    "unknown obstacle",
			intake:  Intake{Goal: GoalDeadline, EventDate: "2026-03-01", Obstacle: "boredom"},
			wantErr: ErrInvalidObstacle,
		},
		{
			name:    "unknown experience",
			intake:  Intake{Goal: GoalDeadline, EventDate: "2026-03-01", Obstacle: ObstacleScattered, Experience: "expert"},
			wantErr: ErrInvalidExperience,
		},
		{
			name:    "missing event date",
			intake:  Intake{Goal: GoalDeadline, Obstacle: ObstacleScattered},
			wantErr: ErrMissingEventDate,
		},
		{
			name:    "malformed event date",
			intake:  Intake{Goal: GoalDeadline, EventDate: "next tuesday", Obstacle: ObstacleScattered},
			wantErr: ErrInvalidEventDate,
		},
		{
			name:    "negative time commitment",
			intake:  Intake{Goal: GoalDeadline, EventDate: "2026-03-01", Obstacle: ObstacleScattered, TimeCommitment: -5},
			wantErr: ErrInvalidTimeCommitment,
		},
		{
			name:    "bad email",
			intake:  Intake{Goal: GoalDeadline, EventDate: "2026-03-01", Obstacle: ObstacleScattered, Email: "not-an-email"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "symptom description too long",
			intake:  Intake{Goal: GoalDeadline, EventDate: "2026-03-01", Obstacle: ObstacleScattered, SymptomDescription: strings.Repeat("x", MaxSymptomDescriptionLength+1)},
			wantErr: ErrSymptomTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intake.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIntakeDefaults(t *testing.T) {
	in := Intake{Goal: GoalPresentation, EventDate: "2026-03-01", Obstacle: ObstacleAnxiety}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.TimeCommitment != DefaultTimeCommitment {
		t.Errorf("expected default time commitment %d, got %d", DefaultTimeCommitment, in.TimeCommitment)
	}
	if in.Experience != ExperienceSome {
		t.Errorf("expected default experience %q, got %q", ExperienceSome, in.Experience)
	}
}

func TestIntakeWithoutEmail(t *testing.T) {
	in := Intake{Goal: GoalPresentation, Email: "a@example.com"}
	safe := in.WithoutEmail()
	if safe.Email != "" {
		t.Errorf("expected email to be stripped, got %q", safe.Email)
	}
	if in.Email == "" {
		t.Error("original intake should keep its email")
	}
}

func TestParseEventDate(t *testing.T) {
	d, err := ParseEventDate("2026-03-01T23:30:00+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("expected %v, got %v", want, d)
	}
}

func TestAPIResponseJSON(t *testing.T) {
	data, err := json.Marshal(RetryableError("waking up"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["status"] != string(APIStatusError) || decoded["retryable"] != true {
		t.Errorf("unexpected envelope: %s", data)
	}
	if _, ok := decoded["result"]; ok {
		t.Errorf("error envelope should omit result: %s", data)
	}
}

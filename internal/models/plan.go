package models

import "time"

// TaskType is the kind of a scheduled task.
type TaskType string

const (
	TaskCheckIn  TaskType = "check-in"
	TaskPractice TaskType = "practice"
	TaskJournal  TaskType = "journal"
)

// DayTask is a single item on a plan day.
type DayTask struct {
	Type        TaskType `json:"type"`
	Description string   `json:"description"`
	DurationMin int      `json:"duration_min"`
	TechniqueID string   `json:"technique_id,omitempty"`
	Completed   bool     `json:"completed"`
}

// DayPlan is one day of the schedule.
type DayPlan struct {
	Day   int       `json:"day"`
	Title string    `json:"title"`
	Focus string    `json:"focus"`
	Tasks []DayTask `json:"tasks"`
}

// Ritual is the three-phase daily routine built around the primary technique.
type Ritual struct {
	Morning     []string `json:"morning"`
	PreEvent    []string `json:"pre_event"`
	DuringEvent []string `json:"during_event"`
}

// UserContext summarises the intake in human-readable form.
type UserContext struct {
	Goal      string `json:"goal"`
	Obstacle  string `json:"obstacle"`
	DaysUntil int    `json:"days_until"`
}

// MatchedTechnique summarises the primary technique of a plan.
type MatchedTechnique struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min"`
	Category    string `json:"category"`
}

// ActionPlan is a generated practice plan.
type ActionPlan struct {
	ID               string             `json:"id"`
	CreatedAt        time.Time          `json:"created_at"`
	UserContext      UserContext        `json:"user_context"`
	MatchedTechnique MatchedTechnique   `json:"matched_technique"`
	Schedule         []DayPlan          `json:"schedule"`
	Ritual           Ritual             `json:"ritual"`
	Education        *EducationResponse `json:"education,omitempty"`
}

// PlanRecord is what the plan store keeps: the plan and the intake it was built from.
type PlanRecord struct {
	Plan   ActionPlan `json:"plan"`
	Intake Intake     `json:"intake"`
}

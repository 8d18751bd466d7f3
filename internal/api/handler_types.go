package api

import (
	"strings"
	"time"

	"github.com/terraincognita07/auragon/internal/models"
	"github.com/terraincognita07/auragon/internal/pressure"
)

type logPayload struct {
	StartTime        *time.Time `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
	PainLevel        *int       `json:"pain_level" validate:"omitempty,min=1,max=10"`
	Triggers         []string   `json:"triggers" validate:"dive,required,max=80"`
	MedicationsTaken []string   `json:"medications_taken" validate:"dive,required,max=80"`
	ReliefMethods    []string   `json:"relief_methods" validate:"dive,required,max=80"`
	Notes            string     `json:"notes" validate:"max=4000"`
	RecordedPressure *float64   `json:"recorded_pressure"`
}

// normalize trims labels so blank entries fail the required rule.
func (payload *logPayload) normalize() {
	payload.Triggers = trimLabels(payload.Triggers)
	payload.MedicationsTaken = trimLabels(payload.MedicationsTaken)
	payload.ReliefMethods = trimLabels(payload.ReliefMethods)
}

type optionPayload struct {
	Name string `json:"name" form:"name" validate:"required,max=80"`
}

type onboardingPayload struct {
	Triggers    []string `json:"triggers"`
	Medications []string `json:"medications"`
}

type logView struct {
	models.MigraineLog
	Severity      string `json:"severity"`
	SeverityLabel string `json:"severity_label"`
}

type launchView struct {
	OnboardingComplete bool   `json:"onboarding_complete"`
	InitialScreen      string `json:"initial_screen"`
}

type onboardingStageView struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Action      string   `json:"action"`
	Collection  string   `json:"collection,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type pressureView struct {
	Range      pressure.TimeRange `json:"range"`
	RangeLabel string             `json:"range_label"`
	Title      string             `json:"title"`
	Unit       string             `json:"unit"`
	Points     []pressure.Point   `json:"points"`
	Summary    pressureSummary    `json:"summary"`
	Selected   *pressure.Point    `json:"selected,omitempty"`
}

type pressureSummary struct {
	pressure.Summary
	TrendLabel string `json:"trend_label"`
}

func trimLabels(labels []string) []string {
	if labels == nil {
		return nil
	}
	trimmed := make([]string, len(labels))
	for index, label := range labels {
		trimmed[index] = strings.TrimSpace(label)
	}
	return trimmed
}

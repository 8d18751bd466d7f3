package models

import "time"

const (
	PainLevelMin     = 1
	PainLevelMax     = 10
	PainLevelDefault = 5
)

type MigraineLog struct {
	ID               string     `gorm:"primaryKey;type:text" json:"id"`
	StartTime        time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	PainLevel        int        `gorm:"not null;default:5" json:"pain_level"`
	Triggers         []string   `gorm:"serializer:json" json:"triggers"`
	MedicationsTaken []string   `gorm:"serializer:json" json:"medications_taken"`
	ReliefMethods    []string   `gorm:"serializer:json" json:"relief_methods"`
	Notes            string     `gorm:"not null;default:''" json:"notes"`
	RecordedPressure *float64   `json:"recorded_pressure,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

package models

import "time"

const StateKeyOnboardingComplete = "onboarding_complete"

type AppState struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (AppState) TableName() string {
	return "app_state"
}

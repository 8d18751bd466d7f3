package db

import "gorm.io/gorm"

type Repositories struct {
	Logs    *LogRepository
	Options *OptionRepository
	State   *StateRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Logs:    NewLogRepository(database),
		Options: NewOptionRepository(database),
		State:   NewStateRepository(database),
	}
}

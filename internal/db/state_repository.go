package db

import (
	"time"

	"github.com/terraincognita07/auragon/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StateRepository struct {
	database *gorm.DB
}

func NewStateRepository(database *gorm.DB) *StateRepository {
	return &StateRepository{database: database}
}

func (repo *StateRepository) Get(key string) (string, bool, error) {
	state := models.AppState{}
	result := repo.database.Where("key = ?", key).Limit(1).Find(&state)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return state.Value, true, nil
}

func (repo *StateRepository) Set(key string, value string) error {
	return setState(repo.database, key, value)
}

func (repo *StateRepository) Delete(key string) error {
	return repo.database.Where("key = ?", key).Delete(&models.AppState{}).Error
}

// CompleteOnboarding raises the onboarding flag and replaces both option
// collections as one unit of work. It reports false and changes nothing when
// the flag is already raised.
func (repo *StateRepository) CompleteOnboarding(triggers []models.Option, medications []models.Option) (bool, error) {
	completed := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		state := models.AppState{Key: models.StateKeyOnboardingComplete, Value: "true", UpdatedAt: time.Now().UTC()}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "app_state.value <> ?", Vars: []any{"true"}},
			}},
		}).Create(&state)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := replaceOptions(tx, models.CollectionTriggers, triggers); err != nil {
			return err
		}
		if err := replaceOptions(tx, models.CollectionMedications, medications); err != nil {
			return err
		}
		completed = true
		return nil
	})
	return completed, err
}

func setState(database *gorm.DB, key string, value string) error {
	state := models.AppState{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&state).Error
}

package db

import (
	"github.com/terraincognita07/auragon/internal/models"
	"gorm.io/gorm"
)

var logSortColumns = map[string]string{
	"start_time": "start_time",
	"pain_level": "pain_level",
}

type LogRepository struct {
	database *gorm.DB
}

func NewLogRepository(database *gorm.DB) *LogRepository {
	return &LogRepository{database: database}
}

// List returns every log ordered by column, falling back to start_time for
// unknown columns. Ties are broken by id in the same direction.
func (repo *LogRepository) List(column string, descending bool) ([]models.MigraineLog, error) {
	sortColumn, ok := logSortColumns[column]
	if !ok {
		sortColumn = "start_time"
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	logs := make([]models.MigraineLog, 0)
	if err := repo.database.
		Order(sortColumn + " " + direction).
		Order("id " + direction).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *LogRepository) FindByID(id string) (models.MigraineLog, bool, error) {
	entry := models.MigraineLog{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.MigraineLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MigraineLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *LogRepository) Create(entry *models.MigraineLog) error {
	return repo.database.Create(entry).Error
}

func (repo *LogRepository) DeleteByID(id string) (bool, error) {
	result := repo.database.Where("id = ?", id).Delete(&models.MigraineLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *LogRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.MigraineLog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

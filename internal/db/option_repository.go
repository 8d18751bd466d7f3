package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/auragon/internal/models"
	"gorm.io/gorm"
)

var errUnknownCollection = errors.New("unknown option collection")

type OptionRepository struct {
	database *gorm.DB
}

func NewOptionRepository(database *gorm.DB) *OptionRepository {
	return &OptionRepository{database: database}
}

func (repo *OptionRepository) table(collection models.Collection) (*gorm.DB, error) {
	return optionTable(repo.database, collection)
}

func optionTable(database *gorm.DB, collection models.Collection) (*gorm.DB, error) {
	if !collection.Valid() {
		return nil, errUnknownCollection
	}
	return database.Table(collection.Table()), nil
}

func (repo *OptionRepository) List(collection models.Collection, descending bool) ([]models.Option, error) {
	query, err := repo.table(collection)
	if err != nil {
		return nil, err
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	options := make([]models.Option, 0)
	if err := query.
		Order("normalized_name " + direction).
		Order("id " + direction).
		Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (repo *OptionRepository) Count(collection models.Collection) (int64, error) {
	query, err := repo.table(collection)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *OptionRepository) ExistsByNormalizedName(collection models.Collection, name string) (bool, error) {
	query, err := repo.table(collection)
	if err != nil {
		return false, err
	}
	var matched int64
	if err := query.Where("normalized_name = ?", models.NormalizeOptionName(name)).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *OptionRepository) Create(collection models.Collection, option *models.Option) error {
	query, err := repo.table(collection)
	if err != nil {
		return err
	}
	return translateOptionError(query.Create(option).Error)
}

// CreateBatchIfEmpty inserts options only when the collection has no rows,
// checking and inserting inside one transaction. It reports whether anything
// was inserted.
func (repo *OptionRepository) CreateBatchIfEmpty(collection models.Collection, options []models.Option) (bool, error) {
	if !collection.Valid() {
		return false, errUnknownCollection
	}
	if len(options) == 0 {
		return false, nil
	}

	inserted := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(collection.Table()).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Table(collection.Table()).Create(&options).Error; err != nil {
			return translateOptionError(err)
		}
		inserted = true
		return nil
	})
	return inserted, err
}

func (repo *OptionRepository) DeleteByID(collection models.Collection, id string) (bool, error) {
	query, err := repo.table(collection)
	if err != nil {
		return false, err
	}
	result := query.Where("id = ?", id).Delete(&models.Option{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Replace clears the collection and inserts options in one transaction.
func (repo *OptionRepository) Replace(collection models.Collection, options []models.Option) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return replaceOptions(tx, collection, options)
	})
}

func replaceOptions(tx *gorm.DB, collection models.Collection, options []models.Option) error {
	if !collection.Valid() {
		return errUnknownCollection
	}
	if err := tx.Table(collection.Table()).Where("1 = 1").Delete(&models.Option{}).Error; err != nil {
		return err
	}
	if len(options) == 0 {
		return nil
	}
	return translateOptionError(tx.Table(collection.Table()).Create(&options).Error)
}

// translateOptionError reports a normalized name collision as
// gorm.ErrDuplicatedKey.
func translateOptionError(err error) error {
	if err == nil || errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
	}
	return err
}

// repairOptionKeys rewrites normalized names that SQLite folded differently
// from NormalizeOptionName, which happens for non-ASCII names backfilled by
// SQL. A row whose repaired key already belongs to another row is a duplicate
// and is removed. It returns how many rows changed.
func repairOptionKeys(database *gorm.DB) (int, error) {
	changed := 0
	for _, collection := range models.Collections() {
		var rows []models.Option
		if err := database.Table(collection.Table()).Order("rowid ASC").Find(&rows).Error; err != nil {
			return changed, fmt.Errorf("load %s: %w", collection.Table(), err)
		}

		for _, row := range rows {
			key := models.NormalizeOptionName(row.Name)
			if row.NormalizedName == key {
				continue
			}
			err := database.Table(collection.Table()).
				Where("id = ?", row.ID).
				Update("normalized_name", key).Error
			if errors.Is(translateOptionError(err), gorm.ErrDuplicatedKey) {
				err = database.Table(collection.Table()).Where("id = ?", row.ID).Delete(&models.Option{}).Error
			}
			if err != nil {
				return changed, fmt.Errorf("repair %s %s: %w", collection.Table(), row.ID, err)
			}
			changed++
		}
	}
	return changed, nil
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Collection string

const (
	CollectionTriggers    Collection = "triggers"
	CollectionMedications Collection = "medications"
)

// Option is a vocabulary entry. Triggers and medications share the shape but
// live in separate tables; see Collection.Table.
type Option struct {
	ID             string    `gorm:"primaryKey;type:text" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	NormalizedName string    `gorm:"not null" json:"-"`
	IsDefault      bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// NormalizeOptionName is the key option names are unique by within a
// collection.
func NormalizeOptionName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (option *Option) BeforeCreate(tx *gorm.DB) error {
	option.NormalizedName = NormalizeOptionName(option.Name)
	return nil
}

func Collections() []Collection {
	return []Collection{CollectionTriggers, CollectionMedications}
}

func ParseCollection(raw string) (Collection, bool) {
	switch Collection(strings.ToLower(strings.TrimSpace(raw))) {
	case CollectionTriggers:
		return CollectionTriggers, true
	case CollectionMedications:
		return CollectionMedications, true
	default:
		return "", false
	}
}

func (collection Collection) Table() string {
	switch collection {
	case CollectionTriggers:
		return "trigger_options"
	case CollectionMedications:
		return "medication_options"
	default:
		return ""
	}
}

func (collection Collection) Valid() bool {
	return collection.Table() != ""
}

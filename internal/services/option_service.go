package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/terraincognita07/auragon/internal/events"
	"github.com/terraincognita07/auragon/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUnknownCollection   = errors.New("unknown option collection")
	ErrInvalidOptionName   = errors.New("invalid option name")
	ErrDuplicateOptionName = errors.New("option name already exists")
	ErrOptionCreateFailed  = errors.New("create option failed")
	ErrOptionDeleteFailed  = errors.New("delete option failed")
	ErrOptionLoadFailed    = errors.New("load options failed")
	ErrOptionSeedFailed    = errors.New("seed options failed")
	ErrOptionReplaceFailed = errors.New("replace options failed")
)

const MaxOptionNameLength = 80

type OptionRepository interface {
	List(collection models.Collection, descending bool) ([]models.Option, error)
	ExistsByNormalizedName(collection models.Collection, name string) (bool, error)
	Create(collection models.Collection, option *models.Option) error
	CreateBatchIfEmpty(collection models.Collection, options []models.Option) (bool, error)
	DeleteByID(collection models.Collection, id string) (bool, error)
	Replace(collection models.Collection, options []models.Option) error
}

type OptionService struct {
	options OptionRepository
	feeds   map[models.Collection]*events.Feed[models.Option]
	logger  *zap.Logger
	newID   func() string
}

func NewOptionService(options OptionRepository, logger *zap.Logger) *OptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	feeds := make(map[models.Collection]*events.Feed[models.Option], len(models.Collections()))
	for _, collection := range models.Collections() {
		feeds[collection] = events.NewFeed[models.Option]()
	}
	return &OptionService{
		options: options,
		feeds:   feeds,
		logger:  logger.Named("options"),
		newID:   uuid.NewString,
	}
}

// AddOption adds a user-defined entry. Names are trimmed, must be non-empty,
// at most MaxOptionNameLength characters, and unique within the collection
// ignoring case.
func (service *OptionService) AddOption(collection models.Collection, name string, isDefault bool) (models.Option, error) {
	if !collection.Valid() {
		return models.Option{}, ErrUnknownCollection
	}
	name, err := ValidateOptionName(name)
	if err != nil {
		return models.Option{}, err
	}

	exists, err := service.options.ExistsByNormalizedName(collection, name)
	if err != nil {
		return models.Option{}, fmt.Errorf("%w: %v", ErrOptionLoadFailed, err)
	}
	if exists {
		return models.Option{}, ErrDuplicateOptionName
	}

	option := models.Option{ID: service.newID(), Name: name, IsDefault: isDefault}
	if err := service.options.Create(collection, &option); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Option{}, ErrDuplicateOptionName
		}
		return models.Option{}, fmt.Errorf("%w: %v", ErrOptionCreateFailed, err)
	}

	service.Refresh(collection)
	return option, nil
}

// DeleteOption removes an entry. Logs keep their own copies of option names,
// so nothing else changes. A missing id is reported as false, not an error.
func (service *OptionService) DeleteOption(collection models.Collection, id string) (bool, error) {
	if !collection.Valid() {
		return false, ErrUnknownCollection
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	deleted, err := service.options.DeleteByID(collection, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOptionDeleteFailed, err)
	}
	if deleted {
		service.Refresh(collection)
	}
	return deleted, nil
}

func (service *OptionService) ListOptions(collection models.Collection, order SortOrder) ([]models.Option, error) {
	if !collection.Valid() {
		return nil, ErrUnknownCollection
	}
	options, err := service.options.List(collection, order.Descending())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptionLoadFailed, err)
	}
	return options, nil
}

// SeedDefaults fills an empty collection with one default-flagged entry per
// distinct name. It is a no-op for a non-empty collection, so repeated calls
// never duplicate the seed.
func (service *OptionService) SeedDefaults(collection models.Collection, names []string) (bool, error) {
	if !collection.Valid() {
		return false, ErrUnknownCollection
	}

	inserted, err := service.options.CreateBatchIfEmpty(collection, service.defaultOptions(names))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOptionSeedFailed, err)
	}
	if inserted {
		service.logger.Info("seeded default options", zap.String("collection", string(collection)))
		service.Refresh(collection)
	}
	return inserted, nil
}

// EnsureDefaults seeds the curated list for collection when it is empty.
func (service *OptionService) EnsureDefaults(collection models.Collection) (bool, error) {
	return service.SeedDefaults(collection, models.DefaultOptionNames(collection))
}

// ReplaceOptions drops every entry in collection, user-added ones included,
// and inserts one default-flagged entry per distinct name.
func (service *OptionService) ReplaceOptions(collection models.Collection, names []string) error {
	if !collection.Valid() {
		return ErrUnknownCollection
	}
	if err := service.options.Replace(collection, service.defaultOptions(names)); err != nil {
		return fmt.Errorf("%w: %v", ErrOptionReplaceFailed, err)
	}
	service.Refresh(collection)
	return nil
}

// BuildDefaultOptions turns names into default-flagged records with fresh IDs.
func (service *OptionService) BuildDefaultOptions(names []string) []models.Option {
	return service.defaultOptions(names)
}

func (service *OptionService) defaultOptions(names []string) []models.Option {
	unique := UniqueLabels(names)
	options := make([]models.Option, 0, len(unique))
	for _, name := range unique {
		options = append(options, models.Option{ID: service.newID(), Name: name, IsDefault: true})
	}
	return options
}

// Subscribe opens a live A-Z view of collection, primed with its current
// contents.
func (service *OptionService) Subscribe(collection models.Collection) (*events.Subscription[models.Option], error) {
	feed, ok := service.feeds[collection]
	if !ok {
		return nil, ErrUnknownCollection
	}

	sub := feed.Subscribe()
	options, err := service.ListOptions(collection, SortAscending)
	if err != nil {
		sub.Close()
		return nil, err
	}
	feed.Deliver(sub, options)
	return sub, nil
}

// Refresh republishes collection to its live views. Writers outside this
// service, such as onboarding, call it after changing the collection.
func (service *OptionService) Refresh(collection models.Collection) {
	feed, ok := service.feeds[collection]
	if !ok || feed.Len() == 0 {
		return
	}
	options, err := service.ListOptions(collection, SortAscending)
	if err != nil {
		service.logger.Error("refresh option feed", zap.String("collection", string(collection)), zap.Error(err))
		return
	}
	feed.Publish(options)
}

func (service *OptionService) Close() {
	for _, feed := range service.feeds {
		feed.Close()
	}
}

func ValidateOptionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxOptionNameLength {
		return "", ErrInvalidOptionName
	}
	return name, nil
}

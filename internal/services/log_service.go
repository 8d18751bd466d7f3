package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/auragon/internal/events"
	"github.com/terraincognita07/auragon/internal/models"
	"go.uber.org/zap"
)

var (
	ErrLogNotFound     = errors.New("migraine log not found")
	ErrInvalidLogQuery = errors.New("invalid log query")
	ErrLogCreateFailed = errors.New("create migraine log failed")
	ErrLogDeleteFailed = errors.New("delete migraine log failed")
	ErrLogLoadFailed   = errors.New("load migraine logs failed")
	ErrLogFeedFailed   = errors.New("refresh migraine log feed failed")
)

type LogSortKey string

const (
	LogSortStartTime LogSortKey = "start_time"
	LogSortPainLevel LogSortKey = "pain_level"
)

type LogQuery struct {
	SortKey LogSortKey
	Order   SortOrder
}

// DefaultLogQuery is the history ordering: newest first.
func DefaultLogQuery() LogQuery {
	return LogQuery{SortKey: LogSortStartTime, Order: SortDescending}
}

func ParseLogQuery(sortKey string, order string) (LogQuery, error) {
	query := DefaultLogQuery()

	switch LogSortKey(strings.ToLower(strings.TrimSpace(sortKey))) {
	case "", LogSortStartTime:
		query.SortKey = LogSortStartTime
	case LogSortPainLevel:
		query.SortKey = LogSortPainLevel
	default:
		return LogQuery{}, ErrInvalidLogQuery
	}

	parsedOrder, err := ParseSortOrder(order, SortDescending)
	if err != nil {
		return LogQuery{}, ErrInvalidLogQuery
	}
	query.Order = parsedOrder
	return query, nil
}

type LogInput struct {
	StartTime        time.Time
	EndTime          *time.Time
	PainLevel        int
	Triggers         []string
	MedicationsTaken []string
	ReliefMethods    []string
	Notes            string
	RecordedPressure *float64
}

type LogRepository interface {
	List(column string, descending bool) ([]models.MigraineLog, error)
	FindByID(id string) (models.MigraineLog, bool, error)
	Create(entry *models.MigraineLog) error
	DeleteByID(id string) (bool, error)
}

type LogService struct {
	logs   LogRepository
	feed   *events.Feed[models.MigraineLog]
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewLogService(logs LogRepository, logger *zap.Logger) *LogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogService{
		logs:   logs,
		feed:   events.NewFeed[models.MigraineLog](),
		logger: logger.Named("logs"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// InsertLog stores a new attack. Storage does not range-check values; the
// input boundary is responsible for clamping the pain level.
func (service *LogService) InsertLog(input LogInput) (models.MigraineLog, error) {
	entry := BuildMigraineLog(input, service.now())
	entry.ID = service.newID()

	if err := service.logs.Create(&entry); err != nil {
		return models.MigraineLog{}, fmt.Errorf("%w: %v", ErrLogCreateFailed, err)
	}

	service.logger.Debug("migraine log created", zap.String("id", entry.ID), zap.Int("pain_level", entry.PainLevel))
	service.publish()
	return entry, nil
}

// DeleteLog removes the log with id. A missing id is not an error; the
// boolean reports whether anything was removed.
func (service *LogService) DeleteLog(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	deleted, err := service.logs.DeleteByID(id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLogDeleteFailed, err)
	}
	if !deleted {
		service.logger.Debug("migraine log delete missed", zap.String("id", id))
		return false, nil
	}

	service.publish()
	return true, nil
}

func (service *LogService) ListLogs(query LogQuery) ([]models.MigraineLog, error) {
	if query.SortKey == "" {
		query.SortKey = LogSortStartTime
	}
	if query.Order == "" {
		query.Order = SortDescending
	}

	logs, err := service.logs.List(string(query.SortKey), query.Order.Descending())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogLoadFailed, err)
	}
	return logs, nil
}

func (service *LogService) FindLog(id string) (models.MigraineLog, error) {
	entry, found, err := service.logs.FindByID(strings.TrimSpace(id))
	if err != nil {
		return models.MigraineLog{}, fmt.Errorf("%w: %v", ErrLogLoadFailed, err)
	}
	if !found {
		return models.MigraineLog{}, ErrLogNotFound
	}
	return entry, nil
}

// Subscribe opens a live history view. The current history is delivered
// immediately and again after every insert or delete.
func (service *LogService) Subscribe() (*events.Subscription[models.MigraineLog], error) {
	sub := service.feed.Subscribe()
	logs, err := service.ListLogs(DefaultLogQuery())
	if err != nil {
		sub.Close()
		return nil, err
	}
	service.feed.Deliver(sub, logs)
	return sub, nil
}

// Close ends every live history view.
func (service *LogService) Close() {
	service.feed.Close()
}

func (service *LogService) publish() {
	if service.feed.Len() == 0 {
		return
	}
	logs, err := service.ListLogs(DefaultLogQuery())
	if err != nil {
		service.logger.Error("refresh history feed", zap.Error(fmt.Errorf("%w: %v", ErrLogFeedFailed, err)))
		return
	}
	service.feed.Publish(logs)
}

// BuildMigraineLog applies creation defaults to input. It leaves ID empty.
func BuildMigraineLog(input LogInput, now time.Time) models.MigraineLog {
	startTime := input.StartTime
	if startTime.IsZero() {
		startTime = now
	}

	var endTime *time.Time
	if input.EndTime != nil && !input.EndTime.IsZero() {
		value := input.EndTime.UTC()
		endTime = &value
	}

	painLevel := input.PainLevel
	if painLevel == 0 {
		painLevel = models.PainLevelDefault
	}

	return models.MigraineLog{
		StartTime:        startTime.UTC(),
		EndTime:          endTime,
		PainLevel:        painLevel,
		Triggers:         UniqueLabels(input.Triggers),
		MedicationsTaken: CleanLabels(input.MedicationsTaken),
		ReliefMethods:    CleanLabels(input.ReliefMethods),
		Notes:            input.Notes,
		RecordedPressure: input.RecordedPressure,
	}
}

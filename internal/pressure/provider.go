// Package pressure provides barometric pressure series for the forecast view.
package pressure

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrUnknownRange = errors.New("unknown pressure range")

// Point is one hourly reading in inHg.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Provider is the source of pressure series. The bundled MockProvider can be
// replaced by a real weather source without changing callers.
type Provider interface {
	Series(ctx context.Context, timeRange TimeRange, start time.Time) ([]Point, error)
}

type TimeRange string

const (
	RangeDay       TimeRange = "24h"
	RangeThreeDays TimeRange = "72h"
	RangeWeek      TimeRange = "168h"
)

func Ranges() []TimeRange {
	return []TimeRange{RangeDay, RangeThreeDays, RangeWeek}
}

// ParseTimeRange accepts the wire form. An empty value selects RangeDay.
func ParseTimeRange(raw string) (TimeRange, error) {
	value := TimeRange(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return RangeDay, nil
	}
	if !value.Valid() {
		return "", ErrUnknownRange
	}
	return value, nil
}

func (timeRange TimeRange) Valid() bool {
	return timeRange.Hours() > 0
}

func (timeRange TimeRange) Hours() int {
	switch timeRange {
	case RangeDay:
		return 24
	case RangeThreeDays:
		return 72
	case RangeWeek:
		return 168
	default:
		return 0
	}
}

// Label is the English picker caption.
func (timeRange TimeRange) Label() string {
	switch timeRange {
	case RangeDay:
		return "24 Hours"
	case RangeThreeDays:
		return "3 Days"
	case RangeWeek:
		return "7 Days"
	default:
		return ""
	}
}

// LabelKey is the translation key for Label.
func (timeRange TimeRange) LabelKey() string {
	return "pressure.range." + string(timeRange)
}

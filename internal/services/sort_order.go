package services

import (
	"errors"
	"strings"
)

var ErrInvalidSortOrder = errors.New("invalid sort order")

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

func (order SortOrder) Descending() bool {
	return order == SortDescending
}

// ParseSortOrder returns fallback for an empty value.
func ParseSortOrder(raw string, fallback SortOrder) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return fallback, nil
	case SortAscending:
		return SortAscending, nil
	case SortDescending:
		return SortDescending, nil
	default:
		return "", ErrInvalidSortOrder
	}
}

package services

import (
	"strings"

	"github.com/terraincognita07/auragon/internal/models"
)

// CleanLabels trims every label and drops empty ones, keeping order.
func CleanLabels(labels []string) []string {
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// UniqueLabels is CleanLabels with case-insensitive duplicates removed; the
// first spelling wins.
func UniqueLabels(labels []string) []string {
	cleaned := CleanLabels(labels)
	seen := make(map[string]struct{}, len(cleaned))
	unique := make([]string, 0, len(cleaned))
	for _, label := range cleaned {
		key := normalizeLabel(label)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, label)
	}
	return unique
}

func normalizeLabel(label string) string {
	return models.NormalizeOptionName(label)
}

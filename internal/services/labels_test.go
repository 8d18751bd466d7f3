package services

import (
	"errors"
	"testing"
)

func TestUniqueLabelsKeepsFirstSpelling(t *testing.T) {
	got := UniqueLabels([]string{" Stress", "", "STRESS", "Bright Light", "bright light "})
	if len(got) != 2 || got[0] != "Stress" || got[1] != "Bright Light" {
		t.Fatalf("unexpected labels: %#v", got)
	}
}

func TestCleanLabelsKeepsRepeats(t *testing.T) {
	got := CleanLabels([]string{"Water", "  ", "Water "})
	if len(got) != 2 || got[0] != "Water" || got[1] != "Water" {
		t.Fatalf("unexpected labels: %#v", got)
	}
	if got := CleanLabels(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil labels, got %#v", got)
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := []struct {
		raw      string
		expected SortOrder
	}{
		{raw: "", expected: SortAscending},
		{raw: "ASC", expected: SortAscending},
		{raw: " desc ", expected: SortDescending},
	}
	for _, tc := range cases {
		got, err := ParseSortOrder(tc.raw, SortAscending)
		if err != nil || got != tc.expected {
			t.Fatalf("ParseSortOrder(%q) = %q, %v; expected %q", tc.raw, got, err, tc.expected)
		}
	}

	if _, err := ParseSortOrder("random", SortAscending); !errors.Is(err, ErrInvalidSortOrder) {
		t.Fatalf("expected ErrInvalidSortOrder, got %v", err)
	}
}

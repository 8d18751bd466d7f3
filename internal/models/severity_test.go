package models

import "testing"

func TestSeverityForPain(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{level: 0, want: SeverityUnknown},
		{level: 1, want: SeverityMild},
		{level: 3, want: SeverityMild},
		{level: 4, want: SeverityModerate},
		{level: 6, want: SeverityModerate},
		{level: 7, want: SeveritySevere},
		{level: 10, want: SeveritySevere},
		{level: 11, want: SeverityUnknown},
	}

	for _, tc := range cases {
		if got := SeverityForPain(tc.level); got != tc.want {
			t.Fatalf("SeverityForPain(%d) = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestParseCollection(t *testing.T) {
	if collection, ok := ParseCollection(" Triggers "); !ok || collection != CollectionTriggers {
		t.Fatalf("expected triggers collection, got %q ok=%v", collection, ok)
	}
	if collection, ok := ParseCollection("medications"); !ok || collection.Table() != "medication_options" {
		t.Fatalf("expected medications collection, got %q ok=%v", collection, ok)
	}
	if _, ok := ParseCollection("symptoms"); ok {
		t.Fatal("expected unknown collection to be rejected")
	}
	if Collection("symptoms").Valid() {
		t.Fatal("expected unknown collection to be invalid")
	}
}

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/terraincognita07/auragon/internal/models"
	"github.com/terraincognita07/auragon/internal/services"
)

func TestCreateLogAndReadHistory(t *testing.T) {
	ta := newTestApp(t)
	startTime := time.Date(2026, time.June, 9, 14, 0, 0, 0, time.UTC)

	response := ta.do(t, http.MethodPost, "/api/logs", map[string]any{
		"start_time":        startTime,
		"pain_level":        8,
		"triggers":          []string{"Stress", "Bright Light", "stress"},
		"medications_taken": []string{"Sumatriptan"},
		"notes":             "  left temple\n  worse on stairs ",
	})
	assertStatus(t, response, http.StatusCreated)
	created := decodeJSON[logView](t, response)

	if created.ID == "" || created.PainLevel != 8 {
		t.Fatalf("unexpected created log: %#v", created)
	}
	if created.Severity != models.SeveritySevere || created.SeverityLabel != "Severe" {
		t.Fatalf("expected severe severity, got %q/%q", created.Severity, created.SeverityLabel)
	}
	if len(created.Triggers) != 2 {
		t.Fatalf("expected deduplicated triggers, got %#v", created)
	}
	if created.Notes != "  left temple\n  worse on stairs " {
		t.Fatalf("expected notes stored as typed, got %q", created.Notes)
	}

	response = ta.do(t, http.MethodGet, "/api/logs", nil)
	assertStatus(t, response, http.StatusOK)
	history := decodeJSON[[]logView](t, response)
	if len(history) != 1 || history[0].ID != created.ID {
		t.Fatalf("expected history with the created log, got %#v", history)
	}

	response = ta.do(t, http.MethodGet, "/api/logs/"+created.ID, nil)
	assertStatus(t, response, http.StatusOK)

	response = ta.do(t, http.MethodDelete, "/api/logs/"+created.ID, nil)
	assertStatus(t, response, http.StatusNoContent)

	response = ta.do(t, http.MethodGet, "/api/logs", nil)
	assertStatus(t, response, http.StatusOK)
	if history := decodeJSON[[]logView](t, response); len(history) != 0 {
		t.Fatalf("expected empty history after delete, got %d", len(history))
	}

	response = ta.do(t, http.MethodGet, "/api/logs/"+created.ID, nil)
	assertStatus(t, response, http.StatusNotFound)
	if body := decodeJSON[apiErrorBody](t, response); body.Error != "log not found" {
		t.Fatalf("expected log not found error, got %#v", body)
	}
}

func TestCreateLogAppliesDefaults(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodPost, "/api/logs", map[string]any{})
	assertStatus(t, response, http.StatusCreated)
	created := decodeJSON[logView](t, response)

	if created.PainLevel != models.PainLevelDefault {
		t.Fatalf("expected default pain level, got %d", created.PainLevel)
	}
	if !created.StartTime.Equal(testNow) {
		t.Fatalf("expected start time to default to now, got %v", created.StartTime)
	}
	if created.Triggers == nil || created.MedicationsTaken == nil {
		t.Fatal("expected empty label lists to be returned as arrays")
	}
}

func TestCreateLogValidation(t *testing.T) {
	ta := newTestApp(t)

	cases := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{name: "pain too high", payload: map[string]any{"pain_level": 11}, field: "pain_level"},
		{name: "pain zero", payload: map[string]any{"pain_level": 0}, field: "pain_level"},
		{name: "blank trigger", payload: map[string]any{"triggers": []string{"Stress", "  "}}, field: "triggers[1]"},
		{
			name: "end before start",
			payload: map[string]any{
				"start_time": time.Date(2026, time.June, 9, 14, 0, 0, 0, time.UTC),
				"end_time":   time.Date(2026, time.June, 9, 13, 0, 0, 0, time.UTC),
			},
			field: "end_time",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			response := ta.do(t, http.MethodPost, "/api/logs", tc.payload)
			assertStatus(t, response, http.StatusBadRequest)

			body := decodeJSON[apiErrorBody](t, response)
			if body.Error != "invalid payload" {
				t.Fatalf("expected invalid payload error, got %q", body.Error)
			}
			if _, ok := body.Fields[tc.field]; !ok {
				t.Fatalf("expected field error for %q, got %#v", tc.field, body.Fields)
			}
		})
	}

	logs, err := ta.logs.ListLogs(services.DefaultLogQuery())
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected rejected payloads to store nothing, got %d logs", len(logs))
	}
}

func TestCreateLogRejectsMalformedJSON(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodPost, "/api/logs", map[string]any{"pain_level": "severe"})
	assertStatus(t, response, http.StatusBadRequest)
}

func TestListLogsSortOptions(t *testing.T) {
	ta := newTestApp(t)

	for index, pain := range []int{3, 9, 6} {
		_, err := ta.logs.InsertLog(services.LogInput{
			StartTime: testNow.Add(time.Duration(index) * time.Hour),
			PainLevel: pain,
		})
		if err != nil {
			t.Fatalf("insert log: %v", err)
		}
	}

	response := ta.do(t, http.MethodGet, "/api/logs?sort=pain_level&order=desc", nil)
	assertStatus(t, response, http.StatusOK)
	history := decodeJSON[[]logView](t, response)
	if len(history) != 3 || history[0].PainLevel != 9 || history[2].PainLevel != 3 {
		t.Fatalf("expected logs ordered by pain descending, got %#v", history)
	}

	response = ta.do(t, http.MethodGet, "/api/logs", nil)
	history = decodeJSON[[]logView](t, response)
	if history[0].PainLevel != 6 {
		t.Fatalf("expected newest log first, got pain %d", history[0].PainLevel)
	}

	response = ta.do(t, http.MethodGet, "/api/logs?sort=notes", nil)
	assertStatus(t, response, http.StatusBadRequest)
}

func TestDeleteUnknownLogIsNoContent(t *testing.T) {
	ta := newTestApp(t)

	response := ta.do(t, http.MethodDelete, "/api/logs/does-not-exist", nil)
	assertStatus(t, response, http.StatusNoContent)
}

package cli

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/auragon/internal/db"
	"github.com/terraincognita07/auragon/internal/services"
	"go.uber.org/zap"
)

func seedDatabase(t *testing.T, dbPath string, completeOnboarding bool) {
	t.Helper()

	database, err := db.OpenSQLite(dbPath, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	repos := db.NewRepositories(database)
	logs := services.NewLogService(repos.Logs, nil)
	defer logs.Close()
	options := services.NewOptionService(repos.Options, nil)
	defer options.Close()

	_, err = logs.InsertLog(services.LogInput{
		StartTime: time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC),
		PainLevel: 6,
		Triggers:  []string{"Weather Change"},
	})
	if err != nil {
		t.Fatalf("insert log: %v", err)
	}

	if completeOnboarding {
		onboarding := services.NewOnboardingService(repos.State, options, nil)
		if err := onboarding.Complete([]string{"Stress"}, []string{"Water"}); err != nil {
			t.Fatalf("complete onboarding: %v", err)
		}
	}
}

func TestRunResetOnboardingCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "auragon-cli.db")
	seedDatabase(t, dbPath, true)

	var output bytes.Buffer
	if err := RunResetOnboardingCommand(dbPath, zap.NewNop(), &output); err != nil {
		t.Fatalf("RunResetOnboardingCommand() unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), "Onboarding reset") {
		t.Fatalf("unexpected output %q", output.String())
	}

	output.Reset()
	if err := RunResetOnboardingCommand(dbPath, zap.NewNop(), &output); err != nil {
		t.Fatalf("second reset unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), "nothing to reset") {
		t.Fatalf("expected second reset to be a no-op, got %q", output.String())
	}
}

func TestRunExportCommandCSV(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "auragon-cli.db")
	seedDatabase(t, dbPath, false)

	var output bytes.Buffer
	if err := RunExportCommand(dbPath, "CSV", time.UTC, zap.NewNop(), &output); err != nil {
		t.Fatalf("RunExportCommand() unexpected error: %v", err)
	}

	records, err := csv.NewReader(&output).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 || records[1][2] != "6" || records[1][4] != "Weather Change" {
		t.Fatalf("unexpected csv export: %v", records)
	}
}

func TestRunExportCommandJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "auragon-cli.db")
	seedDatabase(t, dbPath, false)

	var output bytes.Buffer
	if err := RunExportCommand(dbPath, "json", time.UTC, zap.NewNop(), &output); err != nil {
		t.Fatalf("RunExportCommand() unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), `"pain_level": 6`) {
		t.Fatalf("unexpected json export: %s", output.String())
	}
}

func TestRunExportCommandRejectsUnknownFormat(t *testing.T) {
	err := RunExportCommand(filepath.Join(t.TempDir(), "unused.db"), "pdf", time.UTC, zap.NewNop(), &bytes.Buffer{})
	if !errors.Is(err, ErrUnknownExportFormat) {
		t.Fatalf("expected ErrUnknownExportFormat, got %v", err)
	}
}

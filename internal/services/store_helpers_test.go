package services

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/auragon/internal/db"
	"go.uber.org/zap/zaptest"
)

type testStore struct {
	logs       *LogService
	options    *OptionService
	onboarding *OnboardingService
	repos      *db.Repositories
}

func newTestStore(t *testing.T) testStore {
	t.Helper()

	logger := zaptest.NewLogger(t)
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "auragon-services.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	repos := db.NewRepositories(database)
	logs := NewLogService(repos.Logs, logger)
	options := NewOptionService(repos.Options, logger)
	t.Cleanup(logs.Close)
	t.Cleanup(options.Close)

	return testStore{
		logs:       logs,
		options:    options,
		onboarding: NewOnboardingService(repos.State, options, logger),
		repos:      repos,
	}
}

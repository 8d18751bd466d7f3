package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/auragon/internal/db"
	"github.com/terraincognita07/auragon/internal/services"
	"go.uber.org/zap"
)

// RunResetOnboardingCommand clears the onboarding flag so the next launch
// opens the wizard again. Option collections and logs are left alone.
func RunResetOnboardingCommand(dbPath string, logger *zap.Logger, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	repos := db.NewRepositories(database)
	options := services.NewOptionService(repos.Options, logger)
	defer options.Close()
	onboarding := services.NewOnboardingService(repos.State, options, logger)

	complete, err := onboarding.IsComplete()
	if err != nil {
		return err
	}
	if !complete {
		fmt.Fprintln(out, "Onboarding is not completed; nothing to reset.")
		return nil
	}

	if err := onboarding.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Onboarding reset. The wizard will open on next launch.")
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/auragon/internal/db"
	"github.com/terraincognita07/auragon/internal/services"
	"go.uber.org/zap"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

var ErrUnknownExportFormat = errors.New("unknown export format")

// RunExportCommand writes the whole history, newest first, to out.
func RunExportCommand(dbPath string, format string, location *time.Location, logger *zap.Logger, out io.Writer) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ExportFormatCSV && format != ExportFormatJSON {
		return fmt.Errorf("%w %q: use %s or %s", ErrUnknownExportFormat, format, ExportFormatCSV, ExportFormatJSON)
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	logs := services.NewLogService(db.NewLogRepository(database), logger)
	defer logs.Close()

	entries, err := services.NewExportService(logs).BuildEntries(location)
	if err != nil {
		return err
	}
	if format == ExportFormatJSON {
		return services.WriteExportJSON(out, entries)
	}
	return services.WriteExportCSV(out, entries)
}

package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/auragon/internal/models"
)

var ErrExportFailed = errors.New("build export failed")

const (
	exportTimeLayout = time.RFC3339
	exportDateLayout = "2006-01-02"
	exportListJoiner = "; "
)

var ExportCSVHeaders = []string{
	"Start",
	"End",
	"Pain level",
	"Severity",
	"Triggers",
	"Medications",
	"Relief methods",
	"Notes",
}

type ExportLogReader interface {
	ListLogs(query LogQuery) ([]models.MigraineLog, error)
}

type ExportService struct {
	logs ExportLogReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

type ExportEntry struct {
	ID               string   `json:"id"`
	Start            string   `json:"start"`
	End              string   `json:"end,omitempty"`
	PainLevel        int      `json:"pain_level"`
	Severity         string   `json:"severity"`
	Triggers         []string `json:"triggers"`
	MedicationsTaken []string `json:"medications_taken"`
	ReliefMethods    []string `json:"relief_methods"`
	Notes            string   `json:"notes"`
	RecordedPressure *float64 `json:"recorded_pressure,omitempty"`
}

func NewExportService(logs ExportLogReader) *ExportService {
	return &ExportService{logs: logs}
}

func (service *ExportService) BuildSummary(location *time.Location) (ExportSummary, error) {
	logs, err := service.logs.ListLogs(DefaultLogQuery())
	if err != nil {
		return ExportSummary{}, err
	}
	if len(logs) == 0 {
		return ExportSummary{}, nil
	}
	location = exportLocation(location)

	// History is newest first.
	return ExportSummary{
		TotalEntries: len(logs),
		HasData:      true,
		DateFrom:     logs[len(logs)-1].StartTime.In(location).Format(exportDateLayout),
		DateTo:       logs[0].StartTime.In(location).Format(exportDateLayout),
	}, nil
}

func (service *ExportService) BuildEntries(location *time.Location) ([]ExportEntry, error) {
	logs, err := service.logs.ListLogs(DefaultLogQuery())
	if err != nil {
		return nil, err
	}
	location = exportLocation(location)

	entries := make([]ExportEntry, 0, len(logs))
	for _, entry := range logs {
		entries = append(entries, BuildExportEntry(entry, location))
	}
	return entries, nil
}

func BuildExportEntry(entry models.MigraineLog, location *time.Location) ExportEntry {
	location = exportLocation(location)

	end := ""
	if entry.EndTime != nil {
		end = entry.EndTime.In(location).Format(exportTimeLayout)
	}
	return ExportEntry{
		ID:               entry.ID,
		Start:            entry.StartTime.In(location).Format(exportTimeLayout),
		End:              end,
		PainLevel:        entry.PainLevel,
		Severity:         models.SeverityForPain(entry.PainLevel),
		Triggers:         nonNilLabels(entry.Triggers),
		MedicationsTaken: nonNilLabels(entry.MedicationsTaken),
		ReliefMethods:    nonNilLabels(entry.ReliefMethods),
		Notes:            entry.Notes,
		RecordedPressure: entry.RecordedPressure,
	}
}

func ExportCSVRecord(entry ExportEntry) []string {
	return []string{
		entry.Start,
		entry.End,
		strconv.Itoa(entry.PainLevel),
		entry.Severity,
		strings.Join(entry.Triggers, exportListJoiner),
		strings.Join(entry.MedicationsTaken, exportListJoiner),
		strings.Join(entry.ReliefMethods, exportListJoiner),
		entry.Notes,
	}
}

func WriteExportCSV(output io.Writer, entries []ExportEntry) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	for _, entry := range entries {
		if err := writer.Write(ExportCSVRecord(entry)); err != nil {
			return fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func WriteExportJSON(output io.Writer, entries []ExportEntry) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func ExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("auragon-history-%s.%s", now.Format(exportDateLayout), extension)
}

func exportLocation(location *time.Location) *time.Location {
	if location == nil {
		return time.UTC
	}
	return location
}

func nonNilLabels(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}

package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"rostercli/pkg/contracts/domain"
)

// CSVExporter writes profiles to CSV files.
type CSVExporter struct {
	logger *slog.Logger
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(logger *slog.Logger) *CSVExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVExporter{logger: logger.With(slog.String("component", "csv_exporter"))}
}

// WriteFile writes profiles to the given path, creating parent directories as
// needed. The file is prefixed with a UTF-8 BOM so Excel opens it correctly.
func (e *CSVExporter) WriteFile(path string, profiles []domain.Profile) error {
	e.logger.Info("writing profile CSV",
		slog.String("path", path),
		slog.Int("profile_count", len(profiles)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	return e.Write(file, profiles)
}

// Write streams profiles as CSV to w.
func (e *CSVExporter) Write(w io.Writer, profiles []domain.Profile) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(profileHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, p := range profiles {
		if err := writer.Write(profileRecord(p)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rostercli/pkg/contracts/domain"
)

const profileSheet = "Profiles"

// ExcelExporter writes profiles to xlsx workbooks.
type ExcelExporter struct {
	logger *slog.Logger
}

// NewExcelExporter creates a new Excel exporter.
func NewExcelExporter(logger *slog.Logger) *ExcelExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelExporter{logger: logger.With(slog.String("component", "excel_exporter"))}
}

// WriteFile writes profiles to an xlsx file at path, creating parent
// directories as needed.
func (e *ExcelExporter) WriteFile(path string, profiles []domain.Profile) error {
	e.logger.Info("writing profile workbook",
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
	return e.Write(file, profiles)
}

// Write streams profiles as an xlsx workbook to w.
func (e *ExcelExporter) Write(w io.Writer, profiles []domain.Profile) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", profileSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerCells := make([]interface{}, len(profileHeaders))
	for i, h := range profileHeaders {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(profileSheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, p := range profiles {
		record := profileRecord(p)
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(profileSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	for i, width := range profileColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to compute column name: %w", err)
		}
		if err := f.SetColWidth(profileSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

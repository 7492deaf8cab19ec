// importer ingests one spreadsheet or a directory of spreadsheets, normalizes
// the rows into roster profiles and writes them to the profile store and/or
// an export file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"rostercli/internal/config"
	"rostercli/internal/dataprocessing"
	"rostercli/internal/decoder"
	"rostercli/internal/exporter"
	"rostercli/internal/infrastructure"
	"rostercli/internal/store"
	"rostercli/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input spreadsheet file or directory of spreadsheets (xlsx/xls/csv)")
	owner := flag.String("owner", "default", "owner id to store profiles under")
	outCSV := flag.String("out-csv", "", "write normalized profiles to this CSV file")
	outXLSX := flag.String("out-xlsx", "", "write normalized profiles to this xlsx file")
	persist := flag.Bool("store", false, "persist normalized profiles to the profile database")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: importer -in <file-or-dir> [-owner id] [-out-csv path] [-out-xlsx path] [-store]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := infrastructure.NewLogger(cfg.Logging)

	files, err := collectInputs(*in)
	if err != nil {
		logger.Error("failed to collect input files", "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Error("no spreadsheet files found", slog.String("in", *in))
		os.Exit(1)
	}

	ctx := context.Background()
	profiles, err := importFiles(ctx, logger, files)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
	if len(profiles) == 0 {
		logger.Error("no valid profiles found")
		os.Exit(1)
	}
	logger.Info("import complete",
		slog.Int("file_count", len(files)),
		slog.Int("profile_count", len(profiles)))

	if *persist {
		st, err := store.Open(cfg.DatabasePath(), logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer st.Close()
		if err := st.BulkCreate(ctx, *owner, profiles); err != nil {
			logger.Error("failed to store profiles", "error", err)
			os.Exit(1)
		}
	}

	if *outCSV != "" {
		if err := exporter.NewCSVExporter(logger).WriteFile(*outCSV, profiles); err != nil {
			logger.Error("failed to write CSV export", "error", err)
			os.Exit(1)
		}
	}
	if *outXLSX != "" {
		if err := exporter.NewExcelExporter(logger).WriteFile(*outXLSX, profiles); err != nil {
			logger.Error("failed to write xlsx export", "error", err)
			os.Exit(1)
		}
	}
}

// importFiles decodes and normalizes each file concurrently. Decoding is the
// slow part for large workbooks; normalization itself is cheap and pure.
// Results keep the input file order so ids and output are reproducible.
func importFiles(ctx context.Context, logger *slog.Logger, files []string) ([]domain.Profile, error) {
	normalizer := dataprocessing.NewNormalizer(logger)

	perFile := make([][]domain.Profile, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			rows, err := decoder.DecodeFile(filepath.Base(path), data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			profiles, err := normalizer.Normalize(ctx, rows)
			if err != nil {
				return fmt.Errorf("normalize %s: %w", path, err)
			}
			perFile[i] = profiles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Profile
	for _, profiles := range perFile {
		all = append(all, profiles...)
	}
	return all, nil
}

// collectInputs expands a file or directory path into the list of spreadsheet
// files to import, sorted by name.
func collectInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".xlsx", ".xls", ".csv":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

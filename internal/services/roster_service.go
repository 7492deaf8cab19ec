// Package services orchestrates the ingestion pipeline and persistence into
// the operations exposed by the CLI and HTTP transport.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"rostercli/internal/dataprocessing"
	"rostercli/internal/decoder"
	"rostercli/internal/errors"
	"rostercli/internal/exporter"
	"rostercli/internal/store"
	"rostercli/pkg/contracts/domain"
)

// RosterService wires the decoder, normalizer, store and exporters together.
type RosterService struct {
	store      *store.Store
	normalizer *dataprocessing.Normalizer
	csv        *exporter.CSVExporter
	excel      *exporter.ExcelExporter
	logger     *slog.Logger
}

// NewRosterService creates the roster service.
func NewRosterService(st *store.Store, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{
		store:      st,
		normalizer: dataprocessing.NewNormalizer(logger),
		csv:        exporter.NewCSVExporter(logger),
		excel:      exporter.NewExcelExporter(logger),
		logger:     logger.With(slog.String("component", "roster_service")),
	}
}

// ImportFile decodes a spreadsheet, normalizes its rows and stores the
// resulting profiles for owner. Returns the stored profiles. A file that
// yields no usable rows is a user-visible error; malformed individual cells
// are not.
func (s *RosterService) ImportFile(ctx context.Context, ownerID, filename string, data []byte) ([]domain.Profile, error) {
	rows, err := decoder.DecodeFile(filename, data)
	if err != nil {
		return nil, err
	}

	profiles, err := s.normalizer.Normalize(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, errors.NewParsingError("no valid profiles found in file", nil)
	}

	if err := s.store.BulkCreate(ctx, ownerID, profiles); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "imported spreadsheet",
		slog.String("owner_id", ownerID),
		slog.String("file", filename),
		slog.Int("profile_count", len(profiles)))
	return profiles, nil
}

// List returns all profiles for owner.
func (s *RosterService) List(ctx context.Context, ownerID string) ([]domain.Profile, error) {
	return s.store.List(ctx, ownerID)
}

// Get returns one profile by id.
func (s *RosterService) Get(ctx context.Context, ownerID, id string) (domain.Profile, error) {
	return s.store.Get(ctx, ownerID, id)
}

// Create stores a single user-authored profile. Missing ids and statuses are
// filled in; user edits to other fields are taken as-is.
func (s *RosterService) Create(ctx context.Context, ownerID string, p domain.Profile) (domain.Profile, error) {
	if p.ID == "" {
		p.ID = "profile_" + uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.StatusPending
	}
	if err := validateProfile(p); err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Create(ctx, ownerID, p); err != nil {
		return domain.Profile{}, err
	}
	return s.store.Get(ctx, ownerID, p.ID)
}

// BulkCreate stores a batch of already-normalized profiles.
func (s *RosterService) BulkCreate(ctx context.Context, ownerID string, profiles []domain.Profile) error {
	for _, p := range profiles {
		if err := validateProfile(p); err != nil {
			return err
		}
	}
	return s.store.BulkCreate(ctx, ownerID, profiles)
}

// Update overwrites an existing profile's fields.
func (s *RosterService) Update(ctx context.Context, ownerID string, p domain.Profile) (domain.Profile, error) {
	if err := validateProfile(p); err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Update(ctx, ownerID, p); err != nil {
		return domain.Profile{}, err
	}
	return s.store.Get(ctx, ownerID, p.ID)
}

// UpdateStatus moves a profile through the review workflow
// (pending, accepted, rejected) without touching its other fields.
func (s *RosterService) UpdateStatus(ctx context.Context, ownerID, id string, status domain.Status) (domain.Profile, error) {
	if !status.Valid() {
		return domain.Profile{}, errors.NewValidationError(fmt.Sprintf("invalid status: %q", status))
	}
	if err := s.store.UpdateStatus(ctx, ownerID, id, status); err != nil {
		return domain.Profile{}, err
	}
	return s.store.Get(ctx, ownerID, id)
}

// Delete removes one profile.
func (s *RosterService) Delete(ctx context.Context, ownerID, id string) error {
	return s.store.Delete(ctx, ownerID, id)
}

// DeleteAll clears the owner's roster and reports the number removed.
func (s *RosterService) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	return s.store.DeleteAll(ctx, ownerID)
}

// SelectionStats computes aggregate statistics over the owner's profiles
// restricted to selectedIDs. The selection is owned by the caller (it
// persists across views on the client side); the service treats it as an
// opaque id set.
func (s *RosterService) SelectionStats(ctx context.Context, ownerID string, selectedIDs []string) (domain.SelectionStats, error) {
	profiles, err := s.store.List(ctx, ownerID)
	if err != nil {
		return domain.SelectionStats{}, err
	}
	return dataprocessing.ComputeStats(profiles, selectedIDs), nil
}

// Export writes the owner's roster to w in the requested format ("csv" or
// "xlsx").
func (s *RosterService) Export(ctx context.Context, ownerID, format string, w io.Writer) error {
	profiles, err := s.store.List(ctx, ownerID)
	if err != nil {
		return err
	}
	switch format {
	case "csv":
		return s.csv.Write(w, profiles)
	case "xlsx", "excel":
		return s.excel.Write(w, profiles)
	default:
		return errors.NewValidationError(fmt.Sprintf("unsupported export format: %q", format))
	}
}

// validateProfile enforces the record invariants the pipeline guarantees for
// imported rows on user-authored writes as well.
func validateProfile(p domain.Profile) error {
	if p.Followers < 0 {
		return errors.NewValidationError("followers must be non-negative")
	}
	if !p.Status.Valid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %q", p.Status))
	}
	return nil
}

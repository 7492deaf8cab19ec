package http

import (
	"context"
	"io"

	"rostercli/pkg/contracts/domain"
)

// RosterServiceInterface is the service surface the handlers depend on.
// Defined here so handlers can be tested against a mock service.
type RosterServiceInterface interface {
	ImportFile(ctx context.Context, ownerID, filename string, data []byte) ([]domain.Profile, error)
	List(ctx context.Context, ownerID string) ([]domain.Profile, error)
	Get(ctx context.Context, ownerID, id string) (domain.Profile, error)
	Create(ctx context.Context, ownerID string, p domain.Profile) (domain.Profile, error)
	BulkCreate(ctx context.Context, ownerID string, profiles []domain.Profile) error
	Update(ctx context.Context, ownerID string, p domain.Profile) (domain.Profile, error)
	UpdateStatus(ctx context.Context, ownerID, id string, status domain.Status) (domain.Profile, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteAll(ctx context.Context, ownerID string) (int64, error)
	SelectionStats(ctx context.Context, ownerID string, selectedIDs []string) (domain.SelectionStats, error)
	Export(ctx context.Context, ownerID, format string, w io.Writer) error
}

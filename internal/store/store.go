// Package store persists roster profiles in SQLite, keyed by owner identity.
// The normalization core never touches this package; it produces profiles and
// the store keeps them.
package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"rostercli/internal/errors"
	"rostercli/pkg/contracts/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id                TEXT PRIMARY KEY,
	owner_id          TEXT NOT NULL,
	name              TEXT NOT NULL DEFAULT '',
	profile_link      TEXT NOT NULL DEFAULT '',
	platform          TEXT NOT NULL DEFAULT '',
	followers         REAL NOT NULL DEFAULT 0,
	followers_display TEXT NOT NULL DEFAULT '',
	commercials       TEXT NOT NULL DEFAULT '',
	view_range        TEXT NOT NULL DEFAULT '',
	phone_number      TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL DEFAULT '',
	state             TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL DEFAULT '',
	sex               TEXT NOT NULL DEFAULT '',
	age               TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'pending',
	created_at        TIMESTAMP NOT NULL,
	updated_at        TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_owner ON profiles(owner_id);
CREATE INDEX IF NOT EXISTS idx_profiles_status ON profiles(status);
`

const profileColumns = `id, owner_id, name, profile_link, platform, followers,
	followers_display, commercials, view_range, phone_number, email, state,
	category, sex, age, status, created_at, updated_at`

// Store provides owner-scoped CRUD over persisted profiles.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (or creates) the SQLite database at path and applies the schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open database", err)
	}
	// modernc's driver serializes access through a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStorageError("failed to apply schema", err)
	}

	logger.Info("opened profile store", slog.String("path", path))
	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "store")),
		now:    time.Now,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a single profile for the given owner.
func (s *Store) Create(ctx context.Context, ownerID string, p domain.Profile) error {
	return s.BulkCreate(ctx, ownerID, []domain.Profile{p})
}

// BulkCreate inserts a batch of profiles for the given owner in one
// transaction, matching the bulk-import path of the API.
func (s *Store) BulkCreate(ctx context.Context, ownerID string, profiles []domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStorageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	now := s.now().UTC()
	for _, p := range profiles {
		status := p.Status
		if status == "" {
			status = domain.StatusPending
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, ownerID, p.Name, p.ProfileLink, p.Platform, p.Followers,
			p.FollowersDisplay, p.Commercials, p.Range, p.PhoneNumber,
			p.Email, p.State, p.Category, p.Sex, p.Age, string(status),
			now, now,
		); err != nil {
			return errors.NewStorageError("failed to insert profile", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit batch", err)
	}

	s.logger.InfoContext(ctx, "stored profile batch",
		slog.String("owner_id", ownerID),
		slog.Int("profile_count", len(profiles)))
	return nil
}

// List returns all profiles belonging to owner, oldest first.
func (s *Store) List(ctx context.Context, ownerID string) ([]domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+`
		FROM profiles WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, errors.NewStorageError("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate profiles", err)
	}
	return profiles, nil
}

// Get returns one profile by id, scoped to owner.
func (s *Store) Get(ctx context.Context, ownerID, id string) (domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+`
		FROM profiles WHERE owner_id = ? AND id = ?`, ownerID, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return domain.Profile{}, errors.NewNotFoundError("profile")
	}
	return p, err
}

// Update overwrites the mutable fields of an existing profile. The id, owner
// and creation time never change.
func (s *Store) Update(ctx context.Context, ownerID string, p domain.Profile) error {
	res, err := s.db.ExecContext(ctx, `UPDATE profiles SET
		name = ?, profile_link = ?, platform = ?, followers = ?,
		followers_display = ?, commercials = ?, view_range = ?,
		phone_number = ?, email = ?, state = ?, category = ?, sex = ?,
		age = ?, status = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`,
		p.Name, p.ProfileLink, p.Platform, p.Followers,
		p.FollowersDisplay, p.Commercials, p.Range,
		p.PhoneNumber, p.Email, p.State, p.Category, p.Sex,
		p.Age, string(p.Status), s.now().UTC(),
		ownerID, p.ID)
	if err != nil {
		return errors.NewStorageError("failed to update profile", err)
	}
	return requireRow(res)
}

// UpdateStatus changes only the review status of an existing profile.
func (s *Store) UpdateStatus(ctx context.Context, ownerID, id string, status domain.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE profiles SET status = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`,
		string(status), s.now().UTC(), ownerID, id)
	if err != nil {
		return errors.NewStorageError("failed to update profile status", err)
	}
	return requireRow(res)
}

// Delete removes one profile by id, scoped to owner.
func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return errors.NewStorageError("failed to delete profile", err)
	}
	return requireRow(res)
}

// DeleteAll removes every profile belonging to owner and reports how many
// were removed.
func (s *Store) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM profiles WHERE owner_id = ?`, ownerID)
	if err != nil {
		return 0, errors.NewStorageError("failed to clear profiles", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewStorageError("failed to count deleted rows", err)
	}
	s.logger.InfoContext(ctx, "cleared profiles",
		slog.String("owner_id", ownerID),
		slog.Int64("deleted", count))
	return count, nil
}

// requireRow converts a zero-rows-affected result into a not-found error.
func requireRow(res sql.Result) error {
	count, err := res.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to check affected rows", err)
	}
	if count == 0 {
		return errors.NewNotFoundError("profile")
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (domain.Profile, error) {
	var (
		p       domain.Profile
		ownerID string
		status  string
	)
	err := row.Scan(
		&p.ID, &ownerID, &p.Name, &p.ProfileLink, &p.Platform, &p.Followers,
		&p.FollowersDisplay, &p.Commercials, &p.Range, &p.PhoneNumber,
		&p.Email, &p.State, &p.Category, &p.Sex, &p.Age, &status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Profile{}, err
	}
	if err != nil {
		return domain.Profile{}, errors.NewStorageError("failed to scan profile", err)
	}
	p.Status = domain.Status(status)
	return p, nil
}

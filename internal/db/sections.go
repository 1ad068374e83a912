package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sectionColumns = `id, user_id, type, key, flavor, version, content, tags, is_current, created_at, updated_at`

// versionOrder sorts two-part version strings numerically, so "1.10" follows "1.9"
const versionOrder = `split_part(version, '.', 1)::int, split_part(version, '.', 2)::int`

func scanSection(row pgx.Row) (*Section, error) {
	var s Section
	err := row.Scan(&s.ID, &s.UserID, &s.Type, &s.Key, &s.Flavor, &s.Version,
		&s.Content, &s.Tags, &s.IsCurrent, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSection inserts the first version ("1.0") of a section address with
// is_current=true. The unique index on (user_id, type, key, flavor, version)
// rejects a second create for the same address; the caller translates that
// via IsUniqueViolation.
func (db *DB) CreateSection(ctx context.Context, userID uuid.UUID, sectionType, key, flavor, version string, content json.RawMessage, tags []string) (*Section, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO sections (user_id, type, key, flavor, version, content, tags, is_current)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		 RETURNING `+sectionColumns,
		userID, sectionType, key, flavor, version, content, StringArray(tags),
	)
	s, err := scanSection(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	return s, nil
}

// InsertNextVersion atomically retires the current row at prevVersion and
// inserts a new current row at nextVersion. Both writes run in one
// transaction: a concurrent reader never observes zero or two current rows.
// If the current row is no longer at prevVersion (a concurrent update won the
// race) the transaction aborts with ErrCurrentChanged.
func (db *DB) InsertNextVersion(ctx context.Context, userID uuid.UUID, sectionType, key, flavor, prevVersion, nextVersion string, content json.RawMessage, tags []string) (*Section, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	// Compare-and-swap on the current version: the flip only succeeds if the
	// row we read is still the current one.
	res, err := tx.Exec(ctx,
		`UPDATE sections SET is_current = false, updated_at = NOW()
		 WHERE user_id = $1 AND type = $2 AND key = $3 AND flavor = $4
		   AND is_current AND version = $5`,
		userID, sectionType, key, flavor, prevVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to retire current version: %w", err)
	}
	if res.RowsAffected() == 0 {
		return nil, ErrCurrentChanged
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO sections (user_id, type, key, flavor, version, content, tags, is_current)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		 RETURNING `+sectionColumns,
		userID, sectionType, key, flavor, nextVersion, content, StringArray(tags),
	)
	s, err := scanSection(row)
	if err != nil {
		if IsUniqueViolation(err) {
			// Loser of a concurrent bump race: the version row already exists.
			return nil, ErrCurrentChanged
		}
		return nil, fmt.Errorf("failed to insert new version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit version bump: %w", err)
	}
	return s, nil
}

// GetCurrentSection retrieves the current version for an address, or nil
func (db *DB) GetCurrentSection(ctx context.Context, userID uuid.UUID, sectionType, key, flavor string) (*Section, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM sections
		 WHERE user_id = $1 AND type = $2 AND key = $3 AND flavor = $4 AND is_current`,
		userID, sectionType, key, flavor,
	)
	s, err := scanSection(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current section: %w", err)
	}
	return s, nil
}

// GetSectionVersion retrieves an exact historical row, or nil
func (db *DB) GetSectionVersion(ctx context.Context, userID uuid.UUID, sectionType, key, flavor, version string) (*Section, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM sections
		 WHERE user_id = $1 AND type = $2 AND key = $3 AND flavor = $4 AND version = $5`,
		userID, sectionType, key, flavor, version,
	)
	s, err := scanSection(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section version: %w", err)
	}
	return s, nil
}

// ListSections retrieves all rows (all versions) for a user, optionally
// filtered by type, ordered by (type, key, flavor, version) ascending.
func (db *DB) ListSections(ctx context.Context, userID uuid.UUID, sectionType string) ([]Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE user_id = $1`
	args := []any{userID}
	if sectionType != "" {
		query += ` AND type = $2`
		args = append(args, sectionType)
	}
	query += ` ORDER BY type, key, flavor, ` + versionOrder

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, *s)
	}
	return sections, rows.Err()
}

// ListSectionVersions retrieves every version of one address, newest first
func (db *DB) ListSectionVersions(ctx context.Context, userID uuid.UUID, sectionType, key, flavor string) ([]Section, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+sectionColumns+` FROM sections
		 WHERE user_id = $1 AND type = $2 AND key = $3 AND flavor = $4
		 ORDER BY `+versionOrder+` DESC`,
		userID, sectionType, key, flavor,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list section versions: %w", err)
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, *s)
	}
	return sections, rows.Err()
}

// ListCurrentSections retrieves the current-version catalog for a user:
// one row per (type, key, flavor) with is_current=true.
func (db *DB) ListCurrentSections(ctx context.Context, userID uuid.UUID) ([]Section, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+sectionColumns+` FROM sections
		 WHERE user_id = $1 AND is_current
		 ORDER BY type, key, flavor`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list current sections: %w", err)
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, *s)
	}
	return sections, rows.Err()
}

// DeleteSectionVersion removes exactly one version row. If that row was
// current, the highest remaining version of the address is promoted to
// current within the same transaction, so the single-current invariant holds
// whenever any version survives. Returns (found, promotedVersion).
func (db *DB) DeleteSectionVersion(ctx context.Context, userID uuid.UUID, sectionType, key, flavor, version string) (bool, string, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	var wasCurrent bool
	err = tx.QueryRow(ctx,
		`DELETE FROM sections
		 WHERE user_id = $1 AND type = $2 AND key = $3 AND flavor = $4 AND version = $5
		 RETURNING is_current`,
		userID, sectionType, key, flavor, version,
	).Scan(&wasCurrent)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to delete section version: %w", err)
	}

	var promoted string
	if wasCurrent {
		err = tx.QueryRow(ctx,
			`UPDATE sections SET is_current = true, updated_at = NOW()
			 WHERE id = (
			     SELECT id FROM sections
			     WHERE user_id = $1 AND type = $2 AND key = $3 AND flavor = $4
			     ORDER BY `+versionOrder+` DESC LIMIT 1
			 )
			 RETURNING version`,
			userID, sectionType, key, flavor,
		).Scan(&promoted)
		if err != nil && err != pgx.ErrNoRows {
			return false, "", fmt.Errorf("failed to promote remaining version: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, "", fmt.Errorf("failed to commit delete: %w", err)
	}
	return true, promoted, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetSectionConfig retrieves the selection policy for (user, type, key), or nil
func (db *DB) GetSectionConfig(ctx context.Context, userID uuid.UUID, sectionType, sectionKey string) (*SectionConfig, error) {
	var c SectionConfig
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, section_type, section_key, priority, fixed_flavor, created_at, updated_at
		 FROM section_configs
		 WHERE user_id = $1 AND section_type = $2 AND section_key = $3`,
		userID, sectionType, sectionKey,
	).Scan(&c.ID, &c.UserID, &c.SectionType, &c.SectionKey, &c.Priority, &c.FixedFlavor, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section config: %w", err)
	}
	return &c, nil
}

// ListSectionConfigs retrieves all selection policies for a user
func (db *DB) ListSectionConfigs(ctx context.Context, userID uuid.UUID) ([]SectionConfig, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, section_type, section_key, priority, fixed_flavor, created_at, updated_at
		 FROM section_configs WHERE user_id = $1
		 ORDER BY section_type, section_key`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list section configs: %w", err)
	}
	defer rows.Close()

	var configs []SectionConfig
	for rows.Next() {
		var c SectionConfig
		if err := rows.Scan(&c.ID, &c.UserID, &c.SectionType, &c.SectionKey, &c.Priority, &c.FixedFlavor, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section config: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// UpsertSectionConfig creates or replaces the policy for (user, type, key)
func (db *DB) UpsertSectionConfig(ctx context.Context, userID uuid.UUID, sectionType, sectionKey, priority string, fixedFlavor *string) (*SectionConfig, error) {
	var c SectionConfig
	err := db.pool.QueryRow(ctx,
		`INSERT INTO section_configs (user_id, section_type, section_key, priority, fixed_flavor)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, section_type, section_key)
		 DO UPDATE SET priority = $4, fixed_flavor = $5, updated_at = NOW()
		 RETURNING id, user_id, section_type, section_key, priority, fixed_flavor, created_at, updated_at`,
		userID, sectionType, sectionKey, priority, fixedFlavor,
	).Scan(&c.ID, &c.UserID, &c.SectionType, &c.SectionKey, &c.Priority, &c.FixedFlavor, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert section config: %w", err)
	}
	return &c, nil
}

// DeleteSectionConfig removes the policy, resetting the address to "normal"
func (db *DB) DeleteSectionConfig(ctx context.Context, userID uuid.UUID, sectionType, sectionKey string) (bool, error) {
	res, err := db.pool.Exec(ctx,
		`DELETE FROM section_configs
		 WHERE user_id = $1 AND section_type = $2 AND section_key = $3`,
		userID, sectionType, sectionKey,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete section config: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

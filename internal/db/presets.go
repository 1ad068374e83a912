package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResumePreset saves a named resume_config
func (db *DB) CreateResumePreset(ctx context.Context, userID uuid.UUID, name string, resumeConfig json.RawMessage) (*ResumePreset, error) {
	var p ResumePreset
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_presets (user_id, name, resume_config)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, name, resume_config, created_at, updated_at`,
		userID, name, resumeConfig,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.ResumeConfig, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume preset: %w", err)
	}
	return &p, nil
}

// GetResumePreset retrieves one preset, or nil
func (db *DB) GetResumePreset(ctx context.Context, userID, presetID uuid.UUID) (*ResumePreset, error) {
	var p ResumePreset
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, name, resume_config, created_at, updated_at
		 FROM resume_presets WHERE user_id = $1 AND id = $2`,
		userID, presetID,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.ResumeConfig, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume preset: %w", err)
	}
	return &p, nil
}

// ListResumePresets retrieves all presets for a user
func (db *DB) ListResumePresets(ctx context.Context, userID uuid.UUID) ([]ResumePreset, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, resume_config, created_at, updated_at
		 FROM resume_presets WHERE user_id = $1
		 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume presets: %w", err)
	}
	defer rows.Close()

	var presets []ResumePreset
	for rows.Next() {
		var p ResumePreset
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.ResumeConfig, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume preset: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// UpdateResumePreset patches a preset; nil fields are left unchanged
func (db *DB) UpdateResumePreset(ctx context.Context, userID, presetID uuid.UUID, name *string, resumeConfig json.RawMessage) (*ResumePreset, error) {
	var p ResumePreset
	err := db.pool.QueryRow(ctx,
		`UPDATE resume_presets SET
		     name = COALESCE($3, name),
		     resume_config = COALESCE($4, resume_config),
		     updated_at = NOW()
		 WHERE user_id = $1 AND id = $2
		 RETURNING id, user_id, name, resume_config, created_at, updated_at`,
		userID, presetID, name, resumeConfig,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.ResumeConfig, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume preset: %w", err)
	}
	return &p, nil
}

// DeleteResumePreset removes a preset
func (db *DB) DeleteResumePreset(ctx context.Context, userID, presetID uuid.UUID) (bool, error) {
	res, err := db.pool.Exec(ctx,
		`DELETE FROM resume_presets WHERE user_id = $1 AND id = $2`,
		userID, presetID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume preset: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

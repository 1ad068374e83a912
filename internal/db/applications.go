package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, user_id, company, role, job_url, location, status, resume_config,
	job_description, applied_at, notes, referral, salary_range, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.UserID, &a.Company, &a.Role, &a.JobURL, &a.Location,
		&a.Status, &a.ResumeConfig, &a.JobDescription, &a.AppliedAt,
		&a.Notes, &a.Referral, &a.SalaryRange, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ApplicationCreateInput holds the fields for a new application record
type ApplicationCreateInput struct {
	Company        string
	Role           string
	JobURL         *string
	Location       *string
	ResumeConfig   json.RawMessage
	JobDescription *string
	AppliedAt      time.Time
	Notes          *string
	Referral       *string
	SalaryRange    *string
}

// CreateApplication inserts a new application with status "applied"
func (db *DB) CreateApplication(ctx context.Context, userID uuid.UUID, input *ApplicationCreateInput) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, company, role, job_url, location, status, resume_config,
		                           job_description, applied_at, notes, referral, salary_range)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+applicationColumns,
		userID, input.Company, input.Role, input.JobURL, input.Location, StatusApplied,
		input.ResumeConfig, input.JobDescription, input.AppliedAt,
		input.Notes, input.Referral, input.SalaryRange,
	)
	a, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves one application by ID, or nil
func (db *DB) GetApplication(ctx context.Context, userID, applicationID uuid.UUID) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1 AND id = $2`,
		userID, applicationID,
	)
	a, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplications retrieves applications for a user, optionally filtered by
// status, newest applied first.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID, status string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY applied_at DESC, created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// ApplicationUpdateInput holds the mutable fields of an application.
// Nil fields are left unchanged; an application is otherwise immutable
// once created.
type ApplicationUpdateInput struct {
	Status      *string
	Notes       *string
	Referral    *string
	SalaryRange *string
}

// UpdateApplication patches the mutable fields of an application
func (db *DB) UpdateApplication(ctx context.Context, userID, applicationID uuid.UUID, input *ApplicationUpdateInput) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE applications SET
		     status = COALESCE($3, status),
		     notes = COALESCE($4, notes),
		     referral = COALESCE($5, referral),
		     salary_range = COALESCE($6, salary_range),
		     updated_at = NOW()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+applicationColumns,
		userID, applicationID, input.Status, input.Notes, input.Referral, input.SalaryRange,
	)
	a, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return a, nil
}

// DeleteApplication removes an application record
func (db *DB) DeleteApplication(ctx context.Context, userID, applicationID uuid.UUID) (bool, error) {
	res, err := db.pool.Exec(ctx,
		`DELETE FROM applications WHERE user_id = $1 AND id = $2`,
		userID, applicationID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

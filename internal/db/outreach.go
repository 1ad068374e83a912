package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Template Methods
// -----------------------------------------------------------------------------

// CreateOutreachTemplate inserts a new message template
func (db *DB) CreateOutreachTemplate(ctx context.Context, userID uuid.UUID, name, content, style, length string) (*OutreachTemplate, error) {
	var t OutreachTemplate
	err := db.pool.QueryRow(ctx,
		`INSERT INTO outreach_templates (user_id, name, content, style, length)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, name, content, style, length, created_at, updated_at`,
		userID, name, content, style, length,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.Content, &t.Style, &t.Length, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create outreach template: %w", err)
	}
	return &t, nil
}

// GetOutreachTemplate retrieves one template, or nil
func (db *DB) GetOutreachTemplate(ctx context.Context, userID, templateID uuid.UUID) (*OutreachTemplate, error) {
	var t OutreachTemplate
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, name, content, style, length, created_at, updated_at
		 FROM outreach_templates WHERE user_id = $1 AND id = $2`,
		userID, templateID,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.Content, &t.Style, &t.Length, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get outreach template: %w", err)
	}
	return &t, nil
}

// ListOutreachTemplates retrieves all templates for a user
func (db *DB) ListOutreachTemplates(ctx context.Context, userID uuid.UUID) ([]OutreachTemplate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, content, style, length, created_at, updated_at
		 FROM outreach_templates WHERE user_id = $1
		 ORDER BY style, length, name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outreach templates: %w", err)
	}
	defer rows.Close()

	var templates []OutreachTemplate
	for rows.Next() {
		var t OutreachTemplate
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Content, &t.Style, &t.Length, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outreach template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// UpdateOutreachTemplate patches a template; nil fields are left unchanged
func (db *DB) UpdateOutreachTemplate(ctx context.Context, userID, templateID uuid.UUID, name, content, style, length *string) (*OutreachTemplate, error) {
	var t OutreachTemplate
	err := db.pool.QueryRow(ctx,
		`UPDATE outreach_templates SET
		     name = COALESCE($3, name),
		     content = COALESCE($4, content),
		     style = COALESCE($5, style),
		     length = COALESCE($6, length),
		     updated_at = NOW()
		 WHERE user_id = $1 AND id = $2
		 RETURNING id, user_id, name, content, style, length, created_at, updated_at`,
		userID, templateID, name, content, style, length,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.Content, &t.Style, &t.Length, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update outreach template: %w", err)
	}
	return &t, nil
}

// DeleteOutreachTemplate removes a template
func (db *DB) DeleteOutreachTemplate(ctx context.Context, userID, templateID uuid.UUID) (bool, error) {
	res, err := db.pool.Exec(ctx,
		`DELETE FROM outreach_templates WHERE user_id = $1 AND id = $2`,
		userID, templateID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete outreach template: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

// -----------------------------------------------------------------------------
// Thread Methods
// -----------------------------------------------------------------------------

// CreateOutreachThread starts a new conversation thread
func (db *DB) CreateOutreachThread(ctx context.Context, userID uuid.UUID, company string, contactName, contactMethod *string, resumeConfig json.RawMessage) (*OutreachThread, error) {
	var t OutreachThread
	err := db.pool.QueryRow(ctx,
		`INSERT INTO outreach_threads (user_id, company, contact_name, contact_method, resume_config, is_active)
		 VALUES ($1, $2, $3, $4, $5, true)
		 RETURNING id, user_id, company, contact_name, contact_method, resume_config, is_active, created_at, updated_at`,
		userID, company, contactName, contactMethod, resumeConfig,
	).Scan(&t.ID, &t.UserID, &t.Company, &t.ContactName, &t.ContactMethod, &t.ResumeConfig, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create outreach thread: %w", err)
	}
	return &t, nil
}

// GetOutreachThread retrieves one thread, or nil
func (db *DB) GetOutreachThread(ctx context.Context, userID, threadID uuid.UUID) (*OutreachThread, error) {
	var t OutreachThread
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, company, contact_name, contact_method, resume_config, is_active, created_at, updated_at
		 FROM outreach_threads WHERE user_id = $1 AND id = $2`,
		userID, threadID,
	).Scan(&t.ID, &t.UserID, &t.Company, &t.ContactName, &t.ContactMethod, &t.ResumeConfig, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get outreach thread: %w", err)
	}
	return &t, nil
}

// ListOutreachThreads retrieves threads for a user, newest first
func (db *DB) ListOutreachThreads(ctx context.Context, userID uuid.UUID) ([]OutreachThread, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, contact_name, contact_method, resume_config, is_active, created_at, updated_at
		 FROM outreach_threads WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outreach threads: %w", err)
	}
	defer rows.Close()

	var threads []OutreachThread
	for rows.Next() {
		var t OutreachThread
		if err := rows.Scan(&t.ID, &t.UserID, &t.Company, &t.ContactName, &t.ContactMethod, &t.ResumeConfig, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outreach thread: %w", err)
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

// DeleteOutreachThread removes a thread and its messages (via cascade)
func (db *DB) DeleteOutreachThread(ctx context.Context, userID, threadID uuid.UUID) (bool, error) {
	res, err := db.pool.Exec(ctx,
		`DELETE FROM outreach_threads WHERE user_id = $1 AND id = $2`,
		userID, threadID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete outreach thread: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

// -----------------------------------------------------------------------------
// Message Methods
// -----------------------------------------------------------------------------

// CreateOutreachMessage appends a message to a thread
func (db *DB) CreateOutreachMessage(ctx context.Context, threadID uuid.UUID, direction, content string, messageAt *time.Time) (*OutreachMessage, error) {
	var m OutreachMessage
	err := db.pool.QueryRow(ctx,
		`INSERT INTO outreach_messages (thread_id, direction, content, message_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, thread_id, direction, content, message_at, created_at`,
		threadID, direction, content, messageAt,
	).Scan(&m.ID, &m.ThreadID, &m.Direction, &m.Content, &m.MessageAt, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create outreach message: %w", err)
	}

	// Bump the thread so active conversations sort first
	_, _ = db.pool.Exec(ctx,
		`UPDATE outreach_threads SET updated_at = NOW() WHERE id = $1`, threadID)

	return &m, nil
}

// ListOutreachMessages retrieves a thread's messages, oldest first
func (db *DB) ListOutreachMessages(ctx context.Context, threadID uuid.UUID) ([]OutreachMessage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, thread_id, direction, content, message_at, created_at
		 FROM outreach_messages WHERE thread_id = $1
		 ORDER BY created_at ASC`,
		threadID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outreach messages: %w", err)
	}
	defer rows.Close()

	var messages []OutreachMessage
	for rows.Next() {
		var m OutreachMessage
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Direction, &m.Content, &m.MessageAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outreach message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

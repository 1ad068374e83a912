package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func scanContact(row pgx.Row) (*Contact, error) {
	var c Contact
	var fields []byte
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &fields, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &c.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode contact fields: %w", err)
		}
	}
	return &c, nil
}

// CreateContact inserts a contact card
func (db *DB) CreateContact(ctx context.Context, userID uuid.UUID, name string, fields []ContactField) (*Contact, error) {
	if fields == nil {
		fields = []ContactField{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact fields: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO contacts (user_id, name, fields)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, name, fields, created_at, updated_at`,
		userID, name, encoded,
	)
	c, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return c, nil
}

// ListContacts retrieves all contacts for a user
func (db *DB) ListContacts(ctx context.Context, userID uuid.UUID) ([]Contact, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, fields, created_at, updated_at
		 FROM contacts WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// UpdateContact replaces a contact's name and fields
func (db *DB) UpdateContact(ctx context.Context, userID, contactID uuid.UUID, name string, fields []ContactField) (*Contact, error) {
	if fields == nil {
		fields = []ContactField{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact fields: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE contacts SET name = $3, fields = $4, updated_at = NOW()
		 WHERE user_id = $1 AND id = $2
		 RETURNING id, user_id, name, fields, created_at, updated_at`,
		userID, contactID, name, encoded,
	)
	c, err := scanContact(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return c, nil
}

// DeleteContact removes a contact card
func (db *DB) DeleteContact(ctx context.Context, userID, contactID uuid.UUID) (bool, error) {
	res, err := db.pool.Exec(ctx,
		`DELETE FROM contacts WHERE user_id = $1 AND id = $2`,
		userID, contactID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

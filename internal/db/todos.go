package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateTodo appends a checklist item after the user's existing items
func (db *DB) CreateTodo(ctx context.Context, userID uuid.UUID, text string) (*Todo, error) {
	var t Todo
	err := db.pool.QueryRow(ctx,
		`INSERT INTO todos (user_id, text, position)
		 VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM todos WHERE user_id = $1))
		 RETURNING id, user_id, text, is_done, position, created_at, updated_at`,
		userID, text,
	).Scan(&t.ID, &t.UserID, &t.Text, &t.IsDone, &t.Position, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &t, nil
}

// ListTodos retrieves a user's checklist in display order
func (db *DB) ListTodos(ctx context.Context, userID uuid.UUID) ([]Todo, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, text, is_done, position, created_at, updated_at
		 FROM todos WHERE user_id = $1 ORDER BY position, created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.IsDone, &t.Position, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// UpdateTodo patches a checklist item; nil fields are left unchanged
func (db *DB) UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, text *string, isDone *bool, position *int) (*Todo, error) {
	var t Todo
	err := db.pool.QueryRow(ctx,
		`UPDATE todos SET
		     text = COALESCE($3, text),
		     is_done = COALESCE($4, is_done),
		     position = COALESCE($5, position),
		     updated_at = NOW()
		 WHERE user_id = $1 AND id = $2
		 RETURNING id, user_id, text, is_done, position, created_at, updated_at`,
		userID, todoID, text, isDone, position,
	).Scan(&t.ID, &t.UserID, &t.Text, &t.IsDone, &t.Position, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return &t, nil
}

// DeleteTodo removes a checklist item
func (db *DB) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) (bool, error) {
	res, err := db.pool.Exec(ctx,
		`DELETE FROM todos WHERE user_id = $1 AND id = $2`,
		userID, todoID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

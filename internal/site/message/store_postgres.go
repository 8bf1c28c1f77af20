// Copyright (c) 2026 TimesNews Media. All rights reserved.

package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/dberr"
	"github.com/timesnews/api/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

const messageColumns = `id, name, email, subject, body, isread, createdat`

func scanMessage(row pgx.Row) (*Message, error) {
	message := &Message{}
	err := row.Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Subject,
		&message.Body,
		&message.IsRead,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return message, nil
}

// FindByID retrieves a message by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM site.message WHERE id = $1`

	message, err := scanMessage(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Message")
		}
		return nil, fmt.Errorf("postgres_message_repo_find_by_id_failed: %w", err)
	}

	return message, nil
}

// List returns a page of messages, newest first.
func (repository *PostgresRepository) List(context context.Context, unreadOnly bool, params pagination.Params) ([]*Message, int, error) {
	where := ``
	if unreadOnly {
		where = ` WHERE isread = FALSE`
	}

	query := `SELECT ` + messageColumns + ` FROM site.message` + where +
		` ORDER BY createdat DESC LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_message_repo_list_failed: %w", err)
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_message_repo_list_scan_failed: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_message_repo_list_rows_failed: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM site.message` + where

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_message_repo_count_failed: %w", err)
	}

	return messages, total, nil
}

// Create persists a new message.
func (repository *PostgresRepository) Create(context context.Context, message *Message) error {
	const query = `
		INSERT INTO site.message (id, name, email, subject, body, isread, createdat)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
		RETURNING createdat`

	err := repository.pool.QueryRow(context, query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Body,
	).Scan(&message.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_message_repo_create")
	}

	return nil
}

// SetRead marks a message read or unread.
func (repository *PostgresRepository) SetRead(context context.Context, id string, read bool) error {
	const query = `UPDATE site.message SET isread = $2 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, read)
	if err != nil {
		return fmt.Errorf("postgres_message_repo_set_read_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Message")
	}

	return nil
}

// Delete removes a message.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM site.message WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_message_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Message")
	}

	return nil
}

// Count returns the number of unread messages.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM site.message WHERE isread = FALSE`

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_message_repo_count_unread_failed: %w", err)
	}

	return total, nil
}

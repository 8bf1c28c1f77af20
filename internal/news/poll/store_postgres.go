// Copyright (c) 2026 TimesNews Media. All rights reserved.

package poll

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/dberr"
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

const pollColumns = `id, question, isactive, createdat, updatedat`

func scanPoll(row pgx.Row) (*Poll, error) {
	poll := &Poll{}
	err := row.Scan(
		&poll.ID,
		&poll.Question,
		&poll.IsActive,
		&poll.CreatedAt,
		&poll.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return poll, nil
}

// FindByID retrieves a poll with its options in position order.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Poll, error) {
	const query = `SELECT ` + pollColumns + ` FROM news.poll WHERE id = $1`

	poll, err := scanPoll(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Poll")
		}
		return nil, fmt.Errorf("postgres_poll_repo_find_by_id_failed: %w", err)
	}

	if err := repository.attachOptions(context, []*Poll{poll}); err != nil {
		return nil, err
	}

	return poll, nil
}

// ListActive returns every open poll, newest first.
func (repository *PostgresRepository) ListActive(context context.Context) ([]*Poll, error) {
	return repository.list(context, `WHERE isactive = TRUE`)
}

// ListAll returns every poll regardless of state, newest first.
func (repository *PostgresRepository) ListAll(context context.Context) ([]*Poll, error) {
	return repository.list(context, ``)
}

func (repository *PostgresRepository) list(context context.Context, where string) ([]*Poll, error) {
	query := `SELECT ` + pollColumns + ` FROM news.poll ` + where + ` ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_poll_repo_list_failed: %w", err)
	}
	defer rows.Close()

	polls := []*Poll{}
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_poll_repo_list_scan_failed: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_poll_repo_list_rows_failed: %w", err)
	}

	if err := repository.attachOptions(context, polls); err != nil {
		return nil, err
	}

	return polls, nil
}

// attachOptions loads the options for each poll in one query.
func (repository *PostgresRepository) attachOptions(context context.Context, polls []*Poll) error {
	if len(polls) == 0 {
		return nil
	}

	pollIDs := make([]string, 0, len(polls))
	byID := make(map[string]*Poll, len(polls))
	for _, poll := range polls {
		pollIDs = append(pollIDs, poll.ID)
		byID[poll.ID] = poll
		poll.Options = []*Option{}
	}

	const query = `
		SELECT id, pollid, label, votes, position
		FROM news.poll_option
		WHERE pollid = ANY($1)
		ORDER BY position ASC`

	rows, err := repository.pool.Query(context, query, pollIDs)
	if err != nil {
		return fmt.Errorf("postgres_poll_repo_options_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		option := &Option{}
		var pollID string
		if err := rows.Scan(&option.ID, &pollID, &option.Label, &option.Votes, &option.Position); err != nil {
			return fmt.Errorf("postgres_poll_repo_options_scan_failed: %w", err)
		}
		if parent, ok := byID[pollID]; ok {
			parent.Options = append(parent.Options, option)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres_poll_repo_options_rows_failed: %w", err)
	}

	return nil
}

// Create persists a poll together with its options in one transaction.
func (repository *PostgresRepository) Create(context context.Context, poll *Poll) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_poll_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const pollQuery = `
		INSERT INTO news.poll (id, question, isactive, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING createdat, updatedat`

	err = transaction.QueryRow(context, pollQuery,
		poll.ID,
		poll.Question,
		poll.IsActive,
	).Scan(&poll.CreatedAt, &poll.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_poll_repo_create")
	}

	const optionQuery = `
		INSERT INTO news.poll_option (id, pollid, label, votes, position)
		VALUES ($1, $2, $3, 0, $4)`

	for _, option := range poll.Options {
		if _, err := transaction.Exec(context, optionQuery, option.ID, poll.ID, option.Label, option.Position); err != nil {
			return dberr.Wrap(err, "postgres_poll_repo_create_option")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_poll_repo_commit_failed: %w", err)
	}

	return nil
}

// SetActive opens or closes a poll.
func (repository *PostgresRepository) SetActive(context context.Context, id string, active bool) error {
	const query = `UPDATE news.poll SET isactive = $2, updatedat = NOW() WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, active)
	if err != nil {
		return fmt.Errorf("postgres_poll_repo_set_active_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Poll")
	}

	return nil
}

// IncrementVote adds one vote to an option, guarding that it belongs to the poll.
func (repository *PostgresRepository) IncrementVote(context context.Context, pollID, optionID string) (bool, error) {
	const query = `UPDATE news.poll_option SET votes = votes + 1 WHERE id = $1 AND pollid = $2`

	tag, err := repository.pool.Exec(context, query, optionID, pollID)
	if err != nil {
		return false, fmt.Errorf("postgres_poll_repo_increment_vote_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes a poll; options follow through the foreign key cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM news.poll WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_poll_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Poll")
	}

	return nil
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package comment

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

const commentColumns = `c.id, c.articleid, c.authorid, COALESCE(u.fullname, ''), c.content, c.createdat`

const commentJoin = ` FROM news.comment c LEFT JOIN users.account u ON u.id = c.authorid`

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.ArticleID,
		&comment.AuthorID,
		&comment.AuthorName,
		&comment.Content,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// FindByID retrieves a comment by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	const query = `SELECT ` + commentColumns + commentJoin + ` WHERE c.id = $1`

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_by_id_failed: %w", err)
	}

	return comment, nil
}

// ListByArticle returns a page of comments on one article, newest first.
func (repository *PostgresRepository) ListByArticle(context context.Context, articleID string, params pagination.Params) ([]*Comment, int, error) {
	const query = `SELECT ` + commentColumns + commentJoin + `
		WHERE c.articleid = $1
		ORDER BY c.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, articleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_list_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_rows_failed: %w", err)
	}

	const countQuery = `SELECT COUNT(*) FROM news.comment WHERE articleid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, articleID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	return comments, total, nil
}

// List returns a page of comments across every article, newest first. The
// article title is joined in so moderators see the thread at a glance.
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Comment, int, error) {
	const query = `SELECT ` + commentColumns + `, COALESCE(a.title, '')` + commentJoin + `
		LEFT JOIN news.article a ON a.id = c.articleid
		ORDER BY c.createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_all_failed: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.ArticleID,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.Content,
			&comment.CreatedAt,
			&comment.ArticleTitle,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_list_all_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_all_rows_failed: %w", err)
	}

	total, err := repository.Count(context)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// Create persists a new comment.
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO news.comment (id, articleid, authorid, content, createdat)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING createdat`

	err := repository.pool.QueryRow(context, query,
		comment.ID,
		comment.ArticleID,
		comment.AuthorID,
		comment.Content,
	).Scan(&comment.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_comment_repo_create")
	}

	return nil
}

// Delete removes a comment.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM news.comment WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// Count returns the total number of comments.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM news.comment`

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_comment_repo_count_all_failed: %w", err)
	}

	return total, nil
}

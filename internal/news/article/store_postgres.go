// Copyright (c) 2026 TimesNews Media. All rights reserved.

package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

// articleColumns joins against users.account so listings carry the author name.
const articleColumns = `
	a.id, a.title, a.slug, a.summary, a.content, a.coverurl, a.status,
	a.isfeatured, a.tags, a.authorid, COALESCE(u.fullname, ''),
	COALESCE(a.categoryid::text, ''), a.viewcount,
	a.publishedat, a.createdat, a.updatedat`

const articleFrom = ` FROM news.article a LEFT JOIN users.account u ON u.id = a.authorid`

func scanArticle(row pgx.Row) (*Article, error) {
	article := &Article{}
	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Summary,
		&article.Content,
		&article.CoverURL,
		&article.Status,
		&article.IsFeatured,
		&article.Tags,
		&article.AuthorID,
		&article.AuthorName,
		&article.CategoryID,
		&article.ViewCount,
		&article.PublishedAt,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindByID retrieves an article by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Article, error) {
	const query = `SELECT` + articleColumns + articleFrom + ` WHERE a.id = $1`

	article, err := scanArticle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, fmt.Errorf("postgres_article_repo_find_by_id_failed: %w", err)
	}

	return article, nil
}

// FindBySlug retrieves an article by its URL slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Article, error) {
	const query = `SELECT` + articleColumns + articleFrom + ` WHERE a.slug = $1`

	article, err := scanArticle(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, fmt.Errorf("postgres_article_repo_find_by_slug_failed: %w", err)
	}

	return article, nil
}

// SlugExists reports whether any article already uses the slug.
func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	const query = "SELECT EXISTS(SELECT 1 FROM news.article WHERE slug = $1)"

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_article_repo_slug_exists_failed: %w", err)
	}
	return exists, nil
}

/*
Create persists a new article row.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, article *Article) error {
	const query = `
		INSERT INTO news.article (
			id, title, slug, summary, content, coverurl, status, isfeatured,
			tags, authorid, categoryid, viewcount, publishedat, createdat,
			updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			NULLIF($11, '')::uuid, $12, $13, $14, $15)`

	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Tags == nil {
		article.Tags = []string{}
	}

	_, err := repository.pool.Exec(context, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Summary,
		article.Content,
		article.CoverURL,
		article.Status,
		article.IsFeatured,
		article.Tags,
		article.AuthorID,
		article.CategoryID,
		article.ViewCount,
		article.PublishedAt,
		article.CreatedAt,
		article.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "article_create")
	}

	return nil
}

/*
Update persists changes to an article row.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, article *Article) error {
	const query = `
		UPDATE news.article
		SET title = $2, slug = $3, summary = $4, content = $5, coverurl = $6,
			status = $7, isfeatured = $8, tags = $9,
			categoryid = NULLIF($10, '')::uuid, publishedat = $11,
			updatedat = $12
		WHERE id = $1`

	article.UpdatedAt = time.Now()
	if article.Tags == nil {
		article.Tags = []string{}
	}
	_, err := repository.pool.Exec(context, query,
		article.ID,
		article.Title,
		article.Slug,
		article.Summary,
		article.Content,
		article.CoverURL,
		article.Status,
		article.IsFeatured,
		article.Tags,
		article.CategoryID,
		article.PublishedAt,
		article.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "article_update")
	}

	return nil
}

// SetStatus updates only the lifecycle status.
func (repository *PostgresRepository) SetStatus(context context.Context, id string, status Status) error {
	const query = "UPDATE news.article SET status = $2, updatedat = $3 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_article_repo_set_status_failed: %w", err)
	}
	return nil
}

/*
List returns a page of articles matching the filter plus the total count.

Description: Builds a dynamic WHERE clause for the optional status, search,
category and author filters, then runs a COUNT and a page query with the
same conditions.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []*Article: Matching articles
  - int: Total count across all pages
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]*Article, int, error) {

	// Dynamic WHERE clause construction
	var whereBuilder strings.Builder
	whereBuilder.WriteString(" WHERE 1=1")
	args := []interface{}{}
	argID := 0

	if filter.Status != "" {
		argID++
		whereBuilder.WriteString(fmt.Sprintf(" AND a.status = $%d", argID))
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		argID++
		whereBuilder.WriteString(fmt.Sprintf(" AND (a.title ILIKE $%d OR a.summary ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.CategoryID != "" {
		argID++
		whereBuilder.WriteString(fmt.Sprintf(" AND a.categoryid = $%d", argID))
		args = append(args, filter.CategoryID)
	}
	if filter.AuthorID != "" {
		argID++
		whereBuilder.WriteString(fmt.Sprintf(" AND a.authorid = $%d", argID))
		args = append(args, filter.AuthorID)
	}
	if filter.FeaturedOnly {
		whereBuilder.WriteString(" AND a.isfeatured = TRUE")
	}

	whereClause := whereBuilder.String()

	countQuery := "SELECT COUNT(*)" + articleFrom + whereClause
	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_count_failed: %w", err)
	}

	pageQuery := fmt.Sprintf(
		"SELECT%s%s%s ORDER BY COALESCE(a.publishedat, a.createdat) DESC LIMIT $%d OFFSET $%d",
		articleColumns, articleFrom, whereClause, argID+1, argID+2,
	)
	args = append(args, filter.Params.Limit, filter.Params.Offset())

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_list_failed: %w", err)
	}
	defer rows.Close()

	articles := make([]*Article, 0, filter.Params.Limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_article_repo_list_scan_failed: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_list_rows_failed: %w", err)
	}

	return articles, total, nil
}

// AddViews adds a drained view-count delta to the persistent counter.
func (repository *PostgresRepository) AddViews(context context.Context, id string, delta int64) error {
	const query = "UPDATE news.article SET viewcount = viewcount + $2 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id, delta)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_add_views_failed: %w", err)
	}
	return nil
}

// Count returns the number of published articles.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	err := repository.pool.QueryRow(context,
		"SELECT COUNT(*) FROM news.article WHERE status = $1", StatusPublished,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres_article_repo_count_published_failed: %w", err)
	}
	return total, nil
}

var _ Repository = (*PostgresRepository)(nil)

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package article

import (
	"context"

	"github.com/timesnews/api/pkg/pagination"
)

// # Article Data Access

// ListFilter narrows and pages article listings.
type ListFilter struct {
	Status       Status // Empty means all statuses (staff views only).
	Search       string // Matches title and summary.
	CategoryID   string
	AuthorID     string
	FeaturedOnly bool // Restricts to editorially highlighted pieces.
	Params       pagination.Params
}

// Repository defines the data access contract for articles.
type Repository interface {

	/*
		FindByID returns the article with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Article: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Article, error)

	/*
		FindBySlug returns the article with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Article: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Article, error)

	/*
		SlugExists reports whether any article already uses the slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: Whether the slug is taken
		  - error: Database retrieval failures
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		Create persists a new article.

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, article *Article) error

	/*
		Update persists changes to an article.

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, article *Article) error

	/*
		SetStatus updates only the lifecycle status.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: Status

		Returns:
		  - error: Persistence failures
	*/
	SetStatus(context context.Context, id string, status Status) error

	/*
		List returns a page of articles matching the filter plus the total count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []*Article: Matching articles
		  - int: Total count across all pages
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]*Article, int, error)

	/*
		AddViews adds a delta to the persistent view counter.

		Parameters:
		  - context: context.Context
		  - id: string
		  - delta: int64

		Returns:
		  - error: Persistence failures
	*/
	AddViews(context context.Context, id string, delta int64) error

	/*
		Count returns the number of published articles.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Article count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

// # View Counting

// ViewCounter buffers article view increments in volatile storage.
//
// Per-request UPDATEs on a hot article row would serialize on the row lock,
// so views accumulate in Redis and a background job drains them into
// PostgreSQL in batches.
type ViewCounter interface {

	/*
		Increment records one view for the article.

		Parameters:
		  - context: context.Context
		  - articleID: string

		Returns:
		  - error: Buffer failures
	*/
	Increment(context context.Context, articleID string) error

	/*
		Drain atomically reads and resets all buffered counters.

		Parameters:
		  - context: context.Context

		Returns:
		  - map[string]int64: ArticleID to buffered view count
		  - error: Buffer failures
	*/
	Drain(context context.Context) (map[string]int64, error)
}

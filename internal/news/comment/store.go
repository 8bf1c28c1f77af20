// Copyright (c) 2026 TimesNews Media. All rights reserved.

package comment

import (
	"context"

	"github.com/timesnews/api/pkg/pagination"
)

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		FindByID returns the comment with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		ListByArticle returns a page of comments on one article, newest first.

		Parameters:
		  - context: context.Context
		  - articleID: string
		  - params: pagination.Params

		Returns:
		  - []*Comment: Matching comments
		  - int: Total count across all pages
		  - error: Database retrieval failures
	*/
	ListByArticle(context context.Context, articleID string, params pagination.Params) ([]*Comment, int, error)

	/*
		List returns a page of comments across every article, newest first,
		with each comment's article title populated.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*Comment: Matching comments
		  - int: Total count across all pages
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]*Comment, int, error)

	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Delete removes a comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		Count returns the total number of comments.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Comment count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package category

import "context"

// Repository defines the data access contract for editorial categories.
type Repository interface {

	/*
		FindByID returns the category with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Category: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Category, error)

	/*
		FindBySlug returns the category with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Category: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Category, error)

	/*
		List returns every active category ordered by name.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Category: All non-archived categories
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Category, error)

	/*
		Create persists a new category.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, category *Category) error

	/*
		Update persists changes to a category.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, category *Category) error

	/*
		SetArchived flips the archive flag on a category.

		Parameters:
		  - context: context.Context
		  - id: string
		  - archived: bool

		Returns:
		  - error: NotFound or persistence failures
	*/
	SetArchived(context context.Context, id string, archived bool) error

	/*
		Count returns the number of active categories.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Active category count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

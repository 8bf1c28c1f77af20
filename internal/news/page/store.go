// Copyright (c) 2026 TimesNews Media. All rights reserved.

package page

import "context"

// Repository defines the data access contract for static pages.
type Repository interface {

	/*
		FindByID returns the page with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Page: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Page, error)

	/*
		FindBySlug returns the page with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Page: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Page, error)

	/*
		SlugExists reports whether any page already uses the slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - bool: Whether the slug is taken
		  - error: Database retrieval failures
	*/
	SlugExists(context context.Context, slug string) (bool, error)

	/*
		List returns every page ordered by title.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Page: All pages
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Page, error)

	/*
		Create persists a new page.

		Parameters:
		  - context: context.Context
		  - page: *Page

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, page *Page) error

	/*
		Update persists changes to a page.

		Parameters:
		  - context: context.Context
		  - page: *Page

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, page *Page) error

	/*
		Delete removes a page.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}

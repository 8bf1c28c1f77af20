// Copyright (c) 2026 TimesNews Media. All rights reserved.

package page

import (
	"context"
	"fmt"

	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/slug"
	"github.com/timesnews/api/pkg/uuid"
)

// Service orchestrates business logic for static pages.
//
// Reads are public; every mutation requires the publish capability.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// GetBySlug resolves a page for public rendering.
func (service *Service) GetBySlug(context context.Context, pageSlug string) (*Page, error) {
	return service.repository.FindBySlug(context, pageSlug)
}

// List returns every page for footer navigation and the staff overview.
func (service *Service) List(context context.Context) ([]*Page, error) {
	return service.repository.List(context)
}

// CreateInput holds the data for a new page.
type CreateInput struct {
	Title   string
	Content string
}

/*
Create adds a new static page.

Description: The slug derives from the title; on collision a counter suffix
is appended (about, about-2, about-3, ...) so creation never fails on a
duplicate title.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - input: CreateInput

Returns:
  - *Page: Created entity
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Principal, input CreateInput) (*Page, error) {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return nil, err
	}

	pageSlug, err := service.uniqueSlug(context, input.Title)
	if err != nil {
		return nil, err
	}

	created := &Page{
		ID:      uuid.New(),
		Title:   input.Title,
		Slug:    pageSlug,
		Content: input.Content,
	}

	if err := service.repository.Create(context, created); err != nil {
		return nil, fmt.Errorf("page_service_create_failed: %w", err)
	}

	return created, nil
}

// UpdateInput holds the mutable page fields. Nil means unchanged.
type UpdateInput struct {
	Title   *string
	Content *string
}

/*
Update applies partial changes to a page.

Description: Retitling regenerates the slug with the same collision handling
as creation.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string
  - input: UpdateInput

Returns:
  - *Page: Updated entity
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.Principal, id string, input UpdateInput) (*Page, error) {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return nil, err
	}

	found, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != found.Title {
		newSlug, err := service.uniqueSlug(context, *input.Title)
		if err != nil {
			return nil, err
		}
		found.Title = *input.Title
		found.Slug = newSlug
	}
	if input.Content != nil {
		found.Content = *input.Content
	}

	if err := service.repository.Update(context, found); err != nil {
		return nil, fmt.Errorf("page_service_update_failed: %w", err)
	}

	return found, nil
}

/*
Delete removes a page.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string

Returns:
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Principal, id string) error {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("page_service_delete_failed: %w", err)
	}

	return nil
}

// uniqueSlug derives a slug from the title, suffixing a counter on collision.
func (service *Service) uniqueSlug(context context.Context, title string) (string, error) {
	base := slug.From(title)
	candidate := base

	for attempt := 2; ; attempt++ {
		taken, err := service.repository.SlugExists(context, candidate)
		if err != nil {
			return "", fmt.Errorf("page_service_slug_check_failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}

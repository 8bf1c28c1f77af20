// Copyright (c) 2026 TimesNews Media. All rights reserved.

package category

import (
	"context"
	"fmt"

	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/slug"
	"github.com/timesnews/api/pkg/uuid"
)

// Service orchestrates business logic for editorial categories.
//
// Reads are public; every mutation requires the publish capability, so only
// admins and editors shape the section taxonomy.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns every category for navigation menus.
func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repository.List(context)
}

// GetBySlug resolves a single category for the public section page.
func (service *Service) GetBySlug(context context.Context, categorySlug string) (*Category, error) {
	return service.repository.FindBySlug(context, categorySlug)
}

// CreateInput holds the data for a new category.
type CreateInput struct {
	Name        string
	Description string
}

/*
Create adds a new editorial section.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - input: CreateInput

Returns:
  - *Category: Created entity
  - error: Forbidden, Conflict or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Principal, input CreateInput) (*Category, error) {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return nil, err
	}

	category := &Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
	}

	if err := service.repository.Create(context, category); err != nil {
		return nil, fmt.Errorf("category_service_create_failed: %w", err)
	}

	return category, nil
}

// UpdateInput holds the mutable category fields. Nil means unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
}

/*
Update applies partial changes to a category.

Description: Renaming regenerates the slug so section URLs always match the
current name.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string
  - input: UpdateInput

Returns:
  - *Category: Updated entity
  - error: Forbidden, NotFound, Conflict or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.Principal, id string, input UpdateInput) (*Category, error) {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return nil, err
	}

	category, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
		category.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := service.repository.Update(context, category); err != nil {
		return nil, fmt.Errorf("category_service_update_failed: %w", err)
	}

	return category, nil
}

/*
Delete archives a category.

Description: The row is kept so existing articles retain their section
reference; the category simply disappears from public listings.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string

Returns:
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Principal, id string) error {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return err
	}

	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repository.SetArchived(context, id, true); err != nil {
		return fmt.Errorf("category_service_delete_failed: %w", err)
	}

	return nil
}

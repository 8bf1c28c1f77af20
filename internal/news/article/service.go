// Copyright (c) 2026 TimesNews Media. All rights reserved.

package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/internal/platform/validate"
	"github.com/timesnews/api/pkg/pointer"
	"github.com/timesnews/api/pkg/slug"
	"github.com/timesnews/api/pkg/uuid"
)

// Service orchestrates the article lifecycle.
//
// # Access Rules
//
//   - Reading published articles is public.
//   - Any staff member may create drafts; moving an article to published
//     requires the publish capability.
//   - Authors may edit their own articles; publishing staff may edit any.
//   - Archiving (deletion) requires the publish capability even for the
//     author. A reporter can never remove their own published work.
type Service struct {
	repository Repository
	views      ViewCounter
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, views ViewCounter, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		views:      views,
		logger:     logger,
	}
}

// timeNow is swapped in tests.
var timeNow = time.Now

// # Public Reading

/*
ListPublished returns a page of published articles for the public site.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []*Article: Published articles, newest first
  - int: Total count
  - error: Storage failures
*/
func (service *Service) ListPublished(context context.Context, filter ListFilter) ([]*Article, int, error) {
	// The public listing never exposes drafts or archived pieces.
	filter.Status = StatusPublished
	filter.AuthorID = ""
	return service.repository.List(context, filter)
}

/*
GetPublished resolves a published article by slug and records the view.

Description: Drafts and archived articles are reported as NotFound so their
existence does not leak through the public surface. The view increment is
best effort; a Redis outage must not break reading.

Parameters:
  - context: context.Context
  - articleSlug: string

Returns:
  - *Article: Published article
  - error: NotFound or storage failures
*/
func (service *Service) GetPublished(context context.Context, articleSlug string) (*Article, error) {
	found, err := service.repository.FindBySlug(context, articleSlug)
	if err != nil {
		return nil, err
	}

	if found.Status != StatusPublished {
		return nil, apperr.NotFound("Article")
	}

	if err := service.views.Increment(context, found.ID); err != nil {
		service.logger.WarnContext(context, "article_view_increment_failed",
			slog.String("article_id", found.ID),
			slog.String("error", err.Error()),
		)
	}

	return found, nil
}

// # Staff Operations

// CreateInput holds the data for a new article.
type CreateInput struct {
	Title      string
	Summary    string
	Content    string
	CoverURL   string
	CategoryID string
	Status     Status
	IsFeatured bool
	Tags       []string
}

/*
Create drafts or publishes a new article authored by the actor.

Description: Every staff member may create drafts. Creating directly in the
published state additionally requires the publish capability, so a reporter's
work always passes through editorial review.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - input: CreateInput

Returns:
  - *Article: Created entity
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Principal, input CreateInput) (*Article, error) {

	// 1. Any staff member may draft.
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = StatusDraft
	}

	// 2. Publishing on create is an editorial decision.
	if status != StatusDraft {
		if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
			return nil, err
		}
	}

	articleSlug, err := service.uniqueSlug(context, input.Title)
	if err != nil {
		return nil, err
	}

	created := &Article{
		ID:         uuid.New(),
		Title:      input.Title,
		Slug:       articleSlug,
		Summary:    input.Summary,
		Content:    input.Content,
		CoverURL:   input.CoverURL,
		Status:     status,
		IsFeatured: input.IsFeatured,
		Tags:       normalizeTags(input.Tags),
		AuthorID:   actor.UserID,
		AuthorName: actor.FullName,
		CategoryID: input.CategoryID,
	}
	if status == StatusPublished {
		now := timeNow()
		created.PublishedAt = &now
	}

	if err := service.repository.Create(context, created); err != nil {
		return nil, fmt.Errorf("article_service_create_failed: %w", err)
	}

	return created, nil
}

// BulkError describes why one entry of a bulk upload was rejected.
type BulkError struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

// BulkResult summarizes a bulk upload.
type BulkResult struct {
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Errors     []BulkError `json:"errors"`
}

/*
BulkCreate ingests a batch of articles in a single call.

Description: Content migrations and wire imports arrive as batches. Every
entry is judged on its own: a rejected entry is recorded in the result and
never aborts the rest of the batch. The operation requires the publish
capability because imports routinely carry a published status.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - inputs: []CreateInput

Returns:
  - *BulkResult: Counts plus a per-entry error list
  - error: Unauthorized, Forbidden or batch-level failures
*/
func (service *Service) BulkCreate(context context.Context, actor *sec.Principal, inputs []CreateInput) (*BulkResult, error) {

	// 1. Bulk ingestion is an editorial tool.
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return nil, err
	}

	// 2. The batch itself has bounds; entries are judged one by one below.
	if len(inputs) == 0 {
		return nil, apperr.Unprocessable("Bulk upload requires at least one article")
	}
	if len(inputs) > MaxBulkArticles {
		return nil, apperr.Unprocessable(fmt.Sprintf("Bulk upload accepts at most %d articles per request", MaxBulkArticles))
	}

	result := &BulkResult{Errors: []BulkError{}}
	for _, input := range inputs {
		if err := validateBulkEntry(input); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{Title: input.Title, Error: err.Error()})
			continue
		}
		if _, err := service.Create(context, actor, input); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{Title: input.Title, Error: err.Error()})
			continue
		}
		result.Successful++
	}

	return result, nil
}

// validateBulkEntry applies the single-article creation rules to one batch
// entry. Archived is not a creatable state, bulk or not.
func validateBulkEntry(input CreateInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldContent, input.Content).
		MaxLen(FieldSummary, input.Summary, MaxSummaryLength).
		Range(FieldTags, len(input.Tags), 0, MaxTagCount)

	if input.Status != "" {
		_, known := ParseStatus(string(input.Status))
		validator.Custom(FieldStatus, !known || input.Status == StatusArchived, "Must be draft or published")
	}

	return validator.Err()
}

/*
ListStaff returns a page of articles for the staff dashboard.

Description: Publishing staff see the whole desk in any state. Reporters are
confined to their own articles; the author filter is forced server-side and
can not be widened from the request.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - filter: ListFilter

Returns:
  - []*Article: Matching articles
  - int: Total count
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) ListStaff(context context.Context, actor *sec.Principal, filter ListFilter) ([]*Article, int, error) {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, 0, err
	}

	if !actor.Role.Can(sec.CapabilityPublish) {
		filter.AuthorID = actor.UserID
	}

	return service.repository.List(context, filter)
}

/*
GetStaff resolves a single article for editing.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string

Returns:
  - *Article: Article in any state
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) GetStaff(context context.Context, actor *sec.Principal, id string) (*Article, error) {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, err
	}

	found, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorizeOwnerOr(actor, found.AuthorID, sec.CapabilityPublish); err != nil {
		return nil, err
	}

	return found, nil
}

// UpdateInput holds the mutable article fields. Nil means unchanged.
type UpdateInput struct {
	Title      *string
	Summary    *string
	Content    *string
	CoverURL   *string
	CategoryID *string
	Status     *Status
	IsFeatured *bool
	Tags       []string // Nil means unchanged; empty slice clears the tags.
}

/*
Update applies partial changes to an article.

Description: Content edits follow the owner-or-publisher rule. A status
change is always an editorial decision and requires the publish capability,
including for the author. Retitling regenerates the slug.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string
  - input: UpdateInput

Returns:
  - *Article: Updated entity
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.Principal, id string, input UpdateInput) (*Article, error) {
	found, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorizeOwnerOr(actor, found.AuthorID, sec.CapabilityPublish); err != nil {
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
	if input.Summary != nil {
		found.Summary = *input.Summary
	}
	if input.Content != nil {
		found.Content = *input.Content
	}
	if input.CoverURL != nil {
		found.CoverURL = *input.CoverURL
	}
	if input.CategoryID != nil {
		found.CategoryID = *input.CategoryID
	}
	if input.IsFeatured != nil {
		found.IsFeatured = *input.IsFeatured
	}
	if input.Tags != nil {
		found.Tags = normalizeTags(input.Tags)
	}

	if input.Status != nil && *input.Status != found.Status {
		if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
			return nil, err
		}
		found.Status = *input.Status
		switch *input.Status {
		case StatusPublished:
			if found.PublishedAt == nil {
				now := timeNow()
				found.PublishedAt = &now
			}
		case StatusDraft:
			found.PublishedAt = nil
		}
	}

	if err := service.repository.Update(context, found); err != nil {
		return nil, fmt.Errorf("article_service_update_failed: %w", err)
	}

	return found, nil
}

/*
Publish moves an article to the published state.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string

Returns:
  - *Article: Published entity
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Publish(context context.Context, actor *sec.Principal, id string) (*Article, error) {
	return service.Update(context, actor, id, UpdateInput{Status: pointer.To(StatusPublished)})
}

/*
Delete archives an article.

Description: Deletion is a soft archive and is capability-only. Ownership
grants no deletion right, so a reporter can not remove their own piece once
it is in the system.

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

	if _, err := service.repository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repository.SetStatus(context, id, StatusArchived); err != nil {
		return fmt.Errorf("article_service_delete_failed: %w", err)
	}

	return nil
}

// # Housekeeping

/*
FlushViews drains buffered view counts into persistent storage.

Description: Run periodically from a background ticker. A failure on one
article is logged and does not stop the rest of the batch; its count is
lost for that window, which is acceptable for a popularity signal.

Parameters:
  - context: context.Context

Returns:
  - error: Buffer drain failures
*/
func (service *Service) FlushViews(context context.Context) error {
	counts, err := service.views.Drain(context)
	if err != nil {
		return fmt.Errorf("article_service_flush_views_failed: %w", err)
	}

	for articleID, delta := range counts {
		if err := service.repository.AddViews(context, articleID, delta); err != nil {
			service.logger.WarnContext(context, "article_view_flush_failed",
				slog.String("article_id", articleID),
				slog.Int64("delta", delta),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// Count reports the number of published articles for the dashboard.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repository.Count(context)
}

// uniqueSlug derives a slug from the title, suffixing a counter on collision
// (base, base-2, base-3, ...).
func (service *Service) uniqueSlug(context context.Context, title string) (string, error) {
	base := slug.From(title)
	candidate := base

	for attempt := 2; ; attempt++ {
		taken, err := service.repository.SlugExists(context, candidate)
		if err != nil {
			return "", fmt.Errorf("article_service_slug_check_failed: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}

// normalizeTags lowercases and trims tags, dropping empties and duplicates.
// The result is never nil so the stored column is always a real array.
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}

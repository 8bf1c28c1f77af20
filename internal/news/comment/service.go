// Copyright (c) 2026 TimesNews Media. All rights reserved.

package comment

import (
	"context"
	"fmt"

	"github.com/timesnews/api/internal/news/article"
	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/pagination"
	"github.com/timesnews/api/pkg/uuid"
)

// ArticleSource resolves the article a comment attaches to.
type ArticleSource interface {
	FindByID(context context.Context, id string) (*article.Article, error)
}

// Service orchestrates business logic for comments.
type Service struct {
	repository Repository
	articles   ArticleSource
}

// NewService constructs a new [Service].
func NewService(repository Repository, articles ArticleSource) *Service {
	return &Service{repository: repository, articles: articles}
}

// ListByArticle returns a page of comments for the public article page.
func (service *Service) ListByArticle(context context.Context, articleID string, params pagination.Params) ([]*Comment, int, error) {
	return service.repository.ListByArticle(context, articleID, params)
}

/*
ListAll returns a page of comments across every article for moderation.

Description: Staff skim the newest comments portal-wide instead of opening
each article one by one. Each comment carries its article title.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - params: pagination.Params

Returns:
  - []*Comment: Newest comments across all articles
  - int: Total count
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) ListAll(context context.Context, actor *sec.Principal, params pagination.Params) ([]*Comment, int, error) {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, 0, err
	}
	return service.repository.List(context, params)
}

/*
Create posts a comment on a published article.

Description: Open to every signed-in, non-blocked account. Comments attach
only to published articles; drafts and archived pieces are reported as
NotFound so their existence does not leak.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - articleID: string
  - content: string

Returns:
  - *Comment: Created entity
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Principal, articleID string, content string) (*Comment, error) {

	// 1. Any signed-in account may comment.
	if err := sec.RequireActor(actor); err != nil {
		return nil, err
	}

	// 2. The target must be publicly visible.
	target, err := service.articles.FindByID(context, articleID)
	if err != nil {
		return nil, err
	}
	if target.Status != article.StatusPublished {
		return nil, apperr.NotFound("Article")
	}

	created := &Comment{
		ID:         uuid.New(),
		ArticleID:  articleID,
		AuthorID:   actor.UserID,
		AuthorName: actor.FullName,
		Content:    content,
	}

	if err := service.repository.Create(context, created); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	return created, nil
}

/*
Delete removes a comment.

Description: Follows the owner-or-publisher rule: authors may retract their
own comments, publishing staff may moderate any.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string

Returns:
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Principal, id string) error {
	found, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := sec.AuthorizeOwnerOr(actor, found.AuthorID, sec.CapabilityPublish); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}

	return nil
}

// Count reports the total number of comments for the dashboard.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repository.Count(context)
}

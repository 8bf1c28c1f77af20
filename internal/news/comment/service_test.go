// Copyright (c) 2026 TimesNews Media. All rights reserved.

package comment

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/news/article"
	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/pagination"
)

// # Test Doubles

type memoryRepository struct {
	comments map[string]*Comment
}

var _ Repository = (*memoryRepository)(nil)

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{comments: make(map[string]*Comment)}
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*Comment, error) {
	if found, ok := repo.comments[id]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (repo *memoryRepository) ListByArticle(_ context.Context, articleID string, _ pagination.Params) ([]*Comment, int, error) {
	var matched []*Comment
	for _, candidate := range repo.comments {
		if candidate.ArticleID == articleID {
			copied := *candidate
			matched = append(matched, &copied)
		}
	}
	return matched, len(matched), nil
}

func (repo *memoryRepository) List(_ context.Context, _ pagination.Params) ([]*Comment, int, error) {
	var matched []*Comment
	for _, candidate := range repo.comments {
		copied := *candidate
		copied.ArticleTitle = "Title of " + copied.ArticleID
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(left, right int) bool {
		return matched[left].CreatedAt.After(matched[right].CreatedAt)
	})
	return matched, len(matched), nil
}

func (repo *memoryRepository) Create(_ context.Context, created *Comment) error {
	repo.comments[created.ID] = created
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, id)
	return nil
}

func (repo *memoryRepository) Count(_ context.Context) (int, error) {
	return len(repo.comments), nil
}

// staticArticleSource serves a fixed article set.
type staticArticleSource struct {
	articles map[string]*article.Article
}

func (source *staticArticleSource) FindByID(_ context.Context, id string) (*article.Article, error) {
	if found, ok := source.articles[id]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("Article")
}

// # Test Helpers

func newTestService(t *testing.T) (*Service, *memoryRepository, *staticArticleSource) {
	t.Helper()
	repository := newMemoryRepository()
	articles := &staticArticleSource{articles: make(map[string]*article.Article)}
	return NewService(repository, articles), repository, articles
}

func principalWithRole(role sec.Role) *sec.Principal {
	return &sec.Principal{
		UserID:   "user-" + string(role),
		Username: string(role),
		FullName: "Test " + string(role),
		Role:     role,
	}
}

func requireStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an application error, got %v", err)
	assert.Equal(t, wantStatus, appError.HTTPStatus)
}

// # Posting

func TestCreate_ReaderCommentsOnPublished(t *testing.T) {
	service, repository, articles := newTestService(t)
	articles.articles["a1"] = &article.Article{ID: "a1", Status: article.StatusPublished}
	reader := principalWithRole(sec.RoleReader)

	created, err := service.Create(context.Background(), reader, "a1", "Great reporting.")

	require.NoError(t, err)
	assert.Equal(t, reader.UserID, created.AuthorID)
	assert.Equal(t, "a1", created.ArticleID)
	assert.Contains(t, repository.comments, created.ID)
}

func TestCreate_AnonymousUnauthorized(t *testing.T) {
	service, _, articles := newTestService(t)
	articles.articles["a1"] = &article.Article{ID: "a1", Status: article.StatusPublished}

	_, err := service.Create(context.Background(), nil, "a1", "Hello")

	requireStatus(t, err, 401)
}

func TestCreate_BlockedActorForbidden(t *testing.T) {
	service, _, articles := newTestService(t)
	articles.articles["a1"] = &article.Article{ID: "a1", Status: article.StatusPublished}
	blocked := principalWithRole(sec.RoleReader)
	blocked.IsBlocked = true

	_, err := service.Create(context.Background(), blocked, "a1", "Hello")

	requireStatus(t, err, 403)
}

func TestCreate_DraftArticleNotFound(t *testing.T) {
	service, _, articles := newTestService(t)
	articles.articles["a1"] = &article.Article{ID: "a1", Status: article.StatusDraft}

	_, err := service.Create(context.Background(), principalWithRole(sec.RoleReader), "a1", "Sneaky")

	requireStatus(t, err, 404)
}

func TestCreate_MissingArticleNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Create(context.Background(), principalWithRole(sec.RoleReader), "ghost", "Hello")

	requireStatus(t, err, 404)
}

// # Moderation

func TestDelete_AuthorRetractsOwn(t *testing.T) {
	service, repository, _ := newTestService(t)
	reader := principalWithRole(sec.RoleReader)
	repository.comments["c1"] = &Comment{ID: "c1", ArticleID: "a1", AuthorID: reader.UserID}

	require.NoError(t, service.Delete(context.Background(), reader, "c1"))

	assert.NotContains(t, repository.comments, "c1")
}

func TestDelete_OtherReaderForbidden(t *testing.T) {
	service, repository, _ := newTestService(t)
	repository.comments["c1"] = &Comment{ID: "c1", ArticleID: "a1", AuthorID: "somebody-else"}

	err := service.Delete(context.Background(), principalWithRole(sec.RoleReader), "c1")

	requireStatus(t, err, 403)
	assert.Contains(t, repository.comments, "c1")
}

func TestDelete_EditorModeratesAny(t *testing.T) {
	service, repository, _ := newTestService(t)
	repository.comments["c1"] = &Comment{ID: "c1", ArticleID: "a1", AuthorID: "somebody-else"}

	require.NoError(t, service.Delete(context.Background(), principalWithRole(sec.RoleEditor), "c1"))

	assert.NotContains(t, repository.comments, "c1")
}

func TestDelete_MissingCommentNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.Delete(context.Background(), principalWithRole(sec.RoleEditor), "ghost")

	requireStatus(t, err, 404)
}

// # Moderation List

func TestListAll_StaffSeesEveryArticle(t *testing.T) {
	service, repository, _ := newTestService(t)
	repository.comments["c1"] = &Comment{ID: "c1", ArticleID: "a1", AuthorID: "reader-1", Content: "First"}
	repository.comments["c2"] = &Comment{ID: "c2", ArticleID: "a2", AuthorID: "reader-2", Content: "Second"}

	comments, total, err := service.ListAll(context.Background(), principalWithRole(sec.RoleReporter), pagination.Params{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	for _, comment := range comments {
		assert.NotEmpty(t, comment.ArticleTitle)
	}
}

func TestListAll_ReaderForbidden(t *testing.T) {
	service, _, _ := newTestService(t)

	_, _, err := service.ListAll(context.Background(), principalWithRole(sec.RoleReader), pagination.Params{Page: 1, Limit: 10})

	requireStatus(t, err, 403)
}

func TestListAll_AnonymousUnauthorized(t *testing.T) {
	service, _, _ := newTestService(t)

	_, _, err := service.ListAll(context.Background(), nil, pagination.Params{Page: 1, Limit: 10})

	requireStatus(t, err, 401)
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package article

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
)

// # Test Doubles

// memoryRepository is a minimal in-memory Repository for tests.
type memoryRepository struct {
	articles map[string]*Article
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{articles: make(map[string]*Article)}
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*Article, error) {
	if found, ok := repo.articles[id]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, apperr.NotFound("Article")
}

func (repo *memoryRepository) FindBySlug(_ context.Context, slug string) (*Article, error) {
	for _, found := range repo.articles {
		if found.Slug == slug {
			copied := *found
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Article")
}

func (repo *memoryRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, found := range repo.articles {
		if found.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryRepository) Create(_ context.Context, created *Article) error {
	repo.articles[created.ID] = created
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, updated *Article) error {
	repo.articles[updated.ID] = updated
	return nil
}

func (repo *memoryRepository) SetStatus(_ context.Context, id string, status Status) error {
	repo.articles[id].Status = status
	return nil
}

func (repo *memoryRepository) List(_ context.Context, filter ListFilter) ([]*Article, int, error) {
	var matched []*Article
	for _, candidate := range repo.articles {
		if filter.Status != "" && candidate.Status != filter.Status {
			continue
		}
		if filter.AuthorID != "" && candidate.AuthorID != filter.AuthorID {
			continue
		}
		if filter.CategoryID != "" && candidate.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(candidate.Title, filter.Search) {
			continue
		}
		if filter.FeaturedOnly && !candidate.IsFeatured {
			continue
		}
		copied := *candidate
		matched = append(matched, &copied)
	}
	return matched, len(matched), nil
}

func (repo *memoryRepository) AddViews(_ context.Context, id string, delta int64) error {
	repo.articles[id].ViewCount += delta
	return nil
}

func (repo *memoryRepository) Count(_ context.Context) (int, error) {
	count := 0
	for _, candidate := range repo.articles {
		if candidate.Status == StatusPublished {
			count++
		}
	}
	return count, nil
}

// memoryViewCounter buffers counts in a plain map.
type memoryViewCounter struct {
	counts map[string]int64
}

func newMemoryViewCounter() *memoryViewCounter {
	return &memoryViewCounter{counts: make(map[string]int64)}
}

func (counter *memoryViewCounter) Increment(_ context.Context, articleID string) error {
	counter.counts[articleID]++
	return nil
}

func (counter *memoryViewCounter) Drain(_ context.Context) (map[string]int64, error) {
	drained := counter.counts
	counter.counts = make(map[string]int64)
	return drained, nil
}

// # Test Helpers

func newTestService(t *testing.T) (*Service, *memoryRepository, *memoryViewCounter) {
	t.Helper()
	repository := newMemoryRepository()
	views := newMemoryViewCounter()
	return NewService(repository, views, slog.Default()), repository, views
}

func principalWithRole(role sec.Role) *sec.Principal {
	return &sec.Principal{
		UserID:   "user-" + string(role),
		Username: string(role),
		FullName: "Test " + string(role),
		Role:     role,
	}
}

func seedArticle(repository *memoryRepository, id, authorID string, status Status) *Article {
	seeded := &Article{
		ID:       id,
		Title:    "Seeded " + id,
		Slug:     "seeded-" + id,
		Content:  "Body of " + id,
		Status:   status,
		AuthorID: authorID,
	}
	if status == StatusPublished {
		now := time.Now()
		seeded.PublishedAt = &now
	}
	repository.articles[id] = seeded
	return seeded
}

func requireStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an application error, got %v", err)
	assert.Equal(t, wantStatus, appError.HTTPStatus)
}

// # Creation

func TestCreate_ReporterDraft(t *testing.T) {
	service, repository, _ := newTestService(t)
	reporter := principalWithRole(sec.RoleReporter)

	created, err := service.Create(context.Background(), reporter, CreateInput{
		Title:   "City Council Vote",
		Content: "The council voted on Tuesday.",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Equal(t, reporter.UserID, created.AuthorID)
	assert.Equal(t, "city-council-vote", created.Slug)
	assert.Nil(t, created.PublishedAt)
	assert.Contains(t, repository.articles, created.ID)
}

func TestCreate_ReporterCanNotPublish(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Create(context.Background(), principalWithRole(sec.RoleReporter), CreateInput{
		Title:   "Breaking",
		Content: "Body",
		Status:  StatusPublished,
	})

	requireStatus(t, err, 403)
}

func TestCreate_EditorPublishesDirectly(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(context.Background(), principalWithRole(sec.RoleEditor), CreateInput{
		Title:   "Breaking",
		Content: "Body",
		Status:  StatusPublished,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPublished, created.Status)
	require.NotNil(t, created.PublishedAt)
}

func TestCreate_ReaderForbidden(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Create(context.Background(), principalWithRole(sec.RoleReader), CreateInput{
		Title:   "Letter to the Editor",
		Content: "Body",
	})

	requireStatus(t, err, 403)
}

func TestCreate_AnonymousUnauthorized(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Create(context.Background(), nil, CreateInput{Title: "X", Content: "Y"})

	requireStatus(t, err, 401)
}

func TestCreate_SlugCollisionGetsSuffix(t *testing.T) {
	service, _, _ := newTestService(t)
	editor := principalWithRole(sec.RoleEditor)

	first, err := service.Create(context.Background(), editor, CreateInput{Title: "Election Night", Content: "A"})
	require.NoError(t, err)
	second, err := service.Create(context.Background(), editor, CreateInput{Title: "Election Night", Content: "B"})
	require.NoError(t, err)
	third, err := service.Create(context.Background(), editor, CreateInput{Title: "Election Night", Content: "C"})
	require.NoError(t, err)

	assert.Equal(t, "election-night", first.Slug)
	assert.Equal(t, "election-night-2", second.Slug)
	assert.Equal(t, "election-night-3", third.Slug)
}

func TestCreate_NormalizesTags(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(context.Background(), principalWithRole(sec.RoleReporter), CreateInput{
		Title:   "Transit Strike",
		Content: "Body",
		Tags:    []string{" Transit ", "strike", "TRANSIT", "", "labor"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"transit", "strike", "labor"}, created.Tags)
}

func TestCreate_NoTagsStoresEmptySlice(t *testing.T) {
	service, _, _ := newTestService(t)

	created, err := service.Create(context.Background(), principalWithRole(sec.RoleReporter), CreateInput{
		Title:   "Untagged",
		Content: "Body",
	})

	require.NoError(t, err)
	require.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)
}

// # Bulk Upload

func TestBulkCreate_MixedBatchReportsPerEntry(t *testing.T) {
	service, repository, _ := newTestService(t)

	result, err := service.BulkCreate(context.Background(), principalWithRole(sec.RoleEditor), []CreateInput{
		{Title: "Harbor Expansion", Content: "Body", Status: StatusPublished},
		{Title: "Missing Body"},
		{Title: "Budget Season", Content: "Body", Tags: []string{"budget"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Missing Body", result.Errors[0].Title)
	assert.Len(t, repository.articles, 2)
}

func TestBulkCreate_ReporterForbidden(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.BulkCreate(context.Background(), principalWithRole(sec.RoleReporter), []CreateInput{
		{Title: "Draft Import", Content: "Body"},
	})

	requireStatus(t, err, 403)
}

func TestBulkCreate_EmptyBatchRejected(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.BulkCreate(context.Background(), principalWithRole(sec.RoleEditor), nil)

	requireStatus(t, err, 422)
}

func TestBulkCreate_OversizedBatchRejected(t *testing.T) {
	service, _, _ := newTestService(t)

	inputs := make([]CreateInput, MaxBulkArticles+1)
	for index := range inputs {
		inputs[index] = CreateInput{Title: "Filler", Content: "Body"}
	}

	_, err := service.BulkCreate(context.Background(), principalWithRole(sec.RoleEditor), inputs)

	requireStatus(t, err, 422)
}

func TestBulkCreate_ArchivedStatusRejectedPerEntry(t *testing.T) {
	service, _, _ := newTestService(t)

	result, err := service.BulkCreate(context.Background(), principalWithRole(sec.RoleEditor), []CreateInput{
		{Title: "Old Piece", Content: "Body", Status: StatusArchived},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 1, result.Failed)
}

// # Public Reading

func TestGetPublished_DraftHidden(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusDraft)

	_, err := service.GetPublished(context.Background(), "seeded-a1")

	requireStatus(t, err, 404)
}

func TestGetPublished_ArchivedHidden(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusArchived)

	_, err := service.GetPublished(context.Background(), "seeded-a1")

	requireStatus(t, err, 404)
}

func TestGetPublished_CountsView(t *testing.T) {
	service, repository, views := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusPublished)

	found, err := service.GetPublished(context.Background(), "seeded-a1")
	require.NoError(t, err)
	_, err = service.GetPublished(context.Background(), "seeded-a1")
	require.NoError(t, err)

	assert.Equal(t, "a1", found.ID)
	assert.Equal(t, int64(2), views.counts["a1"])
}

func TestListPublished_ExcludesDrafts(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusPublished)
	seedArticle(repository, "a2", "reporter-1", StatusDraft)
	seedArticle(repository, "a3", "reporter-1", StatusArchived)

	articles, total, err := service.ListPublished(context.Background(), ListFilter{})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "a1", articles[0].ID)
}

func TestListPublished_FeaturedFilter(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusPublished)
	highlighted := seedArticle(repository, "a2", "reporter-1", StatusPublished)
	highlighted.IsFeatured = true

	articles, total, err := service.ListPublished(context.Background(), ListFilter{FeaturedOnly: true})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "a2", articles[0].ID)
}

// # Staff Listing

func TestListStaff_ReporterSeesOnlyOwn(t *testing.T) {
	service, repository, _ := newTestService(t)
	reporter := principalWithRole(sec.RoleReporter)
	seedArticle(repository, "mine", reporter.UserID, StatusDraft)
	seedArticle(repository, "theirs", "other-reporter", StatusDraft)

	articles, total, err := service.ListStaff(context.Background(), reporter, ListFilter{})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "mine", articles[0].ID)
}

func TestListStaff_ReporterAuthorFilterForced(t *testing.T) {
	service, repository, _ := newTestService(t)
	reporter := principalWithRole(sec.RoleReporter)
	seedArticle(repository, "theirs", "other-reporter", StatusDraft)

	// The reporter asks for somebody else's desk; the filter is overridden.
	articles, _, err := service.ListStaff(context.Background(), reporter, ListFilter{AuthorID: "other-reporter"})

	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestListStaff_EditorSeesAll(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusDraft)
	seedArticle(repository, "a2", "reporter-2", StatusPublished)

	_, total, err := service.ListStaff(context.Background(), principalWithRole(sec.RoleEditor), ListFilter{})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestListStaff_ReaderForbidden(t *testing.T) {
	service, _, _ := newTestService(t)

	_, _, err := service.ListStaff(context.Background(), principalWithRole(sec.RoleReader), ListFilter{})

	requireStatus(t, err, 403)
}

// # Editing

func TestUpdate_OwnerEditsOwnDraft(t *testing.T) {
	service, repository, _ := newTestService(t)
	reporter := principalWithRole(sec.RoleReporter)
	seedArticle(repository, "a1", reporter.UserID, StatusDraft)

	newContent := "Revised body"
	updated, err := service.Update(context.Background(), reporter, "a1", UpdateInput{Content: &newContent})

	require.NoError(t, err)
	assert.Equal(t, "Revised body", updated.Content)
}

func TestUpdate_FeatureFlagAndTags(t *testing.T) {
	service, repository, _ := newTestService(t)
	seeded := seedArticle(repository, "a1", "reporter-1", StatusPublished)
	seeded.Tags = []string{"old"}

	featured := true
	updated, err := service.Update(context.Background(), principalWithRole(sec.RoleEditor), "a1", UpdateInput{
		IsFeatured: &featured,
		Tags:       []string{" Election ", "election", "Results"},
	})

	require.NoError(t, err)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, []string{"election", "results"}, updated.Tags)
}

func TestUpdate_NilTagsLeaveTagsUnchanged(t *testing.T) {
	service, repository, _ := newTestService(t)
	seeded := seedArticle(repository, "a1", "reporter-1", StatusPublished)
	seeded.Tags = []string{"economy"}

	newTitle := "Retitled"
	updated, err := service.Update(context.Background(), principalWithRole(sec.RoleEditor), "a1", UpdateInput{Title: &newTitle})

	require.NoError(t, err)
	assert.Equal(t, []string{"economy"}, updated.Tags)
}

func TestUpdate_OtherReporterForbidden(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "other-reporter", StatusDraft)

	newContent := "Hijacked"
	_, err := service.Update(context.Background(), principalWithRole(sec.RoleReporter), "a1", UpdateInput{Content: &newContent})

	requireStatus(t, err, 403)
}

func TestUpdate_EditorEditsAnyArticle(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusDraft)

	newTitle := "Sharper Headline"
	updated, err := service.Update(context.Background(), principalWithRole(sec.RoleEditor), "a1", UpdateInput{Title: &newTitle})

	require.NoError(t, err)
	assert.Equal(t, "Sharper Headline", updated.Title)
	assert.Equal(t, "sharper-headline", updated.Slug)
}

func TestUpdate_OwnerCanNotChangeStatus(t *testing.T) {
	service, repository, _ := newTestService(t)
	reporter := principalWithRole(sec.RoleReporter)
	seedArticle(repository, "a1", reporter.UserID, StatusDraft)

	status := StatusPublished
	_, err := service.Update(context.Background(), reporter, "a1", UpdateInput{Status: &status})

	requireStatus(t, err, 403)
}

func TestPublish_EditorSetsPublishedAt(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusDraft)

	published, err := service.Publish(context.Background(), principalWithRole(sec.RoleEditor), "a1")

	require.NoError(t, err)
	assert.Equal(t, StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
}

func TestUpdate_UnpublishClearsPublishedAt(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusPublished)

	status := StatusDraft
	updated, err := service.Update(context.Background(), principalWithRole(sec.RoleAdmin), "a1", UpdateInput{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, StatusDraft, updated.Status)
	assert.Nil(t, updated.PublishedAt)
}

// # Archiving

func TestDelete_ReporterCanNotDeleteOwn(t *testing.T) {
	service, repository, _ := newTestService(t)
	reporter := principalWithRole(sec.RoleReporter)
	seedArticle(repository, "a1", reporter.UserID, StatusDraft)

	err := service.Delete(context.Background(), reporter, "a1")

	requireStatus(t, err, 403)
	assert.Equal(t, StatusDraft, repository.articles["a1"].Status)
}

func TestDelete_EditorArchives(t *testing.T) {
	service, repository, _ := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusPublished)

	err := service.Delete(context.Background(), principalWithRole(sec.RoleEditor), "a1")

	require.NoError(t, err)
	assert.Equal(t, StatusArchived, repository.articles["a1"].Status)
}

func TestDelete_MissingArticleNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.Delete(context.Background(), principalWithRole(sec.RoleEditor), "ghost")

	requireStatus(t, err, 404)
}

// # View Flushing

func TestFlushViews_DrainsIntoRepository(t *testing.T) {
	service, repository, views := newTestService(t)
	seedArticle(repository, "a1", "reporter-1", StatusPublished)
	views.counts["a1"] = 5

	require.NoError(t, service.FlushViews(context.Background()))

	assert.Equal(t, int64(5), repository.articles["a1"].ViewCount)
	assert.Empty(t, views.counts)
}

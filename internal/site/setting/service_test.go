// Copyright (c) 2026 TimesNews Media. All rights reserved.

package setting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
)

// # Test Doubles

type memoryRepository struct {
	settings map[string]*Setting
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{settings: make(map[string]*Setting)}
}

func (repo *memoryRepository) List(_ context.Context) ([]*Setting, error) {
	var all []*Setting
	for _, found := range repo.settings {
		copied := *found
		all = append(all, &copied)
	}
	return all, nil
}

func (repo *memoryRepository) Upsert(_ context.Context, stored *Setting) error {
	stored.UpdatedAt = time.Now()
	repo.settings[stored.Key] = stored
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, key string) error {
	if _, ok := repo.settings[key]; !ok {
		return apperr.NotFound("Setting")
	}
	delete(repo.settings, key)
	return nil
}

// # Test Helpers

func newTestService(t *testing.T) (*Service, *memoryRepository) {
	t.Helper()
	repository := newMemoryRepository()
	return NewService(repository), repository
}

func principalWithRole(role sec.Role) *sec.Principal {
	return &sec.Principal{UserID: "user-" + string(role), Role: role}
}

func requireStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an application error, got %v", err)
	assert.Equal(t, wantStatus, appError.HTTPStatus)
}

// # Tests

func TestSet_AdminUpsertsValue(t *testing.T) {
	service, repository := newTestService(t)
	admin := principalWithRole(sec.RoleAdmin)

	_, err := service.Set(context.Background(), admin, "site-name", "TimesNews")
	require.NoError(t, err)
	stored, err := service.Set(context.Background(), admin, "site-name", "TimesNews Daily")
	require.NoError(t, err)

	assert.Equal(t, "TimesNews Daily", stored.Value)
	assert.Len(t, repository.settings, 1)
}

func TestSet_EditorForbidden(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Set(context.Background(), principalWithRole(sec.RoleEditor), "site-name", "Hacked")

	requireStatus(t, err, 403)
}

func TestGetAll_FlattensToMap(t *testing.T) {
	service, repository := newTestService(t)
	repository.settings["site-name"] = &Setting{Key: "site-name", Value: "TimesNews"}
	repository.settings["footer-text"] = &Setting{Key: "footer-text", Value: "All rights reserved."}

	flattened, err := service.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"site-name":   "TimesNews",
		"footer-text": "All rights reserved.",
	}, flattened)
}

func TestDelete_AdminRemovesKey(t *testing.T) {
	service, repository := newTestService(t)
	repository.settings["stale"] = &Setting{Key: "stale", Value: "x"}

	require.NoError(t, service.Delete(context.Background(), principalWithRole(sec.RoleAdmin), "stale"))

	assert.NotContains(t, repository.settings, "stale")
}

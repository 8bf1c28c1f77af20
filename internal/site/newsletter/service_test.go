// Copyright (c) 2026 TimesNews Media. All rights reserved.

package newsletter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/pagination"
)

// # Test Doubles

type memoryRepository struct {
	subscriptions map[string]*Subscription
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{subscriptions: make(map[string]*Subscription)}
}

func (repo *memoryRepository) FindByEmail(_ context.Context, email string) (*Subscription, error) {
	if found, ok := repo.subscriptions[email]; ok {
		copied := *found
		return &copied, nil
	}
	return nil, apperr.NotFound("Subscription")
}

func (repo *memoryRepository) List(_ context.Context, _ pagination.Params) ([]*Subscription, int, error) {
	var active []*Subscription
	for _, candidate := range repo.subscriptions {
		if candidate.IsActive {
			copied := *candidate
			active = append(active, &copied)
		}
	}
	return active, len(active), nil
}

func (repo *memoryRepository) Create(_ context.Context, created *Subscription) error {
	repo.subscriptions[created.Email] = created
	return nil
}

func (repo *memoryRepository) SetActive(_ context.Context, email string, active bool) error {
	found, ok := repo.subscriptions[email]
	if !ok {
		return apperr.NotFound("Subscription")
	}
	found.IsActive = active
	return nil
}

func (repo *memoryRepository) Count(_ context.Context) (int, error) {
	active := 0
	for _, candidate := range repo.subscriptions {
		if candidate.IsActive {
			active++
		}
	}
	return active, nil
}

// # Test Helpers

func newTestService(t *testing.T) (*Service, *memoryRepository) {
	t.Helper()
	repository := newMemoryRepository()
	return NewService(repository), repository
}

func requireStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an application error, got %v", err)
	assert.Equal(t, wantStatus, appError.HTTPStatus)
}

// # Tests

func TestSubscribe_NewAddress(t *testing.T) {
	service, repository := newTestService(t)

	subscription, err := service.Subscribe(context.Background(), "reader@example.com")

	require.NoError(t, err)
	assert.True(t, subscription.IsActive)
	assert.Contains(t, repository.subscriptions, "reader@example.com")
}

func TestSubscribe_NormalizesAddress(t *testing.T) {
	service, repository := newTestService(t)

	_, err := service.Subscribe(context.Background(), "  Reader@Example.COM ")

	require.NoError(t, err)
	assert.Contains(t, repository.subscriptions, "reader@example.com")
}

func TestSubscribe_ActiveAddressConflict(t *testing.T) {
	service, repository := newTestService(t)
	repository.subscriptions["reader@example.com"] = &Subscription{
		ID: "s1", Email: "reader@example.com", IsActive: true,
	}

	_, err := service.Subscribe(context.Background(), "reader@example.com")

	requireStatus(t, err, 409)
}

func TestSubscribe_ReactivatesUnsubscribed(t *testing.T) {
	service, repository := newTestService(t)
	repository.subscriptions["reader@example.com"] = &Subscription{
		ID: "s1", Email: "reader@example.com", IsActive: false,
	}

	subscription, err := service.Subscribe(context.Background(), "reader@example.com")

	require.NoError(t, err)
	assert.Equal(t, "s1", subscription.ID)
	assert.True(t, repository.subscriptions["reader@example.com"].IsActive)
}

func TestUnsubscribe_DeactivatesAddress(t *testing.T) {
	service, repository := newTestService(t)
	repository.subscriptions["reader@example.com"] = &Subscription{
		ID: "s1", Email: "reader@example.com", IsActive: true,
	}

	require.NoError(t, service.Unsubscribe(context.Background(), "reader@example.com"))

	assert.False(t, repository.subscriptions["reader@example.com"].IsActive)
}

func TestUnsubscribe_UnknownAddressSucceeds(t *testing.T) {
	service, _ := newTestService(t)

	require.NoError(t, service.Unsubscribe(context.Background(), "ghost@example.com"))
}

func TestList_StaffOnly(t *testing.T) {
	service, repository := newTestService(t)
	repository.subscriptions["reader@example.com"] = &Subscription{
		ID: "s1", Email: "reader@example.com", IsActive: true,
	}

	_, _, err := service.List(context.Background(), &sec.Principal{UserID: "u1", Role: sec.RoleReader}, pagination.Params{})
	requireStatus(t, err, 403)

	subscriptions, total, err := service.List(context.Background(), &sec.Principal{UserID: "u2", Role: sec.RoleEditor}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, subscriptions, 1)
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package newsletter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/pagination"
	"github.com/timesnews/api/pkg/uuid"
)

// Service orchestrates business logic for newsletter subscriptions.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Subscribe signs an address up for the newsletter.

Description: Addresses are normalized to lower case before lookup. A
returning address that previously unsubscribed is reactivated in place; an
address that is already active gets Conflict.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Subscription: Active subscription
  - error: Conflict or storage failures
*/
func (service *Service) Subscribe(context context.Context, email string) (*Subscription, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	existing, err := service.repository.FindByEmail(context, normalized)
	if err != nil {
		if appError := apperr.As(err); appError == nil || appError.HTTPStatus != http.StatusNotFound {
			return nil, err
		}

		created := &Subscription{
			ID:       uuid.New(),
			Email:    normalized,
			IsActive: true,
		}
		if err := service.repository.Create(context, created); err != nil {
			return nil, fmt.Errorf("newsletter_service_subscribe_failed: %w", err)
		}
		return created, nil
	}

	if existing.IsActive {
		return nil, apperr.Conflict("This address is already subscribed")
	}

	if err := service.repository.SetActive(context, normalized, true); err != nil {
		return nil, fmt.Errorf("newsletter_service_resubscribe_failed: %w", err)
	}
	existing.IsActive = true

	return existing, nil
}

/*
Unsubscribe removes an address from the newsletter.

Description: Idempotent from the subscriber's point of view: unsubscribing
an unknown address still succeeds so a stale link never shows an error.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Storage failures
*/
func (service *Service) Unsubscribe(context context.Context, email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))

	if err := service.repository.SetActive(context, normalized, false); err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("newsletter_service_unsubscribe_failed: %w", err)
	}

	return nil
}

/*
List returns a page of active subscriptions for the staff dashboard.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - params: pagination.Params

Returns:
  - []*Subscription: Active subscriptions, newest first
  - int: Total count
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) List(context context.Context, actor *sec.Principal, params pagination.Params) ([]*Subscription, int, error) {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, 0, err
	}
	return service.repository.List(context, params)
}

// Count reports the number of active subscriptions for the dashboard.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repository.Count(context)
}

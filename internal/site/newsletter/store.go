// Copyright (c) 2026 TimesNews Media. All rights reserved.

package newsletter

import (
	"context"

	"github.com/timesnews/api/pkg/pagination"
)

// Repository defines the data access contract for subscriptions.
type Repository interface {

	/*
		FindByEmail returns the subscription for an address.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Subscription: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Subscription, error)

	/*
		List returns a page of active subscriptions, newest first.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*Subscription: Active subscriptions
		  - int: Total count across all pages
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]*Subscription, int, error)

	/*
		Create persists a new subscription.

		Parameters:
		  - context: context.Context
		  - subscription: *Subscription

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, subscription *Subscription) error

	/*
		SetActive activates or deactivates a subscription by email.

		Parameters:
		  - context: context.Context
		  - email: string
		  - active: bool

		Returns:
		  - error: Persistence failures
	*/
	SetActive(context context.Context, email string, active bool) error

	/*
		Count returns the number of active subscriptions.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Active subscription count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

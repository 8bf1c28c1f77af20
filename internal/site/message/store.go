// Copyright (c) 2026 TimesNews Media. All rights reserved.

package message

import (
	"context"

	"github.com/timesnews/api/pkg/pagination"
)

// Repository defines the data access contract for contact messages.
type Repository interface {

	/*
		FindByID returns the message with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Message: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Message, error)

	/*
		List returns a page of messages, newest first.

		Parameters:
		  - context: context.Context
		  - unreadOnly: bool
		  - params: pagination.Params

		Returns:
		  - []*Message: Matching messages
		  - int: Total count across all pages
		  - error: Database retrieval failures
	*/
	List(context context.Context, unreadOnly bool, params pagination.Params) ([]*Message, int, error)

	/*
		Create persists a new message.

		Parameters:
		  - context: context.Context
		  - message: *Message

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, message *Message) error

	/*
		SetRead marks a message read or unread.

		Parameters:
		  - context: context.Context
		  - id: string
		  - read: bool

		Returns:
		  - error: Persistence failures
	*/
	SetRead(context context.Context, id string, read bool) error

	/*
		Delete removes a message.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		Count returns the number of unread messages.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Unread message count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

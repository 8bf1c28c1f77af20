// Copyright (c) 2026 TimesNews Media. All rights reserved.

package poll

import "context"

// Repository defines the data access contract for polls.
type Repository interface {

	/*
		FindByID returns the poll with its options.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Poll: Hydrated entity with options in position order
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Poll, error)

	/*
		ListActive returns every open poll, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Poll: Active polls with options
		  - error: Database retrieval failures
	*/
	ListActive(context context.Context) ([]*Poll, error)

	/*
		ListAll returns every poll regardless of state, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Poll: All polls with options
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context) ([]*Poll, error)

	/*
		Create persists a poll together with its options.

		Parameters:
		  - context: context.Context
		  - poll: *Poll

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, poll *Poll) error

	/*
		SetActive opens or closes a poll.

		Parameters:
		  - context: context.Context
		  - id: string
		  - active: bool

		Returns:
		  - error: Persistence failures
	*/
	SetActive(context context.Context, id string, active bool) error

	/*
		IncrementVote adds one vote to an option of the poll.

		Description: The option must belong to the poll; a mismatched pair
		affects no rows.

		Parameters:
		  - context: context.Context
		  - pollID: string
		  - optionID: string

		Returns:
		  - bool: Whether a vote was recorded
		  - error: Persistence failures
	*/
	IncrementVote(context context.Context, pollID, optionID string) (bool, error)

	/*
		Delete removes a poll and its options.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}

// VoterRegistry enforces one vote per client per poll.
//
// Keys are volatile by design: losing the registry on a Redis restart allows
// some double votes, which is acceptable for an engagement feature.
type VoterRegistry interface {

	/*
		Register records a voter for a poll.

		Parameters:
		  - context: context.Context
		  - pollID: string
		  - voterKey: string

		Returns:
		  - bool: True if this is the voter's first vote in the poll
		  - error: Registry failures
	*/
	Register(context context.Context, pollID, voterKey string) (bool, error)
}

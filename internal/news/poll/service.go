// Copyright (c) 2026 TimesNews Media. All rights reserved.

package poll

import (
	"context"
	"fmt"
	"math"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/uuid"
)

// Service orchestrates business logic for opinion polls.
type Service struct {
	repository Repository
	voters     VoterRegistry
}

// NewService constructs a new [Service].
func NewService(repository Repository, voters VoterRegistry) *Service {
	return &Service{repository: repository, voters: voters}
}

// ListActive returns every open poll for the public site.
func (service *Service) ListActive(context context.Context) ([]*Poll, error) {
	return service.repository.ListActive(context)
}

/*
ListAll returns every poll for the staff dashboard.

Parameters:
  - context: context.Context
  - actor: *sec.Principal

Returns:
  - []*Poll: All polls, newest first
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) ListAll(context context.Context, actor *sec.Principal) ([]*Poll, error) {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, err
	}
	return service.repository.ListAll(context)
}

// CreateInput holds the data for a new poll.
type CreateInput struct {
	Question string
	Options  []string
}

/*
Create opens a new poll.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - input: CreateInput

Returns:
  - *Poll: Created entity, active with zeroed counts
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) Create(context context.Context, actor *sec.Principal, input CreateInput) (*Poll, error) {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return nil, err
	}

	created := &Poll{
		ID:       uuid.New(),
		Question: input.Question,
		IsActive: true,
		Options:  make([]*Option, 0, len(input.Options)),
	}
	for position, label := range input.Options {
		created.Options = append(created.Options, &Option{
			ID:       uuid.New(),
			Label:    label,
			Position: position,
		})
	}

	if err := service.repository.Create(context, created); err != nil {
		return nil, fmt.Errorf("poll_service_create_failed: %w", err)
	}

	return created, nil
}

/*
Vote records one vote for an option.

Description: Voting is open to anonymous visitors, so deduplication keys on
the client address rather than an account. The option-poll pairing is
validated before the registry is consulted, so a rejected attempt never
burns the client's single vote; a duplicate voter is rejected with Conflict
and the tallies stay untouched.

Parameters:
  - context: context.Context
  - pollID: string
  - optionID: string
  - voterKey: string

Returns:
  - *Results: Tally after the vote
  - error: NotFound, Unprocessable, Conflict or storage failures
*/
func (service *Service) Vote(context context.Context, pollID, optionID, voterKey string) (*Results, error) {

	// 1. The poll must exist and be open.
	found, err := service.repository.FindByID(context, pollID)
	if err != nil {
		return nil, err
	}
	if !found.IsActive {
		return nil, apperr.Unprocessable("This poll is closed")
	}

	// 2. The option must belong to this poll. Checked before the voter is
	// registered so a bad option never consumes the client's single vote.
	if !found.HasOption(optionID) {
		return nil, apperr.Unprocessable("Option does not belong to this poll")
	}

	// 3. One vote per client address.
	first, err := service.voters.Register(context, pollID, voterKey)
	if err != nil {
		return nil, fmt.Errorf("poll_service_vote_register_failed: %w", err)
	}
	if !first {
		return nil, apperr.Conflict("You have already voted in this poll")
	}

	// 4. Count the vote. The WHERE clause re-guards the pairing against a
	// concurrent option removal.
	counted, err := service.repository.IncrementVote(context, pollID, optionID)
	if err != nil {
		return nil, fmt.Errorf("poll_service_vote_failed: %w", err)
	}
	if !counted {
		return nil, apperr.Unprocessable("Option does not belong to this poll")
	}

	return service.GetResults(context, pollID)
}

/*
GetResults tallies a poll into per-option percentages.

Parameters:
  - context: context.Context
  - pollID: string

Returns:
  - *Results: Options with vote counts and rounded percentages
  - error: NotFound or storage failures
*/
func (service *Service) GetResults(context context.Context, pollID string) (*Results, error) {
	found, err := service.repository.FindByID(context, pollID)
	if err != nil {
		return nil, err
	}

	total := found.TotalVotes()
	results := &Results{
		PollID:     found.ID,
		Question:   found.Question,
		IsActive:   found.IsActive,
		TotalVotes: total,
		Options:    make([]OptionResult, 0, len(found.Options)),
	}

	for _, option := range found.Options {
		percentage := 0.0
		if total > 0 {
			percentage = math.Round(float64(option.Votes)/float64(total)*1000) / 10
		}
		results.Options = append(results.Options, OptionResult{
			ID:         option.ID,
			Label:      option.Label,
			Votes:      option.Votes,
			Percentage: percentage,
		})
	}

	return results, nil
}

/*
Close ends voting on a poll. Results stay readable.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - pollID: string

Returns:
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Close(context context.Context, actor *sec.Principal, pollID string) error {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return err
	}

	if err := service.repository.SetActive(context, pollID, false); err != nil {
		return fmt.Errorf("poll_service_close_failed: %w", err)
	}

	return nil
}

/*
Delete removes a poll and its votes.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - pollID: string

Returns:
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Principal, pollID string) error {
	if err := sec.Authorize(actor, sec.CapabilityPublish); err != nil {
		return err
	}

	if err := service.repository.Delete(context, pollID); err != nil {
		return fmt.Errorf("poll_service_delete_failed: %w", err)
	}

	return nil
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package message

import (
	"context"
	"fmt"

	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/pagination"
	"github.com/timesnews/api/pkg/uuid"
)

// Service orchestrates business logic for contact messages.
//
// Submission is public and anonymous. The inbox is staff-only so any desk
// member can triage reader mail.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds one contact form submission.
type CreateInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

/*
Create records a contact form submission.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Message: Stored message, unread
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Message, error) {
	created := &Message{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	}

	if err := service.repository.Create(context, created); err != nil {
		return nil, fmt.Errorf("message_service_create_failed: %w", err)
	}

	return created, nil
}

/*
List returns a page of messages for the staff inbox.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - unreadOnly: bool
  - params: pagination.Params

Returns:
  - []*Message: Matching messages, newest first
  - int: Total count
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) List(context context.Context, actor *sec.Principal, unreadOnly bool, params pagination.Params) ([]*Message, int, error) {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, 0, err
	}
	return service.repository.List(context, unreadOnly, params)
}

/*
SetRead marks a message read or unread.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string
  - read: bool

Returns:
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) SetRead(context context.Context, actor *sec.Principal, id string, read bool) error {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return err
	}

	if err := service.repository.SetRead(context, id, read); err != nil {
		return fmt.Errorf("message_service_set_read_failed: %w", err)
	}

	return nil
}

/*
Delete removes a message from the inbox.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: string

Returns:
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Principal, id string) error {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("message_service_delete_failed: %w", err)
	}

	return nil
}

// Count reports the number of unread messages for the dashboard.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repository.Count(context)
}

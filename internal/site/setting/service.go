// Copyright (c) 2026 TimesNews Media. All rights reserved.

package setting

import (
	"context"
	"fmt"

	"github.com/timesnews/api/internal/platform/sec"
)

// Service orchestrates business logic for site settings.
//
// The public frontend reads settings as one flat map. Writing is restricted
// to administrators since settings shape the whole portal.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// GetAll returns every setting as a key-value map for the frontend.
func (service *Service) GetAll(context context.Context) (map[string]string, error) {
	settings, err := service.repository.List(context)
	if err != nil {
		return nil, err
	}

	flattened := make(map[string]string, len(settings))
	for _, setting := range settings {
		flattened[setting.Key] = setting.Value
	}

	return flattened, nil
}

/*
Set inserts or overwrites a setting.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - key: string
  - value: string

Returns:
  - *Setting: Stored entry
  - error: Unauthorized, Forbidden or storage failures
*/
func (service *Service) Set(context context.Context, actor *sec.Principal, key, value string) (*Setting, error) {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return nil, err
	}

	stored := &Setting{Key: key, Value: value}
	if err := service.repository.Upsert(context, stored); err != nil {
		return nil, fmt.Errorf("setting_service_set_failed: %w", err)
	}

	return stored, nil
}

/*
Delete removes a setting.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - key: string

Returns:
  - error: Unauthorized, Forbidden, NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.Principal, key string) error {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return err
	}

	if err := service.repository.Delete(context, key); err != nil {
		return fmt.Errorf("setting_service_delete_failed: %w", err)
	}

	return nil
}

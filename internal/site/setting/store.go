// Copyright (c) 2026 TimesNews Media. All rights reserved.

package setting

import "context"

// Repository defines the data access contract for site settings.
type Repository interface {

	/*
		List returns every setting.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Setting: All settings
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Setting, error)

	/*
		Upsert inserts or overwrites a setting by key.

		Parameters:
		  - context: context.Context
		  - setting: *Setting

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, setting *Setting) error

	/*
		Delete removes a setting by key.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, key string) error
}

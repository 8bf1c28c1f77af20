// Copyright (c) 2026 TimesNews Media. All rights reserved.

// Package category manages the editorial section taxonomy of the portal.
package category

import "time"

// Category represents an editorial section (e.g. "Politics", "Sports").
//
// Categories are never hard-deleted: archiving hides a section from the
// public site while existing articles keep their reference.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
)

// MaxNameLength bounds category names.
const MaxNameLength = 80

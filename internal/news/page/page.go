// Copyright (c) 2026 TimesNews Media. All rights reserved.

// Package page implements static editorial pages such as "About us" or the
// editorial policy. Pages are written by publishing staff and served to the
// public by slug.
package page

import "time"

// Page is a standalone static page.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// # Content Constraints

const (
	MaxTitleLength = 150
)

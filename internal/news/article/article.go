// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package article implements the core editorial content of the portal.

It covers the full article lifecycle: drafting by reporters, publication by
editors, public reading with buffered view counting, and soft-delete
archiving.

# Status Model

An article is always in exactly one of three states:

  - draft: visible to its author and publishing staff only.
  - published: publicly readable.
  - archived: soft-deleted; hidden from the public but retained.
*/
package article

import "time"

// # Status Model

// Status is the lifecycle state of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ParseStatus maps a raw string onto the closed status set.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusDraft, StatusPublished, StatusArchived:
		return Status(raw), true
	}
	return "", false
}

// # Domain Entities

// Article is a single editorial piece.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Status      Status     `json:"status"`
	IsFeatured  bool       `json:"is_featured"`
	Tags        []string   `json:"tags"`
	AuthorID    string     `json:"author_id"`
	AuthorName  string     `json:"author_name,omitempty"`
	CategoryID  string     `json:"category_id,omitempty"`
	ViewCount   int64      `json:"view_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle      = "title"
	FieldContent    = "content"
	FieldSummary    = "summary"
	FieldStatus     = "status"
	FieldCategoryID = "category_id"
	FieldTags       = "tags"
	FieldArticles   = "articles"
)

// # Content Constraints

const (
	MaxTitleLength   = 200
	MaxSummaryLength = 500
	MaxTagCount      = 10
	MaxTagLength     = 40
	MaxBulkArticles  = 100
)

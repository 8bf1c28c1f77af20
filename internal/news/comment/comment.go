// Copyright (c) 2026 TimesNews Media. All rights reserved.

// Package comment implements reader discussion under published articles.
//
// Any signed-in account may comment. Removal follows the owner-or-publisher
// rule so readers can retract their own words and staff can moderate.
package comment

import "time"

// Comment is a single reader remark on an article.
type Comment struct {
	ID         string    `json:"id"`
	ArticleID  string    `json:"article_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`

	// ArticleTitle is populated only on the moderation list, where comments
	// from every article are mixed together.
	ArticleTitle string `json:"article_title,omitempty"`
}

// # Field Identifiers

const (
	FieldContent = "content"
)

// # Content Constraints

const (
	MaxContentLength = 1000
)

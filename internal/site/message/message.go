// Copyright (c) 2026 TimesNews Media. All rights reserved.

// Package message implements the public contact form and its staff inbox.
package message

import "time"

// Message is one contact form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldBody    = "body"
)

// # Content Constraints

const (
	MaxNameLength    = 100
	MaxSubjectLength = 200
	MaxBodyLength    = 5000
)

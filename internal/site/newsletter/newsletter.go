// Copyright (c) 2026 TimesNews Media. All rights reserved.

// Package newsletter implements email newsletter subscriptions.
//
// Subscribing and unsubscribing are public. A returning address reactivates
// its old row instead of creating a duplicate.
package newsletter

import "time"

// Subscription is one newsletter signup.
type Subscription struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldEmail = "email"
)

// Copyright (c) 2026 TimesNews Media. All rights reserved.

// Package setting implements site-wide key-value configuration: the portal
// name, footer text, social links and similar presentation values edited
// from the admin panel and read by the public frontend.
package setting

import "time"

// Setting is one configuration entry.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldKey   = "key"
	FieldValue = "value"
)

// # Content Constraints

const (
	MaxKeyLength   = 80
	MaxValueLength = 2000
)

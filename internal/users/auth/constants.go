// Copyright (c) 2026 TimesNews Media. All rights reserved.

package auth

// # Authentication Constraints

const (
	// MinPasswordLength is the minimum number of characters for a password.
	MinPasswordLength = 8

	// MinUsernameLength is the minimum number of characters for a username.
	MinUsernameLength = 3

	// MaxBioLength is the maximum number of characters allowed in a profile bio.
	MaxBioLength = 250
)

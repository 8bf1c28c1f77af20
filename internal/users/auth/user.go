// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package auth implements the user identity and token lifecycle layer.

It defines the core account entity and the logic for registration, credential
verification, and the access/refresh token rotation scheme.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/timesnews/api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the TimesNews portal.
//
// The RefreshToken column holds the single currently-valid refresh token for
// the account. Issuing a new token overwrites it, which invalidates every
// previously issued refresh token at once.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	FullName     string    `json:"fullname"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Role         sec.Role  `json:"role"`
	IsBlocked    bool      `json:"is_blocked"`
	RefreshToken string    `json:"-"` // Stored rotation state. Omitted for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal builds the request-scoped identity snapshot for this account.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		IsBlocked: user.IsBlocked,
	}
}

// Identity builds the token-embedded snapshot for this account.
func (user *User) Identity() sec.Identity {
	return sec.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullName        = "fullname"
	FieldBio             = "bio"
	FieldAvatarURL       = "avatar_url"
	FieldLogin           = "login"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldRefreshToken    = "refresh_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
	FieldRole            = "role"
)

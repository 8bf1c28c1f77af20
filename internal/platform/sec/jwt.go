// Copyright (c) 2026 TimesNews Media. All rights reserved.

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Claims

// AuthClaims is the payload embedded inside a JWT access token.
//
// It carries a full identity snapshot (abbreviated keys keep the payload
// small), but the authentication gate still reloads the account from
// storage — the snapshot is a hint for logging and for clients, never the
// authorization source of truth.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Email    string `json:"eml"`
	Username string `json:"unm"`
	FullName string `json:"nam"`
	Role     string `json:"rol"`
}

// RefreshClaims is the payload embedded inside a JWT refresh token.
//
// It intentionally carries ONLY the account id. Everything else is looked up
// at refresh time against the current account row.
type RefreshClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
}

// Identity is the snapshot embedded into an access token at issue time.
type Identity struct {
	UserID   string
	Email    string
	Username string
	FullName string
	Role     Role
}

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// # Token Service

// TokenService issues and verifies HMAC-signed (HS256) JWT tokens.
//
// Access and refresh tokens use two independent secrets and expiry policies,
// so a leaked access secret never extends session lifetime. The service is
// stateless: persisting the refresh token is the caller's responsibility.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewTokenService constructs a TokenService from the configured secrets and TTLs.
//
// All four values are mandatory — a missing secret or non-positive TTL is a
// startup error, never a silent degradation.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("sec: access and refresh token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("sec: access and refresh token secrets must differ")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("sec: token TTLs must be positive")
	}

	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}, nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (service *TokenService) AccessTokenTTL() time.Duration { return service.accessTTL }

// RefreshTokenTTL returns the configured refresh token lifetime.
func (service *TokenService) RefreshTokenTTL() time.Duration { return service.refreshTTL }

// GenerateAccessToken creates a signed, short-lived access token carrying the
// given identity snapshot.
func (service *TokenService) GenerateAccessToken(identity Identity) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.accessTTL)),
		},
		UserID:   identity.UserID,
		Email:    identity.Email,
		Username: identity.Username,
		FullName: identity.FullName,
		Role:     string(identity.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// GenerateRefreshToken creates a signed, long-lived refresh token carrying
// only the account id.
func (service *TokenService) GenerateRefreshToken(userID string) (string, error) {
	currentTime := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.refreshTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return signedToken, nil
}

// IssuePair composes an access and a refresh token for the same identity.
//
// The caller persists the refresh token on the account (rotation-on-use);
// the TokenService itself has no storage side effects.
func (service *TokenService) IssuePair(identity Identity) (*TokenPair, error) {
	currentTime := time.Now()

	accessToken, err := service.GenerateAccessToken(identity)
	if err != nil {
		return nil, err
	}

	refreshToken, err := service.GenerateRefreshToken(identity.UserID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  currentTime.Add(service.accessTTL),
		RefreshTokenExpiresAt: currentTime.Add(service.refreshTTL),
	}, nil
}

// VerifyAccessToken checks the signature and validity of an access token.
//
// Bad signature, malformed payload, wrong algorithm, and expiry all collapse
// into a single error class — the HTTP layer surfaces every one as 401.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if err := service.verify(tokenString, service.accessSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken checks the signature and validity of a refresh token.
//
// A cryptographically valid refresh token is still only HALF the check: the
// caller must also compare it against the value currently stored on the
// account to detect reuse after rotation.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.verify(tokenString, service.refreshSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// verify parses a token with the given secret, pinning the signing method to HMAC.
func (service *TokenService) verify(tokenString string, secret []byte, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return fmt.Errorf("sec: invalid token: %w", err)
	}

	if !token.Valid {
		return errors.New("sec: invalid token claims")
	}

	return nil
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/constants"
	"github.com/timesnews/api/internal/platform/ctxutil"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.AuthClaims, error)
}

// AccountSource loads the current account state for an authenticated user id.
//
// The claims inside a valid access token are only a snapshot taken at issue
// time. Role changes and account blocks must take effect before the token
// expires, so the gate reloads the principal from storage on every request.
type AccountSource interface {
	LoadPrincipal(ctx context.Context, userID string) (*sec.Principal, error)
}

// Authenticate extracts and verifies the JWT from the cookie or Authorization header.
//
// # Flow
//  1. Look for the access token in the 'access_token' cookie, then in the
//     'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Reload the account via [AccountSource]; a deleted account yields 401,
//     a blocked account yields 403.
//  5. Inject [*sec.Principal] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, accounts AccountSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			tokenStr, err := extractToken(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 2. Anonymous Access ───────────────────────────────────────────
			if tokenStr == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, verifyErr := verifier.VerifyAccessToken(tokenStr)
			if verifyErr != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Fresh Account Load ─────────────────────────────────────────
			principal, loadErr := accounts.LoadPrincipal(request.Context(), claims.UserID)
			if loadErr != nil {
				respond.Error(writer, request, apperr.Unauthorized("Account no longer exists"))
				return
			}

			if principal.IsBlocked {
				respond.Error(writer, request, apperr.Forbidden("Your account has been blocked. Please contact support."))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractToken locates the access token on the request.
//
// The cookie takes precedence because browser clients authenticate with it;
// the Bearer header serves API clients. An empty result means anonymous.
func extractToken(request *http.Request) (string, error) {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", apperr.Unauthorized("Invalid authorization format")
	}

	return parts[1], nil
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Principal] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireCapability blocks requests whose principal lacks the given capability.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically implies
// [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.Principal] exists in context (implies AuthN).
//  2. Evaluate the capability via [sec.Authorize].
//  3. On failure, abort with the policy's 401 or 403 error.
func RequireCapability(capability sec.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			if err := sec.Authorize(principal, capability); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

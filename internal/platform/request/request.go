// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/constants"
	"github.com/timesnews/api/internal/platform/ctxutil"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Principal extracts the authenticated principal from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the principal.

Returns:
  - *sec.Principal: The authenticated account snapshot
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {

	// Get the authenticated principal
	principal := ctxutil.GetPrincipal(request.Context())

	// If the user is not authenticated, return an error
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return principal, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get the authenticated principal
	principal, err := RequiredPrincipal(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return principal.UserID, nil
}

/*
ClientIP extracts the originating client address from the request.

It honours the X-Real-IP and X-Forwarded-For headers set by reverse
proxies before falling back to the socket address.
*/
func ClientIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return host
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to token rotation.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles JWT orchestration and token cookie injection.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/constants"
	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Token Rotation, Profile).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a token pair.
//   - POST /refresh  : Rotates the refresh token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
		r.Get("/me", handler.me)
		r.Put("/me", handler.updateProfile)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type updateProfileRequest struct {
	Username  *string `json:"username"`
	FullName  *string `json:"fullname"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// # Cookie Handling

// setTokenCookies injects both token cookies into the response.
//
// SameSite=None with Secure allows the SPA frontend, served from a different
// origin, to carry the cookies on API calls.
func setTokenCookies(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  session.AccessTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     "/",
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearTokenCookies expires both token cookies on the client.
func clearTokenCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, and persists
a new reader-role profile to the database.

Request:
  - Body: registerRequest (Username, Email, Password, FullName)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, generates the JWT token pair, and injects
both secure token cookies into the response.

Request:
  - Body: loginRequest (Login or Username or Email, Password)

Response:
  - 200: Session: Token pair and User profile
  - 400: ErrValidation: Neither username nor email provided
  - 401: ErrUnauthorized: Wrong password
  - 403: ErrForbidden: Account is blocked
  - 404: ErrNotFound: No account with this identity
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Accept "login", "username", or "email" as the identity field.
	login := input.Login
	if login == "" {
		login = input.Username
	}
	if login == "" {
		login = input.Email
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, login)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:    login,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setTokenCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldUser:         session.User,
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Clears the stored refresh token server-side and expires the
token cookies on the client. Idempotent.

Response:
  - 204: No Content: Session terminated
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), principal.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearTokenCookies(writer)
	respond.NoContent(writer)
}

/*
Refresh issues a new token pair using a valid refresh token.

POST /api/v1/auth/refresh

Description: Rotates the session by validating the presented refresh token
(cookie first, JSON body as fallback) against the stored value and issuing a
fresh pair.

Response:
  - 200: RefreshResponse: New token credentials
  - 401: ErrUnauthorized: Missing, invalid, or already-rotated refresh token
  - 403: ErrForbidden: Account is blocked
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	presentedToken := ""

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		presentedToken = cookie.Value
	} else {
		var input refreshRequest
		if err := requestutil.DecodeJSON(request, &input); err == nil {
			presentedToken = input.RefreshToken
		}
	}

	if presentedToken == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), presentedToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setTokenCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldExpiresIn:    int64(time.Until(session.AccessTokenExpiresAt) / time.Second),
	})
}

/*
Me returns the authenticated user's full profile.

GET /api/v1/auth/me

Response:
  - 200: User: Current profile
  - 401: ErrUnauthorized: Not authenticated
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), principal.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateProfile applies partial changes to the authenticated user's profile.

PUT /api/v1/auth/me

Request:
  - Body: updateProfileRequest (Username, FullName, Bio, AvatarURL; all optional)

Response:
  - 200: User: Updated profile
  - 400: ErrValidation: Bio too long or username too short
  - 409: ErrConflict: Username already taken
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(FieldUsername, *input.Username).
			MinLen(FieldUsername, *input.Username, MinUsernameLength)
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, MaxBioLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), principal.UserID, UpdateProfileInput{
		Username:  input.Username,
		FullName:  input.FullName,
		Bio:       input.Bio,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Description: Verifies the current password before applying the new one. The
stored refresh token is cleared, so other devices must log in again.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 401: ErrUnauthorized: Session invalid or wrong current password
  - 400: ErrValidation: Weak password or validation failure
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		principal.UserID,
		input.CurrentPassword,
		input.NewPassword,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearTokenCookies(writer)

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}

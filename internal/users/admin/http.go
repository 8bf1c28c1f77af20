// Copyright (c) 2026 TimesNews Media. All rights reserved.

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
	"github.com/timesnews/api/internal/users/auth"
	"github.com/timesnews/api/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the staff-facing moderation endpoints.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] with the admin endpoints.
//
// The whole subtree requires authentication; fine-grained capability checks
// live in the service layer so that the 401/403 ordering is consistent.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/stats", handler.stats)

	router.Route("/users", func(r chi.Router) {
		r.Get("/", handler.listUsers)
		r.Post("/", handler.createUser)
		r.Get("/{id}", handler.getUser)
		r.Patch("/{id}/block", handler.setBlocked)
		r.Patch("/{id}/role", handler.updateRole)
		r.Delete("/{id}", handler.deleteUser)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
	Role     string `json:"role"`
}

type setBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

/*
ListUsers returns a paginated moderation view of accounts.

GET /api/v1/admin/users?search=&role=&page=&limit=

Response:
  - 200: Paginated list of accounts
  - 403: ErrForbidden: Actor lacks the manage-users capability
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter := auth.ListFilter{
		Search: request.URL.Query().Get("search"),
		Role:   request.URL.Query().Get("role"),
		Params: params,
	}

	users, total, err := handler.adminService.ListUsers(request.Context(), actor, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetUser returns a single account for the moderation detail view.

GET /api/v1/admin/users/{id}
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.adminService.GetUser(request.Context(), actor, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
CreateUser creates an account with an explicit role.

POST /api/v1/admin/users

Response:
  - 201: Created account
  - 400: ErrValidation: Invalid role or weak password
  - 403: ErrForbidden: Actor lacks the manage-users capability
  - 409: ErrConflict: Identity already exists
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		MinLen(auth.FieldUsername, input.Username, auth.MinUsernameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, auth.MinPasswordLength).
		Required(auth.FieldRole, input.Role)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.adminService.CreateUser(request.Context(), actor, CreateUserInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
		Role:     input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
SetBlocked blocks or unblocks a target account.

PATCH /api/v1/admin/users/{id}/block

Response:
  - 200: Updated account
  - 403: ErrForbidden: Actor lacks permission or target is an admin
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) setBlocked(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setBlockedRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.adminService.SetBlocked(request.Context(), actor, requestutil.ID(request, "id"), input.Blocked)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateRole changes the role of a target account.

PATCH /api/v1/admin/users/{id}/role

Response:
  - 200: Updated account
  - 400: ErrValidation: Unknown role name
  - 403: ErrForbidden: Actor lacks permission or target is an admin
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.adminService.UpdateRole(request.Context(), actor, requestutil.ID(request, "id"), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DeleteUser permanently removes a target account.

DELETE /api/v1/admin/users/{id}

Response:
  - 204: Account removed
  - 403: ErrForbidden: Actor lacks permission or target is an admin
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.DeleteUser(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Stats aggregates resource counts for the staff dashboard.

GET /api/v1/admin/stats

Response:
  - 200: Map of resource name to total count
  - 403: ErrForbidden: Actor is not staff
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.adminService.DashboardStats(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

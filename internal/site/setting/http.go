// Copyright (c) 2026 TimesNews Media. All rights reserved.

package setting

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
)

// Handler implements the site setting HTTP endpoints.
type Handler struct {
	settingService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{settingService: service}
}

// Routes returns a [chi.Router] with the setting endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoint
	router.Get("/", handler.getAll)

	// Admin endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/{key}", handler.set)
		r.Delete("/{key}", handler.delete)
	})

	return router
}

type setSettingRequest struct {
	Value string `json:"value"`
}

/*
GetAll returns every setting as a flat key-value map.

GET /api/v1/settings
*/
func (handler *Handler) getAll(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.settingService.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

/*
Set inserts or overwrites a setting.

PUT /api/v1/settings/{key}

Response:
  - 200: Stored setting
  - 403: ErrForbidden: Actor is not an administrator
*/
func (handler *Handler) set(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setSettingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	key := requestutil.Param(request, "key")

	validator := &validate.Validator{}
	validator.Required(FieldKey, key).
		MaxLen(FieldKey, key, MaxKeyLength).
		Slug(FieldKey, key).
		MaxLen(FieldValue, input.Value, MaxValueLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	stored, err := handler.settingService.Set(request.Context(), actor, key, input.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stored)
}

/*
Delete removes a setting.

DELETE /api/v1/settings/{key}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.settingService.Delete(request.Context(), actor, requestutil.Param(request, "key")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

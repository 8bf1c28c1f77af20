// Copyright (c) 2026 TimesNews Media. All rights reserved.

package page

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
)

// Handler implements the static page HTTP endpoints.
type Handler struct {
	pageService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{pageService: service}
}

// Routes returns a [chi.Router] with the page endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Get("/{slug}", handler.getBySlug)

	// Staff endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createPageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updatePageRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

/*
List returns all pages.

GET /api/v1/pages
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	pages, err := handler.pageService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pages)
}

/*
GetBySlug returns a single page by its URL slug.

GET /api/v1/pages/{slug}
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.pageService.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

/*
Create adds a new static page.

POST /api/v1/pages
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldContent, input.Content)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.pageService.Create(request.Context(), actor, CreateInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Update applies partial changes to a page.

PUT /api/v1/pages/{id}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.Content != nil {
		validator.Required(FieldContent, *input.Content)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.pageService.Update(request.Context(), actor, requestutil.ID(request, "id"), UpdateInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
Delete removes a page.

DELETE /api/v1/pages/{id}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.pageService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

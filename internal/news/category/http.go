// Copyright (c) 2026 TimesNews Media. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] with the category endpoints.
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

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

/*
List returns all categories.

GET /api/v1/categories
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.categoryService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

/*
GetBySlug returns a single category by its URL slug.

GET /api/v1/categories/{slug}
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.categoryService.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

/*
Create adds a new editorial section.

POST /api/v1/categories

Response:
  - 201: Created category
  - 403: ErrForbidden: Actor cannot publish
  - 409: ErrConflict: Name already slugs to an existing category
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), actor, CreateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
Update applies partial changes to a category.

PUT /api/v1/categories/{id}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, MaxNameLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Update(request.Context(), actor, requestutil.ID(request, "id"), UpdateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
Delete archives a category, hiding it from public listings.

DELETE /api/v1/categories/{id}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.categoryService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

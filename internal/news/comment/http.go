// Copyright (c) 2026 TimesNews Media. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
	"github.com/timesnews/api/pkg/pagination"
)

// Handler implements the comment HTTP endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] with the comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoint
	router.Get("/article/{articleID}", handler.listByArticle)

	// Signed-in endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/admin/all", handler.listAll)
		r.Post("/article/{articleID}", handler.create)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createCommentRequest struct {
	Content string `json:"content"`
}

/*
ListByArticle returns a page of comments on one article.

GET /api/v1/comments/article/{articleID}
*/
func (handler *Handler) listByArticle(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	comments, total, err := handler.commentService.ListByArticle(
		request.Context(),
		requestutil.ID(request, "articleID"),
		params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
ListAll returns a page of comments across every article for moderation.

GET /api/v1/comments/admin/all?page=&limit=

Response:
  - 200: Newest comments portal-wide, each with its article title
  - 403: ErrForbidden: Actor is not staff
*/
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	comments, total, err := handler.commentService.ListAll(request.Context(), actor, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create posts a comment on a published article.

POST /api/v1/comments/article/{articleID}

Response:
  - 201: Created comment
  - 401: ErrUnauthorized: Not signed in
  - 404: ErrNotFound: Article absent or not published
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, MaxContentLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.commentService.Create(
		request.Context(),
		actor,
		requestutil.ID(request, "articleID"),
		input.Content,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Delete removes a comment.

DELETE /api/v1/comments/{id}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

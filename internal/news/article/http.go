// Copyright (c) 2026 TimesNews Media. All rights reserved.

package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
	"github.com/timesnews/api/pkg/pagination"
)

// Handler implements the article HTTP endpoints.
type Handler struct {
	articleService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{articleService: service}
}

// Routes returns a [chi.Router] with the article endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.listPublished)
	router.Get("/{slug}", handler.getPublished)

	// Staff endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/staff", handler.listStaff)
		r.Get("/staff/{id}", handler.getStaff)
		r.Post("/", handler.create)
		r.Post("/bulk", handler.bulkCreate)
		r.Put("/{id}", handler.update)
		r.Post("/{id}/publish", handler.publish)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createArticleRequest struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
	CoverURL   string   `json:"cover_url"`
	CategoryID string   `json:"category_id"`
	Status     string   `json:"status"`
	IsFeatured bool     `json:"is_featured"`
	Tags       []string `json:"tags"`
}

type updateArticleRequest struct {
	Title      *string  `json:"title"`
	Summary    *string  `json:"summary"`
	Content    *string  `json:"content"`
	CoverURL   *string  `json:"cover_url"`
	CategoryID *string  `json:"category_id"`
	Status     *string  `json:"status"`
	IsFeatured *bool    `json:"is_featured"`
	Tags       []string `json:"tags"`
}

type bulkUploadRequest struct {
	Articles []createArticleRequest `json:"articles"`
}

// validateTags checks the tag count and each tag's length.
func validateTags(validator *validate.Validator, tags []string) {
	validator.Range(FieldTags, len(tags), 0, MaxTagCount)
	for _, tag := range tags {
		validator.MaxLen(FieldTags, tag, MaxTagLength)
	}
}

/*
ListPublished returns a page of published articles.

GET /api/v1/articles?page=&limit=&search=&category_id=&featured=
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	articles, total, err := handler.articleService.ListPublished(request.Context(), ListFilter{
		Search:       request.URL.Query().Get("search"),
		CategoryID:   request.URL.Query().Get("category_id"),
		FeaturedOnly: request.URL.Query().Get("featured") == "true",
		Params:       params,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetPublished returns a published article by slug and counts the view.

GET /api/v1/articles/{slug}
*/
func (handler *Handler) getPublished(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.articleService.GetPublished(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

/*
ListStaff returns a page of articles for the staff dashboard.

GET /api/v1/articles/staff?page=&limit=&status=&search=&category_id=

Response:
  - 200: Articles visible to the actor (reporters see only their own)
  - 403: ErrForbidden: Actor is not staff
*/
func (handler *Handler) listStaff(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		Search:     request.URL.Query().Get("search"),
		CategoryID: request.URL.Query().Get("category_id"),
		Params:     pagination.FromRequest(request),
	}

	if raw := request.URL.Query().Get("status"); raw != "" {
		status, ok := ParseStatus(raw)
		if !ok {
			respond.Error(writer, request, validate.RequiredError(FieldStatus, "Must be one of: draft, published, archived"))
			return
		}
		filter.Status = status
	}

	articles, total, err := handler.articleService.ListStaff(request.Context(), actor, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(filter.Params.Page, filter.Params.Limit, total))
}

/*
GetStaff returns a single article for editing.

GET /api/v1/articles/staff/{id}
*/
func (handler *Handler) getStaff(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.articleService.GetStaff(request.Context(), actor, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

/*
Create drafts or publishes a new article.

POST /api/v1/articles

Response:
  - 201: Created article
  - 400: ErrValidation: Missing title/content or unknown status
  - 403: ErrForbidden: Actor is not staff, or lacks publish for a non-draft status
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldContent, input.Content).
		MaxLen(FieldSummary, input.Summary, MaxSummaryLength)
	validateTags(validator, input.Tags)

	status := StatusDraft
	if input.Status != "" {
		parsed, ok := ParseStatus(input.Status)
		validator.Custom(FieldStatus, !ok || parsed == StatusArchived, "Must be draft or published")
		if ok {
			status = parsed
		}
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.articleService.Create(request.Context(), actor, CreateInput{
		Title:      input.Title,
		Summary:    input.Summary,
		Content:    input.Content,
		CoverURL:   input.CoverURL,
		CategoryID: input.CategoryID,
		Status:     status,
		IsFeatured: input.IsFeatured,
		Tags:       input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
BulkCreate ingests a batch of articles in a single call.

POST /api/v1/articles/bulk

Response:
  - 200: Per-entry outcome counts and errors
  - 403: ErrForbidden: Actor lacks the publish capability
  - 422: ErrUnprocessable: Empty batch or more than the per-request limit
*/
func (handler *Handler) bulkCreate(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bulkUploadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Entries pass through raw; per-entry validation happens in the service
	// so one bad entry is reported instead of rejecting the whole batch.
	inputs := make([]CreateInput, 0, len(input.Articles))
	for _, item := range input.Articles {
		inputs = append(inputs, CreateInput{
			Title:      item.Title,
			Summary:    item.Summary,
			Content:    item.Content,
			CoverURL:   item.CoverURL,
			CategoryID: item.CategoryID,
			Status:     Status(item.Status),
			IsFeatured: item.IsFeatured,
			Tags:       item.Tags,
		})
	}

	result, err := handler.articleService.BulkCreate(request.Context(), actor, inputs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Update applies partial changes to an article.

PUT /api/v1/articles/{id}

Response:
  - 200: Updated article
  - 403: ErrForbidden: Actor is neither the author nor publishing staff,
    or attempted a status change without the publish capability
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateArticleRequest
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
	if input.Summary != nil {
		validator.MaxLen(FieldSummary, *input.Summary, MaxSummaryLength)
	}
	if input.Tags != nil {
		validateTags(validator, input.Tags)
	}

	var status *Status
	if input.Status != nil {
		parsed, ok := ParseStatus(*input.Status)
		validator.Custom(FieldStatus, !ok, "Must be one of: draft, published, archived")
		if ok {
			status = &parsed
		}
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.articleService.Update(request.Context(), actor, requestutil.ID(request, "id"), UpdateInput{
		Title:      input.Title,
		Summary:    input.Summary,
		Content:    input.Content,
		CoverURL:   input.CoverURL,
		CategoryID: input.CategoryID,
		Status:     status,
		IsFeatured: input.IsFeatured,
		Tags:       input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
Publish moves an article to the published state.

POST /api/v1/articles/{id}/publish
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	published, err := handler.articleService.Publish(request.Context(), actor, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, published)
}

/*
Delete archives an article.

DELETE /api/v1/articles/{id}

Response:
  - 204: Archived
  - 403: ErrForbidden: Actor lacks the publish capability (ownership does not help)
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.articleService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// Copyright (c) 2026 TimesNews Media. All rights reserved.

package newsletter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
	"github.com/timesnews/api/pkg/pagination"
)

// Handler implements the newsletter HTTP endpoints.
type Handler struct {
	newsletterService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{newsletterService: service}
}

// Routes returns a [chi.Router] with the newsletter endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/subscribe", handler.subscribe)
	router.Post("/unsubscribe", handler.unsubscribe)

	// Staff endpoint
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
	})

	return router
}

type subscriptionRequest struct {
	Email string `json:"email"`
}

/*
Subscribe signs an address up for the newsletter.

POST /api/v1/newsletter/subscribe

Response:
  - 201: Active subscription
  - 409: ErrConflict: Address already subscribed
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	var input subscriptionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscription, err := handler.newsletterService.Subscribe(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, subscription)
}

/*
Unsubscribe removes an address from the newsletter.

POST /api/v1/newsletter/unsubscribe
*/
func (handler *Handler) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	var input subscriptionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.newsletterService.Unsubscribe(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
List returns a page of active subscriptions.

GET /api/v1/newsletter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	subscriptions, total, err := handler.newsletterService.List(request.Context(), actor, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, subscriptions, pagination.NewMeta(params.Page, params.Limit, total))
}

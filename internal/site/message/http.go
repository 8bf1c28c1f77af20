// Copyright (c) 2026 TimesNews Media. All rights reserved.

package message

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
	"github.com/timesnews/api/pkg/pagination"
)

// Handler implements the contact message HTTP endpoints.
type Handler struct {
	messageService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{messageService: service}
}

// Routes returns a [chi.Router] with the message endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoint
	router.Post("/", handler.create)

	// Staff endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
		r.Patch("/{id}/read", handler.setRead)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type setReadRequest struct {
	Read bool `json:"read"`
}

/*
Create records a contact form submission.

POST /api/v1/messages

Response:
  - 201: Stored message
  - 400: ErrValidation: Missing or oversized fields
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createMessageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldSubject, input.Subject).
		MaxLen(FieldSubject, input.Subject, MaxSubjectLength).
		Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, MaxBodyLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.messageService.Create(request.Context(), CreateInput{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
List returns a page of messages for the staff inbox.

GET /api/v1/messages?page=&limit=&unread=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	unreadOnly, _ := strconv.ParseBool(request.URL.Query().Get("unread"))

	messages, total, err := handler.messageService.List(request.Context(), actor, unreadOnly, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, messages, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
SetRead marks a message read or unread.

PATCH /api/v1/messages/{id}/read
*/
func (handler *Handler) setRead(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setReadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.messageService.SetRead(request.Context(), actor, requestutil.ID(request, "id"), input.Read); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Delete removes a message from the inbox.

DELETE /api/v1/messages/{id}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.messageService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

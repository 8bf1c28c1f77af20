// Copyright (c) 2026 TimesNews Media. All rights reserved.

package poll

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timesnews/api/internal/platform/middleware"
	requestutil "github.com/timesnews/api/internal/platform/request"
	"github.com/timesnews/api/internal/platform/respond"
	"github.com/timesnews/api/internal/platform/validate"
)

// Handler implements the poll HTTP endpoints.
type Handler struct {
	pollService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{pollService: service}
}

// Routes returns a [chi.Router] with the poll endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.listActive)
	router.Get("/{id}/results", handler.results)
	router.Post("/{id}/vote", handler.vote)

	// Staff endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/all", handler.listAll)
		r.Post("/", handler.create)
		r.Post("/{id}/close", handler.close)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createPollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type voteRequest struct {
	OptionID string `json:"option_id"`
}

/*
ListActive returns every open poll.

GET /api/v1/polls
*/
func (handler *Handler) listActive(writer http.ResponseWriter, request *http.Request) {
	polls, err := handler.pollService.ListActive(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, polls)
}

/*
ListAll returns every poll for the staff dashboard.

GET /api/v1/polls/all
*/
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	polls, err := handler.pollService.ListAll(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, polls)
}

/*
Create opens a new poll.

POST /api/v1/polls

Response:
  - 201: Created poll
  - 400: ErrValidation: Missing question or bad option count
  - 403: ErrForbidden: Actor cannot publish
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPollRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldQuestion, input.Question).
		MaxLen(FieldQuestion, input.Question, MaxQuestionLength).
		Range(FieldOptions, len(input.Options), MinOptionCount, MaxOptionCount)
	for _, label := range input.Options {
		validator.Required(FieldOptions, label).
			MaxLen(FieldOptions, label, MaxOptionLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.pollService.Create(request.Context(), actor, CreateInput{
		Question: input.Question,
		Options:  input.Options,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Vote records one vote keyed on the client address.

POST /api/v1/polls/{id}/vote

Response:
  - 200: Tally after the vote
  - 409: ErrConflict: This address has already voted
  - 422: ErrUnprocessable: Poll closed or option mismatch
*/
func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request) {
	var input voteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOptionID, input.OptionID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	results, err := handler.pollService.Vote(
		request.Context(),
		requestutil.ID(request, "id"),
		input.OptionID,
		requestutil.ClientIP(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}

/*
Results returns the tallied outcome of a poll.

GET /api/v1/polls/{id}/results
*/
func (handler *Handler) results(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.pollService.GetResults(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}

/*
Close ends voting on a poll.

POST /api/v1/polls/{id}/close
*/
func (handler *Handler) close(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.pollService.Close(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Delete removes a poll and its votes.

DELETE /api/v1/polls/{id}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.pollService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

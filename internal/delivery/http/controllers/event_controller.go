package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

// similarEventsLimit caps the number of events returned by the similar-events query.
const similarEventsLimit = 4

// EventRequest is the request body for POST /events.
type EventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`
}

// Validate implements Validator. Field-level invariants (trimming, date and
// time formats, agenda/tags length) are enforced by the service; this only
// rejects bodies that are obviously empty.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

func (e EventRequest) attrs() domain.EventAttrs {
	return domain.EventAttrs{
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Organizer:   e.Organizer,
		Tags:        e.Tags,
	}
}

// UpdateEventRequest is the request body for PATCH /events/{id}. Absent fields
// are left unchanged.
type UpdateEventRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   *string  `json:"organizer"`
	Tags        []string `json:"tags"`
}

func (e UpdateEventRequest) patch() domain.EventPatch {
	return domain.EventPatch{
		Title:       e.Title,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Organizer:   e.Organizer,
		Tags:        e.Tags,
	}
}

// EventResponse is the response body carrying a single event.
// swagger:model EventResponse
type EventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// EventListResponse is the response body for paginated event listings.
// swagger:model EventListResponse
type EventListResponse struct {
	Message    string                 `json:"message"`
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// SimilarEventsResponse is the response body for the similar-events query.
// swagger:model SimilarEventsResponse
type SimilarEventsResponse struct {
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Returns the event whose slug matches the path parameter. The slug is trimmed and lowercased before lookup.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if strings.TrimSpace(slug) == "" {
		helpers.WriteMessage(w, http.StatusBadRequest, "A valid event slug must be provided in the URL.")
		return
	}
	normalized := domain.NormalizeSlug(slug)

	event, err := c.Service.GetEventBySlug(r.Context(), normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, fmt.Sprintf("Event with slug %q was not found.", normalized))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "Failed to fetch event.", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{
		Message: "Event fetched successfully.",
		Event:   event,
	})
}

// ListEvents godoc
// @Summary List events
// @Description Returns events newest first, paginated via page and page_size query parameters.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.EventListResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "Failed to list events.", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventListResponse{
		Message:    "Events fetched successfully.",
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetSimilarEvents godoc
// @Summary List events similar to the named one
// @Description Returns events sharing at least one tag with the event identified by slug, excluding that event.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.SimilarEventsResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug}/similar [get]
func (c *EventController) GetSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if strings.TrimSpace(slug) == "" {
		helpers.WriteMessage(w, http.StatusBadRequest, "A valid event slug must be provided in the URL.")
		return
	}
	normalized := domain.NormalizeSlug(slug)

	events, err := c.Service.GetSimilarEvents(r.Context(), normalized, similarEventsLimit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, fmt.Sprintf("Event with slug %q was not found.", normalized))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "Failed to fetch similar events.", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, SimilarEventsResponse{
		Message: "Similar events fetched successfully.",
		Events:  events,
	})
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event. The slug is derived from the title server-side; date and time are normalized before persisting.
// @Tags events
// @Accept json
// @Produce json
// @Param event body EventRequest true "Event attributes"
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 409 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.attrs())
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, EventResponse{
		Message: "Event created successfully.",
		Event:   event,
	})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a partial update. The slug is regenerated only when the title changes.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 409 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{id} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		helpers.WriteMessage(w, http.StatusBadRequest, "A valid event id must be provided in the URL.")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, req.patch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteMessage(w, http.StatusNotFound, fmt.Sprintf("Event with id %q was not found.", id))
			return
		}
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{
		Message: "Event updated successfully.",
		Event:   event,
	})
}

// writeEventError translates service errors from event write paths into
// client responses.
func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrDuplicateSlug):
		helpers.WriteMessage(w, http.StatusConflict, "An event with the same slug already exists; choose a different title.")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "Failed to save event.", err)
	}
}

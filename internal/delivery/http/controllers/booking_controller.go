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

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// Validate implements Validator. Email shape and event existence are checked
// by the service.
func (b CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(b.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(b.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// BookingResponse is the response body carrying a single booking.
// swagger:model BookingResponse
type BookingResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

// BookingListResponse is the response body for an event's bookings.
// swagger:model BookingListResponse
type BookingListResponse struct {
	Message  string            `json:"message"`
	Bookings []*domain.Booking `json:"bookings"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book a spot for an event
// @Description Creates a booking after validating the email address and verifying the referenced event exists.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking attributes"
// @Success 201 {object} controllers.BookingResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Email)
	if err != nil {
		c.writeBookingError(w, r, err, req.EventID)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, BookingResponse{
		Message: "Booking created successfully.",
		Booking: booking,
	})
}

// ListEventBookings godoc
// @Summary List bookings for an event
// @Description Returns all bookings for the event, newest first.
// @Tags bookings
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.BookingListResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{id}/bookings [get]
func (c *BookingController) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		helpers.WriteMessage(w, http.StatusBadRequest, "A valid event id must be provided in the URL.")
		return
	}
	bookings, err := c.Service.ListEventBookings(r.Context(), id)
	if err != nil {
		c.writeBookingError(w, r, err, id)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, BookingListResponse{
		Message:  "Bookings fetched successfully.",
		Bookings: bookings,
	})
}

// writeBookingError translates service errors from booking paths into client
// responses.
func (c *BookingController) writeBookingError(w http.ResponseWriter, r *http.Request, err error, eventID string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteMessage(w, http.StatusNotFound, fmt.Sprintf("Event with id %q does not exist.", eventID))
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError, "Failed to process booking.", err)
	}
}

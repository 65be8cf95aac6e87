package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbooking/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	normalizedEmail, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(eventID))
	if err != nil {
		return nil, domain.NewValidationError("event_id", "must be a valid event identifier")
	}

	// Ensure the referenced event exists before persisting. The check and
	// the insert below are not atomic: an event deleted in between leaves an
	// orphaned booking. Accepted, since the store never cascades deletes.
	exists, err := s.eventRepo.Exists(ctx, oid.Hex())
	if err != nil {
		return nil, fmt.Errorf("check event exists: %w", err)
	}
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	now := time.Now()
	booking := domain.NewBooking(oid, normalizedEmail, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, booking)
	return booking, nil
}

// sendConfirmation emails the booker. Failures are logged and never fail the
// booking itself.
func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, booking.EventID.Hex())
	if err != nil {
		log.Printf("[BOOKING] skipping confirmation email, event lookup failed: %v", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		log.Printf("[BOOKING] confirmation email to %s failed: %v", booking.Email, err)
	}
}

func (s *bookingService) ListEventBookings(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(eventID))
	if err != nil {
		return nil, domain.NewValidationError("event_id", "must be a valid event identifier")
	}

	exists, err := s.eventRepo.Exists(ctx, oid.Hex())
	if err != nil {
		return nil, fmt.Errorf("check event exists: %w", err)
	}
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, oid.Hex())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

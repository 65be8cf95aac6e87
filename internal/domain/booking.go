package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking represents a booked spot for an event. It holds a weak reference to
// the event by identifier; the store does not cascade deletes.
// swagger:model Booking
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"event_id" json:"event_id"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewBooking creates a new Booking. ID is set by the repository on create.
func NewBooking(eventID primitive.ObjectID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
}

// BookingService defines booking-facing operations.
type BookingService interface {
	// CreateBooking validates the email, verifies the referenced event
	// exists, and persists the booking. Returns ErrEventNotFound when the
	// event is missing; nothing is inserted in that case.
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListEventBookings(ctx context.Context, eventID string) ([]*Booking, error)
}

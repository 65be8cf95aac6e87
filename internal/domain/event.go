package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents a listed event as stored in the events collection.
// swagger:model Event
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Overview    string             `bson:"overview" json:"overview"`
	Image       string             `bson:"image" json:"image"`
	Venue       string             `bson:"venue" json:"venue"`
	Location    string             `bson:"location" json:"location"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time        string             `bson:"time" json:"time"` // HH:MM, 24-hour
	Mode        string             `bson:"mode" json:"mode"`
	Audience    string             `bson:"audience" json:"audience"`
	Agenda      []string           `bson:"agenda" json:"agenda"`
	Organizer   string             `bson:"organizer" json:"organizer"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// EventAttrs holds the caller-supplied attributes for creating an event.
// Slug and timestamps are derived server-side.
type EventAttrs struct {
	Title       string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Agenda      []string
	Organizer   string
	Tags        []string
}

// EventPatch holds optional field updates for an event. Nil fields are left
// unchanged; Agenda and Tags replace the stored value when non-nil.
type EventPatch struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Agenda      []string
	Organizer   *string
	Tags        []string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	// ListByTags returns events sharing at least one of the given tags,
	// excluding the event with excludeSlug, up to limit.
	ListByTags(ctx context.Context, tags []string, excludeSlug string, limit int) ([]*Event, error)
}

// EventService defines event-facing operations.
type EventService interface {
	CreateEvent(ctx context.Context, attrs EventAttrs) (*Event, error)
	// UpdateEvent applies the patch to the stored event. The slug is
	// regenerated only when the patch actually changes the title, so an
	// event's public URL survives unrelated edits.
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	GetSimilarEvents(ctx context.Context, slug string, limit int) ([]*Event, error)
}

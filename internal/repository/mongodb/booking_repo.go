package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventbooking/internal/domain"
)

const bookingsCollection = "bookings"

type bookingRepository struct {
	client *Client
}

func NewBookingRepository(client *Client) domain.BookingRepository {
	return &bookingRepository{
		client: client,
	}
}

func (r *bookingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.client.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(bookingsCollection), nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	res, err := coll.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return []*domain.Booking{}, nil
	}
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := coll.Find(ctx, bson.M{"event_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings by event: %w", err)
	}
	defer cur.Close(ctx)

	bookings := []*domain.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

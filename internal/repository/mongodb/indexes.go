package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the indexes the repositories rely on: the unique slug
// index on events (slug collisions surface as duplicate-key errors, translated
// to domain.ErrDuplicateSlug) and the event_id index on bookings. It runs as
// the Client's bootstrap step, so a connection is only cached once the indexes
// exist and a failure is retried together with the dial.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create slug index: %w", err)
	}

	_, err = db.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create event_id index: %w", err)
	}

	return nil
}

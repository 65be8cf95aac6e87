package mongodb

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// Client lazily establishes and memoizes a single connection handle to the
// document store. It is constructed once in the composition root and shared
// by every repository; there is no package-level state. Concurrent Connect
// calls while an attempt is in flight await that same attempt, and a failed
// attempt is never cached, so the next call retries from scratch.
type Client struct {
	group singleflight.Group

	mu sync.RWMutex
	db *mongo.Database

	// connect performs the actual dial; swapped out in tests.
	connect func(ctx context.Context) (*mongo.Database, error)

	// bootstrap runs after a successful dial, before the handle is cached.
	// A bootstrap failure fails the attempt, so the next Connect retries
	// both the dial and the bootstrap.
	bootstrap func(ctx context.Context, db *mongo.Database) error
}

// NewClient returns an unconnected Client for the given connection string and
// database name. No I/O happens until the first Connect call.
func NewClient(uri, dbName string) *Client {
	c := &Client{}
	c.connect = func(ctx context.Context) (*mongo.Database, error) {
		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, fmt.Errorf("connect to document store: %w", err)
		}
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			_ = cl.Disconnect(context.Background())
			return nil, fmt.Errorf("ping document store: %w", err)
		}
		return cl.Database(dbName), nil
	}
	c.bootstrap = ensureIndexes
	return c
}

// Connect returns the memoized database handle, establishing the underlying
// connection on first use. Safe for concurrent use from multiple in-flight
// requests.
func (c *Client) Connect(ctx context.Context) (*mongo.Database, error) {
	c.mu.RLock()
	db := c.db
	c.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := c.group.Do("connect", func() (any, error) {
		db, err := c.connect(ctx)
		if err != nil {
			return nil, err
		}
		if c.bootstrap != nil {
			if err := c.bootstrap(ctx, db); err != nil {
				_ = db.Client().Disconnect(context.Background())
				return nil, err
			}
		}
		c.mu.Lock()
		c.db = db
		c.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

// Close disconnects the underlying client if a connection was established.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Client().Disconnect(ctx)
	c.db = nil
	return err
}

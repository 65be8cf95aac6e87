package mongodb

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDatabase returns a database handle without touching the network;
// mongo.Connect performs no I/O until an operation runs.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	cl, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cl.Disconnect(context.Background()) })
	return cl.Database("eventbooking_test")
}

func TestClient_ConnectSharesSingleInFlightAttempt(t *testing.T) {
	db := testDatabase(t)

	var calls int32
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	c := &Client{}
	c.connect = func(ctx context.Context) (*mongo.Database, error) {
		atomic.AddInt32(&calls, 1)
		started <- struct{}{}
		<-release
		return db, nil
	}

	const workers = 5
	results := make([]*mongo.Database, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Connect(context.Background())
		}(i)
	}

	// Wait for the first attempt to begin, give the remaining callers time
	// to join it, then let it finish.
	<-started
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent callers must share one attempt")
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, db, results[i])
	}
}

func TestClient_ConnectRetriesAfterFailure(t *testing.T) {
	db := testDatabase(t)

	var calls int32
	c := &Client{}
	c.connect = func(ctx context.Context) (*mongo.Database, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("store unreachable")
		}
		return db, nil
	}

	_, err := c.Connect(context.Background())
	require.Error(t, err, "first attempt fails")

	got, err := c.Connect(context.Background())
	require.NoError(t, err, "failed attempt must not be cached")
	assert.Same(t, db, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNewClient_WiresIndexBootstrap(t *testing.T) {
	c := NewClient("mongodb://localhost:27017", "eventbooking")
	require.NotNil(t, c.connect)
	require.NotNil(t, c.bootstrap, "index creation must ride the lazy connect")
}

func TestClient_ConnectRetriesBootstrapWithDial(t *testing.T) {
	db := testDatabase(t)

	var dials, bootstraps int32
	c := &Client{}
	c.connect = func(ctx context.Context) (*mongo.Database, error) {
		atomic.AddInt32(&dials, 1)
		return db, nil
	}
	c.bootstrap = func(ctx context.Context, db *mongo.Database) error {
		if atomic.AddInt32(&bootstraps, 1) == 1 {
			return errors.New("create slug index: store unreachable")
		}
		return nil
	}

	_, err := c.Connect(context.Background())
	require.Error(t, err, "a failed bootstrap fails the attempt")

	got, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dials), "the handle must not be cached until bootstrap succeeds")
	assert.Equal(t, int32(2), atomic.LoadInt32(&bootstraps))

	_, err = c.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&bootstraps), "bootstrap runs once per established connection")
}

func TestClient_ConnectMemoizesHandle(t *testing.T) {
	db := testDatabase(t)

	var calls int32
	c := &Client{}
	c.connect = func(ctx context.Context) (*mongo.Database, error) {
		atomic.AddInt32(&calls, 1)
		return db, nil
	}

	first, err := c.Connect(context.Background())
	require.NoError(t, err)
	second, err := c.Connect(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "handle is cached for the process lifetime")
}

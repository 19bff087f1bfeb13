package database

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Manager owns the shared MongoDB connection. The handle is established
// lazily on first use; concurrent callers share a single in-flight attempt,
// and an unusable handle is dropped so the next caller reconnects.
type Manager struct {
	uri    string
	dbName string

	mu      sync.Mutex
	client  *mongo.Client
	attempt *connectAttempt
}

// connectAttempt is one connection attempt, shared by every caller that
// arrives while it is in flight.
type connectAttempt struct {
	done   chan struct{}
	client *mongo.Client
	err    error
}

// NewManager creates a Manager for the given MongoDB URI and database name.
// No connection is made until Client is first called.
func NewManager(uri, dbName string) *Manager {
	return &Manager{uri: uri, dbName: dbName}
}

// Client returns the cached MongoDB client, connecting if necessary. At most
// one connection attempt runs at a time; callers block on the shared attempt
// until it resolves or their context is cancelled.
func (m *Manager) Client(ctx context.Context) (*mongo.Client, error) {
	for {
		m.mu.Lock()
		if m.client != nil {
			c := m.client
			m.mu.Unlock()
			return c, nil
		}
		if m.attempt == nil {
			m.attempt = &connectAttempt{done: make(chan struct{})}
			go m.connect(m.attempt)
		}
		a := m.attempt
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-a.done:
		}
		if a.err != nil {
			return nil, a.err
		}
		// The attempt succeeded; loop to pick up the cached handle.
	}
}

func (m *Manager) connect(a *connectAttempt) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err == nil {
		if pingErr := client.Ping(ctx, nil); pingErr != nil {
			_ = client.Disconnect(context.Background())
			err = pingErr
		}
	}

	m.mu.Lock()
	if err != nil {
		a.err = err
		log.Printf("failed to connect to MongoDB: %v", err)
	} else {
		a.client = client
		m.client = client
		log.Println("Connected to MongoDB successfully!")
	}
	// Clear the attempt either way: on failure the next caller retries.
	m.attempt = nil
	m.mu.Unlock()
	close(a.done)
}

// Reset drops the cached handle if it is still the current one. The handle
// is not disconnected here: concurrent requests may still hold it.
func (m *Manager) Reset(c *mongo.Client) {
	m.mu.Lock()
	if m.client == c {
		m.client = nil
	}
	m.mu.Unlock()
}

// Ping verifies the cached connection, resetting it when unusable so the
// next caller re-establishes it.
func (m *Manager) Ping(ctx context.Context) error {
	c, err := m.Client(ctx)
	if err != nil {
		return err
	}
	if err := c.Ping(ctx, nil); err != nil {
		m.Reset(c)
		return err
	}
	return nil
}

// Collection resolves a collection on the configured database.
func (m *Manager) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	c, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(m.dbName).Collection(name), nil
}

// Disconnect closes the cached connection, if any. Used on shutdown.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Disconnect(ctx)
}

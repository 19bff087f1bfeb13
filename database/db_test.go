package database

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newHandle builds a client without dialing; the driver connects lazily.
func newHandle(t *testing.T) *mongo.Client {
	t.Helper()
	c, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return c
}

func TestClient_ReturnsCachedHandle(t *testing.T) {
	m := NewManager("mongodb://127.0.0.1:27017", "hormelys")
	c := newHandle(t)
	m.client = c

	got, err := m.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != c {
		t.Fatal("expected the cached handle back")
	}
}

func TestClient_CancelledContext(t *testing.T) {
	m := NewManager("mongodb://127.0.0.1:1", "hormelys")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either the cancellation or the failed attempt surfaces, never a handle.
	if _, err := m.Client(ctx); err == nil {
		t.Fatal("expected an error")
	}
}

func TestReset(t *testing.T) {
	m := NewManager("mongodb://127.0.0.1:27017", "hormelys")
	c1 := newHandle(t)
	c2 := newHandle(t)

	m.client = c1
	m.Reset(c2) // stale handle, current one stays
	if m.client != c1 {
		t.Fatal("resetting a stale handle must not drop the current one")
	}

	m.Reset(c1)
	if m.client != nil {
		t.Fatal("expected the current handle to be dropped")
	}
}

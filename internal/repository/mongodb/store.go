package mongodb

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"devevent/internal/domain"
)

// Collection names.
const (
	EventsCollection   = "events"
	BookingsCollection = "bookings"
)

// Store owns the process-wide MongoDB connection. main creates it, calls
// Connect once at startup and Disconnect on shutdown; repositories receive
// the *mongo.Database it returns.
type Store struct {
	uri    string
	dbName string
	dial   func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error)
	ping   func(ctx context.Context, client *mongo.Client) error

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewStore returns an unconnected Store.
func NewStore(uri, dbName string) *Store {
	return &Store{uri: uri, dbName: dbName, dial: mongo.Connect, ping: pingPrimary}
}

func pingPrimary(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

// Connect dials and pings the server on first use and returns the shared
// database handle on every later call. Failures wrap domain.ErrConnection
// and leave the store unconnected, so a later call dials again.
func (s *Store) Connect(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	client, err := s.dial(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return nil, fmt.Errorf("%w: mongo connect: %w", domain.ErrConnection, err)
	}
	if err := s.ping(ctx, client); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("%w: mongo ping: %w", domain.ErrConnection, err)
	}
	s.client = client
	s.db = client.Database(s.dbName)
	return s.db, nil
}

// Disconnect closes the connection if one was established.
func (s *Store) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client, s.db = nil, nil
	return err
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"

	"devevent/internal/domain"
)

// Store owns the shared *sql.DB.
type Store struct {
	dsn  string
	open func(driverName, dsn string) (*sql.DB, error)

	mu sync.Mutex
	db *sql.DB
}

func NewStore(dsn string) *Store {
	return &Store{dsn: dsn, open: sql.Open}
}

// Connect returns the shared handle, opening and pinging it on first use.
// Failures wrap domain.ErrConnection and leave the store unconnected, so a
// later call dials again.
func (s *Store) Connect(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	db, err := s.open("postgres", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %w", domain.ErrConnection, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %w", domain.ErrConnection, err)
	}
	s.db = db
	return s.db, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Store is the process wide handle to the gym log database. The pool is opened,
// migrated and seeded on first use; every later call gets the same pool (or the
// same error).
type Store struct {
	params      NewDBPoolParams
	pingTimeout time.Duration

	once sync.Once
	pool *pgxpool.Pool
	err  error
}

func NewStore(params NewDBPoolParams) *Store {
	return &Store{
		params:      params,
		pingTimeout: 10 * time.Second,
	}
}

func (s *Store) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	s.once.Do(func() {
		s.pool, s.err = s.open(ctx)
	})
	return s.pool, s.err
}

func (s *Store) open(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := NewDBPool(ctx, s.params)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db [%s:%s/%s]: %w", s.params.DBHost, s.params.DBPort, s.params.DBName, err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Debugf("store ready: %s:%s/%s", s.params.DBHost, s.params.DBPort, s.params.DBName)
	return pool, nil
}

// Close releases the pool, if it was ever opened.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

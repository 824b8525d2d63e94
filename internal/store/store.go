// Package store provides storage backends for NeuroSoma action plans.
//
// It includes an in-memory store and persistent SQLite, PostgreSQL and Redis
// backends behind the PlanStore interface.
package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// Error variables for store operations
var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrEmptyPlanID  = errors.New("plan id is empty")
)

// PlanStore keeps generated plans together with the intake they were built from.
type PlanStore interface {
	SavePlan(ctx context.Context, rec models.PlanRecord) error
	GetPlan(ctx context.Context, id string) (models.PlanRecord, error)
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN           string        // SQLite file path or PostgreSQL connection string
	RedisAddr     string        // host:port of a Redis server
	RedisPassword string        // optional Redis password
	RedisDB       int           // Redis logical database
	PlanTTL       time.Duration // expiry for Redis entries; zero keeps plans forever
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithSQLiteDSN sets the SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN sets the PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithRedis sets the Redis server address, password and logical database.
func WithRedis(addr, password string, db int) Option {
	return func(o *Opts) {
		o.RedisAddr = addr
		o.RedisPassword = password
		o.RedisDB = db
	}
}

// WithPlanTTL sets how long plans are kept by expiring backends.
func WithPlanTTL(ttl time.Duration) Option {
	return func(o *Opts) { o.PlanTTL = ttl }
}

// DetectDSNType returns the database/sql driver name for a DSN: "postgres" for
// PostgreSQL URLs and key/value connection strings, "sqlite3" otherwise.
func DetectDSNType(dsn string) string {
	d := strings.TrimSpace(dsn)
	if strings.HasPrefix(d, "postgres://") || strings.HasPrefix(d, "postgresql://") {
		return "postgres"
	}
	if strings.Contains(d, "host=") || strings.Contains(d, "dbname=") || strings.Contains(d, "user=") {
		return "postgres"
	}
	return "sqlite3"
}

// New opens the backend selected by the options: Redis when an address is
// set, otherwise PostgreSQL or SQLite by DSN, otherwise the in-memory store.
func New(opts ...Option) (PlanStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.RedisAddr != "":
		slog.Debug("store.New: using Redis store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return NewRedisStore(opts...)
	case cfg.DSN != "" && DetectDSNType(cfg.DSN) == "postgres":
		slog.Debug("store.New: using PostgreSQL store")
		return NewPostgresStore(opts...)
	case cfg.DSN != "":
		slog.Debug("store.New: using SQLite store", "path", cfg.DSN)
		return NewSQLiteStore(opts...)
	default:
		slog.Debug("store.New: no persistence configured, using in-memory store")
		return NewInMemoryStore(), nil
	}
}

// InMemoryStore is a process-local store. Records are copied on the way in and
// out, so callers never share state with the store.
type InMemoryStore struct {
	mu    sync.RWMutex
	plans map[string][]byte
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{plans: make(map[string][]byte)}
}

// SavePlan stores rec under its plan id, replacing any previous record.
func (s *InMemoryStore) SavePlan(ctx context.Context, rec models.PlanRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.plans[rec.Plan.ID] = data
	s.mu.Unlock()
	slog.Debug("InMemoryStore.SavePlan: plan stored", "id", rec.Plan.ID)
	return nil
}

// GetPlan returns the record stored under id.
func (s *InMemoryStore) GetPlan(ctx context.Context, id string) (models.PlanRecord, error) {
	s.mu.RLock()
	data, ok := s.plans[id]
	s.mu.RUnlock()
	if !ok {
		return models.PlanRecord{}, ErrPlanNotFound
	}
	return decodeRecord(data)
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}

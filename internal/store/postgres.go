package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore keeps plans in a PostgreSQL table as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("PostgresStore.NewPostgresStore: creating Postgres store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		slog.Error("Postgres ping failed", "error", err)
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		db.Close()
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgresStore.NewPostgresStore: migrations applied")
	return &PostgresStore{db: db}, nil
}

// SavePlan inserts or replaces the record for its plan id.
func (s *PostgresStore) SavePlan(ctx context.Context, rec models.PlanRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, record, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record, updated_at = NOW()`,
		rec.Plan.ID, string(data), rec.Plan.CreatedAt)
	if err != nil {
		slog.Error("PostgresStore SavePlan failed", "error", err, "id", rec.Plan.ID)
		return fmt.Errorf("failed to save plan %s: %w", rec.Plan.ID, err)
	}
	slog.Debug("PostgresStore SavePlan succeeded", "id", rec.Plan.ID)
	return nil
}

// GetPlan loads the record stored under id.
func (s *PostgresStore) GetPlan(ctx context.Context, id string) (models.PlanRecord, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT record FROM plans WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlanRecord{}, ErrPlanNotFound
	}
	if err != nil {
		slog.Error("PostgresStore GetPlan failed", "error", err, "id", id)
		return models.PlanRecord{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return decodeRecord(data)
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

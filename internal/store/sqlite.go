package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore keeps plans in a single-file SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("SQLiteStore.NewSQLiteStore: creating SQLite store", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		slog.Error("SQLite ping failed", "error", err)
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		db.Close()
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLiteStore.NewSQLiteStore: migrations applied", "path", dsn)

	return &SQLiteStore{db: db}, nil
}

// SavePlan inserts or replaces the record for its plan id.
func (s *SQLiteStore) SavePlan(ctx context.Context, rec models.PlanRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, record, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET record = excluded.record, updated_at = CURRENT_TIMESTAMP`,
		rec.Plan.ID, string(data), rec.Plan.CreatedAt)
	if err != nil {
		slog.Error("SQLiteStore SavePlan failed", "error", err, "id", rec.Plan.ID)
		return fmt.Errorf("failed to save plan %s: %w", rec.Plan.ID, err)
	}
	slog.Debug("SQLiteStore SavePlan succeeded", "id", rec.Plan.ID)
	return nil
}

// GetPlan loads the record stored under id.
func (s *SQLiteStore) GetPlan(ctx context.Context, id string) (models.PlanRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM plans WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PlanRecord{}, ErrPlanNotFound
	}
	if err != nil {
		slog.Error("SQLiteStore GetPlan failed", "error", err, "id", id)
		return models.PlanRecord{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return decodeRecord([]byte(data))
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package store provides storage backends for intake handoffs and analytics
// events.
//
// Three backends are available: PostgreSQL for production, SQLite for small
// deployments, and a JSON file fallback used when no database is configured.
// An in-memory store backs tests.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

// Store is the persistence interface consumed by the engine, the API layer,
// and the reporting job.
type Store interface {
	// SaveHandoff persists a completed handoff and returns it with its
	// assigned ID.
	SaveHandoff(ctx context.Context, rec models.HandoffRecord) (models.HandoffRecord, error)
	// ListHandoffs returns the most recent handoffs, newest first. A limit
	// of 0 means all.
	ListHandoffs(ctx context.Context, limit int) ([]models.HandoffRecord, error)
	// SaveEvent records one analytics event.
	SaveEvent(ctx context.Context, ev models.AnalyticsEvent) error
	// EventSummary aggregates analytics between start and end (inclusive).
	EventSummary(ctx context.Context, start, end time.Time) (models.AnalyticsSummary, error)
	// Close releases the underlying resources.
	Close() error
}

// Opts holds configuration options for store implementations.
type Opts struct {
	// DSN is the database connection string (Postgres URL or SQLite file
	// path).
	DSN string
}

// Option defines a functional option for store configuration.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// DSNType identifies which backend a connection string selects.
type DSNType string

// Supported DSN types.
const (
	DSNTypePostgres DSNType = "postgres"
	DSNTypeSQLite   DSNType = "sqlite"
)

// DetectDSNType inspects a DSN and reports which backend it selects.
// Postgres URLs and key=value connection strings map to Postgres; anything
// else is treated as an SQLite file path.
func DetectDSNType(dsn string) DSNType {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DSNTypePostgres
	}
	if strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname=") {
		return DSNTypePostgres
	}
	return DSNTypeSQLite
}

// NewStore creates the store selected by the DSN.
func NewStore(opts ...Option) (Store, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if DetectDSNType(cfg.DSN) == DSNTypePostgres {
		return NewPostgresStore(opts...)
	}
	return NewSQLiteStore(opts...)
}

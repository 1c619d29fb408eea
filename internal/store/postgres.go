// This file implements the PostgreSQL-backed store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/google/uuid"
	"github.com/kekarehab/intakebot/internal/models"
	_ "github.com/lib/pq"
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

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	// Apply options
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
		return nil, err
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	// Run migrations to ensure the handoffs and analytics_events tables exist
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgresStore.NewPostgresStore: migrations applied")
	return &PostgresStore{db: db}, nil
}

// SaveHandoff inserts a handoff record. The full record is serialized into
// form_data; the frequently-queried fields get their own columns.
func (s *PostgresStore) SaveHandoff(ctx context.Context, rec models.HandoffRecord) (models.HandoffRecord, error) {
	if err := rec.Validate(); err != nil {
		return models.HandoffRecord{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	formData, err := json.Marshal(rec)
	if err != nil {
		slog.Error("PostgresStore SaveHandoff marshal failed", "error", err, "id", rec.ID)
		return models.HandoffRecord{}, fmt.Errorf("failed to marshal handoff form data: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO handoffs (id, service_type, topic, contact_name, contact_type, contact_value, care_for, care_setting, form_data, session_id, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, string(rec.ServiceType), nilIfEmpty(rec.Topic), rec.ContactName, nilIfEmpty(string(rec.ContactType)), rec.ContactValue,
		nilIfEmpty(rec.CareFor), nilIfEmpty(rec.CareSetting), formData, nilIfEmpty(rec.SessionID), nilIfEmpty(rec.IPHash), rec.Timestamp)
	if err != nil {
		slog.Error("PostgresStore SaveHandoff failed", "error", err, "id", rec.ID)
		return models.HandoffRecord{}, fmt.Errorf("failed to insert handoff %s: %w", rec.ID, err)
	}
	slog.Debug("PostgresStore SaveHandoff succeeded", "id", rec.ID, "service_type", rec.ServiceType)
	return rec, nil
}

// ListHandoffs returns the most recent handoffs, newest first.
func (s *PostgresStore) ListHandoffs(ctx context.Context, limit int) ([]models.HandoffRecord, error) {
	query := `SELECT form_data, created_at FROM handoffs ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("PostgresStore ListHandoffs query failed", "error", err)
		return nil, fmt.Errorf("failed to query handoffs: %w", err)
	}
	defer rows.Close()
	var records []models.HandoffRecord
	for rows.Next() {
		var formData []byte
		var createdAt time.Time
		if err := rows.Scan(&formData, &createdAt); err != nil {
			slog.Error("PostgresStore ListHandoffs scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan handoff row: %w", err)
		}
		var rec models.HandoffRecord
		if err := json.Unmarshal(formData, &rec); err != nil {
			slog.Error("PostgresStore ListHandoffs unmarshal failed", "error", err)
			return nil, fmt.Errorf("failed to unmarshal handoff form data: %w", err)
		}
		rec.Timestamp = createdAt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore ListHandoffs rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate handoff rows: %w", err)
	}
	slog.Debug("PostgresStore ListHandoffs succeeded", "count", len(records))
	return records, nil
}

// SaveEvent records one analytics event.
func (s *PostgresStore) SaveEvent(ctx context.Context, ev models.AnalyticsEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	metadata, err := marshalMetadata(ev.Metadata)
	if err != nil {
		slog.Error("PostgresStore SaveEvent marshal failed", "error", err, "event_type", ev.EventType)
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO analytics_events (session_id, event_type, metadata, ip_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		ev.SessionID, string(ev.EventType), metadata, nilIfEmpty(ev.IPHash), ev.CreatedAt)
	if err != nil {
		slog.Error("PostgresStore SaveEvent failed", "error", err, "event_type", ev.EventType)
		return fmt.Errorf("failed to insert analytics event %s: %w", ev.EventType, err)
	}
	slog.Debug("PostgresStore SaveEvent succeeded", "event_type", ev.EventType, "session_id", ev.SessionID)
	return nil
}

// EventSummary aggregates analytics between start and end.
func (s *PostgresStore) EventSummary(ctx context.Context, start, end time.Time) (models.AnalyticsSummary, error) {
	summary := models.AnalyticsSummary{
		StartDate:   start,
		EndDate:     end,
		EventCounts: make(map[models.EventType]int),
	}

	rows, err := s.db.QueryContext(ctx, `SELECT event_type, COUNT(*) FROM analytics_events WHERE created_at >= $1 AND created_at <= $2 GROUP BY event_type`, start, end)
	if err != nil {
		slog.Error("PostgresStore EventSummary query failed", "error", err)
		return models.AnalyticsSummary{}, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			slog.Error("PostgresStore EventSummary scan failed", "error", err)
			return models.AnalyticsSummary{}, fmt.Errorf("failed to scan event count row: %w", err)
		}
		summary.EventCounts[models.EventType(eventType)] = count
		summary.TotalEvents += count
	}
	if err := rows.Err(); err != nil {
		return models.AnalyticsSummary{}, fmt.Errorf("failed to iterate event count rows: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT session_id) FROM analytics_events WHERE created_at >= $1 AND created_at <= $2`, start, end).Scan(&summary.TotalSessions); err != nil {
		slog.Error("PostgresStore EventSummary session count failed", "error", err)
		return models.AnalyticsSummary{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM handoffs WHERE created_at >= $1 AND created_at <= $2`, start, end).Scan(&summary.HandoffCount); err != nil {
		slog.Error("PostgresStore EventSummary handoff count failed", "error", err)
		return models.AnalyticsSummary{}, fmt.Errorf("failed to count handoffs: %w", err)
	}

	svcRows, err := s.db.QueryContext(ctx, `SELECT service_type, COUNT(*) FROM handoffs WHERE created_at >= $1 AND created_at <= $2 GROUP BY service_type ORDER BY COUNT(*) DESC`, start, end)
	if err != nil {
		slog.Error("PostgresStore EventSummary service breakdown failed", "error", err)
		return models.AnalyticsSummary{}, fmt.Errorf("failed to query service type counts: %w", err)
	}
	defer svcRows.Close()
	for svcRows.Next() {
		var stc models.ServiceTypeCount
		if err := svcRows.Scan(&stc.ServiceType, &stc.Count); err != nil {
			return models.AnalyticsSummary{}, fmt.Errorf("failed to scan service type row: %w", err)
		}
		summary.ByServiceType = append(summary.ByServiceType, stc)
	}
	if err := svcRows.Err(); err != nil {
		return models.AnalyticsSummary{}, fmt.Errorf("failed to iterate service type rows: %w", err)
	}

	finalizeSummary(&summary)
	slog.Debug("PostgresStore EventSummary succeeded", "total_events", summary.TotalEvents, "handoffs", summary.HandoffCount)
	return summary, nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

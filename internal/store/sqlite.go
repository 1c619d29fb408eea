// This file implements the SQLite-backed store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/google/uuid"
	"github.com/kekarehab/intakebot/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Constants for SQLite store configuration
const (
	// DefaultDirPermissions defines the default permissions for database directories
	DefaultDirPermissions = 0755
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	// Apply options
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

	// Ensure the directory exists
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	// Run migrations to ensure tables exist
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLiteStore.NewSQLiteStore: migrations applied")

	return &SQLiteStore{db: db}, nil
}

// SaveHandoff inserts a handoff record. The full record is serialized into
// form_data; the frequently-queried fields get their own columns.
func (s *SQLiteStore) SaveHandoff(ctx context.Context, rec models.HandoffRecord) (models.HandoffRecord, error) {
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
		slog.Error("SQLiteStore SaveHandoff marshal failed", "error", err, "id", rec.ID)
		return models.HandoffRecord{}, fmt.Errorf("failed to marshal handoff form data: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO handoffs (id, service_type, topic, contact_name, contact_type, contact_value, care_for, care_setting, form_data, session_id, ip_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.ServiceType), nilIfEmpty(rec.Topic), rec.ContactName, nilIfEmpty(string(rec.ContactType)), rec.ContactValue,
		nilIfEmpty(rec.CareFor), nilIfEmpty(rec.CareSetting), string(formData), nilIfEmpty(rec.SessionID), nilIfEmpty(rec.IPHash), rec.Timestamp)
	if err != nil {
		slog.Error("SQLiteStore SaveHandoff failed", "error", err, "id", rec.ID)
		return models.HandoffRecord{}, fmt.Errorf("failed to insert handoff %s: %w", rec.ID, err)
	}
	slog.Debug("SQLiteStore SaveHandoff succeeded", "id", rec.ID, "service_type", rec.ServiceType)
	return rec, nil
}

// ListHandoffs returns the most recent handoffs, newest first.
func (s *SQLiteStore) ListHandoffs(ctx context.Context, limit int) ([]models.HandoffRecord, error) {
	query := `SELECT form_data, created_at FROM handoffs ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("SQLiteStore ListHandoffs query failed", "error", err)
		return nil, fmt.Errorf("failed to query handoffs: %w", err)
	}
	defer rows.Close()
	var records []models.HandoffRecord
	for rows.Next() {
		var formData string
		var createdAt time.Time
		if err := rows.Scan(&formData, &createdAt); err != nil {
			slog.Error("SQLiteStore ListHandoffs scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan handoff row: %w", err)
		}
		var rec models.HandoffRecord
		if err := json.Unmarshal([]byte(formData), &rec); err != nil {
			slog.Error("SQLiteStore ListHandoffs unmarshal failed", "error", err)
			return nil, fmt.Errorf("failed to unmarshal handoff form data: %w", err)
		}
		rec.Timestamp = createdAt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore ListHandoffs rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate handoff rows: %w", err)
	}
	slog.Debug("SQLiteStore ListHandoffs succeeded", "count", len(records))
	return records, nil
}

// SaveEvent records one analytics event.
func (s *SQLiteStore) SaveEvent(ctx context.Context, ev models.AnalyticsEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	metadata, err := marshalMetadata(ev.Metadata)
	if err != nil {
		slog.Error("SQLiteStore SaveEvent marshal failed", "error", err, "event_type", ev.EventType)
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO analytics_events (session_id, event_type, metadata, ip_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		ev.SessionID, string(ev.EventType), metadata, nilIfEmpty(ev.IPHash), ev.CreatedAt)
	if err != nil {
		slog.Error("SQLiteStore SaveEvent failed", "error", err, "event_type", ev.EventType)
		return fmt.Errorf("failed to insert analytics event %s: %w", ev.EventType, err)
	}
	slog.Debug("SQLiteStore SaveEvent succeeded", "event_type", ev.EventType, "session_id", ev.SessionID)
	return nil
}

// EventSummary aggregates analytics between start and end.
func (s *SQLiteStore) EventSummary(ctx context.Context, start, end time.Time) (models.AnalyticsSummary, error) {
	summary := models.AnalyticsSummary{
		StartDate:   start,
		EndDate:     end,
		EventCounts: make(map[models.EventType]int),
	}

	rows, err := s.db.QueryContext(ctx, `SELECT event_type, COUNT(*) FROM analytics_events WHERE created_at >= ? AND created_at <= ? GROUP BY event_type`, start, end)
	if err != nil {
		slog.Error("SQLiteStore EventSummary query failed", "error", err)
		return models.AnalyticsSummary{}, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			slog.Error("SQLiteStore EventSummary scan failed", "error", err)
			return models.AnalyticsSummary{}, fmt.Errorf("failed to scan event count row: %w", err)
		}
		summary.EventCounts[models.EventType(eventType)] = count
		summary.TotalEvents += count
	}
	if err := rows.Err(); err != nil {
		return models.AnalyticsSummary{}, fmt.Errorf("failed to iterate event count rows: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT session_id) FROM analytics_events WHERE created_at >= ? AND created_at <= ?`, start, end).Scan(&summary.TotalSessions); err != nil {
		slog.Error("SQLiteStore EventSummary session count failed", "error", err)
		return models.AnalyticsSummary{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM handoffs WHERE created_at >= ? AND created_at <= ?`, start, end).Scan(&summary.HandoffCount); err != nil {
		slog.Error("SQLiteStore EventSummary handoff count failed", "error", err)
		return models.AnalyticsSummary{}, fmt.Errorf("failed to count handoffs: %w", err)
	}

	svcRows, err := s.db.QueryContext(ctx, `SELECT service_type, COUNT(*) FROM handoffs WHERE created_at >= ? AND created_at <= ? GROUP BY service_type ORDER BY COUNT(*) DESC`, start, end)
	if err != nil {
		slog.Error("SQLiteStore EventSummary service breakdown failed", "error", err)
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
	slog.Debug("SQLiteStore EventSummary succeeded", "total_events", summary.TotalEvents, "handoffs", summary.HandoffCount)
	return summary, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// This file implements a JSON file store used when no database is configured.
// Handoffs land in handoffs.json and analytics events in events.json inside
// the data directory, mirroring what small deployments expect to find on disk.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kekarehab/intakebot/internal/lockfile"
	"github.com/kekarehab/intakebot/internal/models"
)

// File names inside the data directory.
const (
	HandoffsFileName = "handoffs.json"
	EventsFileName   = "events.json"
)

// JSONFileStore persists handoffs and analytics events as JSON arrays on disk.
// An exclusive directory lock prevents two processes from clobbering the files.
type JSONFileStore struct {
	mu       sync.Mutex
	dir      string
	lock     *lockfile.Lock
	handoffs []models.HandoffRecord
	events   []models.AnalyticsEvent
}

// NewJSONFileStore opens (or creates) a JSON file store rooted at dataDir.
func NewJSONFileStore(dataDir string) (*JSONFileStore, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory not set")
	}
	lock, err := lockfile.AcquireLock(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to lock data directory: %w", err)
	}
	s := &JSONFileStore{dir: dataDir, lock: lock}
	if err := loadJSONFile(filepath.Join(dataDir, HandoffsFileName), &s.handoffs); err != nil {
		lock.Release()
		return nil, err
	}
	if err := loadJSONFile(filepath.Join(dataDir, EventsFileName), &s.events); err != nil {
		lock.Release()
		return nil, err
	}
	slog.Debug("JSONFileStore.NewJSONFileStore: store opened", "dir", dataDir, "handoffs", len(s.handoffs), "events", len(s.events))
	return s, nil
}

// SaveHandoff appends a handoff record and rewrites handoffs.json.
func (s *JSONFileStore) SaveHandoff(_ context.Context, rec models.HandoffRecord) (models.HandoffRecord, error) {
	if err := rec.Validate(); err != nil {
		return models.HandoffRecord{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handoffs = append(s.handoffs, rec)
	if err := writeJSONFile(filepath.Join(s.dir, HandoffsFileName), s.handoffs); err != nil {
		slog.Error("JSONFileStore SaveHandoff write failed", "error", err, "id", rec.ID)
		return models.HandoffRecord{}, err
	}
	slog.Debug("JSONFileStore SaveHandoff succeeded", "id", rec.ID, "service_type", rec.ServiceType)
	return rec, nil
}

// ListHandoffs returns the most recent handoffs, newest first.
func (s *JSONFileStore) ListHandoffs(_ context.Context, limit int) ([]models.HandoffRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]models.HandoffRecord, 0, len(s.handoffs))
	for i := len(s.handoffs) - 1; i >= 0; i-- {
		records = append(records, s.handoffs[i])
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records, nil
}

// SaveEvent appends one analytics event and rewrites events.json.
func (s *JSONFileStore) SaveEvent(_ context.Context, ev models.AnalyticsEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if err := writeJSONFile(filepath.Join(s.dir, EventsFileName), s.events); err != nil {
		slog.Error("JSONFileStore SaveEvent write failed", "error", err, "event_type", ev.EventType)
		return err
	}
	return nil
}

// EventSummary aggregates analytics between start and end.
func (s *JSONFileStore) EventSummary(_ context.Context, start, end time.Time) (models.AnalyticsSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := models.AnalyticsSummary{
		StartDate:   start,
		EndDate:     end,
		EventCounts: make(map[models.EventType]int),
	}
	sessions := make(map[string]bool)
	for _, ev := range s.events {
		if ev.CreatedAt.Before(start) || ev.CreatedAt.After(end) {
			continue
		}
		summary.EventCounts[ev.EventType]++
		summary.TotalEvents++
		sessions[ev.SessionID] = true
	}
	summary.TotalSessions = len(sessions)
	byService := make(map[models.ServiceType]int)
	for _, rec := range s.handoffs {
		if rec.Timestamp.Before(start) || rec.Timestamp.After(end) {
			continue
		}
		summary.HandoffCount++
		byService[rec.ServiceType]++
	}
	for svc, count := range byService {
		summary.ByServiceType = append(summary.ByServiceType, models.ServiceTypeCount{ServiceType: svc, Count: count})
	}
	finalizeSummary(&summary)
	return summary, nil
}

// Close releases the data directory lock.
func (s *JSONFileStore) Close() error {
	return s.lock.Release()
}

// loadJSONFile reads a JSON array file into dst. A missing file leaves dst
// untouched.
func loadJSONFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSONFile writes v as indented JSON via a temp file rename so a crash
// mid-write never leaves a truncated file behind.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}

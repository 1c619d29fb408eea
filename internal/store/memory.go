// This file implements an in-memory store used in tests and as the default
// when no persistence is configured.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kekarehab/intakebot/internal/models"
)

// InMemoryStore keeps handoffs and analytics events in process memory.
type InMemoryStore struct {
	mu       sync.Mutex
	handoffs []models.HandoffRecord
	events   []models.AnalyticsEvent
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveHandoff appends a handoff record, assigning an ID and timestamp when
// missing.
func (s *InMemoryStore) SaveHandoff(_ context.Context, rec models.HandoffRecord) (models.HandoffRecord, error) {
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
	return rec, nil
}

// ListHandoffs returns the most recent handoffs, newest first.
func (s *InMemoryStore) ListHandoffs(_ context.Context, limit int) ([]models.HandoffRecord, error) {
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

// SaveEvent appends one analytics event.
func (s *InMemoryStore) SaveEvent(_ context.Context, ev models.AnalyticsEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// EventSummary aggregates analytics between start and end.
func (s *InMemoryStore) EventSummary(_ context.Context, start, end time.Time) (models.AnalyticsSummary, error) {
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

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}

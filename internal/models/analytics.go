package models

import "time"

// EventType names an analytics event reported by the client or emitted by
// the server.
type EventType string

// Analytics event types.
const (
	EventSessionStarted        EventType = "session_started"
	EventSessionEnded          EventType = "session_ended"
	EventButtonClicked         EventType = "button_clicked"
	EventIntakeFlowStarted     EventType = "intake_flow_started"
	EventIntakeStepCompleted   EventType = "intake_step_completed"
	EventIntakeFlowCompleted   EventType = "intake_flow_completed"
	EventIntakeFlowAbandoned   EventType = "intake_flow_abandoned"
	EventFAQCategoryViewed     EventType = "faq_category_viewed"
	EventFAQQuestionViewed     EventType = "faq_question_viewed"
	EventFAQResolutionFeedback EventType = "faq_resolution_feedback"
	EventBackButtonUsed        EventType = "back_button_used"
	EventPHIWarningTriggered   EventType = "phi_warning_triggered"
	EventErrorOccurred         EventType = "error_occurred"
	EventChatOpened            EventType = "chat_opened"
	EventChatClosed            EventType = "chat_closed"
)

var validEventTypes = map[EventType]bool{
	EventSessionStarted:        true,
	EventSessionEnded:          true,
	EventButtonClicked:         true,
	EventIntakeFlowStarted:     true,
	EventIntakeStepCompleted:   true,
	EventIntakeFlowCompleted:   true,
	EventIntakeFlowAbandoned:   true,
	EventFAQCategoryViewed:     true,
	EventFAQQuestionViewed:     true,
	EventFAQResolutionFeedback: true,
	EventBackButtonUsed:        true,
	EventPHIWarningTriggered:   true,
	EventErrorOccurred:         true,
	EventChatOpened:            true,
	EventChatClosed:            true,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	return validEventTypes[t]
}

// AnalyticsEvent is one recorded usage event.
type AnalyticsEvent struct {
	SessionID string                 `json:"session_id"`
	EventType EventType              `json:"event_type"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IPHash    string                 `json:"ip_hash,omitempty"`
	CreatedAt time.Time              `json:"created_at,omitempty"`
}

// Validate checks an incoming analytics event.
func (e AnalyticsEvent) Validate() error {
	if e.SessionID == "" {
		return ErrEmptySessionID
	}
	if !e.EventType.Valid() {
		return ErrInvalidEventType
	}
	return nil
}

// ServiceTypeCount is a per-service slice of the conversion breakdown.
type ServiceTypeCount struct {
	ServiceType ServiceType `json:"service_type"`
	Count       int         `json:"count"`
	Percentage  float64     `json:"percentage"`
}

// AnalyticsSummary aggregates usage over a reporting window.
type AnalyticsSummary struct {
	StartDate      time.Time          `json:"start_date"`
	EndDate        time.Time          `json:"end_date"`
	TotalSessions  int                `json:"total_sessions"`
	TotalEvents    int                `json:"total_events"`
	HandoffCount   int                `json:"handoff_count"`
	ConversionRate float64            `json:"conversion_rate"`
	PHIWarnings    int                `json:"phi_warnings"`
	BackUsage      int                `json:"back_usage"`
	EventCounts    map[EventType]int  `json:"event_counts"`
	ByServiceType  []ServiceTypeCount `json:"by_service_type"`
}

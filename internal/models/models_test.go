package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestChatRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ChatRequest
		wantErr error
	}{
		{"valid minimal", ChatRequest{Message: "hello"}, nil},
		{"empty message", ChatRequest{}, ErrEmptyMessage},
		{"oversized message", ChatRequest{Message: strings.Repeat("a", MaxMessageLength+1)}, ErrMessageTooLong},
		{"max length accepted", ChatRequest{Message: strings.Repeat("a", MaxMessageLength)}, nil},
		{
			"bad session state",
			ChatRequest{Message: "hi", SessionData: &Session{SessionFields: SessionFields{State: "awaiting_nothing"}}},
			ErrInvalidState,
		},
		{
			"empty session state allowed",
			ChatRequest{Message: "hi", SessionData: &Session{}},
			nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range []State{StateUserChoice, StateContact, StateSubmitConfirmation, StateComplete} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []State{"", "awaiting_unknown", "AWAITING_DOB"} {
		if State(s).Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestAnalyticsEventValidate(t *testing.T) {
	ev := AnalyticsEvent{SessionID: "s_1", EventType: EventSessionStarted}
	if err := ev.Validate(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	ev.SessionID = ""
	if err := ev.Validate(); !errors.Is(err, ErrEmptySessionID) {
		t.Errorf("missing session id: got %v, want %v", err, ErrEmptySessionID)
	}

	ev = AnalyticsEvent{SessionID: "s_1", EventType: "made_up_event"}
	if err := ev.Validate(); !errors.Is(err, ErrInvalidEventType) {
		t.Errorf("unknown event type: got %v, want %v", err, ErrInvalidEventType)
	}
}

func TestHandoffRecordValidate(t *testing.T) {
	rec := HandoffRecord{ContactName: "Jane Doe", ContactValue: "jane@example.com"}
	if err := rec.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	if err := (HandoffRecord{ContactValue: "jane@example.com"}).Validate(); !errors.Is(err, ErrEmptyHandoffName) {
		t.Errorf("missing name: got %v, want %v", err, ErrEmptyHandoffName)
	}
	if err := (HandoffRecord{ContactName: "Jane Doe"}).Validate(); !errors.Is(err, ErrEmptyHandoffValue) {
		t.Errorf("missing contact value: got %v, want %v", err, ErrEmptyHandoffValue)
	}
}

func TestSessionFieldsSerializeFlat(t *testing.T) {
	s := NewSession()
	s.ContactName = "Jane Doe"

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["contact_name"] != "Jane Doe" {
		t.Errorf("embedded fields should serialize at the top level, got %v", decoded)
	}
	if _, nested := decoded["SessionFields"]; nested {
		t.Error("embedded struct must not appear as a nested object")
	}
}

func TestNewSessionSerializesMinimal(t *testing.T) {
	raw, err := json.Marshal(NewSession())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"state":"awaiting_user_choice"}`
	if string(raw) != want {
		t.Errorf("fresh session = %s, want %s", raw, want)
	}
}

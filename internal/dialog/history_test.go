package dialog

import (
	"fmt"
	"testing"

	"github.com/kekarehab/intakebot/internal/models"
)

func TestPushStateSnapshotsCurrentFields(t *testing.T) {
	s := models.NewSession()
	s.State = models.StateContact
	s.ContactName = "Jane"

	s = PushState(s)

	if len(s.StateHistory) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(s.StateHistory))
	}
	if !s.CanGoBack {
		t.Error("CanGoBack should be set after push")
	}
	snap := s.StateHistory[0]
	if snap.State != models.StateContact {
		t.Errorf("snapshot state = %q, want %q", snap.State, models.StateContact)
	}
	if snap.Data.ContactName != "Jane" {
		t.Errorf("snapshot should capture session fields, got %+v", snap.Data)
	}
}

func TestPushStateCapsDepth(t *testing.T) {
	s := models.NewSession()
	for i := 0; i < models.MaxHistoryDepth+10; i++ {
		s.ContactName = fmt.Sprintf("name-%d", i)
		s = PushState(s)
	}
	if len(s.StateHistory) != models.MaxHistoryDepth {
		t.Fatalf("history depth = %d, want %d", len(s.StateHistory), models.MaxHistoryDepth)
	}
	// Oldest entries fall off: the first remaining snapshot is number 10
	if got := s.StateHistory[0].Data.ContactName; got != "name-10" {
		t.Errorf("oldest snapshot = %q, want name-10", got)
	}
}

func TestPopStateRestoresFieldsVerbatim(t *testing.T) {
	s := models.NewSession()
	s.State = models.StateDOB
	s.ContactName = "Jane"
	s = PushState(s)

	// Mutate after the push, as answering a question would
	s.State = models.StateGender
	s.DateOfBirth = "01/15/1950"

	restored, ok := PopState(s)
	if !ok {
		t.Fatal("PopState should succeed with history present")
	}
	if restored.State != models.StateDOB {
		t.Errorf("restored state = %q, want %q", restored.State, models.StateDOB)
	}
	if restored.DateOfBirth != "" {
		t.Errorf("field entered after the snapshot should be discarded, got %q", restored.DateOfBirth)
	}
	if restored.ContactName != "Jane" {
		t.Errorf("restored ContactName = %q, want Jane", restored.ContactName)
	}
	if len(restored.StateHistory) != 0 {
		t.Errorf("history should shrink on pop, got %d", len(restored.StateHistory))
	}
	if restored.CanGoBack {
		t.Error("CanGoBack should clear when history is empty")
	}
}

func TestPopStateEmptyHistory(t *testing.T) {
	if _, ok := PopState(models.NewSession()); ok {
		t.Error("PopState on empty history should return false")
	}
}

func TestCanGoBackDisabledStates(t *testing.T) {
	s := models.NewSession()
	s.State = models.StateDOB
	s = PushState(s)

	if !CanGoBack(s) {
		t.Error("CanGoBack should be true with history in a normal state")
	}

	s.State = models.StateUserChoice
	if CanGoBack(s) {
		t.Error("CanGoBack should be false on the home menu")
	}
	s.State = models.StateComplete
	if CanGoBack(s) {
		t.Error("CanGoBack should be false in the terminal state")
	}
}

func TestClearHistory(t *testing.T) {
	s := models.NewSession()
	s = PushState(s)
	s = PushState(s)

	s = ClearHistory(s)
	if len(s.StateHistory) != 0 || s.CanGoBack {
		t.Errorf("ClearHistory should drop all snapshots, got %d, canGoBack=%v", len(s.StateHistory), s.CanGoBack)
	}
}

func TestSnapshotsDoNotAliasSession(t *testing.T) {
	s := models.NewSession()
	s.AssistiveDevices = []string{"cane"}
	s = PushState(s)

	// Growing the live slice must not change the snapshot
	s.AssistiveDevices = append(append([]string(nil), s.AssistiveDevices...), "walker")

	if got := len(s.StateHistory[0].Data.AssistiveDevices); got != 1 {
		t.Errorf("snapshot devices = %d entries, want 1", got)
	}
}

// Package dialog implements the scripted intake conversation: the state
// machine, its flows, back navigation, and the submit handoff.
package dialog

import (
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

// noBackStates are states from which back navigation is disabled even when
// history exists: the home menu and the terminal state.
var noBackStates = map[models.State]bool{
	models.StateUserChoice: true,
	models.StateComplete:   true,
}

// PushState records the current session fields on the history stack before a
// transition. The snapshot never includes the history itself, so its size is
// independent of conversation depth. The stack is capped at
// models.MaxHistoryDepth; the oldest entries fall off first.
func PushState(s models.Session) models.Session {
	state := s.State
	if state == "" {
		state = models.StateUserChoice
	}
	snap := models.Snapshot{
		State:     state,
		Data:      s.SessionFields,
		Timestamp: time.Now().UnixMilli(),
	}
	history := append(append([]models.Snapshot(nil), s.StateHistory...), snap)
	if len(history) > models.MaxHistoryDepth {
		history = history[len(history)-models.MaxHistoryDepth:]
	}
	s.StateHistory = history
	s.CanGoBack = true
	return s
}

// PopState restores the most recent snapshot. The returned session is the
// snapshot's fields verbatim with the shortened history attached; anything
// entered since the snapshot is discarded. The second return is false when
// there is nothing to pop.
func PopState(s models.Session) (models.Session, bool) {
	if len(s.StateHistory) == 0 {
		return models.Session{}, false
	}
	last := len(s.StateHistory) - 1
	snap := s.StateHistory[last]
	restored := models.Session{
		SessionFields: snap.Data,
		StateHistory:  append([]models.Snapshot(nil), s.StateHistory[:last]...),
	}
	restored.State = snap.State
	restored.CanGoBack = len(restored.StateHistory) > 0
	return restored, true
}

// CanGoBack reports whether back navigation is available from the session's
// current state.
func CanGoBack(s models.Session) bool {
	state := s.State
	if state == "" {
		state = models.StateUserChoice
	}
	if noBackStates[state] {
		return false
	}
	return len(s.StateHistory) > 0
}

// ClearHistory drops all snapshots, used when returning home or completing a
// flow.
func ClearHistory(s models.Session) models.Session {
	s.StateHistory = nil
	s.CanGoBack = false
	return s
}

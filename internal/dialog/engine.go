package dialog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
	"github.com/kekarehab/intakebot/internal/util"
)

// HandoffStore persists completed handoff requests.
type HandoffStore interface {
	SaveHandoff(ctx context.Context, rec models.HandoffRecord) (models.HandoffRecord, error)
}

// Notifier delivers handoff notifications to the intake team.
type Notifier interface {
	SendHandoff(ctx context.Context, rec models.HandoffRecord) error
}

// Engine drives the scripted conversation. It holds no per-session state;
// every call gets the full session from the request and returns the updated
// session in the response.
type Engine struct {
	store    HandoffStore
	notifier Notifier
}

// NewEngine creates a conversation engine. Both dependencies may be nil, in
// which case submits complete without persistence or notification.
func NewEngine(store HandoffStore, notifier Notifier) *Engine {
	return &Engine{store: store, notifier: notifier}
}

// HandleMessage processes one user message and returns the bot's reply. It
// never fails: anything unrecognized resets to the home screen.
//
// Interrupts run before state dispatch, in order: the PHI guard, the
// "home"/"start" command, then "back" navigation.
func (e *Engine) HandleMessage(ctx context.Context, req models.ChatRequest, ipHash string) models.BotResponse {
	session := models.NewSession()
	if req.SessionData != nil {
		session = *req.SessionData
	}
	if session.State == "" {
		session.State = models.StateUserChoice
	}
	if session.SessionID == "" {
		session.SessionID = req.SessionID
	}
	if session.SessionID == "" {
		session.SessionID = util.GenerateSessionID()
	}

	slog.Info("Engine.HandleMessage: message received",
		"session_id", req.SessionID, "ip_hash", ipHash,
		"state", session.State, "message_length", len(req.Message))

	if models.ContainsPHI(req.Message) {
		slog.Warn("Engine.HandleMessage: PHI detected", "session_id", req.SessionID, "ip_hash", ipHash)
		session.State = models.StateUserChoice
		return e.finalize(models.BotResponse{
			Text:        phiWarningText,
			Buttons:     navButtons(nil, session),
			NextState:   models.StateUserChoice,
			SessionData: session,
		})
	}

	session = appendUserMessage(session, req.Message)

	command := strings.ToLower(req.Message)
	if command == "home" || command == "start" {
		home := HomeScreen()
		home.SessionData = ClearHistory(home.SessionData)
		return e.finalize(home)
	}
	if command == "back" {
		restored, ok := PopState(session)
		if !ok {
			return e.finalize(HomeScreen())
		}
		slog.Debug("Engine.HandleMessage: restored previous state",
			"session_id", req.SessionID, "state", restored.State)
		return e.finalize(restoreResponse(restored))
	}

	return e.finalize(e.dispatch(ctx, req.Message, session, ipHash, req.SessionID))
}

func (e *Engine) dispatch(ctx context.Context, message string, session models.Session, ipHash, sessionID string) models.BotResponse {
	switch session.State {
	case models.StateUserChoice:
		return e.handleUserChoice(message, session)
	case models.StateContact:
		return e.handleContact(ctx, message, session)
	case models.StateDOB:
		return handleDOB(message, session)
	case models.StateGender:
		return handleGender(message, session)
	case models.StateAddress:
		return handleAddress(message, session)
	case models.StateEmergencyContact:
		return handleEmergencyContact(message, session)
	case models.StateMedicalInfo:
		return handleMedicalInfo(message, session)
	case models.StateAssistiveDevices:
		return handleAssistiveDevices(message, session)
	case models.StateServices:
		return handleServices(message, session)
	case models.StateMobility:
		return handleMobility(message, session)
	case models.StateReferral:
		return handleReferral(message, session)
	case models.StateInsurance:
		return handleInsurance(message, session)
	case models.StateCareFor:
		return handleCareFor(message, session)
	case models.StateSetting:
		return handleSetting(message, session)
	case models.StateBusinessInfo:
		return handleBusinessInfo(message, session)
	case models.StateSupportType:
		return handleSupportType(message, session)
	case models.StateAgencyStatus:
		return handleAgencyStatus(message, session)
	case models.StateStartDate:
		return handleStartDate(message, session)
	case models.StateNotesAccreditation:
		return handleAccreditationNotes(message, session)
	case models.StateDiscipline:
		return handleDiscipline(message, session)
	case models.StateLicense:
		return handleLicense(message, session)
	case models.StateExperience:
		return handleExperience(message, session)
	case models.StateWorkArea:
		return handleWorkArea(message, session)
	case models.StateAvailability:
		return handleAvailability(message, session)
	case models.StateTransportation:
		return handleTransportation(message, session)
	case models.StateConsent:
		return handleConsent(message, session)
	case models.StateSubmitConfirmation:
		return e.handleSubmitConfirmation(ctx, message, session, ipHash, sessionID)
	case models.StateComplete:
		return HomeScreen()
	default:
		slog.Warn("Engine.dispatch: unknown state, resetting to home", "state", session.State)
		return HomeScreen()
	}
}

const phiWarningText = "Please do not share medical details, diagnosis, medications, or personal health information. For your privacy and security, contact us directly at (617) 427-8494 or visit kekarehabservices.com/contact-us/ to discuss your needs."

// navButtons appends the standard navigation row: Back when history allows
// it, then Back to Menu and Speak to a Human.
func navButtons(buttons []models.Button, s models.Session) []models.Button {
	out := append([]models.Button(nil), buttons...)
	if CanGoBack(s) {
		out = append(out, models.Button{Label: "Back", Value: "back"})
	}
	out = append(out,
		models.Button{Label: "Back to Menu", Value: "home"},
		models.Button{Label: "Speak to a Human", Value: "contact_me"},
	)
	return out
}

// appendUserMessage records the user's message on the session transcript,
// keeping only the most recent entries.
func appendUserMessage(s models.Session, text string) models.Session {
	s.ChatTranscript = appendTranscript(s.ChatTranscript, models.SenderUser, text)
	return s
}

// finalize records the bot's reply on the outgoing session transcript.
func (e *Engine) finalize(resp models.BotResponse) models.BotResponse {
	resp.SessionData.ChatTranscript = appendTranscript(resp.SessionData.ChatTranscript, models.SenderBot, resp.Text)
	return resp
}

func appendTranscript(transcript []models.ChatMessage, sender models.Sender, text string) []models.ChatMessage {
	out := append(append([]models.ChatMessage(nil), transcript...), models.ChatMessage{
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	})
	if len(out) > models.MaxTranscriptLength {
		out = out[len(out)-models.MaxTranscriptLength:]
	}
	return out
}

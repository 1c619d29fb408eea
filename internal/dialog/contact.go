package dialog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

// handleContact walks the three contact steps: name, preferred method, then
// the address or number itself. Once a valid value is in, the session
// branches by flow: followup requests notify the team immediately, the full
// intakes continue to their first flow question.
func (e *Engine) handleContact(ctx context.Context, message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)

	if s.AwaitingName {
		s = PushState(s)
		s.State = models.StateContact
		s.ContactName = message
		s.AwaitingName = false
		return models.BotResponse{
			Text:        "Thank you! How would you like us to reach you?",
			Buttons:     navButtons(contactMethodButtons, s),
			NextState:   models.StateContact,
			SessionData: s,
		}
	}

	if choice == "email" || choice == "phone" {
		s = PushState(s)
		s.State = models.StateContact
		s.ContactType = models.ContactType(choice)
		text := "Please enter your phone number:"
		inputType := models.InputTypePhone
		inputLabel := "Your Phone Number"
		placeholder := "(555) 123-4567"
		if choice == "email" {
			text = "Please enter your email address:"
			inputType = models.InputTypeEmail
			inputLabel = "Your Email Address"
			placeholder = "you@example.com"
		}
		return models.BotResponse{
			Text:             text,
			InputType:        inputType,
			InputLabel:       inputLabel,
			InputPlaceholder: placeholder,
			Buttons:          navButtons(nil, s),
			NextState:        models.StateContact,
			SessionData:      s,
		}
	}

	if s.ContactType != "" {
		if !ValidateContact(s.ContactType, message) {
			text := "Please enter a valid phone number with at least 10 digits:"
			inputType := models.InputTypePhone
			inputLabel := "Your Phone Number"
			placeholder := "(555) 123-4567"
			if s.ContactType == models.ContactTypeEmail {
				text = "Please enter a valid email address (e.g., you@example.com):"
				inputType = models.InputTypeEmail
				inputLabel = "Your Email Address"
				placeholder = "you@example.com"
			}
			return models.BotResponse{
				Text:             text,
				InputType:        inputType,
				InputLabel:       inputLabel,
				InputPlaceholder: placeholder,
				Buttons:          navButtons(nil, s),
				NextState:        models.StateContact,
				SessionData:      s,
			}
		}

		s = PushState(s)

		switch s.Flow {
		case models.FlowFollowup, models.FlowSomethingElse:
			s.State = models.StateComplete
			s.ContactValue = message
			e.notifyInquiry(s)
			return models.BotResponse{
				Text:        "Thank you! Our team will reach out to you within 1-2 business days.\n\nFor urgent questions, call us at (617) 427-8494.",
				Buttons:     navButtons(nil, s),
				NextState:   models.StateComplete,
				SessionData: s,
			}

		case models.FlowPatientIntake:
			if s.ServiceType == models.ServiceTypePatientIntake {
				s.State = models.StateDOB
				s.ContactValue = message
				return models.BotResponse{
					Text:             "Thank you! Now let's collect some basic information. What is the patient's date of birth?",
					InputType:        models.InputTypeDate,
					InputLabel:       "Date of Birth",
					InputPlaceholder: "MM/DD/YYYY",
					Buttons:          navButtons(nil, s),
					NextState:        models.StateDOB,
					SessionData:      s,
				}
			}
		}

		if s.ServiceType == models.ServiceTypeAccreditation {
			s.State = models.StateBusinessInfo
			s.ContactValue = message
			return models.BotResponse{
				Text:             "Great! What's your business or agency name?",
				InputType:        models.InputTypeText,
				InputLabel:       "Business / Agency Name",
				InputPlaceholder: "Acme Home Care Services",
				Buttons:          navButtons(nil, s),
				NextState:        models.StateBusinessInfo,
				SessionData:      s,
			}
		}

		if s.ServiceType == models.ServiceTypeStaffing {
			s.State = models.StateDiscipline
			s.ContactValue = message
			return models.BotResponse{
				Text:        "Perfect! What role are you interested in?",
				Buttons:     navButtons(disciplineButtons, s),
				NextState:   models.StateDiscipline,
				SessionData: s,
			}
		}
	}

	return HomeScreen()
}

// notifyInquiry sends a general inquiry notification without saving a
// handoff record. Delivery is best effort and never blocks the reply.
func (e *Engine) notifyInquiry(s models.Session) {
	if e.notifier == nil {
		return
	}
	rec := models.HandoffRecord{
		ServiceType:    models.ServiceTypeGeneralInquiry,
		ContactName:    s.ContactName,
		ContactType:    s.ContactType,
		ContactValue:   s.ContactValue,
		ChatTranscript: s.ChatTranscript,
		SessionID:      s.SessionID,
		Timestamp:      time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.notifier.SendHandoff(ctx, rec); err != nil {
			slog.Error("Engine.notifyInquiry: notification failed", "error", err, "session_id", rec.SessionID)
		}
	}()
}

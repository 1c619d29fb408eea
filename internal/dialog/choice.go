package dialog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kekarehab/intakebot/internal/models"
)

var categoryNames = map[string]string{
	"therapy_rehab": "Therapy & Rehabilitation",
	"home_care":     "Home Care & Staffing",
	"equipment":     "Equipment & Home Safety",
	"business":      "Business & Agency Support",
	"insurance":     "Access, Insurance & Billing",
	"community":     "Community & E-Commerce",
}

func categoryName(categoryID string) string {
	if name, ok := categoryNames[categoryID]; ok {
		return name
	}
	return categoryID
}

var contactMethodButtons = []models.Button{
	{Label: "Email", Value: "email"},
	{Label: "Phone", Value: "phone"},
}

// handleUserChoice routes a top-level menu selection: one of the three
// intake flows, an FAQ category, a question inside the current category, or
// a request to talk to a person.
func (e *Engine) handleUserChoice(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)

	switch choice {
	case "start_patient_intake":
		s.State = models.StateContact
		s.ServiceType = models.ServiceTypePatientIntake
		s.Flow = models.FlowPatientIntake
		s.AwaitingName = true
		return models.BotResponse{
			Text:             "Let's get started with your care request. What's your name?",
			InputType:        models.InputTypeText,
			InputLabel:       "Your Full Name",
			InputPlaceholder: "John Smith",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateContact,
			SessionData:      s,
		}

	case "start_accreditation_intake":
		s.State = models.StateContact
		s.ServiceType = models.ServiceTypeAccreditation
		s.Flow = models.FlowAccreditation
		s.AwaitingName = true
		return models.BotResponse{
			Text:             "Welcome! Let's connect you with our accreditation and consulting team. What's your name?",
			InputType:        models.InputTypeText,
			InputLabel:       "Your Full Name",
			InputPlaceholder: "John Smith",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateContact,
			SessionData:      s,
		}

	case "start_staffing_intake":
		s.State = models.StateContact
		s.ServiceType = models.ServiceTypeStaffing
		s.Flow = models.FlowStaffing
		s.AwaitingName = true
		return models.BotResponse{
			Text:             "Great! Let's get you connected with our staffing team. What's your name?",
			InputType:        models.InputTypeText,
			InputLabel:       "Your Full Name",
			InputPlaceholder: "John Smith",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateContact,
			SessionData:      s,
		}

	case "resolved":
		return HomeScreen()

	case "contact_me", "something_else":
		slog.Info("Engine.handleUserChoice: human help requested",
			"session_id", s.SessionID, "context", s.Category, "flow", choice)

		text := "We'd love to help you directly. How would you like us to reach you?"
		s.Flow = models.FlowFollowup
		if choice == "something_else" {
			text = "We can help you with that! How would you like us to reach you?"
			s.Flow = models.FlowSomethingElse
		}
		s.State = models.StateContact
		s.ServiceType = models.ServiceTypePatientIntake
		return models.BotResponse{
			Text:        text,
			Buttons:     navButtons(contactMethodButtons, s),
			NextState:   models.StateContact,
			SessionData: s,
		}
	}

	if _, ok := categoryNames[choice]; ok {
		s.State = models.StateUserChoice
		s.Category = choice
		return models.BotResponse{
			Text:        fmt.Sprintf("Great! What can Keka help you with regarding %s:", categoryName(choice)),
			Buttons:     navButtons(CategoryButtons(choice), s),
			NextState:   models.StateUserChoice,
			SessionData: s,
		}
	}

	if s.Category != "" {
		if q, ok := FAQAnswer(s.Category, choice); ok {
			s.State = models.StateUserChoice
			return models.BotResponse{
				Text:        q.Answer,
				Links:       q.Links,
				Buttons:     navButtons(nil, s),
				NextState:   models.StateUserChoice,
				SessionData: s,
			}
		}
	}

	return HomeScreen()
}

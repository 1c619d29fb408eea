package dialog

import (
	"fmt"
	"strings"

	"github.com/kekarehab/intakebot/internal/models"
)

var (
	supportTypeButtons = []models.Button{
		{Label: "Accreditation", Value: "accreditation"},
		{Label: "Policies & Procedures", Value: "policies"},
		{Label: "Startup Consulting", Value: "startup"},
		{Label: "HR & Compliance", Value: "hr_compliance"},
		{Label: "EVV / Payroll Setup", Value: "evv_payroll"},
		{Label: "Marketing Strategy", Value: "marketing"},
		{Label: "Done Selecting", Value: "done"},
	}
	agencyStatusButtons = []models.Button{
		{Label: "New / Pre-licensing", Value: "new_prelicensing"},
		{Label: "Licensed, Not Accredited", Value: "licensed_not_accredited"},
		{Label: "Accredited & Expanding", Value: "accredited_expanding"},
	}
	startDateButtons = []models.Button{
		{Label: "Immediately", Value: "immediately"},
		{Label: "Within 1 month", Value: "within_1_month"},
		{Label: "Within 3 months", Value: "within_3_months"},
	}
)

var validSupportTypes = map[string]bool{
	"accreditation": true,
	"policies":      true,
	"startup":       true,
	"hr_compliance": true,
	"evv_payroll":   true,
	"marketing":     true,
}

// handleBusinessInfo collects the agency name, then its location.
func handleBusinessInfo(message string, s models.Session) models.BotResponse {
	s = PushState(s)

	if s.BusinessName == "" {
		s.State = models.StateBusinessInfo
		s.BusinessName = message
		return models.BotResponse{
			Text:             "Thank you! Where is your business located? (City, State)",
			InputType:        models.InputTypeText,
			InputLabel:       "Business Location",
			InputPlaceholder: "Boston, MA",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateBusinessInfo,
			SessionData:      s,
		}
	}

	s.State = models.StateSupportType
	s.BusinessLocation = message
	s.SupportTypes = nil
	return models.BotResponse{
		Text:        "What type of support do you need? (You can select multiple)",
		Buttons:     navButtons(supportTypeButtons, s),
		NextState:   models.StateSupportType,
		SessionData: s,
	}
}

// handleSupportType accumulates selections; "done" requires at least one
// before moving on, and is the only path that pushes history.
func handleSupportType(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)

	if choice == "done" {
		if len(s.SupportTypes) == 0 {
			return models.BotResponse{
				Text:        "Please select at least one type of support before continuing.",
				Buttons:     navButtons(supportTypeButtons, s),
				NextState:   models.StateSupportType,
				SessionData: s,
			}
		}
		s = PushState(s)
		s.State = models.StateAgencyStatus
		return models.BotResponse{
			Text:        "What's your current agency status?",
			Buttons:     navButtons(agencyStatusButtons, s),
			NextState:   models.StateAgencyStatus,
			SessionData: s,
		}
	}

	if validSupportTypes[choice] && !contains(s.SupportTypes, choice) {
		s.SupportTypes = append(append([]string(nil), s.SupportTypes...), choice)
	}
	s.State = models.StateSupportType
	return models.BotResponse{
		Text:        fmt.Sprintf(`Selected: %d type(s). Select more or click "Done Selecting" to continue.`, len(s.SupportTypes)),
		Buttons:     navButtons(supportTypeButtons, s),
		NextState:   models.StateSupportType,
		SessionData: s,
	}
}

func handleAgencyStatus(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	switch choice {
	case "new_prelicensing", "licensed_not_accredited", "accredited_expanding":
		s = PushState(s)
		s.State = models.StateStartDate
		s.AgencyStatus = choice
		return models.BotResponse{
			Text:        `When would you like to start? (e.g., "Immediately", "Next month", "Q2 2025")`,
			Buttons:     navButtons(startDateButtons, s),
			NextState:   models.StateStartDate,
			SessionData: s,
		}
	}
	return HomeScreen()
}

func handleStartDate(message string, s models.Session) models.BotResponse {
	if !ValidateDate(message) {
		return models.BotResponse{
			Text:             "Please enter a valid date (e.g., 3/15/2025 or 03/15/2025):",
			InputType:        models.InputTypeDate,
			InputLabel:       "Preferred Start Date",
			InputPlaceholder: "M/D/YYYY or MM/DD/YYYY",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateStartDate,
			SessionData:      s,
		}
	}

	s = PushState(s)
	s.State = models.StateNotesAccreditation
	s.PreferredStartDate = message
	return models.BotResponse{
		Text:             `Do you have any additional questions or details you'd like to share? (Type your message or click "Skip")`,
		InputType:        models.InputTypeTextarea,
		InputLabel:       "Additional Notes or Questions (Optional)",
		InputPlaceholder: "Tell us more about your needs...",
		Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip"}}, s),
		NextState:        models.StateNotesAccreditation,
		SessionData:      s,
	}
}

func handleAccreditationNotes(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	s = PushState(s)
	s.State = models.StateSubmitConfirmation
	if choice != "skip" {
		s.AccreditationNotes = message
	}
	return models.BotResponse{
		Text: "Perfect! You're all set! Please review your information and click the button below to submit your request. Our accreditation and consulting team will contact you within 1-2 business days.",
		Buttons: navButtons([]models.Button{
			{Label: "Submit Intake Form", Value: "submit_intake"},
		}, s),
		NextState:   models.StateSubmitConfirmation,
		SessionData: s,
	}
}

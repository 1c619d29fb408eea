package dialog

import (
	"strings"

	"github.com/kekarehab/intakebot/internal/models"
)

var (
	disciplineButtons = []models.Button{
		{Label: "Physical Therapist (PT)", Value: "pt"},
		{Label: "PTA", Value: "pta"},
		{Label: "Occupational Therapist (OT)", Value: "ot"},
		{Label: "COTA", Value: "cota"},
		{Label: "Speech Therapist", Value: "speech_therapist"},
		{Label: "RN", Value: "rn"},
		{Label: "LPN", Value: "lpn"},
		{Label: "HHA / CNA", Value: "hha_cna"},
	}
	experienceButtons = []models.Button{
		{Label: "Less than 1 year", Value: "less_than_1"},
		{Label: "1-3 years", Value: "1_to_3"},
		{Label: "3-5 years", Value: "3_to_5"},
		{Label: "5-10 years", Value: "5_to_10"},
		{Label: "10+ years", Value: "10_plus"},
	}
	workAreaButtons = []models.Button{
		{Label: "Boston", Value: "boston"},
		{Label: "Lynn", Value: "lynn"},
		{Label: "Waltham", Value: "waltham"},
		{Label: "Woburn", Value: "woburn"},
		{Label: "Other", Value: "other"},
	}
	availabilityButtons = []models.Button{
		{Label: "Full-time", Value: "full_time"},
		{Label: "Part-time", Value: "part_time"},
		{Label: "Per Diem", Value: "per_diem"},
	}
)

var validDisciplines = map[string]bool{
	"pt": true, "pta": true, "ot": true, "cota": true,
	"speech_therapist": true, "rn": true, "lpn": true, "hha_cna": true,
}

func handleDiscipline(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	if !validDisciplines[choice] {
		return HomeScreen()
	}

	s = PushState(s)
	s.State = models.StateLicense
	s.Discipline = choice
	return models.BotResponse{
		Text:             `Great! Please provide your license number and state (e.g., "MA12345 - Massachusetts"). If you don't have a license yet, click "I don't have a license".`,
		InputType:        models.InputTypeText,
		InputLabel:       "License Number and State",
		InputPlaceholder: "MA12345 - Massachusetts",
		Buttons:          navButtons([]models.Button{{Label: "I don't have a license", Value: "none"}}, s),
		NextState:        models.StateLicense,
		SessionData:      s,
	}
}

// handleLicense parses "NUMBER - STATE"; anything else is stored as-is with
// the state marked unspecified. "none" records no license.
func handleLicense(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	s = PushState(s)

	licenseNumber, licenseState := "None", "None"
	if choice != "none" {
		parts := strings.SplitN(message, "-", 2)
		if len(parts) == 2 {
			licenseNumber = strings.TrimSpace(parts[0])
			licenseState = strings.TrimSpace(parts[1])
		} else {
			licenseNumber = message
			licenseState = "Not specified"
		}
	}

	s.State = models.StateExperience
	s.LicenseNumber = licenseNumber
	s.LicenseState = licenseState
	return models.BotResponse{
		Text:        "How many years of experience do you have?",
		Buttons:     navButtons(experienceButtons, s),
		NextState:   models.StateExperience,
		SessionData: s,
	}
}

func handleExperience(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	switch choice {
	case "less_than_1", "1_to_3", "3_to_5", "5_to_10", "10_plus":
		s = PushState(s)
		s.State = models.StateWorkArea
		s.YearsExperience = choice
		return models.BotResponse{
			Text:        "Which area would you prefer to work in?",
			Buttons:     navButtons(workAreaButtons, s),
			NextState:   models.StateWorkArea,
			SessionData: s,
		}
	}
	return HomeScreen()
}

// handleWorkArea accepts a button choice directly, or detours through a
// free-text prompt when the candidate picks "other".
func handleWorkArea(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)

	if choice == "other" {
		s = PushState(s)
		s.State = models.StateWorkArea
		s.CustomWorkArea = true
		return models.BotResponse{
			Text:             "Please type your preferred work area:",
			InputType:        models.InputTypeText,
			InputLabel:       "Preferred Work Area",
			InputPlaceholder: "Cambridge, MA",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateWorkArea,
			SessionData:      s,
		}
	}

	s = PushState(s)
	s.State = models.StateAvailability
	s.PreferredWorkArea = message
	s.CustomWorkArea = false
	return models.BotResponse{
		Text:        "What's your availability?",
		Buttons:     navButtons(availabilityButtons, s),
		NextState:   models.StateAvailability,
		SessionData: s,
	}
}

func handleAvailability(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	switch choice {
	case "full_time", "part_time", "per_diem":
		s = PushState(s)
		s.State = models.StateTransportation
		s.Availability = choice
		return models.BotResponse{
			Text:        "Do you have reliable transportation?",
			Buttons:     navButtons(yesNoButtons, s),
			NextState:   models.StateTransportation,
			SessionData: s,
		}
	}
	return HomeScreen()
}

func handleTransportation(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	if choice != "yes" && choice != "no" {
		return HomeScreen()
	}

	s = PushState(s)
	s.State = models.StateConsent
	s.HasTransportation = choice == "yes"
	return models.BotResponse{
		Text:        `By clicking "I Agree", you authorize Keka Rehab Services to contact you regarding staffing opportunities.`,
		Buttons:     navButtons([]models.Button{{Label: "I Agree", Value: "agree"}}, s),
		NextState:   models.StateConsent,
		SessionData: s,
	}
}

func handleConsent(message string, s models.Session) models.BotResponse {
	if strings.ToLower(message) != "agree" {
		return HomeScreen()
	}

	s = PushState(s)
	s.State = models.StateSubmitConfirmation
	s.ConsentGiven = true
	return models.BotResponse{
		Text: "Perfect! You're all set! Please review your information and click the button below to submit your application. Our staffing coordinator will contact you soon about available positions.",
		Buttons: navButtons([]models.Button{
			{Label: "Submit Intake Form", Value: "submit_intake"},
		}, s),
		NextState:   models.StateSubmitConfirmation,
		SessionData: s,
	}
}

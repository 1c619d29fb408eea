package dialog

import (
	"fmt"
	"strings"

	"github.com/kekarehab/intakebot/internal/models"
)

var (
	genderButtons = []models.Button{
		{Label: "Male", Value: "male"},
		{Label: "Female", Value: "female"},
		{Label: "Other", Value: "other"},
		{Label: "Prefer not to say", Value: "prefer_not_to_say"},
	}
	assistiveDeviceButtons = []models.Button{
		{Label: "Cane", Value: "cane"},
		{Label: "Walker", Value: "walker"},
		{Label: "Wheelchair", Value: "wheelchair"},
		{Label: "Oxygen", Value: "oxygen"},
		{Label: "Other", Value: "other"},
		{Label: "None", Value: "none"},
		{Label: "Done Selecting", Value: "done"},
	}
	serviceButtons = []models.Button{
		{Label: "Physical Therapy", Value: "pt"},
		{Label: "Occupational Therapy", Value: "ot"},
		{Label: "Speech Therapy", Value: "speech"},
		{Label: "Skilled Nursing", Value: "nursing"},
		{Label: "Home Health Aide", Value: "hha"},
		{Label: "Transportation", Value: "transportation"},
		{Label: "Equipment Evaluation", Value: "equipment"},
		{Label: "Done Selecting", Value: "done"},
	}
	assistanceLevelButtons = []models.Button{
		{Label: "Independent", Value: "independent"},
		{Label: "Minimal Assist", Value: "minimal"},
		{Label: "Moderate Assist", Value: "moderate"},
		{Label: "Maximal Assist", Value: "maximal"},
		{Label: "Unable to Walk", Value: "unable"},
	}
	referralSourceButtons = []models.Button{
		{Label: "Physician", Value: "physician"},
		{Label: "Adult Day Health", Value: "adult_day"},
		{Label: "Home Care Agency", Value: "home_care_agency"},
		{Label: "Family / Friend", Value: "family_friend"},
		{Label: "Online / Social Media", Value: "online"},
		{Label: "Other", Value: "other"},
	}
	yesNoButtons = []models.Button{
		{Label: "Yes", Value: "yes"},
		{Label: "No", Value: "no"},
	}
	careSettingLabels = map[string]string{
		"in_home":          "In-Home Care",
		"adult_day_health": "Adult Day Health",
		"clinic_visit":     "Clinic Visit",
	}
)

// Referral sources that get a follow-up question about the referring
// organization.
var agencyReferralSources = map[string]bool{
	"physician":        true,
	"adult_day":        true,
	"home_care_agency": true,
}

func handleDOB(message string, s models.Session) models.BotResponse {
	if !ValidateDate(message) {
		return models.BotResponse{
			Text:             "Please enter a valid date of birth (e.g., 1/15/1990 or 01/15/1990):",
			InputType:        models.InputTypeDate,
			InputLabel:       "Date of Birth",
			InputPlaceholder: "M/D/YYYY or MM/DD/YYYY",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateDOB,
			SessionData:      s,
		}
	}
	if !ValidateDateRange(message) {
		return models.BotResponse{
			Text:             "Please enter a date of birth between 1900 and the current year:",
			InputType:        models.InputTypeDate,
			InputLabel:       "Date of Birth",
			InputPlaceholder: "M/D/YYYY or MM/DD/YYYY",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateDOB,
			SessionData:      s,
		}
	}

	s = PushState(s)
	s.State = models.StateGender
	s.DateOfBirth = message
	return models.BotResponse{
		Text:        "Thank you! What is the patient's gender?",
		Buttons:     navButtons(genderButtons, s),
		NextState:   models.StateGender,
		SessionData: s,
	}
}

func handleGender(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	switch choice {
	case "male", "female", "other", "prefer_not_to_say":
		s = PushState(s)
		s.State = models.StateAddress
		s.Gender = choice
		s.AddressStep = models.AddressStepStreet
		return models.BotResponse{
			Text:             "Great! Now, what is the patient's street address?",
			InputType:        models.InputTypeText,
			InputLabel:       "Street Address",
			InputPlaceholder: "123 Main Street, Apt 4B",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateAddress,
			SessionData:      s,
		}
	}
	return HomeScreen()
}

func handleAddress(message string, s models.Session) models.BotResponse {
	step := s.AddressStep
	if step == "" {
		step = models.AddressStepStreet
	}
	s = PushState(s)

	switch step {
	case models.AddressStepStreet:
		s.State = models.StateAddress
		s.AddressStreet = message
		s.AddressStep = models.AddressStepCity
		return models.BotResponse{
			Text:             "What city?",
			InputType:        models.InputTypeText,
			InputLabel:       "City",
			InputPlaceholder: "Boston",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateAddress,
			SessionData:      s,
		}

	case models.AddressStepCity:
		s.State = models.StateAddress
		s.AddressCity = message
		s.AddressStep = models.AddressStepState
		return models.BotResponse{
			Text:             "What state?",
			InputType:        models.InputTypeText,
			InputLabel:       "State",
			InputPlaceholder: "MA",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateAddress,
			SessionData:      s,
		}

	case models.AddressStepState:
		s.State = models.StateAddress
		s.AddressState = message
		s.AddressStep = models.AddressStepZip
		return models.BotResponse{
			Text:             "And the ZIP code?",
			InputType:        models.InputTypeText,
			InputLabel:       "ZIP Code",
			InputPlaceholder: "02101",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateAddress,
			SessionData:      s,
		}

	case models.AddressStepZip:
		s.State = models.StateEmergencyContact
		s.AddressZip = message
		s.EmergencyStep = models.EmergencyStepName
		return models.BotResponse{
			Text:             "Perfect! Now, who should we contact in case of an emergency? What is their name?",
			InputType:        models.InputTypeText,
			InputLabel:       "Emergency Contact Name",
			InputPlaceholder: "John Doe",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateEmergencyContact,
			SessionData:      s,
		}
	}

	return HomeScreen()
}

func handleEmergencyContact(message string, s models.Session) models.BotResponse {
	step := s.EmergencyStep
	if step == "" {
		step = models.EmergencyStepName
	}

	switch step {
	case models.EmergencyStepName:
		s = PushState(s)
		s.State = models.StateEmergencyContact
		s.EmergencyName = message
		s.EmergencyStep = models.EmergencyStepRelationship
		return models.BotResponse{
			Text:             "What is their relationship to the patient?",
			InputType:        models.InputTypeText,
			InputLabel:       "Relationship",
			InputPlaceholder: "Spouse, Parent, Sibling, etc.",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateEmergencyContact,
			SessionData:      s,
		}

	case models.EmergencyStepRelationship:
		s = PushState(s)
		s.State = models.StateEmergencyContact
		s.EmergencyRelation = message
		s.EmergencyStep = models.EmergencyStepPhone
		return models.BotResponse{
			Text:             "What is their phone number?",
			InputType:        models.InputTypePhone,
			InputLabel:       "Emergency Contact Phone",
			InputPlaceholder: "(555) 123-4567",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateEmergencyContact,
			SessionData:      s,
		}

	case models.EmergencyStepPhone:
		if !ValidateContact(models.ContactTypePhone, message) {
			return models.BotResponse{
				Text:             "Please enter a valid phone number with at least 10 digits:",
				InputType:        models.InputTypePhone,
				InputLabel:       "Emergency Contact Phone",
				InputPlaceholder: "(555) 123-4567",
				Buttons:          navButtons(nil, s),
				NextState:        models.StateEmergencyContact,
				SessionData:      s,
			}
		}
		s = PushState(s)
		s.State = models.StateMedicalInfo
		s.EmergencyPhone = message
		s.MedicalStep = models.MedicalStepDiagnosis
		return models.BotResponse{
			Text:             "Now for some medical information. What is the primary diagnosis or reason for referral?",
			InputType:        models.InputTypeTextarea,
			InputLabel:       "Primary Diagnosis / Reason for Referral",
			InputPlaceholder: "e.g., Post-stroke rehab, knee replacement recovery, etc.",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}
	}

	return HomeScreen()
}

func handleMedicalInfo(message string, s models.Session) models.BotResponse {
	step := s.MedicalStep
	if step == "" {
		step = models.MedicalStepDiagnosis
	}
	choice := strings.ToLower(message)
	s = PushState(s)

	switch step {
	case models.MedicalStepDiagnosis:
		s.State = models.StateMedicalInfo
		s.PrimaryDiagnosis = message
		s.MedicalStep = models.MedicalStepConditions
		return models.BotResponse{
			Text:             "Are there any secondary conditions we should know about?",
			InputType:        models.InputTypeTextarea,
			InputLabel:       "Secondary Conditions (Optional)",
			InputPlaceholder: `Diabetes, hypertension, arthritis, etc. or "None"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_conditions"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}

	case models.MedicalStepConditions:
		if choice != "skip_conditions" {
			s.SecondaryConditions = message
		}
		s.State = models.StateMedicalInfo
		s.MedicalStep = models.MedicalStepAllergies
		return models.BotResponse{
			Text:             "Does the patient have any allergies?",
			InputType:        models.InputTypeTextarea,
			InputLabel:       "Allergies (Optional)",
			InputPlaceholder: `Medications, foods, environmental, etc. or "None"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_allergies"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}

	case models.MedicalStepAllergies:
		if choice != "skip_allergies" {
			s.Allergies = message
		}
		s.State = models.StateMedicalInfo
		s.MedicalStep = models.MedicalStepPhysician
		return models.BotResponse{
			Text:             "Who is the patient's primary physician or provider?",
			InputType:        models.InputTypeText,
			InputLabel:       "Physician / Provider Name (Optional)",
			InputPlaceholder: `Dr. Smith or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_physician"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}

	case models.MedicalStepPhysician:
		if choice != "skip_physician" {
			s.PhysicianName = message
		}
		s.State = models.StateMedicalInfo
		s.MedicalStep = models.MedicalStepPhysicianContact
		return models.BotResponse{
			Text:             "What is the physician's contact information?",
			InputType:        models.InputTypeText,
			InputLabel:       "Physician Contact (Optional)",
			InputPlaceholder: `Phone number or office name, or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_physician_contact"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}

	case models.MedicalStepPhysicianContact:
		if choice != "skip_physician_contact" {
			s.PhysicianContact = message
		}
		s.State = models.StateAssistiveDevices
		s.AssistiveDevices = nil
		return models.BotResponse{
			Text:        "Does the patient currently use any assistive devices? (Select all that apply)",
			Buttons:     navButtons(assistiveDeviceButtons, s),
			NextState:   models.StateAssistiveDevices,
			SessionData: s,
		}
	}

	return HomeScreen()
}

// handleAssistiveDevices accumulates selections without touching history;
// only the transition out on "done" or "none" pushes a snapshot.
func handleAssistiveDevices(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)

	if choice == "done" || choice == "none" {
		s = PushState(s)
		if choice == "none" {
			s.AssistiveDevices = []string{"none"}
		}
		s.State = models.StateServices
		s.ServicesRequested = nil
		return models.BotResponse{
			Text:        "What services is the patient requesting? (Select all that apply)",
			Buttons:     navButtons(serviceButtons, s),
			NextState:   models.StateServices,
			SessionData: s,
		}
	}

	switch choice {
	case "cane", "walker", "wheelchair", "oxygen", "other":
		if !contains(s.AssistiveDevices, choice) {
			s.AssistiveDevices = append(append([]string(nil), s.AssistiveDevices...), choice)
		}
		s.State = models.StateAssistiveDevices
		return models.BotResponse{
			Text:        fmt.Sprintf(`Added: %s. Select more or click "Done Selecting"`, choice),
			Buttons:     navButtons(assistiveDeviceButtons, s),
			NextState:   models.StateAssistiveDevices,
			SessionData: s,
		}
	}

	return HomeScreen()
}

func handleServices(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)

	if choice == "done" {
		s = PushState(s)
		s.State = models.StateMobility
		s.MobilityStep = models.MobilityStepCanWalk
		return models.BotResponse{
			Text:        "Can the patient walk independently?",
			Buttons:     navButtons(yesNoButtons, s),
			NextState:   models.StateMobility,
			SessionData: s,
		}
	}

	switch choice {
	case "pt", "ot", "speech", "nursing", "hha", "transportation", "equipment":
		if !contains(s.ServicesRequested, choice) {
			s.ServicesRequested = append(append([]string(nil), s.ServicesRequested...), choice)
		}
		s.State = models.StateServices
		return models.BotResponse{
			Text:        fmt.Sprintf(`Added: %s. Select more or click "Done Selecting"`, choice),
			Buttons:     navButtons(serviceButtons, s),
			NextState:   models.StateServices,
			SessionData: s,
		}
	}

	return HomeScreen()
}

func handleMobility(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	step := s.MobilityStep
	if step == "" {
		step = models.MobilityStepCanWalk
	}

	switch step {
	case models.MobilityStepCanWalk:
		if choice == "yes" || choice == "no" {
			s = PushState(s)
			s.State = models.StateMobility
			s.CanWalkIndependently = choice
			s.MobilityStep = models.MobilityStepAssistance
			return models.BotResponse{
				Text:        "What level of assistance does the patient need for walking?",
				Buttons:     navButtons(assistanceLevelButtons, s),
				NextState:   models.StateMobility,
				SessionData: s,
			}
		}

	case models.MobilityStepAssistance:
		switch choice {
		case "independent", "minimal", "moderate", "maximal", "unable":
			s = PushState(s)
			s.State = models.StateMobility
			s.AssistanceLevel = choice
			s.MobilityStep = models.MobilityStepFalls
			return models.BotResponse{
				Text:        "Has the patient had any falls in the last 6 months?",
				Buttons:     navButtons(yesNoButtons, s),
				NextState:   models.StateMobility,
				SessionData: s,
			}
		}

	case models.MobilityStepFalls:
		if choice == "yes" || choice == "no" {
			s = PushState(s)
			s.State = models.StateReferral
			s.FallHistory = choice
			s.ReferralStep = models.ReferralStepSource
			return models.BotResponse{
				Text:        "How did you hear about Keka Rehab Services?",
				Buttons:     navButtons(referralSourceButtons, s),
				NextState:   models.StateReferral,
				SessionData: s,
			}
		}
	}

	return HomeScreen()
}

func handleReferral(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	step := s.ReferralStep
	if step == "" {
		step = models.ReferralStepSource
	}

	switch step {
	case models.ReferralStepSource:
		switch choice {
		case "physician", "adult_day", "home_care_agency", "family_friend", "online", "other":
			s = PushState(s)
			s.ReferralSource = choice
			if agencyReferralSources[choice] {
				s.State = models.StateReferral
				s.ReferralStep = models.ReferralStepAgency
				return models.BotResponse{
					Text:             "What is the name of the referring organization or contact?",
					InputType:        models.InputTypeText,
					InputLabel:       "Referral Agency / Contact Name (Optional)",
					InputPlaceholder: "e.g., Boston Medical Center",
					Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_agency"}}, s),
					NextState:        models.StateReferral,
					SessionData:      s,
				}
			}
			s.State = models.StateInsurance
			s.InsuranceStep = models.InsuranceStepPrimary
			return primaryInsurancePrompt(s)
		}

	case models.ReferralStepAgency:
		s = PushState(s)
		if choice != "skip_agency" {
			s.ReferralAgency = message
		}
		s.State = models.StateReferral
		s.ReferralStep = models.ReferralStepContact
		return models.BotResponse{
			Text:             "Do you have contact information for the referral source?",
			InputType:        models.InputTypeText,
			InputLabel:       "Referral Contact Info (Optional)",
			InputPlaceholder: `Phone or email, or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_contact"}}, s),
			NextState:        models.StateReferral,
			SessionData:      s,
		}

	case models.ReferralStepContact:
		s = PushState(s)
		if choice != "skip_contact" {
			s.ReferralContact = message
		}
		s.State = models.StateInsurance
		s.InsuranceStep = models.InsuranceStepPrimary
		return primaryInsurancePrompt(s)
	}

	return HomeScreen()
}

func primaryInsurancePrompt(s models.Session) models.BotResponse {
	return models.BotResponse{
		Text:             "Almost done! What is the patient's primary insurance provider?",
		InputType:        models.InputTypeText,
		InputLabel:       "Primary Insurance (Optional)",
		InputPlaceholder: `e.g., Medicare, Blue Cross, etc. or "None"`,
		Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_insurance"}}, s),
		NextState:        models.StateInsurance,
		SessionData:      s,
	}
}

func handleInsurance(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	step := s.InsuranceStep
	if step == "" {
		step = models.InsuranceStepPrimary
	}
	s = PushState(s)

	switch step {
	case models.InsuranceStepPrimary:
		if choice != "skip_insurance" {
			s.PrimaryInsurance = message
		}
		s.State = models.StateInsurance
		s.InsuranceStep = models.InsuranceStepMemberID
		return models.BotResponse{
			Text:             "What is the insurance member ID or policy number?",
			InputType:        models.InputTypeText,
			InputLabel:       "Member ID / Policy # (Optional)",
			InputPlaceholder: `Policy number or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_member_id"}}, s),
			NextState:        models.StateInsurance,
			SessionData:      s,
		}

	case models.InsuranceStepMemberID:
		if choice != "skip_member_id" {
			s.InsuranceMemberID = message
		}
		s.State = models.StateInsurance
		s.InsuranceStep = models.InsuranceStepSecondary
		return models.BotResponse{
			Text:             "Is there a secondary insurance?",
			InputType:        models.InputTypeText,
			InputLabel:       "Secondary Insurance (Optional)",
			InputPlaceholder: `Secondary insurance name or "None"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_secondary"}}, s),
			NextState:        models.StateInsurance,
			SessionData:      s,
		}

	case models.InsuranceStepSecondary:
		if choice != "skip_secondary" {
			s.SecondaryInsurance = message
		}
		s.State = models.StateInsurance
		s.InsuranceStep = models.InsuranceStepResponsible
		return models.BotResponse{
			Text:             "If different from the patient, who is the responsible party for billing?",
			InputType:        models.InputTypeText,
			InputLabel:       "Responsible Party (Optional)",
			InputPlaceholder: `Name or "Same as patient"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_responsible"}}, s),
			NextState:        models.StateInsurance,
			SessionData:      s,
		}

	case models.InsuranceStepResponsible:
		if choice != "skip_responsible" {
			s.ResponsibleParty = message
		}
		s.State = models.StateCareFor
		return models.BotResponse{
			Text: "Final question! Is this care request for you or a loved one?",
			Buttons: navButtons([]models.Button{
				{Label: "For Me", Value: "self"},
				{Label: "For a Loved One", Value: "loved_one"},
			}, s),
			NextState:   models.StateCareFor,
			SessionData: s,
		}
	}

	return HomeScreen()
}

func handleCareFor(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	if choice == "self" || choice == "loved_one" {
		s = PushState(s)
		s.State = models.StateSetting
		s.CareFor = choice
		return models.BotResponse{
			Text: "What care setting would work best?",
			Buttons: navButtons([]models.Button{
				{Label: "In-Home", Value: "in_home"},
				{Label: "Adult Day Health", Value: "adult_day_health"},
				{Label: "Clinic Visit", Value: "clinic_visit"},
			}, s),
			NextState:   models.StateSetting,
			SessionData: s,
		}
	}
	return HomeScreen()
}

func handleSetting(message string, s models.Session) models.BotResponse {
	choice := strings.ToLower(message)
	label, ok := careSettingLabels[choice]
	if !ok {
		return HomeScreen()
	}

	s = PushState(s)
	s.State = models.StateSubmitConfirmation
	s.CareSetting = choice
	return models.BotResponse{
		Text: fmt.Sprintf("Great! You've selected %s.\n\nYou're all set! Please review your information and click the button below to submit your intake form. Our team will contact you within 1-2 business days.", label),
		Buttons: navButtons([]models.Button{
			{Label: "Submit Intake Form", Value: "submit_intake"},
		}, s),
		NextState:   models.StateSubmitConfirmation,
		SessionData: s,
	}
}

func contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}

package dialog

import "github.com/kekarehab/intakebot/internal/models"

// restoreResponse rebuilds the question a restored snapshot was waiting on.
// Snapshots are taken before an answer is applied, so the session's state
// and step pointers name the question to re-ask. Prompts and button sets
// mirror the forward handlers so a restored question accepts exactly the
// same answers it did the first time.
func restoreResponse(s models.Session) models.BotResponse {
	switch s.State {
	case models.StateUserChoice, models.StateComplete, "":
		return HomeScreen()

	case models.StateContact:
		return restoreContact(s)

	case models.StateDOB:
		return models.BotResponse{
			Text:             "Thank you! Now let's collect some basic information. What is the patient's date of birth?",
			InputType:        models.InputTypeDate,
			InputLabel:       "Date of Birth",
			InputPlaceholder: "MM/DD/YYYY",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateDOB,
			SessionData:      s,
		}

	case models.StateGender:
		return models.BotResponse{
			Text:        "What is the patient's gender?",
			Buttons:     navButtons(genderButtons, s),
			NextState:   models.StateGender,
			SessionData: s,
		}

	case models.StateAddress:
		return restoreAddress(s)

	case models.StateEmergencyContact:
		return restoreEmergencyContact(s)

	case models.StateMedicalInfo:
		return restoreMedicalInfo(s)

	case models.StateAssistiveDevices:
		return models.BotResponse{
			Text:        "Does the patient currently use any assistive devices? (Select all that apply)",
			Buttons:     navButtons(assistiveDeviceButtons, s),
			NextState:   models.StateAssistiveDevices,
			SessionData: s,
		}

	case models.StateServices:
		return models.BotResponse{
			Text:        "What services is the patient requesting? (Select all that apply)",
			Buttons:     navButtons(serviceButtons, s),
			NextState:   models.StateServices,
			SessionData: s,
		}

	case models.StateMobility:
		return restoreMobility(s)

	case models.StateReferral:
		return restoreReferral(s)

	case models.StateInsurance:
		return restoreInsurance(s)

	case models.StateCareFor:
		return models.BotResponse{
			Text: "Final question! Is this care request for you or a loved one?",
			Buttons: navButtons([]models.Button{
				{Label: "For Me", Value: "self"},
				{Label: "For a Loved One", Value: "loved_one"},
			}, s),
			NextState:   models.StateCareFor,
			SessionData: s,
		}

	case models.StateSetting:
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

	case models.StateBusinessInfo:
		if s.BusinessName == "" {
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
		return models.BotResponse{
			Text:             "Thank you! Where is your business located? (City, State)",
			InputType:        models.InputTypeText,
			InputLabel:       "Business Location",
			InputPlaceholder: "Boston, MA",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateBusinessInfo,
			SessionData:      s,
		}

	case models.StateSupportType:
		return models.BotResponse{
			Text:        "What type of support do you need? (You can select multiple)",
			Buttons:     navButtons(supportTypeButtons, s),
			NextState:   models.StateSupportType,
			SessionData: s,
		}

	case models.StateAgencyStatus:
		return models.BotResponse{
			Text:        "What's your current agency status?",
			Buttons:     navButtons(agencyStatusButtons, s),
			NextState:   models.StateAgencyStatus,
			SessionData: s,
		}

	case models.StateStartDate:
		return models.BotResponse{
			Text:        `When would you like to start? (e.g., "Immediately", "Next month", "Q2 2025")`,
			Buttons:     navButtons(startDateButtons, s),
			NextState:   models.StateStartDate,
			SessionData: s,
		}

	case models.StateNotesAccreditation:
		return models.BotResponse{
			Text:             `Do you have any additional questions or details you'd like to share? (Type your message or click "Skip")`,
			InputType:        models.InputTypeTextarea,
			InputLabel:       "Additional Notes or Questions (Optional)",
			InputPlaceholder: "Tell us more about your needs...",
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip"}}, s),
			NextState:        models.StateNotesAccreditation,
			SessionData:      s,
		}

	case models.StateDiscipline:
		return models.BotResponse{
			Text:        "Perfect! What role are you interested in?",
			Buttons:     navButtons(disciplineButtons, s),
			NextState:   models.StateDiscipline,
			SessionData: s,
		}

	case models.StateLicense:
		return models.BotResponse{
			Text:             `Great! Please provide your license number and state (e.g., "MA12345 - Massachusetts"). If you don't have a license yet, click "I don't have a license".`,
			InputType:        models.InputTypeText,
			InputLabel:       "License Number and State",
			InputPlaceholder: "MA12345 - Massachusetts",
			Buttons:          navButtons([]models.Button{{Label: "I don't have a license", Value: "none"}}, s),
			NextState:        models.StateLicense,
			SessionData:      s,
		}

	case models.StateExperience:
		return models.BotResponse{
			Text:        "How many years of experience do you have?",
			Buttons:     navButtons(experienceButtons, s),
			NextState:   models.StateExperience,
			SessionData: s,
		}

	case models.StateWorkArea:
		if s.CustomWorkArea {
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
		return models.BotResponse{
			Text:        "Which area would you prefer to work in?",
			Buttons:     navButtons(workAreaButtons, s),
			NextState:   models.StateWorkArea,
			SessionData: s,
		}

	case models.StateAvailability:
		return models.BotResponse{
			Text:        "What's your availability?",
			Buttons:     navButtons(availabilityButtons, s),
			NextState:   models.StateAvailability,
			SessionData: s,
		}

	case models.StateTransportation:
		return models.BotResponse{
			Text:        "Do you have reliable transportation?",
			Buttons:     navButtons(yesNoButtons, s),
			NextState:   models.StateTransportation,
			SessionData: s,
		}

	case models.StateConsent:
		return models.BotResponse{
			Text:        `By clicking "I Agree", you authorize Keka Rehab Services to contact you regarding staffing opportunities.`,
			Buttons:     navButtons([]models.Button{{Label: "I Agree", Value: "agree"}}, s),
			NextState:   models.StateConsent,
			SessionData: s,
		}

	case models.StateSubmitConfirmation:
		return models.BotResponse{
			Text: "Perfect! We have all the information we need. Are you ready to submit?",
			Buttons: navButtons([]models.Button{
				{Label: "Submit Intake Form", Value: "submit_intake"},
			}, s),
			NextState:   models.StateSubmitConfirmation,
			SessionData: s,
		}
	}

	return HomeScreen()
}

func restoreContact(s models.Session) models.BotResponse {
	if s.AwaitingName {
		return models.BotResponse{
			Text:             "Let's get started with your care request. What's your name?",
			InputType:        models.InputTypeText,
			InputLabel:       "Your Full Name",
			InputPlaceholder: "John Smith",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateContact,
			SessionData:      s,
		}
	}
	if s.ContactType == "" {
		return models.BotResponse{
			Text:        "Thank you! How would you like us to reach you?",
			Buttons:     navButtons(contactMethodButtons, s),
			NextState:   models.StateContact,
			SessionData: s,
		}
	}
	text := "Please enter your phone number:"
	inputType := models.InputTypePhone
	inputLabel := "Your Phone Number"
	placeholder := "(555) 123-4567"
	if s.ContactType == models.ContactTypeEmail {
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

func restoreAddress(s models.Session) models.BotResponse {
	switch s.AddressStep {
	case models.AddressStepCity:
		return models.BotResponse{
			Text:             "What city?",
			InputType:        models.InputTypeText,
			InputLabel:       "City",
			InputPlaceholder: "Boston",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateAddress,
			SessionData:      s,
		}
	case models.AddressStepState:
		return models.BotResponse{
			Text:             "What state?",
			InputType:        models.InputTypeText,
			InputLabel:       "State",
			InputPlaceholder: "MA",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateAddress,
			SessionData:      s,
		}
	case models.AddressStepZip:
		return models.BotResponse{
			Text:             "And the ZIP code?",
			InputType:        models.InputTypeText,
			InputLabel:       "ZIP Code",
			InputPlaceholder: "02101",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateAddress,
			SessionData:      s,
		}
	default:
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
}

func restoreEmergencyContact(s models.Session) models.BotResponse {
	switch s.EmergencyStep {
	case models.EmergencyStepRelationship:
		return models.BotResponse{
			Text:             "What is their relationship to the patient?",
			InputType:        models.InputTypeText,
			InputLabel:       "Relationship",
			InputPlaceholder: "Spouse, Parent, Sibling, etc.",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateEmergencyContact,
			SessionData:      s,
		}
	case models.EmergencyStepPhone:
		return models.BotResponse{
			Text:             "What is their phone number?",
			InputType:        models.InputTypePhone,
			InputLabel:       "Emergency Contact Phone",
			InputPlaceholder: "(555) 123-4567",
			Buttons:          navButtons(nil, s),
			NextState:        models.StateEmergencyContact,
			SessionData:      s,
		}
	default:
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
}

func restoreMedicalInfo(s models.Session) models.BotResponse {
	switch s.MedicalStep {
	case models.MedicalStepConditions:
		return models.BotResponse{
			Text:             "Are there any secondary conditions we should know about?",
			InputType:        models.InputTypeTextarea,
			InputLabel:       "Secondary Conditions (Optional)",
			InputPlaceholder: `Diabetes, hypertension, arthritis, etc. or "None"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_conditions"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}
	case models.MedicalStepAllergies:
		return models.BotResponse{
			Text:             "Does the patient have any allergies?",
			InputType:        models.InputTypeTextarea,
			InputLabel:       "Allergies (Optional)",
			InputPlaceholder: `Medications, foods, environmental, etc. or "None"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_allergies"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}
	case models.MedicalStepPhysician:
		return models.BotResponse{
			Text:             "Who is the patient's primary physician or provider?",
			InputType:        models.InputTypeText,
			InputLabel:       "Physician / Provider Name (Optional)",
			InputPlaceholder: `Dr. Smith or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_physician"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}
	case models.MedicalStepPhysicianContact:
		return models.BotResponse{
			Text:             "What is the physician's contact information?",
			InputType:        models.InputTypeText,
			InputLabel:       "Physician Contact (Optional)",
			InputPlaceholder: `Phone number or office name, or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_physician_contact"}}, s),
			NextState:        models.StateMedicalInfo,
			SessionData:      s,
		}
	default:
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
}

func restoreMobility(s models.Session) models.BotResponse {
	switch s.MobilityStep {
	case models.MobilityStepAssistance:
		return models.BotResponse{
			Text:        "What level of assistance does the patient need for walking?",
			Buttons:     navButtons(assistanceLevelButtons, s),
			NextState:   models.StateMobility,
			SessionData: s,
		}
	case models.MobilityStepFalls:
		return models.BotResponse{
			Text:        "Has the patient had any falls in the last 6 months?",
			Buttons:     navButtons(yesNoButtons, s),
			NextState:   models.StateMobility,
			SessionData: s,
		}
	default:
		return models.BotResponse{
			Text:        "Can the patient walk independently?",
			Buttons:     navButtons(yesNoButtons, s),
			NextState:   models.StateMobility,
			SessionData: s,
		}
	}
}

func restoreReferral(s models.Session) models.BotResponse {
	switch s.ReferralStep {
	case models.ReferralStepAgency:
		return models.BotResponse{
			Text:             "What is the name of the referring organization or contact?",
			InputType:        models.InputTypeText,
			InputLabel:       "Referral Agency / Contact Name (Optional)",
			InputPlaceholder: "e.g., Boston Medical Center",
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_agency"}}, s),
			NextState:        models.StateReferral,
			SessionData:      s,
		}
	case models.ReferralStepContact:
		return models.BotResponse{
			Text:             "Do you have contact information for the referral source?",
			InputType:        models.InputTypeText,
			InputLabel:       "Referral Contact Info (Optional)",
			InputPlaceholder: `Phone or email, or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_contact"}}, s),
			NextState:        models.StateReferral,
			SessionData:      s,
		}
	default:
		return models.BotResponse{
			Text:        "How did you hear about Keka Rehab Services?",
			Buttons:     navButtons(referralSourceButtons, s),
			NextState:   models.StateReferral,
			SessionData: s,
		}
	}
}

func restoreInsurance(s models.Session) models.BotResponse {
	switch s.InsuranceStep {
	case models.InsuranceStepMemberID:
		return models.BotResponse{
			Text:             "What is the insurance member ID or policy number?",
			InputType:        models.InputTypeText,
			InputLabel:       "Member ID / Policy # (Optional)",
			InputPlaceholder: `Policy number or "N/A"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_member_id"}}, s),
			NextState:        models.StateInsurance,
			SessionData:      s,
		}
	case models.InsuranceStepSecondary:
		return models.BotResponse{
			Text:             "Is there a secondary insurance?",
			InputType:        models.InputTypeText,
			InputLabel:       "Secondary Insurance (Optional)",
			InputPlaceholder: `Secondary insurance name or "None"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_secondary"}}, s),
			NextState:        models.StateInsurance,
			SessionData:      s,
		}
	case models.InsuranceStepResponsible:
		return models.BotResponse{
			Text:             "If different from the patient, who is the responsible party for billing?",
			InputType:        models.InputTypeText,
			InputLabel:       "Responsible Party (Optional)",
			InputPlaceholder: `Name or "Same as patient"`,
			Buttons:          navButtons([]models.Button{{Label: "Skip", Value: "skip_responsible"}}, s),
			NextState:        models.StateInsurance,
			SessionData:      s,
		}
	default:
		return primaryInsurancePrompt(s)
	}
}

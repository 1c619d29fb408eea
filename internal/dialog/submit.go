package dialog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

// handleSubmitConfirmation finalizes an intake: it notifies the team and
// persists the handoff record. Both effects are best effort; a failure in
// either never blocks the confirmation shown to the user.
func (e *Engine) handleSubmitConfirmation(ctx context.Context, message string, s models.Session, ipHash, sessionID string) models.BotResponse {
	choice := strings.ToLower(message)
	if choice != "submit_intake" {
		return HomeScreen()
	}

	serviceType := s.ServiceType
	if serviceType == "" {
		serviceType = models.ServiceTypePatientIntake
	}

	record := buildHandoffRecord(s, serviceType, sessionID, ipHash)

	if e.notifier != nil {
		slog.Info("Engine.handleSubmitConfirmation: sending notification",
			"service_type", serviceType, "session_id", sessionID)
		if err := e.notifier.SendHandoff(ctx, record); err != nil {
			slog.Error("Engine.handleSubmitConfirmation: notification failed",
				"error", err, "service_type", serviceType, "session_id", sessionID)
		} else {
			slog.Info("Engine.handleSubmitConfirmation: notification sent",
				"service_type", serviceType, "session_id", sessionID)
		}
	}

	if e.store != nil {
		saved, err := e.store.SaveHandoff(ctx, record)
		if err != nil {
			slog.Error("Engine.handleSubmitConfirmation: handoff save failed",
				"error", err, "service_type", serviceType, "session_id", sessionID)
		} else {
			slog.Info("Engine.handleSubmitConfirmation: handoff saved",
				"id", saved.ID, "service_type", serviceType, "session_id", sessionID)
		}
	}

	s = PushState(s)
	s.State = models.StateComplete
	return models.BotResponse{
		Text:        submitSuccessText(serviceType),
		Buttons:     navButtons(nil, s),
		NextState:   models.StateComplete,
		SessionData: s,
	}
}

func submitSuccessText(serviceType models.ServiceType) string {
	switch serviceType {
	case models.ServiceTypeAccreditation:
		return "Thank you! Your request has been submitted. Our accreditation and consulting team will reach out to you within 1-2 business days to discuss your needs.\n\nFor urgent questions, call us at (617) 427-8494."
	case models.ServiceTypeStaffing:
		return "Thank you! Your application has been submitted. Our staffing coordinator will review your information and contact you soon about available positions.\n\nFor urgent questions, call us at (617) 427-8494."
	default:
		return "Thank you! Your request has been submitted. Our team will reach out to you within 1-2 business days to discuss your care needs.\n\nFor urgent questions, call us at (617) 427-8494."
	}
}

// buildHandoffRecord flattens the session into the record the store and
// notifier consume. The topic falls back to the service type when no flow
// was recorded.
func buildHandoffRecord(s models.Session, serviceType models.ServiceType, sessionID, ipHash string) models.HandoffRecord {
	topic := string(s.Flow)
	if topic == "" {
		topic = string(serviceType)
	}

	record := models.HandoffRecord{
		Timestamp:      time.Now().UTC(),
		ServiceType:    serviceType,
		Topic:          topic,
		SessionID:      sessionID,
		IPHash:         ipHash,
		ContactName:    s.ContactName,
		ContactType:    s.ContactType,
		ContactValue:   s.ContactValue,
		ChatTranscript: s.ChatTranscript,
	}

	switch serviceType {
	case models.ServiceTypePatientIntake:
		record.DateOfBirth = s.DateOfBirth
		record.Gender = s.Gender
		record.AddressStreet = s.AddressStreet
		record.AddressCity = s.AddressCity
		record.AddressState = s.AddressState
		record.AddressZip = s.AddressZip
		record.EmergencyName = s.EmergencyName
		record.EmergencyRelation = s.EmergencyRelation
		record.EmergencyPhone = s.EmergencyPhone
		record.PrimaryDiagnosis = s.PrimaryDiagnosis
		record.SecondaryConditions = s.SecondaryConditions
		record.Allergies = s.Allergies
		record.PhysicianName = s.PhysicianName
		record.PhysicianContact = s.PhysicianContact
		record.AssistiveDevices = s.AssistiveDevices
		record.ServicesRequested = s.ServicesRequested
		record.CanWalkIndependently = s.CanWalkIndependently
		record.AssistanceLevel = s.AssistanceLevel
		record.FallHistory = s.FallHistory
		record.ReferralSource = s.ReferralSource
		record.ReferralAgency = s.ReferralAgency
		record.ReferralContact = s.ReferralContact
		record.PrimaryInsurance = s.PrimaryInsurance
		record.InsuranceMemberID = s.InsuranceMemberID
		record.SecondaryInsurance = s.SecondaryInsurance
		record.ResponsibleParty = s.ResponsibleParty
		record.CareFor = s.CareFor
		record.CareSetting = s.CareSetting

	case models.ServiceTypeAccreditation:
		record.BusinessName = s.BusinessName
		record.BusinessLocation = s.BusinessLocation
		record.SupportTypes = s.SupportTypes
		record.AgencyStatus = s.AgencyStatus
		record.PreferredStartDate = s.PreferredStartDate
		record.AccreditationNotes = s.AccreditationNotes

	case models.ServiceTypeStaffing:
		record.Discipline = s.Discipline
		record.LicenseNumber = s.LicenseNumber
		record.LicenseState = s.LicenseState
		record.YearsExperience = s.YearsExperience
		record.PreferredWorkArea = s.PreferredWorkArea
		record.Availability = s.Availability
		record.HasTransportation = s.HasTransportation
		record.ConsentGiven = s.ConsentGiven
	}

	return record
}

package notify

import (
	"fmt"
	"strings"

	"github.com/kekarehab/intakebot/internal/models"
)

// serviceLabels maps service types to the headings used in notifications.
var serviceLabels = map[models.ServiceType]string{
	models.ServiceTypePatientIntake:  "New Patient Intake",
	models.ServiceTypeAccreditation:  "Accreditation Consulting Request",
	models.ServiceTypeStaffing:       "Staffing / Employment Application",
	models.ServiceTypeGeneralInquiry: "General Inquiry",
}

// FormatHandoffSubject builds the one-line subject for a handoff notification.
func FormatHandoffSubject(rec models.HandoffRecord) string {
	label, ok := serviceLabels[rec.ServiceType]
	if !ok {
		label = "New Handoff"
	}
	return fmt.Sprintf("%s - %s", label, rec.ContactName)
}

// FormatHandoffBody builds the plain text body for a handoff notification,
// listing only the fields the conversation actually filled in.
func FormatHandoffBody(rec models.HandoffRecord) string {
	var b strings.Builder
	b.WriteString(FormatHandoffSubject(rec))
	b.WriteString("\n\n")

	addLine := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	addLine("Contact", rec.ContactName)
	if rec.ContactValue != "" {
		contact := rec.ContactValue
		if rec.ContactType != "" {
			contact = fmt.Sprintf("%s (%s)", rec.ContactValue, rec.ContactType)
		}
		fmt.Fprintf(&b, "Reach at: %s\n", contact)
	}
	addLine("Topic", rec.Topic)

	switch rec.ServiceType {
	case models.ServiceTypePatientIntake:
		addLine("Date of birth", rec.DateOfBirth)
		addLine("Gender", rec.Gender)
		if rec.AddressStreet != "" || rec.AddressCity != "" {
			fmt.Fprintf(&b, "Address: %s\n", joinNonEmpty(", ", rec.AddressStreet, rec.AddressCity, rec.AddressState, rec.AddressZip))
		}
		if rec.EmergencyName != "" {
			fmt.Fprintf(&b, "Emergency contact: %s\n", joinNonEmpty(", ", rec.EmergencyName, rec.EmergencyRelation, rec.EmergencyPhone))
		}
		addLine("Primary diagnosis", rec.PrimaryDiagnosis)
		addLine("Secondary conditions", rec.SecondaryConditions)
		addLine("Allergies", rec.Allergies)
		addLine("Physician", joinNonEmpty(", ", rec.PhysicianName, rec.PhysicianContact))
		addLine("Assistive devices", strings.Join(rec.AssistiveDevices, ", "))
		addLine("Services requested", strings.Join(rec.ServicesRequested, ", "))
		addLine("Walks independently", rec.CanWalkIndependently)
		addLine("Assistance level", rec.AssistanceLevel)
		addLine("Fall history", rec.FallHistory)
		addLine("Referral source", joinNonEmpty(", ", rec.ReferralSource, rec.ReferralAgency, rec.ReferralContact))
		addLine("Primary insurance", rec.PrimaryInsurance)
		addLine("Member ID", rec.InsuranceMemberID)
		addLine("Secondary insurance", rec.SecondaryInsurance)
		addLine("Responsible party", rec.ResponsibleParty)
		addLine("Care for", rec.CareFor)
		addLine("Care setting", rec.CareSetting)
	case models.ServiceTypeAccreditation:
		addLine("Business", joinNonEmpty(", ", rec.BusinessName, rec.BusinessLocation))
		addLine("Support types", strings.Join(rec.SupportTypes, ", "))
		addLine("Agency status", rec.AgencyStatus)
		addLine("Preferred start", rec.PreferredStartDate)
		addLine("Notes", rec.AccreditationNotes)
	case models.ServiceTypeStaffing:
		addLine("Discipline", rec.Discipline)
		addLine("License", joinNonEmpty(" / ", rec.LicenseNumber, rec.LicenseState))
		addLine("Experience", rec.YearsExperience)
		addLine("Preferred work area", rec.PreferredWorkArea)
		addLine("Availability", rec.Availability)
		if rec.HasTransportation {
			b.WriteString("Has transportation: yes\n")
		}
		if rec.ConsentGiven {
			b.WriteString("Consent given: yes\n")
		}
	}

	if rec.SessionID != "" {
		fmt.Fprintf(&b, "\nSession: %s\n", rec.SessionID)
	}
	return b.String()
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

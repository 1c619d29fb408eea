package models

import "time"

// HandoffRecord is the durable result of a completed conversation:
// everything a coordinator needs to follow up, flattened out of the session.
// It is what the store persists and what notifications are built from.
type HandoffRecord struct {
	ID          string      `json:"id,omitempty"`
	Timestamp   time.Time   `json:"timestamp,omitempty"`
	ServiceType ServiceType `json:"service_type"`
	Topic       string      `json:"topic,omitempty"`
	SessionID   string      `json:"session_id,omitempty"`
	IPHash      string      `json:"ip_hash,omitempty"`

	ContactName  string      `json:"contact_name"`
	ContactType  ContactType `json:"contact_type,omitempty"`
	ContactValue string      `json:"contact_value"`

	// Patient intake.
	DateOfBirth          string   `json:"date_of_birth,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	AddressStreet        string   `json:"address_street,omitempty"`
	AddressCity          string   `json:"address_city,omitempty"`
	AddressState         string   `json:"address_state,omitempty"`
	AddressZip           string   `json:"address_zip,omitempty"`
	EmergencyName        string   `json:"emergency_contact_name,omitempty"`
	EmergencyRelation    string   `json:"emergency_contact_relationship,omitempty"`
	EmergencyPhone       string   `json:"emergency_contact_phone,omitempty"`
	PrimaryDiagnosis     string   `json:"primary_diagnosis,omitempty"`
	SecondaryConditions  string   `json:"secondary_conditions,omitempty"`
	Allergies            string   `json:"allergies,omitempty"`
	PhysicianName        string   `json:"physician_name,omitempty"`
	PhysicianContact     string   `json:"physician_contact,omitempty"`
	AssistiveDevices     []string `json:"assistive_devices,omitempty"`
	ServicesRequested    []string `json:"services_requested,omitempty"`
	CanWalkIndependently string   `json:"can_walk_independently,omitempty"`
	AssistanceLevel      string   `json:"assistance_level,omitempty"`
	FallHistory          string   `json:"fall_history,omitempty"`
	ReferralSource       string   `json:"referral_source,omitempty"`
	ReferralAgency       string   `json:"referral_agency,omitempty"`
	ReferralContact      string   `json:"referral_contact,omitempty"`
	PrimaryInsurance     string   `json:"primary_insurance,omitempty"`
	InsuranceMemberID    string   `json:"insurance_member_id,omitempty"`
	SecondaryInsurance   string   `json:"secondary_insurance,omitempty"`
	ResponsibleParty     string   `json:"responsible_party,omitempty"`
	CareFor              string   `json:"care_for,omitempty"`
	CareSetting          string   `json:"care_setting,omitempty"`

	// Accreditation support.
	BusinessName       string   `json:"business_name,omitempty"`
	BusinessLocation   string   `json:"business_location,omitempty"`
	SupportTypes       []string `json:"support_types,omitempty"`
	AgencyStatus       string   `json:"agency_status,omitempty"`
	PreferredStartDate string   `json:"preferred_start_date,omitempty"`
	AccreditationNotes string   `json:"notes_accreditation,omitempty"`

	// Staffing.
	Discipline        string `json:"discipline,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty"`
	LicenseState      string `json:"license_state,omitempty"`
	YearsExperience   string `json:"years_experience,omitempty"`
	PreferredWorkArea string `json:"preferred_work_area,omitempty"`
	Availability      string `json:"availability,omitempty"`
	HasTransportation bool   `json:"has_transportation,omitempty"`
	ConsentGiven      bool   `json:"consent_given,omitempty"`

	ChatTranscript []ChatMessage `json:"chat_transcript,omitempty"`
}

// Validate checks the minimum a handoff record must carry before it is saved
// or sent anywhere.
func (h HandoffRecord) Validate() error {
	if h.ContactName == "" {
		return ErrEmptyHandoffName
	}
	if h.ContactValue == "" {
		return ErrEmptyHandoffValue
	}
	return nil
}

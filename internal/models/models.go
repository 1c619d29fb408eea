// Package models defines core data structures and validation for the intake bot.
package models

import (
	"errors"
	"fmt"
)

// State identifies which question the conversation is currently waiting on.
// Every response carries the next state, and the client echoes it back with
// the following message.
type State string

// Conversation states.
const (
	StateUserChoice         State = "awaiting_user_choice"
	StateContact            State = "awaiting_contact"
	StateDOB                State = "awaiting_dob"
	StateGender             State = "awaiting_gender"
	StateAddress            State = "awaiting_address"
	StateEmergencyContact   State = "awaiting_emergency_contact"
	StateMedicalInfo        State = "awaiting_medical_info"
	StateAssistiveDevices   State = "awaiting_assistive_devices"
	StateServices           State = "awaiting_services"
	StateMobility           State = "awaiting_mobility"
	StateReferral           State = "awaiting_referral"
	StateInsurance          State = "awaiting_insurance"
	StateCareFor            State = "awaiting_care_for"
	StateSetting            State = "awaiting_setting"
	StateBusinessInfo       State = "awaiting_business_info"
	StateSupportType        State = "awaiting_support_type"
	StateAgencyStatus       State = "awaiting_agency_status"
	StateStartDate          State = "awaiting_start_date"
	StateNotesAccreditation State = "awaiting_notes_accreditation"
	StateDiscipline         State = "awaiting_discipline"
	StateLicense            State = "awaiting_license"
	StateExperience         State = "awaiting_experience"
	StateWorkArea           State = "awaiting_work_area"
	StateAvailability       State = "awaiting_availability"
	StateTransportation     State = "awaiting_transportation"
	StateConsent            State = "awaiting_consent"
	StateSubmitConfirmation State = "awaiting_submit_confirmation"
	StateComplete           State = "complete"
)

// validStates is the complete set of states accepted on the wire.
var validStates = map[State]bool{
	StateUserChoice:         true,
	StateContact:            true,
	StateDOB:                true,
	StateGender:             true,
	StateAddress:            true,
	StateEmergencyContact:   true,
	StateMedicalInfo:        true,
	StateAssistiveDevices:   true,
	StateServices:           true,
	StateMobility:           true,
	StateReferral:           true,
	StateInsurance:          true,
	StateCareFor:            true,
	StateSetting:            true,
	StateBusinessInfo:       true,
	StateSupportType:        true,
	StateAgencyStatus:       true,
	StateStartDate:          true,
	StateNotesAccreditation: true,
	StateDiscipline:         true,
	StateLicense:            true,
	StateExperience:         true,
	StateWorkArea:           true,
	StateAvailability:       true,
	StateTransportation:     true,
	StateConsent:            true,
	StateSubmitConfirmation: true,
	StateComplete:           true,
}

// Valid reports whether s is a known conversation state.
func (s State) Valid() bool {
	return validStates[s]
}

// ServiceType categorizes a completed intake for routing and reporting.
type ServiceType string

// Service types attached to sessions and handoff records.
const (
	ServiceTypePatientIntake  ServiceType = "patient_intake"
	ServiceTypeAccreditation  ServiceType = "accreditation_consulting"
	ServiceTypeStaffing       ServiceType = "staffing_employment"
	ServiceTypeGeneralInquiry ServiceType = "general_inquiry"
)

// Flow distinguishes how the contact collection was entered. The full intake
// flows match their service type; followup and something_else short-circuit
// to an immediate notification once contact details are in.
type Flow string

// Flows.
const (
	FlowPatientIntake Flow = "patient_intake"
	FlowAccreditation Flow = "accreditation_consulting"
	FlowStaffing      Flow = "staffing_employment"
	FlowFollowup      Flow = "followup"
	FlowSomethingElse Flow = "something_else"
)

// ContactType distinguishes how a user asked to be reached.
type ContactType string

// Contact types.
const (
	ContactTypeEmail ContactType = "email"
	ContactTypePhone ContactType = "phone"
)

// InputType hints to the client which input widget to render.
type InputType string

// Input type hints.
const (
	InputTypeText     InputType = "text"
	InputTypeTextarea InputType = "textarea"
	InputTypeDate     InputType = "date"
	InputTypeEmail    InputType = "email"
	InputTypePhone    InputType = "phone"
)

// Sender identifies who produced a transcript entry.
type Sender string

// Transcript senders.
const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Step pointers track progress inside multi-question states. An empty step
// means the first sub-question of that state.
type (
	// AddressStep tracks progress through the address questions.
	AddressStep string
	// EmergencyStep tracks progress through the emergency contact questions.
	EmergencyStep string
	// MedicalStep tracks progress through the medical background questions.
	MedicalStep string
	// MobilityStep tracks progress through the mobility questions.
	MobilityStep string
	// ReferralStep tracks progress through the referral questions.
	ReferralStep string
	// InsuranceStep tracks progress through the insurance questions.
	InsuranceStep string
)

// Address steps.
const (
	AddressStepStreet AddressStep = "street"
	AddressStepCity   AddressStep = "city"
	AddressStepState  AddressStep = "state"
	AddressStepZip    AddressStep = "zip"
)

// Emergency contact steps.
const (
	EmergencyStepName         EmergencyStep = "name"
	EmergencyStepRelationship EmergencyStep = "relationship"
	EmergencyStepPhone        EmergencyStep = "phone"
)

// Medical background steps.
const (
	MedicalStepDiagnosis        MedicalStep = "diagnosis"
	MedicalStepConditions       MedicalStep = "conditions"
	MedicalStepAllergies        MedicalStep = "allergies"
	MedicalStepPhysician        MedicalStep = "physician"
	MedicalStepPhysicianContact MedicalStep = "physician_contact"
)

// Mobility steps.
const (
	MobilityStepCanWalk    MobilityStep = "can_walk"
	MobilityStepAssistance MobilityStep = "assistance"
	MobilityStepFalls      MobilityStep = "falls"
)

// Referral steps.
const (
	ReferralStepSource  ReferralStep = "source"
	ReferralStepAgency  ReferralStep = "agency"
	ReferralStepContact ReferralStep = "contact"
)

// Insurance steps.
const (
	InsuranceStepPrimary     InsuranceStep = "primary"
	InsuranceStepMemberID    InsuranceStep = "member_id"
	InsuranceStepSecondary   InsuranceStep = "secondary"
	InsuranceStepResponsible InsuranceStep = "responsible"
)

// Wire and content limits.
const (
	MaxMessageLength    = 500
	MaxTextLength       = 600
	MaxButtons          = 12
	MaxTranscriptLength = 100
	MaxHistoryDepth     = 50
)

// Validation and wire errors.
var (
	ErrEmptyMessage      = errors.New("message must not be empty")
	ErrMessageTooLong    = fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	ErrInvalidState      = errors.New("invalid conversation state")
	ErrEmptySessionID    = errors.New("session_id must not be empty")
	ErrInvalidEventType  = errors.New("invalid analytics event type")
	ErrEmptyHandoffName  = errors.New("handoff record requires a contact name")
	ErrEmptyHandoffValue = errors.New("handoff record requires contact details")
)

// ChatMessage is one entry of the conversation transcript.
type ChatMessage struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// SessionFields holds everything collected during a conversation. The struct
// is embedded in Session so the fields serialize flat, and it is exactly what
// a history snapshot captures. All fields are omitempty so a fresh session
// serializes to just its state.
type SessionFields struct {
	State       State       `json:"state,omitempty"`
	Category    string      `json:"category,omitempty"`
	ServiceType ServiceType `json:"service_type,omitempty"`
	Flow        Flow        `json:"flow,omitempty"`
	SessionID   string      `json:"session_id,omitempty"`

	// Contact collection.
	AwaitingName bool        `json:"awaiting_name,omitempty"`
	ContactName  string      `json:"contact_name,omitempty"`
	ContactType  ContactType `json:"contact_type,omitempty"`
	ContactValue string      `json:"contact_value,omitempty"`

	// Patient intake.
	DateOfBirth          string        `json:"date_of_birth,omitempty"`
	Gender               string        `json:"gender,omitempty"`
	AddressStep          AddressStep   `json:"awaiting_address_step,omitempty"`
	AddressStreet        string        `json:"address_street,omitempty"`
	AddressCity          string        `json:"address_city,omitempty"`
	AddressState         string        `json:"address_state,omitempty"`
	AddressZip           string        `json:"address_zip,omitempty"`
	EmergencyStep        EmergencyStep `json:"awaiting_emergency_step,omitempty"`
	EmergencyName        string        `json:"emergency_contact_name,omitempty"`
	EmergencyRelation    string        `json:"emergency_contact_relationship,omitempty"`
	EmergencyPhone       string        `json:"emergency_contact_phone,omitempty"`
	MedicalStep          MedicalStep   `json:"awaiting_medical_step,omitempty"`
	PrimaryDiagnosis     string        `json:"primary_diagnosis,omitempty"`
	SecondaryConditions  string        `json:"secondary_conditions,omitempty"`
	Allergies            string        `json:"allergies,omitempty"`
	PhysicianName        string        `json:"physician_name,omitempty"`
	PhysicianContact     string        `json:"physician_contact,omitempty"`
	AssistiveDevices     []string      `json:"assistive_devices,omitempty"`
	ServicesRequested    []string      `json:"services_requested,omitempty"`
	MobilityStep         MobilityStep  `json:"awaiting_mobility_step,omitempty"`
	CanWalkIndependently string        `json:"can_walk_independently,omitempty"`
	AssistanceLevel      string        `json:"assistance_level,omitempty"`
	FallHistory          string        `json:"fall_history,omitempty"`
	ReferralStep         ReferralStep  `json:"awaiting_referral_step,omitempty"`
	ReferralSource       string        `json:"referral_source,omitempty"`
	ReferralAgency       string        `json:"referral_agency,omitempty"`
	ReferralContact      string        `json:"referral_contact,omitempty"`
	InsuranceStep        InsuranceStep `json:"awaiting_insurance_step,omitempty"`
	PrimaryInsurance     string        `json:"primary_insurance,omitempty"`
	InsuranceMemberID    string        `json:"insurance_member_id,omitempty"`
	SecondaryInsurance   string        `json:"secondary_insurance,omitempty"`
	ResponsibleParty     string        `json:"responsible_party,omitempty"`
	CareFor              string        `json:"care_for,omitempty"`
	CareSetting          string        `json:"care_setting,omitempty"`

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
	CustomWorkArea    bool   `json:"custom_work_area,omitempty"`
	Availability      string `json:"availability,omitempty"`
	HasTransportation bool   `json:"has_transportation,omitempty"`
	ConsentGiven      bool   `json:"consent_given,omitempty"`

	ChatTranscript []ChatMessage `json:"chat_transcript,omitempty"`
}

// Snapshot is one saved point on the navigation history stack. Data never
// contains history itself, so snapshots stay flat no matter how deep the
// conversation goes.
type Snapshot struct {
	State     State         `json:"state"`
	Data      SessionFields `json:"data"`
	Timestamp int64         `json:"timestamp"`
}

// Session is the full conversation context round-tripped through the client.
// The server keeps no per-session state of its own.
type Session struct {
	SessionFields
	StateHistory []Snapshot `json:"state_history,omitempty"`
	CanGoBack    bool       `json:"can_go_back,omitempty"`
}

// NewSession returns a fresh session positioned at the top-level menu.
func NewSession() Session {
	return Session{SessionFields: SessionFields{State: StateUserChoice}}
}

// Button is a quick-reply choice rendered by the client. Value is what comes
// back as the next message when the button is tapped.
type Button struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LinkCard is an external resource attached to a response.
type LinkCard struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message     string   `json:"message"`
	SessionID   string   `json:"session_id,omitempty"`
	SessionData *Session `json:"session_data,omitempty"`
}

// Validate checks wire-level constraints on an incoming chat request.
func (r ChatRequest) Validate() error {
	if r.Message == "" {
		return ErrEmptyMessage
	}
	if len(r.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if r.SessionData != nil && r.SessionData.State != "" && !r.SessionData.State.Valid() {
		return ErrInvalidState
	}
	return nil
}

// BotResponse is the body of every successful POST /api/chat reply.
type BotResponse struct {
	Text             string     `json:"text"`
	Buttons          []Button   `json:"buttons,omitempty"`
	Links            []LinkCard `json:"links,omitempty"`
	InputType        InputType  `json:"input_type,omitempty"`
	InputLabel       string     `json:"input_label,omitempty"`
	InputPlaceholder string     `json:"input_placeholder,omitempty"`
	NextState        State      `json:"next_state"`
	SessionData      Session    `json:"session_data"`
}

// APIResponse is the standard envelope for non-chat endpoints.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: "ok", Result: result}
}

// SuccessWithMessage creates a successful API response with a message.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: "ok", Message: message, Result: result}
}

// Error creates an error API response.
func Error(message string) APIResponse {
	return APIResponse{Status: "error", Message: message}
}

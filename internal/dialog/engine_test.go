package dialog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

type fakeStore struct {
	mu    sync.Mutex
	saved []models.HandoffRecord
	err   error
}

func (f *fakeStore) SaveHandoff(_ context.Context, rec models.HandoffRecord) (models.HandoffRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.HandoffRecord{}, f.err
	}
	rec.ID = "h_test"
	f.saved = append(f.saved, rec)
	return rec, nil
}

func (f *fakeStore) records() []models.HandoffRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.HandoffRecord(nil), f.saved...)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []models.HandoffRecord
	ch   chan models.HandoffRecord
	err  error
}

func (f *fakeNotifier) SendHandoff(_ context.Context, rec models.HandoffRecord) error {
	f.mu.Lock()
	f.sent = append(f.sent, rec)
	f.mu.Unlock()
	if f.ch != nil {
		f.ch <- rec
	}
	return f.err
}

func (f *fakeNotifier) records() []models.HandoffRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.HandoffRecord(nil), f.sent...)
}

// conversation round-trips the session the way an HTTP client would: each
// reply's SessionData is sent back with the next message.
type conversation struct {
	t       *testing.T
	engine  *Engine
	session models.Session
	started bool
}

func (c *conversation) send(message string) models.BotResponse {
	c.t.Helper()
	req := models.ChatRequest{Message: message, SessionID: "sess-1"}
	if c.started {
		s := c.session
		req.SessionData = &s
	}
	resp := c.engine.HandleMessage(context.Background(), req, "ip-hash")
	c.session = resp.SessionData
	c.started = true
	return resp
}

func (c *conversation) expect(message, wantText string, wantState models.State) models.BotResponse {
	c.t.Helper()
	resp := c.send(message)
	if !strings.Contains(resp.Text, wantText) {
		c.t.Fatalf("after %q: text = %q, want substring %q", message, resp.Text, wantText)
	}
	if resp.NextState != wantState {
		c.t.Fatalf("after %q: next state = %q, want %q", message, resp.NextState, wantState)
	}
	return resp
}

func newConversation(t *testing.T, st HandoffStore, n Notifier) *conversation {
	t.Helper()
	return &conversation{t: t, engine: NewEngine(st, n)}
}

func TestUnrecognizedInputShowsHomeScreen(t *testing.T) {
	c := newConversation(t, nil, nil)
	resp := c.send("hello there")
	if !strings.Contains(resp.Text, "Welcome to Keka Rehab Services") {
		t.Fatalf("text = %q, want welcome screen", resp.Text)
	}
	if resp.NextState != models.StateUserChoice {
		t.Fatalf("next state = %q, want %q", resp.NextState, models.StateUserChoice)
	}
	if len(resp.Buttons) != len(TopLevelMenu) {
		t.Fatalf("got %d buttons, want %d", len(resp.Buttons), len(TopLevelMenu))
	}
}

func TestPHIGuardResetsStateAndKeepsFields(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.expect("start_patient_intake", "What's your name?", models.StateContact)
	c.expect("Jane Doe", "How would you like us to reach you?", models.StateContact)

	resp := c.send("my blood pressure has been high")
	if !strings.Contains(resp.Text, "Please do not share medical details") {
		t.Fatalf("text = %q, want privacy warning", resp.Text)
	}
	if resp.NextState != models.StateUserChoice {
		t.Fatalf("next state = %q, want %q", resp.NextState, models.StateUserChoice)
	}
	if resp.SessionData.ContactName != "Jane Doe" {
		t.Fatalf("contact name = %q, want preserved %q", resp.SessionData.ContactName, "Jane Doe")
	}
	for _, msg := range resp.SessionData.ChatTranscript {
		if strings.Contains(msg.Text, "blood pressure") {
			t.Fatal("flagged message must not be recorded on the transcript")
		}
	}
}

func TestHomeCommandResetsSession(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.expect("start_patient_intake", "What's your name?", models.StateContact)
	c.expect("Jane Doe", "How would you like us to reach you?", models.StateContact)

	resp := c.expect("home", "Welcome to Keka Rehab Services", models.StateUserChoice)
	if len(resp.SessionData.StateHistory) != 0 {
		t.Fatalf("history has %d entries, want 0 after home", len(resp.SessionData.StateHistory))
	}
	if resp.SessionData.ContactName != "" {
		t.Fatalf("contact name = %q, want cleared", resp.SessionData.ContactName)
	}
}

func TestBackRestoresPreviousQuestion(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.expect("start_patient_intake", "What's your name?", models.StateContact)
	c.expect("Jane Doe", "How would you like us to reach you?", models.StateContact)

	resp := c.expect("back", "What's your name?", models.StateContact)
	if !resp.SessionData.AwaitingName {
		t.Fatal("restored session should be awaiting the name again")
	}
	if resp.SessionData.ContactName != "" {
		t.Fatalf("contact name = %q, want discarded on back", resp.SessionData.ContactName)
	}

	c.expect("Janet Doe", "How would you like us to reach you?", models.StateContact)
	if c.session.ContactName != "Janet Doe" {
		t.Fatalf("contact name = %q, want %q", c.session.ContactName, "Janet Doe")
	}
}

func TestBackWithEmptyHistoryShowsHomeScreen(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.expect("back", "Welcome to Keka Rehab Services", models.StateUserChoice)
}

func TestContactValidationRetriesWithoutHistoryPush(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.expect("start_patient_intake", "What's your name?", models.StateContact)
	c.expect("Jane Doe", "How would you like us to reach you?", models.StateContact)
	c.expect("email", "Please enter your email address:", models.StateContact)
	depth := len(c.session.StateHistory)

	c.expect("not-an-email", "Please enter a valid email address", models.StateContact)
	if len(c.session.StateHistory) != depth {
		t.Fatalf("history grew to %d on a validation failure, want %d", len(c.session.StateHistory), depth)
	}

	c.expect("jane.doe@example.com", "date of birth", models.StateDOB)
	if len(c.session.StateHistory) != depth+1 {
		t.Fatalf("history depth = %d after a valid answer, want %d", len(c.session.StateHistory), depth+1)
	}
}

func TestAssistiveDeviceAccumulator(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.session = models.Session{SessionFields: models.SessionFields{
		State:       models.StateAssistiveDevices,
		Flow:        models.FlowPatientIntake,
		ServiceType: models.ServiceTypePatientIntake,
	}}
	c.started = true

	c.expect("cane", `Added: cane. Select more or click "Done Selecting"`, models.StateAssistiveDevices)
	c.expect("walker", `Added: walker`, models.StateAssistiveDevices)
	c.expect("cane", `Added: cane`, models.StateAssistiveDevices)
	if got := c.session.AssistiveDevices; len(got) != 2 || got[0] != "cane" || got[1] != "walker" {
		t.Fatalf("devices = %v, want [cane walker] with no duplicates", got)
	}
	if len(c.session.StateHistory) != 0 {
		t.Fatalf("history has %d entries while accumulating, want 0", len(c.session.StateHistory))
	}

	c.expect("done", "What services is the patient requesting?", models.StateServices)
	if len(c.session.StateHistory) != 1 {
		t.Fatalf("history depth = %d after done, want 1", len(c.session.StateHistory))
	}
}

func TestSupportTypeRequiresSelection(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.session = models.Session{SessionFields: models.SessionFields{
		State:       models.StateSupportType,
		Flow:        models.FlowAccreditation,
		ServiceType: models.ServiceTypeAccreditation,
	}}
	c.started = true

	c.expect("done", "Please select at least one type of support before continuing.", models.StateSupportType)
	c.expect("accreditation", "Selected: 1 type(s).", models.StateSupportType)
	c.expect("done", "What's your current agency status?", models.StateAgencyStatus)
}

func TestLicenseParsing(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantNumber string
		wantState  string
	}{
		{"number and state", "RN12345 - Massachusetts", "RN12345", "Massachusetts"},
		{"no license", "none", "None", "None"},
		{"number only", "RN988", "RN988", "Not specified"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newConversation(t, nil, nil)
			c.session = models.Session{SessionFields: models.SessionFields{
				State:       models.StateLicense,
				Flow:        models.FlowStaffing,
				ServiceType: models.ServiceTypeStaffing,
			}}
			c.started = true

			c.expect(tc.message, "How many years of experience do you have?", models.StateExperience)
			if c.session.LicenseNumber != tc.wantNumber {
				t.Errorf("license number = %q, want %q", c.session.LicenseNumber, tc.wantNumber)
			}
			if c.session.LicenseState != tc.wantState {
				t.Errorf("license state = %q, want %q", c.session.LicenseState, tc.wantState)
			}
		})
	}
}

func TestWorkAreaCustomBranch(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.session = models.Session{SessionFields: models.SessionFields{
		State:       models.StateWorkArea,
		Flow:        models.FlowStaffing,
		ServiceType: models.ServiceTypeStaffing,
	}}
	c.started = true

	c.expect("other", "Please type your preferred work area:", models.StateWorkArea)
	if !c.session.CustomWorkArea {
		t.Error("custom_work_area flag not set after picking other")
	}
	c.expect("Cambridge, MA", "What's your availability?", models.StateAvailability)
	if c.session.PreferredWorkArea != "Cambridge, MA" {
		t.Errorf("preferred work area = %q, want %q", c.session.PreferredWorkArea, "Cambridge, MA")
	}
	if c.session.CustomWorkArea {
		t.Error("custom_work_area flag should clear after free-text answer")
	}
}

func TestPatientIntakeEndToEnd(t *testing.T) {
	st := &fakeStore{}
	n := &fakeNotifier{}
	c := newConversation(t, st, n)

	c.expect("start_patient_intake", "What's your name?", models.StateContact)
	c.expect("Jane Doe", "How would you like us to reach you?", models.StateContact)
	c.expect("email", "Please enter your email address:", models.StateContact)
	c.expect("jane.doe@example.com", "date of birth", models.StateDOB)
	c.expect("01/15/1950", "What is the patient's gender?", models.StateGender)
	c.expect("female", "street address", models.StateAddress)
	c.expect("12 Main Street", "What city?", models.StateAddress)
	c.expect("Boston", "What state?", models.StateAddress)
	c.expect("MA", "ZIP code", models.StateAddress)
	c.expect("02101", "emergency", models.StateEmergencyContact)
	c.expect("John Doe", "relationship", models.StateEmergencyContact)
	c.expect("Spouse", "phone number", models.StateEmergencyContact)
	c.expect("(617) 555-1234", "primary", models.StateMedicalInfo)
	c.expect("Stroke rehab", "secondary conditions", models.StateMedicalInfo)
	c.expect("skip_conditions", "allergies", models.StateMedicalInfo)
	c.expect("Penicillin", "primary physician", models.StateMedicalInfo)
	c.expect("skip_physician", "physician's contact", models.StateMedicalInfo)
	c.expect("skip_physician_contact", "assistive devices", models.StateAssistiveDevices)
	c.expect("cane", "Added: cane", models.StateAssistiveDevices)
	c.expect("done", "What services", models.StateServices)
	c.expect("pt", "Added: pt", models.StateServices)
	c.expect("done", "walk independently", models.StateMobility)
	c.expect("yes", "level of assistance", models.StateMobility)
	c.expect("minimal", "any falls", models.StateMobility)
	c.expect("no", "How did you hear about Keka Rehab Services?", models.StateReferral)
	c.expect("family_friend", "primary insurance", models.StateInsurance)
	c.expect("Medicare", "member ID", models.StateInsurance)
	c.expect("skip_member_id", "secondary insurance", models.StateInsurance)
	c.expect("skip_secondary", "responsible party", models.StateInsurance)
	c.expect("skip_responsible", "for you or a loved one", models.StateCareFor)
	c.expect("self", "What care setting", models.StateSetting)
	c.expect("in_home", "In-Home Care", models.StateSubmitConfirmation)

	resp := c.expect("submit_intake", "Your request has been submitted", models.StateComplete)
	if resp.NextState != models.StateComplete {
		t.Fatalf("next state = %q, want %q", resp.NextState, models.StateComplete)
	}

	saved := st.records()
	if len(saved) != 1 {
		t.Fatalf("store received %d records, want 1", len(saved))
	}
	rec := saved[0]
	checks := []struct {
		field string
		got   string
		want  string
	}{
		{"service type", string(rec.ServiceType), string(models.ServiceTypePatientIntake)},
		{"topic", rec.Topic, string(models.FlowPatientIntake)},
		{"session id", rec.SessionID, "sess-1"},
		{"ip hash", rec.IPHash, "ip-hash"},
		{"contact name", rec.ContactName, "Jane Doe"},
		{"contact type", string(rec.ContactType), "email"},
		{"contact value", rec.ContactValue, "jane.doe@example.com"},
		{"date of birth", rec.DateOfBirth, "01/15/1950"},
		{"gender", rec.Gender, "female"},
		{"street", rec.AddressStreet, "12 Main Street"},
		{"city", rec.AddressCity, "Boston"},
		{"state", rec.AddressState, "MA"},
		{"zip", rec.AddressZip, "02101"},
		{"emergency name", rec.EmergencyName, "John Doe"},
		{"emergency relation", rec.EmergencyRelation, "Spouse"},
		{"emergency phone", rec.EmergencyPhone, "(617) 555-1234"},
		{"diagnosis", rec.PrimaryDiagnosis, "Stroke rehab"},
		{"secondary conditions", rec.SecondaryConditions, ""},
		{"allergies", rec.Allergies, "Penicillin"},
		{"physician", rec.PhysicianName, ""},
		{"walks independently", rec.CanWalkIndependently, "yes"},
		{"assistance level", rec.AssistanceLevel, "minimal"},
		{"fall history", rec.FallHistory, "no"},
		{"referral source", rec.ReferralSource, "family_friend"},
		{"primary insurance", rec.PrimaryInsurance, "Medicare"},
		{"care for", rec.CareFor, "self"},
		{"care setting", rec.CareSetting, "in_home"},
	}
	for _, ck := range checks {
		if ck.got != ck.want {
			t.Errorf("%s = %q, want %q", ck.field, ck.got, ck.want)
		}
	}
	if len(rec.AssistiveDevices) != 1 || rec.AssistiveDevices[0] != "cane" {
		t.Errorf("assistive devices = %v, want [cane]", rec.AssistiveDevices)
	}
	if len(rec.ServicesRequested) != 1 || rec.ServicesRequested[0] != "pt" {
		t.Errorf("services = %v, want [pt]", rec.ServicesRequested)
	}
	if len(rec.ChatTranscript) == 0 {
		t.Error("record is missing the chat transcript")
	}

	if got := n.records(); len(got) != 1 {
		t.Fatalf("notifier received %d records, want 1", len(got))
	}
}

func TestSubmitSucceedsWhenStoreFails(t *testing.T) {
	st := &fakeStore{err: errors.New("connection refused")}
	c := newConversation(t, st, nil)
	c.session = models.Session{SessionFields: models.SessionFields{
		State:       models.StateSubmitConfirmation,
		Flow:        models.FlowPatientIntake,
		ServiceType: models.ServiceTypePatientIntake,
		ContactName: "Jane Doe",
	}}
	c.started = true

	c.expect("submit_intake", "Your request has been submitted", models.StateComplete)
}

func TestSubmitSavesWhenNotifierFails(t *testing.T) {
	st := &fakeStore{}
	n := &fakeNotifier{err: errors.New("sms gateway down")}
	c := newConversation(t, st, n)
	c.session = models.Session{SessionFields: models.SessionFields{
		State:       models.StateSubmitConfirmation,
		Flow:        models.FlowPatientIntake,
		ServiceType: models.ServiceTypePatientIntake,
		ContactName: "Jane Doe",
	}}
	c.started = true

	c.expect("submit_intake", "Your request has been submitted", models.StateComplete)
	if got := st.records(); len(got) != 1 {
		t.Fatalf("store received %d records, want 1", len(got))
	}
}

func TestFollowupFlowNotifiesWithoutSaving(t *testing.T) {
	st := &fakeStore{}
	n := &fakeNotifier{ch: make(chan models.HandoffRecord, 1)}
	c := newConversation(t, st, n)

	c.expect("contact_me", "How would you like us to reach you?", models.StateContact)
	c.expect("phone", "Please enter your phone number:", models.StateContact)
	c.expect("(617) 555-0000", "Our team will reach out to you within 1-2 business days", models.StateComplete)

	select {
	case rec := <-n.ch:
		if rec.ServiceType != models.ServiceTypeGeneralInquiry {
			t.Errorf("service type = %q, want %q", rec.ServiceType, models.ServiceTypeGeneralInquiry)
		}
		if rec.ContactValue != "(617) 555-0000" {
			t.Errorf("contact value = %q, want %q", rec.ContactValue, "(617) 555-0000")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the inquiry notification")
	}

	if got := st.records(); len(got) != 0 {
		t.Fatalf("store received %d records, want 0 for a general inquiry", len(got))
	}
}

func TestFAQCategoryAndAnswer(t *testing.T) {
	c := newConversation(t, nil, nil)

	resp := c.expect("therapy_rehab", "Therapy & Rehabilitation", models.StateUserChoice)
	if c.session.Category != "therapy_rehab" {
		t.Fatalf("category = %q, want %q", c.session.Category, "therapy_rehab")
	}
	if len(resp.Buttons) == 0 {
		t.Fatal("category screen has no buttons")
	}

	resp = c.expect("therapy_types", "physical, occupational, and speech therapy", models.StateUserChoice)
	if len(resp.Links) == 0 {
		t.Fatal("answer is missing its link cards")
	}
}

func TestSessionIDAssignedOnce(t *testing.T) {
	c := newConversation(t, nil, nil)
	c.expect("start_patient_intake", "What's your name?", models.StateContact)
	first := c.session.SessionID
	if first == "" {
		t.Fatal("session id was not assigned")
	}
	c.expect("Jane Doe", "How would you like us to reach you?", models.StateContact)
	if c.session.SessionID != first {
		t.Fatalf("session id changed from %q to %q", first, c.session.SessionID)
	}
}

package models

import "testing"

func TestContainsPHI(t *testing.T) {
	flagged := []string{
		"my ssn is 123-45-6789",
		"I was diagnosed with diabetes last year",
		"My Blood Pressure is high",
		"here is my social security number",
		"the medication list is long",
		"what's my policy number",
	}
	for _, msg := range flagged {
		if !ContainsPHI(msg) {
			t.Errorf("ContainsPHI(%q) = false, want true", msg)
		}
	}

	clean := []string{
		"I need physical therapy",
		"Jane Doe",
		"jane.doe@example.com",
		"start_patient_intake",
		"Boston",
		"",
	}
	for _, msg := range clean {
		if ContainsPHI(msg) {
			t.Errorf("ContainsPHI(%q) = true, want false", msg)
		}
	}
}

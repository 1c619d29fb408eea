package dialog

import (
	"fmt"
	"testing"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

func TestValidateContactEmail(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"jane@example.com", true},
		{"jane.doe+intake@clinic.org", true},
		{"jane@example", false},
		{"jane example@x.com", false},
		{"@example.com", false},
		{"jane@", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateContact(models.ContactTypeEmail, tt.value); got != tt.want {
			t.Errorf("ValidateContact(email, %q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidateContactPhone(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"6175551234", true},
		{"(617) 555-1234", true},
		{"617-555-1234", true},
		{"617555123", false},
		{"61755512345", false},
		{"16175551234", false},
		{"not a phone", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateContact(models.ContactTypePhone, tt.value); got != tt.want {
			t.Errorf("ValidateContact(phone, %q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidateContactUnknownType(t *testing.T) {
	if ValidateContact("fax", "6175551234") {
		t.Error("unknown contact type should never validate")
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"01/15/1950", true},
		{"1/5/1950", true},
		{"12/31/2000", true},
		{"02/29/2000", true},  // leap year
		{"02/29/1999", false}, // not a leap year
		{"02/30/1990", false},
		{"04/31/1990", false},
		{"13/01/1990", false},
		{"00/10/1990", false},
		{"1990/01/15", false},
		{"01-15-1950", false},
		{"birthday", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateDate(tt.value); got != tt.want {
			t.Errorf("ValidateDate(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	nextYear := time.Now().Year() + 1
	tests := []struct {
		value string
		want  bool
	}{
		{"01/15/1950", true},
		{"01/15/1900", true},
		{"01/15/1899", false},
		{fmt.Sprintf("01/15/%d", nextYear), true},
		{fmt.Sprintf("01/15/%d", nextYear+1), false},
		{"02/30/1990", false},
	}
	for _, tt := range tests {
		if got := ValidateDateRange(tt.value); got != tt.want {
			t.Errorf("ValidateDateRange(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

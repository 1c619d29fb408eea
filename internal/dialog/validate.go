package dialog

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kekarehab/intakebot/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Accepts both M/D/YYYY and MM/DD/YYYY.
	dateRegex     = regexp.MustCompile(`^(0?[1-9]|1[0-2])/(0?[1-9]|[12][0-9]|3[01])/(\d{4})$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// ValidateContact checks a contact value against its declared type. Emails
// get a shape check only; phone numbers must contain exactly ten digits once
// formatting characters are stripped.
func ValidateContact(contactType models.ContactType, value string) bool {
	switch contactType {
	case models.ContactTypeEmail:
		return emailRegex.MatchString(value)
	case models.ContactTypePhone:
		return len(nonDigitRegex.ReplaceAllString(value, "")) == 10
	}
	return false
}

// ValidateDate checks MM/DD/YYYY shape and that the parts form a real
// calendar date (rejects 2/30, 4/31, non-leap 2/29).
func ValidateDate(dateString string) bool {
	if !dateRegex.MatchString(dateString) {
		return false
	}
	parts := strings.Split(dateString, "/")
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	// time.Date normalizes overflow, so a round-trip mismatch means the
	// parts did not name a real date.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && d.Month() == time.Month(month) && d.Day() == day
}

// ValidateDateRange additionally bounds the year to 1900 through next year.
func ValidateDateRange(dateString string) bool {
	if !ValidateDate(dateString) {
		return false
	}
	parts := strings.Split(dateString, "/")
	year, _ := strconv.Atoi(parts[2])
	currentYear := time.Now().Year()
	return year >= 1900 && year <= currentYear+1
}

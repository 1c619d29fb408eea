package models

import "strings"

// phiKeywords are terms that suggest a user is about to share protected
// health information in free text. Matching is case-insensitive substring;
// false positives are acceptable, missed matches are not.
var phiKeywords = []string{
	"ssn",
	"social security",
	"dob",
	"date of birth",
	"birthday",
	"mrn",
	"medical record",
	"diagnosis",
	"diagnosed",
	"prescription",
	"medication",
	"surgery",
	"blood pressure",
	"test result",
	"lab result",
	"insurance id",
	"policy number",
	"account number",
}

// ContainsPHI reports whether the message looks like it carries protected
// health information.
func ContainsPHI(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range phiKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

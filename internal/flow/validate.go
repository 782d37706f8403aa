package flow

import (
	"regexp"
	"strings"
	"time"
)

var (
	datePattern     = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	passportPattern = regexp.MustCompile(`^[A-Z]{2}\d{7}$`)
)

const dateLayout = "02.01.2006"

// validateBirthDate checks the dd.mm.yyyy shape first, then that the
// date exists on the calendar. time.Parse rejects 30.02 but quietly
// normalizes nothing, so a round-trip is not needed.
func validateBirthDate(s string) (string, error) {
	if !datePattern.MatchString(s) {
		return "", errBadDateFormat
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", errBadDate
	}
	return s, nil
}

// validatePassport uppercases the input and requires two letters
// followed by seven digits.
func validatePassport(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !passportPattern.MatchString(s) {
		return "", errBadPassport
	}
	return s, nil
}

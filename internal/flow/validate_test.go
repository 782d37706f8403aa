package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBirthDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		err   error
	}{
		{"valid", "01.01.2000", nil},
		{"leap day", "29.02.2000", nil},
		{"wrong separator", "01-01-2000", errBadDateFormat},
		{"short year", "01.01.99", errBadDateFormat},
		{"trailing junk", "01.01.2000x", errBadDateFormat},
		{"impossible day", "30.02.2000", errBadDate},
		{"impossible month", "01.13.2000", errBadDate},
		{"non leap year", "29.02.2001", errBadDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := validateBirthDate(tc.input)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.input, got)
		})
	}
}

func TestValidatePassport(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"upper", "AA1234567", "AA1234567", true},
		{"lower normalized", "aa1234567", "AA1234567", true},
		{"mixed normalized", "aB1234567", "AB1234567", true},
		{"padded", " AA1234567 ", "AA1234567", true},
		{"short digits", "AA123456", "", false},
		{"long digits", "AA12345678", "", false},
		{"one letter", "A1234567", "", false},
		{"digit in series", "A11234567", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := validatePassport(tc.input)
			if !tc.ok {
				assert.ErrorIs(t, err, errBadPassport)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

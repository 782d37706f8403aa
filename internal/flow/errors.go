package flow

import "errors"

var (
	errBadDateFormat = errors.New("birth date does not match dd.mm.yyyy")
	errBadDate       = errors.New("birth date is not a real calendar date")
	errBadPassport   = errors.New("passport must be 2 letters and 7 digits")

	// errIncompleteSession means a submission reached the file step
	// without a stored participant and without enough collected fields
	// to create one.
	errIncompleteSession = errors.New("session fields incomplete for registration")
)

// Package session holds per-identity conversation state for the registration
// flow. Sessions are process-local; each identity is mutated under its own
// lock so concurrent updates for different users never block each other.
package session

import "github.com/bagrikeng/tanlovbot/internal/domain"

// State identifies a step of the registration conversation.
type State uint8

const (
	// StateIdle means no active conversation exists for the identity.
	StateIdle State = iota
	StateName
	StateRegion
	StateDistrict
	StateNeighborhood
	StateWorkplace
	StateBirthDate
	StatePassport
	StatePhone
	StateConfirm
	StateCategory
	StateFile
)

// String returns the state tag used in logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateName:
		return "collecting_name"
	case StateRegion:
		return "collecting_region"
	case StateDistrict:
		return "collecting_district"
	case StateNeighborhood:
		return "collecting_neighborhood"
	case StateWorkplace:
		return "collecting_workplace"
	case StateBirthDate:
		return "collecting_birth_date"
	case StatePassport:
		return "collecting_passport"
	case StatePhone:
		return "collecting_phone"
	case StateConfirm:
		return "confirming"
	case StateCategory:
		return "collecting_submission_type"
	case StateFile:
		return "collecting_submission_file"
	}
	return "unknown"
}

// Mode distinguishes a fresh registration pass from single-field editing.
type Mode uint8

const (
	// ModeFresh walks the full happy path state by state.
	ModeFresh Mode = iota
	// ModeEditing short-circuits back to confirmation after one field.
	ModeEditing
)

// Identity scopes one session and one participant record.
type Identity struct {
	UserID int64
	ChatID int64
}

// Fields accumulates validated form values one step at a time. Values are
// only ever validated at the point of entry, never as a whole.
type Fields struct {
	FullName     string
	RegionID     string
	DistrictID   string
	DistrictName string
	Neighborhood string
	Workplace    string
	BirthDate    string
	Passport     string
	Phone        string
	Category     domain.Category
}

// Session is the ephemeral conversation state of one identity.
type Session struct {
	State  State
	Mode   Mode
	Fields Fields
}

package domain

// Participant is a registered contest participant. Exactly one row exists per
// Telegram identity; TelegramID is the uniqueness key.
type Participant struct {
	ID             int64  `db:"id"`
	TelegramID     int64  `db:"telegram_id"`
	FullName       string `db:"full_name"`
	AddressID      int64  `db:"address_id"`
	Workplace      string `db:"workplace"`
	BirthDate      string `db:"birth_date"`
	PassportSeries string `db:"passport_series"`
	PhoneNumber    string `db:"phone_number"`
}

// Address belongs to exactly one participant. Region and district are keys
// into the static reference hierarchy, neighborhood is free text.
type Address struct {
	ID           int64  `db:"id"`
	RegionID     int64  `db:"region_id"`
	DistrictID   int64  `db:"district_id"`
	Neighborhood string `db:"neighborhood"`
}

// Submission records one relayed contest entry. A participant may own any
// number of submissions; there is no update or delete path.
type Submission struct {
	ID            int64    `db:"id"`
	ParticipantID int64    `db:"user_id"`
	Category      Category `db:"type"`
	URL           string   `db:"project_url"`
}

package domain

import "time"

// Camp is a code-camp event. The moniker is the human-readable unique key
// used in URLs; the ULID id stays internal.
type Camp struct {
	ID          string
	Moniker     string
	Name        string
	EventDate   time.Time
	Length      int // days, minimum 1
	Description string
	Location    Location
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Speakers is populated only when the caller asks for them; nil means
	// "not loaded", not "no speakers".
	Speakers []Speaker
}

// Location is the venue address for a camp.
type Location struct {
	Address1      string
	Address2      string
	Address3      string
	CityTown      string
	StateProvince string
	PostalCode    string
	Country       string
}

// EndDate is the last day of the event: a one-day camp ends on its event date.
func (c Camp) EndDate() time.Time {
	length := c.Length
	if length < 1 {
		length = 1
	}
	return c.EventDate.AddDate(0, 0, length-1)
}

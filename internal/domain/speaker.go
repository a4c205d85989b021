package domain

import "time"

// Speaker is a presenter attached to a camp.
type Speaker struct {
	ID          string
	CampID      string
	Name        string
	CompanyName string
	PhoneNumber string
	WebsiteURL  string
	Bio         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

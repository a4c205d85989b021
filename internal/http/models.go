package http

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Chris-Devine/codecamp/internal/domain"
)

// validate is shared across handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New()

// CredentialsModel is the body of both authentication endpoints.
type CredentialsModel struct {
	UserName   string `json:"userName" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// TokenModel is the success body of the token endpoint.
type TokenModel struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"` // RFC 3339
}

// CampModel is the wire shape of a camp. StartDate mirrors EventDate and
// EndDate is derived from the length, so clients don't re-implement the
// calendar math.
type CampModel struct {
	Name        string         `json:"name" validate:"required"`
	Moniker     string         `json:"moniker" validate:"required"`
	EventDate   time.Time      `json:"eventDate" validate:"required"`
	StartDate   time.Time      `json:"startDate,omitzero"`
	EndDate     time.Time      `json:"endDate,omitzero"`
	Length      int            `json:"length" validate:"min=0,max=100"`
	Description string         `json:"description"`
	Location    *LocationModel `json:"location,omitempty"`

	// Speakers is present only when the camp was fetched with
	// includeSpeakers=true.
	Speakers *[]SpeakerModel `json:"speakers,omitempty"`
}

// SpeakerModel is the wire shape of a camp speaker.
type SpeakerModel struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// LocationModel is the venue block of a camp.
type LocationModel struct {
	Address1      string `json:"address1"`
	Address2      string `json:"address2,omitempty"`
	Address3      string `json:"address3,omitempty"`
	CityTown      string `json:"cityTown"`
	StateProvince string `json:"stateProvince"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

func toCampModel(c domain.Camp) CampModel {
	model := campModelOf(c)
	if c.Speakers != nil {
		speakers := make([]SpeakerModel, 0, len(c.Speakers))
		for _, sp := range c.Speakers {
			speakers = append(speakers, SpeakerModel{
				Name:        sp.Name,
				CompanyName: sp.CompanyName,
				PhoneNumber: sp.PhoneNumber,
				WebsiteURL:  sp.WebsiteURL,
				Bio:         sp.Bio,
			})
		}
		model.Speakers = &speakers
	}
	return model
}

func campModelOf(c domain.Camp) CampModel {
	return CampModel{
		Name:        c.Name,
		Moniker:     c.Moniker,
		EventDate:   c.EventDate,
		StartDate:   c.EventDate,
		EndDate:     c.EndDate(),
		Length:      c.Length,
		Description: c.Description,
		Location: &LocationModel{
			Address1:      c.Location.Address1,
			Address2:      c.Location.Address2,
			Address3:      c.Location.Address3,
			CityTown:      c.Location.CityTown,
			StateProvince: c.Location.StateProvince,
			PostalCode:    c.Location.PostalCode,
			Country:       c.Location.Country,
		},
	}
}

func (m CampModel) toDomain() domain.Camp {
	camp := domain.Camp{
		Name:        m.Name,
		Moniker:     m.Moniker,
		EventDate:   m.EventDate,
		Length:      m.Length,
		Description: m.Description,
	}
	if m.Location != nil {
		camp.Location = domain.Location{
			Address1:      m.Location.Address1,
			Address2:      m.Location.Address2,
			Address3:      m.Location.Address3,
			CityTown:      m.Location.CityTown,
			StateProvince: m.Location.StateProvince,
			PostalCode:    m.Location.PostalCode,
			Country:       m.Location.Country,
		}
	}
	return camp
}

// ErrorModel is the JSON error body for the camp endpoints. The auth
// endpoints deliberately use uniform plain-text bodies instead.
type ErrorModel struct {
	Error string `json:"error"`
}

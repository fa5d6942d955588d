package models

import "time"

// Settings is stored as a single document with a fixed key.
type Settings struct {
	Key                string      `bson:"_id" json:"-"`
	SiteName           string      `bson:"siteName" json:"siteName"`
	Tagline            string      `bson:"tagline,omitempty" json:"tagline,omitempty"`
	ContactEmail       string      `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone       string      `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Address            string      `bson:"address,omitempty" json:"address,omitempty"`
	SocialLinks        SocialLinks `bson:"socialLinks" json:"socialLinks"`
	MaintenanceMode    bool        `bson:"maintenanceMode" json:"maintenanceMode"`
	MaintenanceMessage string      `bson:"maintenanceMessage,omitempty" json:"maintenanceMessage,omitempty"`
	MaxArtists         int         `bson:"maxArtists" json:"maxArtists"`
	AllowRegistrations bool        `bson:"allowRegistrations" json:"allowRegistrations"`
	UpdatedAt          time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// SettingsUpdate is a partial update; nil fields are left untouched.
type SettingsUpdate struct {
	SiteName           *string      `json:"siteName" validate:"omitempty,min=1,max=100"`
	Tagline            *string      `json:"tagline" validate:"omitempty,max=200"`
	ContactEmail       *string      `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone       *string      `json:"contactPhone" validate:"omitempty,max=20"`
	Address            *string      `json:"address" validate:"omitempty,max=300"`
	SocialLinks        *SocialLinks `json:"socialLinks"`
	MaintenanceMode    *bool        `json:"maintenanceMode"`
	MaintenanceMessage *string      `json:"maintenanceMessage" validate:"omitempty,max=1000"`
	MaxArtists         *int         `json:"maxArtists" validate:"omitempty,min=0,max=10000"`
	AllowRegistrations *bool        `json:"allowRegistrations"`
}

// Apply copies the set fields onto s.
func (u SettingsUpdate) Apply(s *Settings) {
	if u.SiteName != nil {
		s.SiteName = *u.SiteName
	}
	if u.Tagline != nil {
		s.Tagline = *u.Tagline
	}
	if u.ContactEmail != nil {
		s.ContactEmail = *u.ContactEmail
	}
	if u.ContactPhone != nil {
		s.ContactPhone = *u.ContactPhone
	}
	if u.Address != nil {
		s.Address = *u.Address
	}
	if u.SocialLinks != nil {
		s.SocialLinks = *u.SocialLinks
	}
	if u.MaintenanceMode != nil {
		s.MaintenanceMode = *u.MaintenanceMode
	}
	if u.MaintenanceMessage != nil {
		s.MaintenanceMessage = *u.MaintenanceMessage
	}
	if u.MaxArtists != nil {
		s.MaxArtists = *u.MaxArtists
	}
	if u.AllowRegistrations != nil {
		s.AllowRegistrations = *u.AllowRegistrations
	}
}

// PublicSettings is what visitors may see.
type PublicSettings struct {
	SiteName           string      `json:"siteName"`
	Tagline            string      `json:"tagline,omitempty"`
	ContactEmail       string      `json:"contactEmail,omitempty"`
	ContactPhone       string      `json:"contactPhone,omitempty"`
	Address            string      `json:"address,omitempty"`
	SocialLinks        SocialLinks `json:"socialLinks"`
	MaintenanceMode    bool        `json:"maintenanceMode"`
	MaintenanceMessage string      `json:"maintenanceMessage,omitempty"`
}

func (s *Settings) Public() PublicSettings {
	return PublicSettings{
		SiteName:           s.SiteName,
		Tagline:            s.Tagline,
		ContactEmail:       s.ContactEmail,
		ContactPhone:       s.ContactPhone,
		Address:            s.Address,
		SocialLinks:        s.SocialLinks,
		MaintenanceMode:    s.MaintenanceMode,
		MaintenanceMessage: s.MaintenanceMessage,
	}
}

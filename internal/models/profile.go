package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Skills       []string  `json:"skills"`
	Passion      string    `json:"passion"`
	Availability string    `json:"availability"`
	Languages    []string  `json:"languages"`
	Interests    []string  `json:"interests"`
	Experience   string    `json:"experience"`
	SocialLinks  []string  `json:"social_links"`
	PulseIndex   int       `json:"pulse_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate lists every field a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name         *string
	AvatarURL    *string
	Skills       []string
	Passion      *string
	Availability *string
	Languages    []string
	Interests    []string
	Experience   *string
	SocialLinks  []string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.AvatarURL == nil && u.Skills == nil && u.Passion == nil &&
		u.Availability == nil && u.Languages == nil && u.Interests == nil &&
		u.Experience == nil && u.SocialLinks == nil
}

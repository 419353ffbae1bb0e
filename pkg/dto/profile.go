package dto

import "github.com/google/uuid"

type CreateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfileRequest is decoded strictly: fields outside this list are rejected.
type UpdateProfileRequest struct {
	Name         *string  `json:"name,omitempty"`
	AvatarURL    *string  `json:"avatar_url,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Passion      *string  `json:"passion,omitempty"`
	Availability *string  `json:"availability,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	Interests    []string `json:"interests,omitempty"`
	Experience   *string  `json:"experience,omitempty"`
	SocialLinks  []string `json:"social_links,omitempty"`
}

type ProfileResponse struct {
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
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

type MemberResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Skills     []string  `json:"skills"`
	PulseIndex int       `json:"pulse_index"`
}

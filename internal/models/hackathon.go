package models

import (
	"time"

	"github.com/google/uuid"
)

type Hackathon struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	RegistrationLink string    `json:"registration_link"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsLive reports whether now falls inside the event window, bounds included.
func (h *Hackathon) IsLive(now time.Time) bool {
	return !now.Before(h.StartDate) && !now.After(h.EndDate)
}

type HackathonInput struct {
	Name             string
	Description      string
	Category         string
	StartDate        time.Time
	EndDate          time.Time
	RegistrationLink string
}

package dto

import "github.com/google/uuid"

type HackathonResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	RegistrationLink string    `json:"registration_link"`
	Live             bool      `json:"live"`
}

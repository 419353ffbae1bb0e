package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID              uuid.UUID `json:"id"`
	TeamID          uuid.UUID `json:"team_id"`
	SenderID        uuid.UUID `json:"sender_id"`
	SenderName      string    `json:"sender_name"`
	SenderAvatarURL *string   `json:"sender_avatar_url,omitempty"`
	Text            string    `json:"text"`
	OriginalText    string    `json:"original_text"`
	CreatedAt       time.Time `json:"created_at"`
}

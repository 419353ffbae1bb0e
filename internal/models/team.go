package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	ProjectDescription string      `json:"project_description"`
	OpenRoles          []string    `json:"open_roles"`
	RequiredSkills     []string    `json:"required_skills"`
	CreatorID          uuid.UUID   `json:"creator_id"`
	MemberIDs          []uuid.UUID `json:"member_ids"`
	CreatedAt          time.Time   `json:"created_at"`
}

// HasMember reports whether id is in the member set.
func (t *Team) HasMember(id uuid.UUID) bool {
	for _, m := range t.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}

func (t *Team) HasOpenRole(role string) bool {
	for _, r := range t.OpenRoles {
		if r == role {
			return true
		}
	}
	return false
}

type TeamInput struct {
	Name               string
	ProjectDescription string
	OpenRoles          []string
	RequiredSkills     []string
}

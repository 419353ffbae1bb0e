package dto

import "github.com/google/uuid"

type CreateJoinRequestRequest struct {
	Role          string `json:"role"`
	SkillsSummary string `json:"skills_summary"`
}

type JoinRequestResponse struct {
	ID                 uuid.UUID  `json:"id"`
	TeamID             uuid.UUID  `json:"team_id"`
	RequesterID        uuid.UUID  `json:"requester_id"`
	RequesterName      string     `json:"requester_name"`
	RequesterAvatarURL *string    `json:"requester_avatar_url,omitempty"`
	RequesterEmail     string     `json:"requester_email"`
	Role               string     `json:"role"`
	SkillsSummary      string     `json:"skills_summary"`
	Status             string     `json:"status"`
	CreatedAt          string     `json:"created_at"`
	ResolvedAt         *string    `json:"resolved_at,omitempty"`
	ResolvedBy         *uuid.UUID `json:"resolved_by,omitempty"`
}

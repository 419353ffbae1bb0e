package models

import (
	"time"

	"github.com/google/uuid"
)

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

func (s JoinRequestStatus) IsTerminal() bool {
	return s == JoinRequestApproved || s == JoinRequestRejected
}

type JoinRequest struct {
	ID                 uuid.UUID         `json:"id"`
	TeamID             uuid.UUID         `json:"team_id"`
	RequesterID        uuid.UUID         `json:"requester_id"`
	RequesterName      string            `json:"requester_name"`
	RequesterAvatarURL *string           `json:"requester_avatar_url,omitempty"`
	RequesterEmail     string            `json:"requester_email"`
	Role               string            `json:"role"`
	SkillsSummary      string            `json:"skills_summary"`
	Status             JoinRequestStatus `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	ResolvedAt         *time.Time        `json:"resolved_at,omitempty"`
	ResolvedBy         *uuid.UUID        `json:"resolved_by,omitempty"`
}

package dto

import "github.com/google/uuid"

type CreateTeamRequest struct {
	Name               string   `json:"name"`
	ProjectDescription string   `json:"project_description"`
	OpenRoles          []string `json:"open_roles"`
	RequiredSkills     []string `json:"required_skills"`
}

type TeamResponse struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	ProjectDescription string      `json:"project_description"`
	OpenRoles          []string    `json:"open_roles"`
	RequiredSkills     []string    `json:"required_skills"`
	CreatorID          uuid.UUID   `json:"creator_id"`
	MemberIDs          []uuid.UUID `json:"member_ids"`
	CreatedAt          string      `json:"created_at"`
}

type DashboardResponse struct {
	Owned    []TeamResponse        `json:"owned"`
	Joined   []TeamResponse        `json:"joined"`
	Outgoing []JoinRequestResponse `json:"outgoing"`
}

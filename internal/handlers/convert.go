package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/pkg/dto"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toProfileResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:           p.ID,
		Email:        p.Email,
		Name:         p.Name,
		AvatarURL:    p.AvatarURL,
		Skills:       nonNil(p.Skills),
		Passion:      p.Passion,
		Availability: p.Availability,
		Languages:    nonNil(p.Languages),
		Interests:    nonNil(p.Interests),
		Experience:   p.Experience,
		SocialLinks:  nonNil(p.SocialLinks),
		PulseIndex:   p.PulseIndex,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

func toMemberResponse(p *models.Profile) dto.MemberResponse {
	return dto.MemberResponse{
		ID:         p.ID,
		Name:       p.Name,
		AvatarURL:  p.AvatarURL,
		Skills:     nonNil(p.Skills),
		PulseIndex: p.PulseIndex,
	}
}

func toTeamResponse(t *models.Team) dto.TeamResponse {
	resp := dto.TeamResponse{
		ID:                 t.ID,
		Name:               t.Name,
		ProjectDescription: t.ProjectDescription,
		OpenRoles:          nonNil(t.OpenRoles),
		RequiredSkills:     nonNil(t.RequiredSkills),
		CreatorID:          t.CreatorID,
		MemberIDs:          t.MemberIDs,
		CreatedAt:          formatTime(t.CreatedAt),
	}
	if resp.MemberIDs == nil {
		resp.MemberIDs = []uuid.UUID{}
	}
	return resp
}

func toTeamResponses(teams []models.Team) []dto.TeamResponse {
	response := make([]dto.TeamResponse, len(teams))
	for i := range teams {
		response[i] = toTeamResponse(&teams[i])
	}
	return response
}

func toJoinRequestResponse(r *models.JoinRequest) dto.JoinRequestResponse {
	resp := dto.JoinRequestResponse{
		ID:                 r.ID,
		TeamID:             r.TeamID,
		RequesterID:        r.RequesterID,
		RequesterName:      r.RequesterName,
		RequesterAvatarURL: r.RequesterAvatarURL,
		RequesterEmail:     r.RequesterEmail,
		Role:               r.Role,
		SkillsSummary:      r.SkillsSummary,
		Status:             string(r.Status),
		CreatedAt:          formatTime(r.CreatedAt),
		ResolvedBy:         r.ResolvedBy,
	}
	if r.ResolvedAt != nil {
		resolvedAt := formatTime(*r.ResolvedAt)
		resp.ResolvedAt = &resolvedAt
	}
	return resp
}

func toJoinRequestResponses(requests []models.JoinRequest) []dto.JoinRequestResponse {
	response := make([]dto.JoinRequestResponse, len(requests))
	for i := range requests {
		response[i] = toJoinRequestResponse(&requests[i])
	}
	return response
}

func toMessageResponse(m *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:              m.ID,
		TeamID:          m.TeamID,
		SenderID:        m.SenderID,
		SenderName:      m.SenderName,
		SenderAvatarURL: m.SenderAvatarURL,
		Text:            m.Text,
		OriginalText:    m.OriginalText,
		CreatedAt:       formatTime(m.CreatedAt),
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

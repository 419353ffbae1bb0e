package handlers

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/internal/assistant"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/services"
	"github.com/obj8899/studio/pkg/dto"
)

type AssistantHandler struct {
	assistant      AssistantInterface
	teamService    TeamServiceInterface
	profileService ProfileServiceInterface
}

func NewAssistantHandler(a AssistantInterface, teamService TeamServiceInterface, profileService ProfileServiceInterface) *AssistantHandler {
	return &AssistantHandler{
		assistant:      a,
		teamService:    teamService,
		profileService: profileService,
	}
}

// gatewayError puts gateway failures in the unavailable class so callers may retry.
func gatewayError(err error) error {
	if errors.Is(err, services.ErrUnavailable) {
		return err
	}
	return errors.Join(services.ErrUnavailable, err)
}

func (h *AssistantHandler) enabled(c *drift.Context) bool {
	if h.assistant.Enabled() {
		return true
	}
	respondError(c, gatewayError(assistant.ErrDisabled), "assistant is not configured")
	return false
}

// SuggestTeams ranks every team for the caller. Fields left out of the body come from the caller's
// profile.
func (h *AssistantHandler) SuggestTeams(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}
	if !h.enabled(c) {
		return
	}

	var req dto.SuggestTeamsRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()

	if req.Skills == nil || req.Passion == "" || req.Availability == "" {
		profile, err := h.profileService.GetByID(ctx, profileID)
		if err != nil {
			respondError(c, err, "failed to get profile")
			return
		}
		if req.Skills == nil {
			req.Skills = profile.Skills
		}
		if req.Passion == "" {
			req.Passion = profile.Passion
		}
		if req.Availability == "" {
			req.Availability = profile.Availability
		}
	}

	teams, err := h.teamService.List(ctx)
	if err != nil {
		respondError(c, err, "failed to list teams")
		return
	}

	in := assistant.SuggestTeamsInput{
		UserSkills:       req.Skills,
		UserPassion:      req.Passion,
		UserAvailability: req.Availability,
		TeamProfiles:     make([]assistant.TeamProfile, 0, len(teams)),
	}
	for _, t := range teams {
		if t.HasMember(profileID) {
			continue
		}
		in.TeamProfiles = append(in.TeamProfiles, assistant.TeamProfile{
			TeamName:           t.Name,
			ProjectDescription: t.ProjectDescription,
			OpenRoles:          t.OpenRoles,
			RequiredSkills:     t.RequiredSkills,
		})
	}

	matches, err := h.assistant.SuggestTeams(ctx, in)
	if err != nil {
		respondError(c, gatewayError(err), "team suggestions are unavailable")
		return
	}

	response := make([]dto.TeamMatchResponse, len(matches))
	for i, m := range matches {
		response[i] = dto.TeamMatchResponse{
			TeamName:   m.TeamName,
			MatchScore: m.MatchScore,
			Rationale:  m.Rationale,
		}
	}

	_ = c.JSON(200, response)
}

func (h *AssistantHandler) SuggestMembers(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid team id")
		return
	}
	if !h.enabled(c) {
		return
	}

	ctx := c.Request.Context()

	team, err := h.teamService.GetByID(ctx, teamID)
	if err != nil {
		respondError(c, err, "failed to get team")
		return
	}
	if team.CreatorID != profileID {
		respondError(c, services.ErrNotTeamCreator, "")
		return
	}

	suggestion, err := h.assistant.SuggestTeamMembers(ctx, assistant.SuggestMembersInput{
		OpenRoles:       team.OpenRoles,
		RequiredSkills:  team.RequiredSkills,
		TeamDescription: team.ProjectDescription,
	})
	if err != nil {
		respondError(c, gatewayError(err), "member suggestions are unavailable")
		return
	}

	_ = c.JSON(200, dto.MemberSuggestionResponse{
		SuggestedMembers: suggestion.SuggestedMembers,
		Rationale:        suggestion.Rationale,
	})
}

func (h *AssistantHandler) FAQ(c *drift.Context) {
	var req dto.FAQRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		badRequest(c, "query is required")
		return
	}
	if !h.enabled(c) {
		return
	}

	answer, err := h.assistant.AnswerFAQ(c.Request.Context(), query)
	if err != nil {
		respondError(c, gatewayError(err), "the FAQ assistant is unavailable")
		return
	}

	_ = c.JSON(200, dto.FAQResponse{Answer: answer.Answer})
}

func (h *AssistantHandler) Moderate(c *drift.Context) {
	var req dto.ModerateRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		badRequest(c, "message is required")
		return
	}
	if !h.enabled(c) {
		return
	}

	result, err := h.assistant.ModerateAndTranslate(c.Request.Context(), message)
	if err != nil {
		respondError(c, gatewayError(err), "moderation is unavailable")
		return
	}

	_ = c.JSON(200, dto.ModerateResponse{
		TranslatedText: result.TranslatedText,
		IsProfane:      result.IsProfane,
	})
}

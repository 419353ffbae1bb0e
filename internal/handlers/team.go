package handlers

import (
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/pkg/dto"
)

type TeamHandler struct {
	teamService TeamServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) Create(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), profileID, models.TeamInput{
		Name:               req.Name,
		ProjectDescription: req.ProjectDescription,
		OpenRoles:          req.OpenRoles,
		RequiredSkills:     req.RequiredSkills,
	})
	if err != nil {
		respondError(c, err, "failed to create team")
		return
	}

	_ = c.JSON(201, toTeamResponse(team))
}

func (h *TeamHandler) List(c *drift.Context) {
	teams, err := h.teamService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list teams")
		return
	}

	_ = c.JSON(200, toTeamResponses(teams))
}

func (h *TeamHandler) Owned(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teams, err := h.teamService.TeamsOwnedBy(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err, "failed to list owned teams")
		return
	}

	_ = c.JSON(200, toTeamResponses(teams))
}

func (h *TeamHandler) Joined(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teams, err := h.teamService.TeamsJoinedBy(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err, "failed to list joined teams")
		return
	}

	_ = c.JSON(200, toTeamResponses(teams))
}

func (h *TeamHandler) Get(c *drift.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid team id")
		return
	}

	team, err := h.teamService.GetByID(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err, "failed to get team")
		return
	}

	_ = c.JSON(200, toTeamResponse(team))
}

// GetMembers returns the profiles of the team's members. Member ids without a profile are skipped.
func (h *TeamHandler) GetMembers(c *drift.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid team id")
		return
	}

	ctx := c.Request.Context()

	team, err := h.teamService.GetByID(ctx, teamID)
	if err != nil {
		respondError(c, err, "failed to get team")
		return
	}

	members, err := h.teamService.ResolveMembers(ctx, team)
	if err != nil {
		respondError(c, err, "failed to get members")
		return
	}

	response := make([]dto.MemberResponse, len(members))
	for i := range members {
		response[i] = toMemberResponse(&members[i])
	}

	_ = c.JSON(200, response)
}

package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/internal/hub"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/internal/services"
	"github.com/obj8899/studio/pkg/dto"
	"github.com/rs/zerolog"
)

type JoinRequestHandler struct {
	joinRequestService JoinRequestServiceInterface
	teamService        TeamServiceInterface
	profileService     ProfileServiceInterface
	emailService       EmailServiceInterface
	hub                HubInterface
	baseURL            string
}

func NewJoinRequestHandler(
	joinRequestService JoinRequestServiceInterface,
	teamService TeamServiceInterface,
	profileService ProfileServiceInterface,
	emailService EmailServiceInterface,
	hub HubInterface,
	baseURL string,
) *JoinRequestHandler {
	return &JoinRequestHandler{
		joinRequestService: joinRequestService,
		teamService:        teamService,
		profileService:     profileService,
		emailService:       emailService,
		hub:                hub,
		baseURL:            baseURL,
	}
}

func (h *JoinRequestHandler) Submit(c *drift.Context) {
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

	var req dto.CreateJoinRequestRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()

	request, err := h.joinRequestService.Submit(ctx, profileID, teamID, req.Role, req.SkillsSummary)
	if err != nil {
		respondError(c, err, "failed to submit join request")
		return
	}

	h.hub.BroadcastJoinRequestCreated(teamID, hub.JoinRequestCreatedData{
		RequestID:     request.ID,
		RequesterID:   request.RequesterID,
		RequesterName: request.RequesterName,
		Role:          request.Role,
	})
	h.notifyCreator(ctx, request)

	_ = c.JSON(201, toJoinRequestResponse(request))
}

// ListForTeam returns every request for a team, oldest first. Only the team creator may see them.
func (h *JoinRequestHandler) ListForTeam(c *drift.Context) {
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

	ctx := c.Request.Context()

	isCreator, err := h.teamService.IsCreator(ctx, teamID, profileID)
	if err != nil {
		respondError(c, err, "failed to check team ownership")
		return
	}
	if !isCreator {
		respondError(c, services.ErrNotTeamCreator, "")
		return
	}

	requests, err := h.joinRequestService.ListForTeam(ctx, teamID)
	if err != nil {
		respondError(c, err, "failed to list join requests")
		return
	}

	_ = c.JSON(200, toJoinRequestResponses(requests))
}

func (h *JoinRequestHandler) Incoming(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requests, err := h.joinRequestService.ListIncoming(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err, "failed to list incoming requests")
		return
	}

	_ = c.JSON(200, toJoinRequestResponses(requests))
}

func (h *JoinRequestHandler) Outgoing(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requests, err := h.joinRequestService.ListForRequester(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err, "failed to list outgoing requests")
		return
	}

	_ = c.JSON(200, toJoinRequestResponses(requests))
}

func (h *JoinRequestHandler) Approve(c *drift.Context) {
	h.resolve(c, models.JoinRequestApproved)
}

func (h *JoinRequestHandler) Reject(c *drift.Context) {
	h.resolve(c, models.JoinRequestRejected)
}

func (h *JoinRequestHandler) resolve(c *drift.Context, decision models.JoinRequestStatus) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid join request id")
		return
	}

	ctx := c.Request.Context()

	request, err := h.joinRequestService.Resolve(ctx, requestID, profileID, decision)
	if err != nil {
		respondError(c, err, "failed to resolve join request")
		return
	}

	h.hub.BroadcastJoinRequestResolved(request.TeamID, hub.JoinRequestResolvedData{
		RequestID:   request.ID,
		RequesterID: request.RequesterID,
		Status:      string(request.Status),
		ResolvedBy:  profileID,
	})
	if request.Status == models.JoinRequestApproved {
		h.hub.BroadcastMemberJoined(request.TeamID, request.RequesterID, request.RequesterName, request.RequesterAvatarURL)
	}
	h.notifyRequester(ctx, request)

	_ = c.JSON(200, toJoinRequestResponse(request))
}

// notifyCreator emails the team creator about a new request. Failures are logged, not returned.
func (h *JoinRequestHandler) notifyCreator(ctx context.Context, request *models.JoinRequest) {
	logger := zerolog.Ctx(ctx).With().Str("join_request_id", request.ID.String()).Logger()

	team, err := h.teamService.GetByID(ctx, request.TeamID)
	if err != nil {
		logger.Warn().Err(err).Msg("skipping join request notice: team lookup failed")
		return
	}
	creator, err := h.profileService.GetByID(ctx, team.CreatorID)
	if err != nil {
		logger.Warn().Err(err).Msg("skipping join request notice: creator lookup failed")
		return
	}

	reviewURL := fmt.Sprintf("%s/teams/%s/join-requests", h.baseURL, team.ID)
	if err := h.emailService.SendJoinRequestNotice(creator.Email, team.Name, request.RequesterName, request.Role, reviewURL); err != nil {
		logger.Warn().Err(err).Msg("failed to send join request notice")
	}
}

func (h *JoinRequestHandler) notifyRequester(ctx context.Context, request *models.JoinRequest) {
	logger := zerolog.Ctx(ctx).With().Str("join_request_id", request.ID.String()).Logger()

	team, err := h.teamService.GetByID(ctx, request.TeamID)
	if err != nil {
		logger.Warn().Err(err).Msg("skipping join request decision: team lookup failed")
		return
	}

	approved := request.Status == models.JoinRequestApproved
	if err := h.emailService.SendJoinRequestDecision(request.RequesterEmail, team.Name, approved); err != nil {
		logger.Warn().Err(err).Msg("failed to send join request decision")
	}
}

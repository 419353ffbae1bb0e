package handlers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/internal/hub"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/services"
)

type SSEHandler struct {
	hub            HubInterface
	teamService    TeamServiceInterface
	profileService ProfileServiceInterface
}

func NewSSEHandler(hub HubInterface, teamService TeamServiceInterface, profileService ProfileServiceInterface) *SSEHandler {
	return &SSEHandler{
		hub:            hub,
		teamService:    teamService,
		profileService: profileService,
	}
}

// Connect streams the team's hub events to a member until the client goes away.
func (h *SSEHandler) Connect(c *drift.Context) {
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

	isMember, err := h.teamService.IsMember(ctx, teamID, profileID)
	if err != nil {
		respondError(c, err, "failed to check membership")
		return
	}
	if !isMember {
		respondError(c, services.ErrNotTeamMember, "")
		return
	}

	profile, err := h.profileService.GetByID(ctx, profileID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &hub.Client{
		ID:        clientID,
		ProfileID: profileID,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
		Teams:     map[uuid.UUID]bool{teamID: true},
		Send:      make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

var errStreamNotFound = fmt.Errorf("event stream %w", services.ErrNotFound)

// Subscribe adds another team to an open event stream. The stream must belong to the caller and
// the caller must be a member of the team.
func (h *SSEHandler) Subscribe(c *drift.Context) {
	profileID, clientID, teamID, ok := h.streamParams(c)
	if !ok {
		return
	}

	isMember, err := h.teamService.IsMember(c.Request.Context(), teamID, profileID)
	if err != nil {
		respondError(c, err, "failed to check membership")
		return
	}
	if !isMember {
		respondError(c, services.ErrNotTeamMember, "")
		return
	}

	if !h.hub.Subscribe(clientID, profileID, teamID) {
		respondError(c, errStreamNotFound, "")
		return
	}

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("subscribed to team %s", teamID),
	})
}

func (h *SSEHandler) Unsubscribe(c *drift.Context) {
	profileID, clientID, teamID, ok := h.streamParams(c)
	if !ok {
		return
	}

	if !h.hub.Unsubscribe(clientID, profileID, teamID) {
		respondError(c, errStreamNotFound, "")
		return
	}

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("unsubscribed from team %s", teamID),
	})
}

func (h *SSEHandler) streamParams(c *drift.Context) (uuid.UUID, string, uuid.UUID, bool) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return uuid.Nil, "", uuid.Nil, false
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		badRequest(c, "client id is required")
		return uuid.Nil, "", uuid.Nil, false
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid team id")
		return uuid.Nil, "", uuid.Nil, false
	}

	return profileID, clientID, teamID, true
}

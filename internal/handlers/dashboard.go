package handlers

import (
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/pkg/dto"
	"golang.org/x/sync/errgroup"
)

type DashboardHandler struct {
	teamService        TeamServiceInterface
	joinRequestService JoinRequestServiceInterface
}

func NewDashboardHandler(teamService TeamServiceInterface, joinRequestService JoinRequestServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		teamService:        teamService,
		joinRequestService: joinRequestService,
	}
}

// Get loads the caller's owned teams, joined teams and outgoing requests concurrently. The first
// failure cancels the other lookups.
func (h *DashboardHandler) Get(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())

	var owned, joined []models.Team
	var outgoing []models.JoinRequest

	g.Go(func() error {
		var err error
		owned, err = h.teamService.TeamsOwnedBy(ctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		joined, err = h.teamService.TeamsJoinedBy(ctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		outgoing, err = h.joinRequestService.ListForRequester(ctx, profileID)
		return err
	})

	if err := g.Wait(); err != nil {
		respondError(c, err, "failed to load dashboard")
		return
	}

	_ = c.JSON(200, dto.DashboardResponse{
		Owned:    toTeamResponses(owned),
		Joined:   toTeamResponses(joined),
		Outgoing: toJoinRequestResponses(outgoing),
	})
}

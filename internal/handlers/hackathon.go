package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/pkg/dto"
)

type HackathonHandler struct {
	hackathonService HackathonServiceInterface
}

func NewHackathonHandler(hackathonService HackathonServiceInterface) *HackathonHandler {
	return &HackathonHandler{hackathonService: hackathonService}
}

func (h *HackathonHandler) List(c *drift.Context) {
	listings, err := h.hackathonService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list hackathons")
		return
	}

	response := make([]dto.HackathonResponse, len(listings))
	for i, l := range listings {
		response[i] = dto.HackathonResponse{
			ID:               l.ID,
			Name:             l.Name,
			Description:      l.Description,
			Category:         l.Category,
			StartDate:        formatTime(l.StartDate),
			EndDate:          formatTime(l.EndDate),
			RegistrationLink: l.RegistrationLink,
			Live:             l.Live,
		}
	}

	_ = c.JSON(200, response)
}

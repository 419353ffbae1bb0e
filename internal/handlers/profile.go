package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/pkg/dto"
)

type ProfileHandler struct {
	profileService ProfileServiceInterface
}

func NewProfileHandler(profileService ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) CreateMe(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), profileID, middleware.GetProfileEmail(c), req.Name)
	if err != nil {
		respondError(c, err, "failed to create profile")
		return
	}

	_ = c.JSON(201, toProfileResponse(profile))
}

func (h *ProfileHandler) GetMe(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	h.respondProfile(c, profileID)
}

func (h *ProfileHandler) Get(c *drift.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid profile id")
		return
	}

	h.respondProfile(c, profileID)
}

func (h *ProfileHandler) respondProfile(c *drift.Context, profileID uuid.UUID) {
	profile, err := h.profileService.GetByID(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	_ = c.JSON(200, toProfileResponse(profile))
}

// UpdateMe applies a partial update. Fields the client may not set, such as pulse_index, are
// rejected rather than ignored.
func (h *ProfileHandler) UpdateMe(c *drift.Context) {
	profileID := middleware.GetProfileID(c)
	if profileID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var raw json.RawMessage
	if err := c.BindJSON(&raw); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	req, err := decodeProfileUpdate(raw)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	update := models.ProfileUpdate{
		Name:         req.Name,
		AvatarURL:    req.AvatarURL,
		Skills:       req.Skills,
		Passion:      req.Passion,
		Availability: req.Availability,
		Languages:    req.Languages,
		Interests:    req.Interests,
		Experience:   req.Experience,
		SocialLinks:  req.SocialLinks,
	}
	if update.IsEmpty() {
		badRequest(c, "no fields to update")
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), profileID, update)
	if err != nil {
		respondError(c, err, "failed to update profile")
		return
	}

	_ = c.JSON(200, toProfileResponse(profile))
}

func decodeProfileUpdate(raw []byte) (*dto.UpdateProfileRequest, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var req dto.UpdateProfileRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid profile update: %w", err)
	}
	return &req, nil
}

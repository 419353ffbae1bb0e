package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/obj8899/studio/internal/models"
)

func testProfile(name string) *models.Profile {
	now := time.Now()
	return &models.Profile{
		ID:          uuid.New(),
		Email:       name + "@campus.edu",
		Name:        name,
		Skills:      []string{"Go"},
		Languages:   []string{},
		Interests:   []string{},
		SocialLinks: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func testTeam(creatorID uuid.UUID, members ...uuid.UUID) *models.Team {
	return &models.Team{
		ID:                 uuid.New(),
		Name:               "Pulse Hackers",
		ProjectDescription: "Campus event finder",
		OpenRoles:          []string{"Designer"},
		RequiredSkills:     []string{"Figma"},
		CreatorID:          creatorID,
		MemberIDs:          append([]uuid.UUID{creatorID}, members...),
		CreatedAt:          time.Now(),
	}
}

func testJoinRequest(teamID uuid.UUID, requester *models.Profile, status models.JoinRequestStatus) *models.JoinRequest {
	return &models.JoinRequest{
		ID:             uuid.New(),
		TeamID:         teamID,
		RequesterID:    requester.ID,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,
		Role:           "Designer",
		SkillsSummary:  "Figma",
		Status:         status,
		CreatedAt:      time.Now(),
	}
}

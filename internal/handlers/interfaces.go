package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/obj8899/studio/internal/assistant"
	"github.com/obj8899/studio/internal/hub"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/internal/services"
)

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	Create(ctx context.Context, id uuid.UUID, email, name string) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, u models.ProfileUpdate) (*models.Profile, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, creatorID uuid.UUID, in models.TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	TeamsOwnedBy(ctx context.Context, profileID uuid.UUID) ([]models.Team, error)
	TeamsJoinedBy(ctx context.Context, profileID uuid.UUID) ([]models.Team, error)
	IsCreator(ctx context.Context, teamID, profileID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, teamID, profileID uuid.UUID) (bool, error)
	ResolveMembers(ctx context.Context, team *models.Team) ([]models.Profile, error)
}

// JoinRequestServiceInterface defines the methods used by handlers from JoinRequestService
type JoinRequestServiceInterface interface {
	Submit(ctx context.Context, requesterID, teamID uuid.UUID, role, skillsSummary string) (*models.JoinRequest, error)
	ListForTeam(ctx context.Context, teamID uuid.UUID) ([]models.JoinRequest, error)
	ListForRequester(ctx context.Context, requesterID uuid.UUID) ([]models.JoinRequest, error)
	ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]models.JoinRequest, error)
	Resolve(ctx context.Context, requestID, actorID uuid.UUID, decision models.JoinRequestStatus) (*models.JoinRequest, error)
}

// ChatServiceInterface defines the methods used by handlers from ChatService
type ChatServiceInterface interface {
	Send(ctx context.Context, teamID, senderID uuid.UUID, text string) (*models.Message, error)
	History(ctx context.Context, teamID, viewerID uuid.UUID, limit int) ([]models.Message, error)
}

// HackathonServiceInterface defines the methods used by handlers from HackathonService
type HackathonServiceInterface interface {
	List(ctx context.Context) ([]services.HackathonListing, error)
}

// AssistantInterface defines the methods used by handlers from the assistant client
type AssistantInterface interface {
	Enabled() bool
	SuggestTeams(ctx context.Context, in assistant.SuggestTeamsInput) ([]assistant.TeamMatch, error)
	SuggestTeamMembers(ctx context.Context, in assistant.SuggestMembersInput) (*assistant.MemberSuggestion, error)
	AnswerFAQ(ctx context.Context, query string) (*assistant.FAQAnswer, error)
	ModerateAndTranslate(ctx context.Context, message string) (*assistant.Moderation, error)
}

// HubInterface defines the methods used by handlers from the Hub
type HubInterface interface {
	Register(client *hub.Client)
	Unregister(client *hub.Client)
	Subscribe(clientID string, profileID, teamID uuid.UUID) bool
	Unsubscribe(clientID string, profileID, teamID uuid.UUID) bool
	BroadcastJoinRequestCreated(teamID uuid.UUID, data hub.JoinRequestCreatedData)
	BroadcastJoinRequestResolved(teamID uuid.UUID, data hub.JoinRequestResolvedData)
	BroadcastMemberJoined(teamID, profileID uuid.UUID, name string, avatarURL *string)
	BroadcastChatMessage(teamID uuid.UUID, data hub.ChatMessageData)
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendJoinRequestNotice(to, teamName, requesterName, role, reviewURL string) error
	SendJoinRequestDecision(to, teamName string, approved bool) error
}

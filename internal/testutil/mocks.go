package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/obj8899/studio/internal/assistant"
	"github.com/obj8899/studio/internal/hub"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockProfileService mocks the ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Create(ctx context.Context, id uuid.UUID, email, name string) (*models.Profile, error) {
	args := m.Called(ctx, id, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, id uuid.UUID, u models.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, creatorID uuid.UUID, in models.TeamInput) (*models.Team, error) {
	args := m.Called(ctx, creatorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) List(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]models.Team)
	return teams, args.Error(1)
}

func (m *MockTeamService) TeamsOwnedBy(ctx context.Context, profileID uuid.UUID) ([]models.Team, error) {
	args := m.Called(ctx, profileID)
	teams, _ := args.Get(0).([]models.Team)
	return teams, args.Error(1)
}

func (m *MockTeamService) TeamsJoinedBy(ctx context.Context, profileID uuid.UUID) ([]models.Team, error) {
	args := m.Called(ctx, profileID)
	teams, _ := args.Get(0).([]models.Team)
	return teams, args.Error(1)
}

func (m *MockTeamService) IsCreator(ctx context.Context, teamID, profileID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID, profileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamService) IsMember(ctx context.Context, teamID, profileID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID, profileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamService) ResolveMembers(ctx context.Context, team *models.Team) ([]models.Profile, error) {
	args := m.Called(ctx, team)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Error(1)
}

// MockJoinRequestService mocks the JoinRequestService
type MockJoinRequestService struct {
	mock.Mock
}

func (m *MockJoinRequestService) Submit(ctx context.Context, requesterID, teamID uuid.UUID, role, skillsSummary string) (*models.JoinRequest, error) {
	args := m.Called(ctx, requesterID, teamID, role, skillsSummary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestService) ListForTeam(ctx context.Context, teamID uuid.UUID) ([]models.JoinRequest, error) {
	args := m.Called(ctx, teamID)
	requests, _ := args.Get(0).([]models.JoinRequest)
	return requests, args.Error(1)
}

func (m *MockJoinRequestService) ListForRequester(ctx context.Context, requesterID uuid.UUID) ([]models.JoinRequest, error) {
	args := m.Called(ctx, requesterID)
	requests, _ := args.Get(0).([]models.JoinRequest)
	return requests, args.Error(1)
}

func (m *MockJoinRequestService) ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]models.JoinRequest, error) {
	args := m.Called(ctx, ownerID)
	requests, _ := args.Get(0).([]models.JoinRequest)
	return requests, args.Error(1)
}

func (m *MockJoinRequestService) Resolve(ctx context.Context, requestID, actorID uuid.UUID, decision models.JoinRequestStatus) (*models.JoinRequest, error) {
	args := m.Called(ctx, requestID, actorID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JoinRequest), args.Error(1)
}

// MockChatService mocks the ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Send(ctx context.Context, teamID, senderID uuid.UUID, text string) (*models.Message, error) {
	args := m.Called(ctx, teamID, senderID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, teamID, viewerID uuid.UUID, limit int) ([]models.Message, error) {
	args := m.Called(ctx, teamID, viewerID, limit)
	messages, _ := args.Get(0).([]models.Message)
	return messages, args.Error(1)
}

// MockHackathonService mocks the HackathonService
type MockHackathonService struct {
	mock.Mock
}

func (m *MockHackathonService) List(ctx context.Context) ([]services.HackathonListing, error) {
	args := m.Called(ctx)
	listings, _ := args.Get(0).([]services.HackathonListing)
	return listings, args.Error(1)
}

// MockAssistant mocks the assistant client
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockAssistant) SuggestTeams(ctx context.Context, in assistant.SuggestTeamsInput) ([]assistant.TeamMatch, error) {
	args := m.Called(ctx, in)
	matches, _ := args.Get(0).([]assistant.TeamMatch)
	return matches, args.Error(1)
}

func (m *MockAssistant) SuggestTeamMembers(ctx context.Context, in assistant.SuggestMembersInput) (*assistant.MemberSuggestion, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.MemberSuggestion), args.Error(1)
}

func (m *MockAssistant) AnswerFAQ(ctx context.Context, query string) (*assistant.FAQAnswer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.FAQAnswer), args.Error(1)
}

func (m *MockAssistant) ModerateAndTranslate(ctx context.Context, message string) (*assistant.Moderation, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Moderation), args.Error(1)
}

// MockHub mocks the Hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) Subscribe(clientID string, profileID, teamID uuid.UUID) bool {
	return m.Called(clientID, profileID, teamID).Bool(0)
}

func (m *MockHub) Unsubscribe(clientID string, profileID, teamID uuid.UUID) bool {
	return m.Called(clientID, profileID, teamID).Bool(0)
}

func (m *MockHub) BroadcastJoinRequestCreated(teamID uuid.UUID, data hub.JoinRequestCreatedData) {
	m.Called(teamID, data)
}

func (m *MockHub) BroadcastJoinRequestResolved(teamID uuid.UUID, data hub.JoinRequestResolvedData) {
	m.Called(teamID, data)
}

func (m *MockHub) BroadcastMemberJoined(teamID, profileID uuid.UUID, name string, avatarURL *string) {
	m.Called(teamID, profileID, name, avatarURL)
}

func (m *MockHub) BroadcastChatMessage(teamID uuid.UUID, data hub.ChatMessageData) {
	m.Called(teamID, data)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendJoinRequestNotice(to, teamName, requesterName, role, reviewURL string) error {
	return m.Called(to, teamName, requesterName, role, reviewURL).Error(0)
}

func (m *MockEmailService) SendJoinRequestDecision(to, teamName string, approved bool) error {
	return m.Called(to, teamName, approved).Error(0)
}

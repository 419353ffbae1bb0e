package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/obj8899/studio/internal/assistant"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/internal/testutil"
	"github.com/obj8899/studio/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assistantMocks struct {
	assistant *testutil.MockAssistant
	teams     *testutil.MockTeamService
	profiles  *testutil.MockProfileService
}

func setupAssistantTest(t *testing.T) (*assistantMocks, *testutil.HTTPTestClient) {
	t.Helper()
	m := &assistantMocks{
		assistant: new(testutil.MockAssistant),
		teams:     new(testutil.MockTeamService),
		profiles:  new(testutil.MockProfileService),
	}
	handler := NewAssistantHandler(m.assistant, m.teams, m.profiles)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/assistant/faq", handler.FAQ)

	protected := app.Group("")
	protected.Use(middleware.Auth(testutil.TestJWTService()))
	protected.Post("/assistant/suggest-teams", handler.SuggestTeams)
	protected.Post("/assistant/teams/:id/suggest-members", handler.SuggestMembers)
	protected.Post("/assistant/moderate", handler.Moderate)

	return m, testutil.NewHTTPTestClient(t, app)
}

func TestAssistantHandler_Disabled(t *testing.T) {
	m, client := setupAssistantTest(t)
	m.assistant.On("Enabled").Return(false)

	rec := client.POST("/assistant/faq", dto.FAQRequest{Query: "When does judging start?"}, nil)

	testutil.AssertStatus(t, rec, http.StatusServiceUnavailable)
	testutil.AssertErrorCode(t, rec, "unavailable")
	m.assistant.AssertNotCalled(t, "AnswerFAQ", mock.Anything, mock.Anything)
}

func TestAssistantHandler_FAQ(t *testing.T) {
	m, client := setupAssistantTest(t)
	m.assistant.On("Enabled").Return(true)
	m.assistant.On("AnswerFAQ", mock.Anything, "When does judging start?").
		Return(&assistant.FAQAnswer{Answer: "Sunday at noon."}, nil)

	rec := client.POST("/assistant/faq", dto.FAQRequest{Query: "  When does judging start?  "}, nil)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp dto.FAQResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, "Sunday at noon.", resp.Answer)
}

func TestAssistantHandler_FAQ_BlankQuery(t *testing.T) {
	m, client := setupAssistantTest(t)

	rec := client.POST("/assistant/faq", dto.FAQRequest{Query: "   "}, nil)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	m.assistant.AssertNotCalled(t, "AnswerFAQ", mock.Anything, mock.Anything)
}

func TestAssistantHandler_FAQ_GatewayFailure(t *testing.T) {
	m, client := setupAssistantTest(t)
	m.assistant.On("Enabled").Return(true)
	m.assistant.On("AnswerFAQ", mock.Anything, mock.Anything).Return(nil, errors.New("gateway returned 502"))

	rec := client.POST("/assistant/faq", dto.FAQRequest{Query: "hi"}, nil)

	testutil.AssertStatus(t, rec, http.StatusServiceUnavailable)
	assert.NotContains(t, rec.Body.String(), "502")
}

func TestAssistantHandler_SuggestTeams_FillsFromProfile(t *testing.T) {
	m, client := setupAssistantTest(t)

	profile := testProfile("Grace")
	profile.Passion = "climate"
	profile.Availability = "weekends"
	open := testTeam(uuid.New())
	open.Name = "Green Grid"
	mine := testTeam(uuid.New(), profile.ID)

	m.assistant.On("Enabled").Return(true)
	m.profiles.On("GetByID", mock.Anything, profile.ID).Return(profile, nil)
	m.teams.On("List", mock.Anything).Return([]models.Team{*open, *mine}, nil)
	m.assistant.On("SuggestTeams", mock.Anything, mock.MatchedBy(func(in assistant.SuggestTeamsInput) bool {
		return assert.ObjectsAreEqual([]string{"Go"}, in.UserSkills) &&
			in.UserPassion == "climate" &&
			in.UserAvailability == "weekends" &&
			len(in.TeamProfiles) == 1 && in.TeamProfiles[0].TeamName == "Green Grid"
	})).Return([]assistant.TeamMatch{{TeamName: "Green Grid", MatchScore: 87, Rationale: "skills overlap"}}, nil)

	rec := client.POST("/assistant/suggest-teams", dto.SuggestTeamsRequest{}, testutil.AuthHeaders(t, profile.ID))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp []dto.TeamMatchResponse
	testutil.ParseJSON(t, rec, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, 87, resp[0].MatchScore)
	m.assistant.AssertExpectations(t)
}

func TestAssistantHandler_SuggestTeams_ExplicitInputSkipsProfile(t *testing.T) {
	m, client := setupAssistantTest(t)

	profileID := uuid.New()
	m.assistant.On("Enabled").Return(true)
	m.teams.On("List", mock.Anything).Return([]models.Team{}, nil)
	m.assistant.On("SuggestTeams", mock.Anything, mock.Anything).Return([]assistant.TeamMatch{}, nil)

	rec := client.POST("/assistant/suggest-teams", dto.SuggestTeamsRequest{
		Skills:       []string{"Rust"},
		Passion:      "tooling",
		Availability: "evenings",
	}, testutil.AuthHeaders(t, profileID))

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `[]`, rec.Body.String())
	m.profiles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAssistantHandler_SuggestMembers(t *testing.T) {
	m, client := setupAssistantTest(t)

	creatorID := uuid.New()
	team := testTeam(creatorID)
	m.assistant.On("Enabled").Return(true)
	m.teams.On("GetByID", mock.Anything, team.ID).Return(team, nil)
	m.assistant.On("SuggestTeamMembers", mock.Anything, assistant.SuggestMembersInput{
		OpenRoles:       team.OpenRoles,
		RequiredSkills:  team.RequiredSkills,
		TeamDescription: team.ProjectDescription,
	}).Return(&assistant.MemberSuggestion{SuggestedMembers: []string{"UI designer"}, Rationale: "no designer yet"}, nil)

	rec := client.POST("/assistant/teams/"+team.ID.String()+"/suggest-members", nil, testutil.AuthHeaders(t, creatorID))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp dto.MemberSuggestionResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, []string{"UI designer"}, resp.SuggestedMembers)
}

func TestAssistantHandler_SuggestMembers_NotCreator(t *testing.T) {
	m, client := setupAssistantTest(t)

	team := testTeam(uuid.New())
	m.assistant.On("Enabled").Return(true)
	m.teams.On("GetByID", mock.Anything, team.ID).Return(team, nil)

	rec := client.POST("/assistant/teams/"+team.ID.String()+"/suggest-members", nil, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	m.assistant.AssertNotCalled(t, "SuggestTeamMembers", mock.Anything, mock.Anything)
}

func TestAssistantHandler_Moderate(t *testing.T) {
	m, client := setupAssistantTest(t)

	m.assistant.On("Enabled").Return(true)
	m.assistant.On("ModerateAndTranslate", mock.Anything, "bonjour").
		Return(&assistant.Moderation{TranslatedText: "hello", IsProfane: false}, nil)

	rec := client.POST("/assistant/moderate", dto.ModerateRequest{Message: "bonjour"}, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `{"translated_text":"hello","is_profane":false}`, rec.Body.String())
}

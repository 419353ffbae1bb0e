package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/obj8899/studio/internal/hub"
	"github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/models"
	"github.com/obj8899/studio/internal/services"
	"github.com/obj8899/studio/internal/testutil"
	"github.com/obj8899/studio/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type joinRequestMocks struct {
	joinRequests *testutil.MockJoinRequestService
	teams        *testutil.MockTeamService
	profiles     *testutil.MockProfileService
	email        *testutil.MockEmailService
	hub          *testutil.MockHub
}

func (m *joinRequestMocks) assertExpectations(t *testing.T) {
	m.joinRequests.AssertExpectations(t)
	m.teams.AssertExpectations(t)
	m.profiles.AssertExpectations(t)
	m.email.AssertExpectations(t)
	m.hub.AssertExpectations(t)
}

func setupJoinRequestTest(t *testing.T) (*joinRequestMocks, *testutil.HTTPTestClient) {
	t.Helper()
	m := &joinRequestMocks{
		joinRequests: new(testutil.MockJoinRequestService),
		teams:        new(testutil.MockTeamService),
		profiles:     new(testutil.MockProfileService),
		email:        new(testutil.MockEmailService),
		hub:          new(testutil.MockHub),
	}
	handler := NewJoinRequestHandler(m.joinRequests, m.teams, m.profiles, m.email, m.hub, "https://pulse.test")

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Post("/teams/:id/join-requests", handler.Submit)
	app.Get("/teams/:id/join-requests", handler.ListForTeam)
	app.Get("/join-requests/incoming", handler.Incoming)
	app.Get("/join-requests/outgoing", handler.Outgoing)
	app.Post("/join-requests/:id/approve", handler.Approve)
	app.Post("/join-requests/:id/reject", handler.Reject)

	return m, testutil.NewHTTPTestClient(t, app)
}

func TestJoinRequestHandler_Submit_Success(t *testing.T) {
	m, client := setupJoinRequestTest(t)

	creator := testProfile("Ada")
	requester := testProfile("Grace")
	team := testTeam(creator.ID)
	request := testJoinRequest(team.ID, requester, models.JoinRequestPending)

	m.joinRequests.On("Submit", mock.Anything, requester.ID, team.ID, "Designer", "Figma").Return(request, nil)
	m.hub.On("BroadcastJoinRequestCreated", team.ID, hub.JoinRequestCreatedData{
		RequestID:     request.ID,
		RequesterID:   requester.ID,
		RequesterName: "Grace",
		Role:          "Designer",
	}).Return()
	m.teams.On("GetByID", mock.Anything, team.ID).Return(team, nil)
	m.profiles.On("GetByID", mock.Anything, creator.ID).Return(creator, nil)
	m.email.On("SendJoinRequestNotice", creator.Email, team.Name, "Grace", "Designer",
		"https://pulse.test/teams/"+team.ID.String()+"/join-requests").Return(nil)

	rec := client.POST("/teams/"+team.ID.String()+"/join-requests",
		dto.CreateJoinRequestRequest{Role: "Designer", SkillsSummary: "Figma"}, testutil.AuthHeaders(t, requester.ID))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var resp dto.JoinRequestResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, request.ID, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.ResolvedAt)
	m.assertExpectations(t)
}

func TestJoinRequestHandler_Submit_EmailFailureStillSucceeds(t *testing.T) {
	m, client := setupJoinRequestTest(t)

	creator := testProfile("Ada")
	requester := testProfile("Grace")
	team := testTeam(creator.ID)
	request := testJoinRequest(team.ID, requester, models.JoinRequestPending)

	m.joinRequests.On("Submit", mock.Anything, requester.ID, team.ID, "Designer", "Figma").Return(request, nil)
	m.hub.On("BroadcastJoinRequestCreated", team.ID, mock.Anything).Return()
	m.teams.On("GetByID", mock.Anything, team.ID).Return(team, nil)
	m.profiles.On("GetByID", mock.Anything, creator.ID).Return(creator, nil)
	m.email.On("SendJoinRequestNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp: connection refused"))

	rec := client.POST("/teams/"+team.ID.String()+"/join-requests",
		dto.CreateJoinRequestRequest{Role: "Designer", SkillsSummary: "Figma"}, testutil.AuthHeaders(t, requester.ID))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	m.assertExpectations(t)
}

func TestJoinRequestHandler_Submit_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"team not found", services.ErrTeamNotFound, http.StatusNotFound, "not_found"},
		{"already member", services.ErrAlreadyMember, http.StatusConflict, "conflict"},
		{"duplicate pending", services.ErrDuplicatePending, http.StatusConflict, "conflict"},
		{"blank role", errors.Join(services.ErrValidation, errors.New("role is required")), http.StatusBadRequest, "validation_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, client := setupJoinRequestTest(t)

			requesterID := uuid.New()
			teamID := uuid.New()
			m.joinRequests.On("Submit", mock.Anything, requesterID, teamID, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := client.POST("/teams/"+teamID.String()+"/join-requests",
				dto.CreateJoinRequestRequest{Role: "Designer", SkillsSummary: "Figma"}, testutil.AuthHeaders(t, requesterID))

			testutil.AssertStatus(t, rec, tt.status)
			testutil.AssertErrorCode(t, rec, tt.code)
			m.hub.AssertNotCalled(t, "BroadcastJoinRequestCreated", mock.Anything, mock.Anything)
			m.email.AssertNotCalled(t, "SendJoinRequestNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestJoinRequestHandler_ListForTeam_CreatorOnly(t *testing.T) {
	m, client := setupJoinRequestTest(t)

	outsiderID := uuid.New()
	teamID := uuid.New()
	m.teams.On("IsCreator", mock.Anything, teamID, outsiderID).Return(false, nil)

	rec := client.GET("/teams/"+teamID.String()+"/join-requests", testutil.AuthHeaders(t, outsiderID))

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	testutil.AssertErrorCode(t, rec, "permission_denied")
	m.joinRequests.AssertNotCalled(t, "ListForTeam", mock.Anything, mock.Anything)
}

func TestJoinRequestHandler_ListForTeam_Success(t *testing.T) {
	m, client := setupJoinRequestTest(t)

	creator := testProfile("Ada")
	team := testTeam(creator.ID)
	first := testJoinRequest(team.ID, testProfile("Grace"), models.JoinRequestPending)
	second := testJoinRequest(team.ID, testProfile("Linus"), models.JoinRequestRejected)

	m.teams.On("IsCreator", mock.Anything, team.ID, creator.ID).Return(true, nil)
	m.joinRequests.On("ListForTeam", mock.Anything, team.ID).Return([]models.JoinRequest{*first, *second}, nil)

	rec := client.GET("/teams/"+team.ID.String()+"/join-requests", testutil.AuthHeaders(t, creator.ID))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp []dto.JoinRequestResponse
	testutil.ParseJSON(t, rec, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, first.ID, resp[0].ID)
	assert.Equal(t, second.ID, resp[1].ID)
	assert.Equal(t, "rejected", resp[1].Status)
}

func TestJoinRequestHandler_IncomingAndOutgoing(t *testing.T) {
	m, client := setupJoinRequestTest(t)

	profile := testProfile("Ada")
	incoming := testJoinRequest(uuid.New(), testProfile("Grace"), models.JoinRequestPending)
	outgoing := testJoinRequest(uuid.New(), profile, models.JoinRequestPending)

	m.joinRequests.On("ListIncoming", mock.Anything, profile.ID).Return([]models.JoinRequest{*incoming}, nil)
	m.joinRequests.On("ListForRequester", mock.Anything, profile.ID).Return([]models.JoinRequest{*outgoing}, nil)

	rec := client.GET("/join-requests/incoming", testutil.AuthHeaders(t, profile.ID))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var in []dto.JoinRequestResponse
	testutil.ParseJSON(t, rec, &in)
	require.Len(t, in, 1)
	assert.Equal(t, incoming.ID, in[0].ID)

	rec = client.GET("/join-requests/outgoing", testutil.AuthHeaders(t, profile.ID))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var out []dto.JoinRequestResponse
	testutil.ParseJSON(t, rec, &out)
	require.Len(t, out, 1)
	assert.Equal(t, outgoing.ID, out[0].ID)
}

func TestJoinRequestHandler_Approve(t *testing.T) {
	m, client := setupJoinRequestTest(t)

	creator := testProfile("Ada")
	requester := testProfile("Grace")
	team := testTeam(creator.ID, requester.ID)
	request := testJoinRequest(team.ID, requester, models.JoinRequestApproved)
	request.ResolvedAt = &request.CreatedAt
	request.ResolvedBy = &creator.ID

	m.joinRequests.On("Resolve", mock.Anything, request.ID, creator.ID, models.JoinRequestApproved).Return(request, nil)
	m.hub.On("BroadcastJoinRequestResolved", team.ID, hub.JoinRequestResolvedData{
		RequestID:   request.ID,
		RequesterID: requester.ID,
		Status:      "approved",
		ResolvedBy:  creator.ID,
	}).Return()
	m.hub.On("BroadcastMemberJoined", team.ID, requester.ID, "Grace", mock.Anything).Return()
	m.teams.On("GetByID", mock.Anything, team.ID).Return(team, nil)
	m.email.On("SendJoinRequestDecision", requester.Email, team.Name, true).Return(nil)

	rec := client.POST("/join-requests/"+request.ID.String()+"/approve", nil, testutil.AuthHeaders(t, creator.ID))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp dto.JoinRequestResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ResolvedAt)
	require.NotNil(t, resp.ResolvedBy)
	assert.Equal(t, creator.ID, *resp.ResolvedBy)
	m.assertExpectations(t)
}

func TestJoinRequestHandler_Reject(t *testing.T) {
	m, client := setupJoinRequestTest(t)

	creator := testProfile("Ada")
	requester := testProfile("Grace")
	team := testTeam(creator.ID)
	request := testJoinRequest(team.ID, requester, models.JoinRequestRejected)

	m.joinRequests.On("Resolve", mock.Anything, request.ID, creator.ID, models.JoinRequestRejected).Return(request, nil)
	m.hub.On("BroadcastJoinRequestResolved", team.ID, mock.MatchedBy(func(d hub.JoinRequestResolvedData) bool {
		return d.Status == "rejected"
	})).Return()
	m.teams.On("GetByID", mock.Anything, team.ID).Return(team, nil)
	m.email.On("SendJoinRequestDecision", requester.Email, team.Name, false).Return(nil)

	rec := client.POST("/join-requests/"+request.ID.String()+"/reject", nil, testutil.AuthHeaders(t, creator.ID))

	testutil.AssertStatus(t, rec, http.StatusOK)
	m.hub.AssertNotCalled(t, "BroadcastMemberJoined", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestJoinRequestHandler_Resolve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"already resolved", services.ErrRequestNotPending, http.StatusConflict, "invalid_state_transition"},
		{"not creator", services.ErrNotTeamCreator, http.StatusForbidden, "permission_denied"},
		{"missing", services.ErrJoinRequestNotFound, http.StatusNotFound, "not_found"},
		{"store failure", errors.New("tx aborted"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, client := setupJoinRequestTest(t)

			actorID := uuid.New()
			requestID := uuid.New()
			m.joinRequests.On("Resolve", mock.Anything, requestID, actorID, models.JoinRequestApproved).Return(nil, tt.err)

			rec := client.POST("/join-requests/"+requestID.String()+"/approve", nil, testutil.AuthHeaders(t, actorID))

			testutil.AssertStatus(t, rec, tt.status)
			testutil.AssertErrorCode(t, rec, tt.code)
			m.hub.AssertNotCalled(t, "BroadcastJoinRequestResolved", mock.Anything, mock.Anything)
		})
	}
}

func TestJoinRequestHandler_Resolve_InvalidID(t *testing.T) {
	_, client := setupJoinRequestTest(t)

	rec := client.POST("/join-requests/nope/approve", nil, testutil.AuthHeaders(t, uuid.New()))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

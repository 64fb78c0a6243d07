package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tandem-server/internal/logics"
	"tandem-server/internal/models"
	"tandem-server/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChannelTestController() *ChannelController {
	return NewChannelController(logics.NewChannelService(), logics.NewMembershipService())
}

// seedWorkspace creates a workspace with an admin owner and a general channel.
func seedWorkspace(t *testing.T, ownerID string) (*models.Workspace, *models.Channel) {
	t.Helper()

	membershipService := logics.NewMembershipService()
	channelService := logics.NewChannelService()
	invitationService := logics.NewInvitationService(membershipService, channelService)
	workspaceService := logics.NewWorkspaceService(membershipService, channelService, invitationService)

	workspace, channel, _, err := workspaceService.Bootstrap(logics.BootstrapInput{
		OwnerID:       ownerID,
		WorkspaceName: "Acme Corp",
		ChannelName:   "general",
		Emails:        []string{"invitee@example.com"},
	})
	require.NoError(t, err)
	return workspace, channel
}

func TestCreateChannelEndpoint(t *testing.T) {
	db := setupTestDB(t)
	setupTestRedis(t)
	owner := createTestUser(t, db, "user_owner", "owner@example.com")
	stranger := createTestUser(t, db, "user_stranger", "stranger@example.com")
	workspace, _ := seedWorkspace(t, owner.ID)

	controller := newChannelTestController()
	e := newTestEcho()

	create := func(userID, body string) *httptest.ResponseRecorder {
		c, rec := newJSONContext(e, http.MethodPost, "/api/workspaces/"+workspace.ID+"/channels/create", body, userID)
		c.SetParamNames("workspaceId")
		c.SetParamValues(workspace.ID)
		require.NoError(t, controller.CreateChannel(c))
		return rec
	}

	rec := create(owner.ID, `{"name": "design", "description": "All things design"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Channel created successfully")

	// 같은 이름(대소문자 무시)은 409
	rec = create(owner.ID, `{"name": "DESIGN"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Channel name already exists")

	// 비멤버는 403
	rec = create(stranger.ID, `{"name": "intruders"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// 이름 누락은 400
	rec = create(owner.ID, `{"description": "no name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditChannelEndpoint(t *testing.T) {
	db := setupTestDB(t)
	setupTestRedis(t)
	owner := createTestUser(t, db, "user_owner", "owner@example.com")
	member := createTestUser(t, db, "user_member", "member@example.com")
	workspace, channel := seedWorkspace(t, owner.ID)

	// 일반 멤버 추가
	membershipService := logics.NewMembershipService()
	_, err := membershipService.CreateMembership(repositories.DBS.Postgres, member.ID, workspace.ID, models.RoleUser)
	require.NoError(t, err)

	controller := newChannelTestController()
	e := newTestEcho()

	edit := func(userID, channelID, body string) *httptest.ResponseRecorder {
		c, rec := newJSONContext(e, http.MethodPatch,
			"/api/workspaces/"+workspace.ID+"/channels/"+channelID+"/edit", body, userID)
		c.SetParamNames("workspaceId", "channelId")
		c.SetParamValues(workspace.ID, channelID)
		require.NoError(t, controller.EditChannel(c))
		return rec
	}

	// 관리자는 수정 가능
	rec := edit(owner.ID, channel.ID, `{"name": "announcements", "description": "Company news"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.Channel
	require.NoError(t, db.First(&stored, "id = ?", channel.ID).Error)
	assert.Equal(t, "announcements", stored.Name)
	assert.Equal(t, "Company news", stored.Description)

	// 일반 멤버는 403
	rec = edit(member.ID, channel.ID, `{"name": "hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admins only")

	// 존재하지 않는 채널은 404
	rec = edit(owner.ID, "CO0000000", `{"name": "ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditChannelByBodyEndpoint(t *testing.T) {
	db := setupTestDB(t)
	setupTestRedis(t)
	owner := createTestUser(t, db, "user_owner", "owner@example.com")
	workspace, channel := seedWorkspace(t, owner.ID)

	controller := newChannelTestController()
	e := newTestEcho()

	body := `{"channelId": "` + channel.ID + `", "description": "Updated via body"}`
	c, rec := newJSONContext(e, http.MethodPatch, "/api/workspaces/"+workspace.ID+"/channels/edit", body, owner.ID)
	c.SetParamNames("workspaceId")
	c.SetParamValues(workspace.ID)

	require.NoError(t, controller.EditChannelByBody(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.Channel
	require.NoError(t, db.First(&stored, "id = ?", channel.ID).Error)
	assert.Equal(t, "Updated via body", stored.Description)

	// channelId 누락은 400
	c2, rec2 := newJSONContext(e, http.MethodPatch, "/api/workspaces/"+workspace.ID+"/channels/edit",
		`{"description": "no id"}`, owner.ID)
	c2.SetParamNames("workspaceId")
	c2.SetParamValues(workspace.ID)
	require.NoError(t, controller.EditChannelByBody(c2))
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "Channel ID is required")
}

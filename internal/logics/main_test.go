package logics

import (
	"testing"

	"tandem-server/configs"
	"tandem-server/internal/models"
	"tandem-server/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB wires an in-memory sqlite database into the repository
// singleton so the services under test run against real SQL, unique indexes
// included.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	configs.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrateInOrder(db))

	repositories.DBS.Postgres = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:        id,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Username:  id,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// bootstrapTestWorkspace runs the real bootstrap flow and returns its output.
func bootstrapTestWorkspace(t *testing.T, ownerID string, emails ...string) (*models.Workspace, *models.Channel, []*models.Invitation) {
	t.Helper()

	if len(emails) == 0 {
		emails = []string{"invitee@example.com"}
	}

	membershipService := NewMembershipService()
	channelService := NewChannelService()
	invitationService := NewInvitationService(membershipService, channelService)
	workspaceService := NewWorkspaceService(membershipService, channelService, invitationService)

	workspace, channel, invitations, err := workspaceService.Bootstrap(BootstrapInput{
		OwnerID:       ownerID,
		WorkspaceName: "Acme Corp",
		ChannelName:   "general",
		Emails:        emails,
	})
	require.NoError(t, err)
	return workspace, channel, invitations
}

package logics

import (
	"errors"
	"strings"

	"tandem-server/internal/models"
	"tandem-server/internal/repositories"
	"tandem-server/internal/utils"

	apperrors "tandem-server/pkg/errors"

	"gorm.io/gorm"
)

// WorkspaceNameMinLen is the minimum workspace name length after trimming.
const WorkspaceNameMinLen = 2

// WorkspaceService handles workspace business logic. It is the sole writer of
// workspace rows.
type WorkspaceService struct {
	membershipService *MembershipService
	channelService    *ChannelService
	invitationService *InvitationService
}

// NewWorkspaceService creates a new instance of WorkspaceService
func NewWorkspaceService(
	membershipService *MembershipService,
	channelService *ChannelService,
	invitationService *InvitationService,
) *WorkspaceService {
	return &WorkspaceService{
		membershipService: membershipService,
		channelService:    channelService,
		invitationService: invitationService,
	}
}

// GetWorkspace retrieves a workspace by ID with optional relationships to preload.
func (s *WorkspaceService) GetWorkspace(id string, preloads ...string) (*models.Workspace, error) {
	var workspace models.Workspace

	query := repositories.DBS.Postgres
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	if err := query.First(&workspace, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Workspace not found")
		}
		return nil, apperrors.Internal("failed to fetch workspace", err)
	}

	return &workspace, nil
}

// ListUserWorkspaces returns every workspace the user is a member of,
// excluding excludeID when non-empty.
func (s *WorkspaceService) ListUserWorkspaces(userID, excludeID string) ([]*models.Workspace, error) {
	var workspaces []*models.Workspace

	query := repositories.DBS.Postgres.
		Joins("JOIN memberships ON memberships.workspace_id = workspaces.id").
		Where("memberships.user_id = ?", userID).
		Preload("Channels")
	if excludeID != "" {
		query = query.Where("workspaces.id <> ?", excludeID)
	}

	if err := query.Order("workspaces.created_at ASC").Find(&workspaces).Error; err != nil {
		return nil, apperrors.Internal("failed to list workspaces", err)
	}

	return workspaces, nil
}

// BootstrapInput carries everything needed for first-time workspace creation.
type BootstrapInput struct {
	OwnerID       string
	WorkspaceName string
	ChannelName   string
	ImageURL      string
	Emails        []string
}

// Bootstrap performs first-time creation as a single transaction: the
// workspace, the owner's admin membership, the first channel, and one
// invitation per email. Either all rows land or none do.
func (s *WorkspaceService) Bootstrap(input BootstrapInput) (*models.Workspace, *models.Channel, []*models.Invitation, error) {
	workspaceName := strings.TrimSpace(input.WorkspaceName)
	if len(workspaceName) < WorkspaceNameMinLen {
		return nil, nil, nil, apperrors.InvalidArgument("Workspace name must be at least 2 characters")
	}

	channelName, err := s.channelService.validateName(input.ChannelName)
	if err != nil {
		return nil, nil, nil, err
	}

	if input.ImageURL != "" && !utils.IsImageURL(input.ImageURL) {
		return nil, nil, nil, apperrors.InvalidArgument("Image URL must point to a png, jpg, jpeg, gif or svg file")
	}

	if len(input.Emails) == 0 {
		return nil, nil, nil, apperrors.InvalidArgument("At least one invitee email is required")
	}

	workspaceID, err := utils.GenerateWorkspaceID()
	if err != nil {
		return nil, nil, nil, apperrors.Internal("failed to generate workspace id", err)
	}

	channelID, err := utils.GenerateChannelID()
	if err != nil {
		return nil, nil, nil, apperrors.Internal("failed to generate channel id", err)
	}

	workspace := models.Workspace{
		ID:      workspaceID,
		Name:    workspaceName,
		Image:   input.ImageURL,
		OwnerID: input.OwnerID,
	}

	channel := models.Channel{
		ID:          channelID,
		WorkspaceID: workspaceID,
		Name:        channelName,
	}

	var invitations []*models.Invitation

	err = repositories.DBS.Postgres.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return apperrors.Internal("failed to create workspace", err)
		}

		// The creator joins as owner-equivalent admin
		if _, err := s.membershipService.CreateMembership(tx, input.OwnerID, workspaceID, models.RoleAdmin); err != nil {
			return err
		}

		if err := tx.Create(&channel).Error; err != nil {
			return apperrors.Internal("failed to create channel", err)
		}

		created, err := s.invitationService.CreateBatch(tx, workspaceID, input.OwnerID, input.Emails)
		if err != nil {
			return err
		}
		invitations = created

		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return &workspace, &channel, invitations, nil
}

// Search result bounds, matching the discovery page: at most 20 workspaces,
// each with a preview of its first 5 channels.
const (
	SearchResultLimit         = 20
	SearchChannelPreviewLimit = 5
)

// WorkspaceSearchResult is one discovery hit: the workspace (Channels holding
// the preview slice) plus roster and channel totals.
type WorkspaceSearchResult struct {
	Workspace       *models.Workspace `json:"workspace"`
	MembershipCount int64             `json:"membership_count"`
	ChannelCount    int64             `json:"channel_count"`
}

// SearchWorkspaces finds workspaces whose name contains the query,
// case-insensitively. Discovery is open to any authenticated user, not just
// members.
func (s *WorkspaceService) SearchWorkspaces(query string) ([]*WorkspaceSearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, apperrors.InvalidArgument("Search query is required")
	}

	var workspaces []*models.Workspace
	pattern := "%" + strings.ToLower(trimmed) + "%"
	err := repositories.DBS.Postgres.
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at ASC").
		Limit(SearchResultLimit).
		Find(&workspaces).Error
	if err != nil {
		return nil, apperrors.Internal("failed to search workspaces", err)
	}

	results := make([]*WorkspaceSearchResult, 0, len(workspaces))
	for _, workspace := range workspaces {
		var preview []*models.Channel
		err := repositories.DBS.Postgres.
			Where("workspace_id = ?", workspace.ID).
			Order("created_at ASC").
			Limit(SearchChannelPreviewLimit).
			Find(&preview).Error
		if err != nil {
			return nil, apperrors.Internal("failed to load channel preview", err)
		}
		workspace.Channels = preview

		var membershipCount int64
		if err := repositories.DBS.Postgres.Model(&models.Membership{}).
			Where("workspace_id = ?", workspace.ID).
			Count(&membershipCount).Error; err != nil {
			return nil, apperrors.Internal("failed to count memberships", err)
		}

		var channelCount int64
		if err := repositories.DBS.Postgres.Model(&models.Channel{}).
			Where("workspace_id = ?", workspace.ID).
			Count(&channelCount).Error; err != nil {
			return nil, apperrors.Internal("failed to count channels", err)
		}

		results = append(results, &WorkspaceSearchResult{
			Workspace:       workspace,
			MembershipCount: membershipCount,
			ChannelCount:    channelCount,
		})
	}

	return results, nil
}

// UpdateWorkspace applies a partial update to a workspace's name and image.
// Owner authorization is checked by the caller against OwnerID.
func (s *WorkspaceService) UpdateWorkspace(id string, updates models.WorkspaceUpdate) (*models.Workspace, error) {
	workspace, err := s.GetWorkspace(id)
	if err != nil {
		return nil, err
	}

	updateMap := make(map[string]interface{})

	if updates.Name != nil {
		trimmed := strings.TrimSpace(*updates.Name)
		if len(trimmed) < WorkspaceNameMinLen {
			return nil, apperrors.InvalidArgument("Workspace name must be at least 2 characters")
		}
		updateMap["name"] = trimmed
	}

	if updates.Image != nil {
		if *updates.Image != "" && !utils.IsImageURL(*updates.Image) {
			return nil, apperrors.InvalidArgument("Image URL must point to a png, jpg, jpeg, gif or svg file")
		}
		updateMap["image"] = *updates.Image
	}

	if len(updateMap) > 0 {
		if err := repositories.DBS.Postgres.Model(workspace).Updates(updateMap).Error; err != nil {
			return nil, apperrors.Internal("failed to update workspace", err)
		}
	}

	return s.GetWorkspace(id)
}

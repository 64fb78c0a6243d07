package logics

import (
	"errors"

	"tandem-server/internal/models"
	"tandem-server/internal/repositories"
	"tandem-server/internal/utils"

	apperrors "tandem-server/pkg/errors"

	"gorm.io/gorm"
)

// MembershipService handles workspace membership business logic
type MembershipService struct{}

// NewMembershipService creates a new instance of MembershipService
func NewMembershipService() *MembershipService {
	return &MembershipService{}
}

// GetMembership retrieves the membership of a user in a workspace.
func (s *MembershipService) GetMembership(userID, workspaceID string) (*models.Membership, error) {
	var membership models.Membership
	err := repositories.DBS.Postgres.
		Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("membership not found")
		}
		return nil, apperrors.Internal("failed to fetch membership", err)
	}
	return &membership, nil
}

// RequireMember returns the membership, or an authorization error if the user
// is not a participant of the workspace.
func (s *MembershipService) RequireMember(userID, workspaceID string) (*models.Membership, error) {
	membership, err := s.GetMembership(userID, workspaceID)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrNotFound {
			return nil, apperrors.Unauthorized("Access denied")
		}
		return nil, err
	}
	return membership, nil
}

// RequireAdmin returns the membership, or an authorization error if the user
// does not hold the admin role in the workspace.
func (s *MembershipService) RequireAdmin(userID, workspaceID string) (*models.Membership, error) {
	membership, err := s.GetMembership(userID, workspaceID)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrNotFound {
			return nil, apperrors.Unauthorized("Access denied: Admins only")
		}
		return nil, err
	}
	if !membership.IsAdmin() {
		return nil, apperrors.Unauthorized("Access denied: Admins only")
	}
	return membership, nil
}

// CreateMembership inserts a membership row inside the given transaction.
// The (user_id, workspace_id) unique index is the real duplicate guard;
// duplicate inserts surface as a conflict error.
func (s *MembershipService) CreateMembership(tx *gorm.DB, userID, workspaceID, role string) (*models.Membership, error) {
	memberID, err := utils.GenerateUniqueID("M")
	if err != nil {
		return nil, apperrors.Internal("failed to generate membership id", err)
	}

	membership := models.Membership{
		ID:          memberID,
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        role,
	}

	if err := tx.Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("user is already a member of this workspace")
		}
		return nil, apperrors.Internal("failed to create membership", err)
	}

	return &membership, nil
}

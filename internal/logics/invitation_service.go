package logics

import (
	"errors"
	"strings"
	"time"

	"tandem-server/internal/models"
	"tandem-server/internal/repositories"
	"tandem-server/internal/utils"

	apperrors "tandem-server/pkg/errors"

	"gorm.io/gorm"
)

// InvitationService handles invitation business logic. It is the sole writer
// of invitation rows.
type InvitationService struct {
	membershipService *MembershipService
	channelService    *ChannelService
}

// NewInvitationService creates a new instance of InvitationService
func NewInvitationService(membershipService *MembershipService, channelService *ChannelService) *InvitationService {
	return &InvitationService{
		membershipService: membershipService,
		channelService:    channelService,
	}
}

// AcceptResult carries the identifiers the client needs to navigate into the
// joined workspace.
type AcceptResult struct {
	WorkspaceID string `json:"workspace_id"`
	ChannelID   string `json:"channel_id"`
}

// CreateBatch inserts one fresh invitation per email inside the given
// transaction, each with a newly generated opaque token.
func (s *InvitationService) CreateBatch(tx *gorm.DB, workspaceID, inviterID string, emails []string) ([]*models.Invitation, error) {
	invitations := make([]*models.Invitation, 0, len(emails))

	for _, email := range emails {
		inviteID, err := utils.GenerateUniqueID("I")
		if err != nil {
			return nil, apperrors.Internal("failed to generate invitation id", err)
		}

		token, err := utils.GenerateInvitationToken()
		if err != nil {
			return nil, apperrors.Internal("failed to generate invitation token", err)
		}

		invitation := &models.Invitation{
			ID:          inviteID,
			Email:       strings.ToLower(strings.TrimSpace(email)),
			Token:       token,
			WorkspaceID: workspaceID,
			InvitedByID: inviterID,
		}

		if err := tx.Create(invitation).Error; err != nil {
			return nil, apperrors.Internal("failed to create invitation", err)
		}

		invitations = append(invitations, invitation)
	}

	return invitations, nil
}

// ReplacePending replaces the pending-invitation set of a workspace: every
// invitation with accepted_at IS NULL is deleted, then one fresh row per
// supplied email is inserted. Accepted invitations are preserved. The whole
// operation runs in one transaction so a crash cannot leave the workspace
// with no pending invitations.
func (s *InvitationService) ReplacePending(workspaceID, inviterID string, emails []string) ([]*models.Invitation, error) {
	var invitations []*models.Invitation

	err := repositories.DBS.Postgres.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("workspace_id = ? AND accepted_at IS NULL", workspaceID).
			Delete(&models.Invitation{}).Error; err != nil {
			return apperrors.Internal("failed to delete pending invitations", err)
		}

		created, err := s.CreateBatch(tx, workspaceID, inviterID, emails)
		if err != nil {
			return err
		}

		invitations = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invitations, nil
}

// Accept redeems an invitation token for the given user: marks the invitation
// accepted, creates a `user` membership, and returns the workspace plus its
// first channel for redirect.
//
// The accept is a conditional update (accepted_at IS NULL), so concurrent
// double-redemption of the same token loses cleanly with a conflict instead
// of silently re-accepting.
func (s *InvitationService) Accept(token, userID string) (*AcceptResult, error) {
	var invitation models.Invitation
	err := repositories.DBS.Postgres.First(&invitation, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Invitation not found")
		}
		return nil, apperrors.Internal("failed to fetch invitation", err)
	}

	err = repositories.DBS.Postgres.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.Invitation{}).
			Where("id = ? AND accepted_at IS NULL", invitation.ID).
			Updates(map[string]interface{}{
				"accepted_at":    now,
				"accepted_by_id": userID,
			})
		if res.Error != nil {
			return apperrors.Internal("failed to accept invitation", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("Invitation has already been accepted")
		}

		if _, err := s.membershipService.CreateMembership(tx, userID, invitation.WorkspaceID, models.RoleUser); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	channel, err := s.channelService.FirstChannel(invitation.WorkspaceID)
	if err != nil {
		return nil, err
	}

	return &AcceptResult{
		WorkspaceID: invitation.WorkspaceID,
		ChannelID:   channel.ID,
	}, nil
}

// ListPendingForEmail returns pending invitations addressed to an email, with
// the workspace preloaded for display.
func (s *InvitationService) ListPendingForEmail(email string) ([]*models.Invitation, error) {
	var invitations []*models.Invitation
	err := repositories.DBS.Postgres.
		Preload("Workspace").
		Where("email = ? AND accepted_at IS NULL", strings.ToLower(strings.TrimSpace(email))).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, apperrors.Internal("failed to list invitations", err)
	}
	return invitations, nil
}

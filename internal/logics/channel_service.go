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

// Channel name/description limits, shared by create and edit paths.
const (
	ChannelNameMaxLen        = 80
	ChannelDescriptionMaxLen = 250
)

// ChannelService handles channel business logic
type ChannelService struct{}

// NewChannelService creates a new instance of ChannelService
func NewChannelService() *ChannelService {
	return &ChannelService{}
}

// GetChannel retrieves a channel by ID.
func (s *ChannelService) GetChannel(channelID string) (*models.Channel, error) {
	var channel models.Channel
	if err := repositories.DBS.Postgres.First(&channel, "id = ?", channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Channel not found")
		}
		return nil, apperrors.Internal("failed to fetch channel", err)
	}
	return &channel, nil
}

// nameTaken reports whether another channel in the workspace already uses the
// name, compared case-insensitively. excludeID is skipped, so a channel can
// keep its own name on edit.
func (s *ChannelService) nameTaken(workspaceID, name, excludeID string) (bool, error) {
	query := repositories.DBS.Postgres.
		Model(&models.Channel{}).
		Where("workspace_id = ? AND name_key = ?", workspaceID, strings.ToLower(name))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Internal("failed to check channel name", err)
	}
	return count > 0, nil
}

// validateName trims and bounds-checks a channel name.
func (s *ChannelService) validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperrors.InvalidArgument("Channel name is required")
	}
	if len(trimmed) > ChannelNameMaxLen {
		return "", apperrors.InvalidArgument("Channel name must be between 1 and 80 characters")
	}
	return trimmed, nil
}

// CreateChannel creates a channel in a workspace. Name uniqueness is checked
// up front for a friendly error, but the composite unique index on
// (workspace_id, name_key) is what closes the race between concurrent creates.
func (s *ChannelService) CreateChannel(workspaceID, name, description string) (*models.Channel, error) {
	trimmedName, err := s.validateName(name)
	if err != nil {
		return nil, err
	}

	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) > ChannelDescriptionMaxLen {
		return nil, apperrors.InvalidArgument("Channel description must be less than 250 characters")
	}

	taken, err := s.nameTaken(workspaceID, trimmedName, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Conflict("Channel name already exists")
	}

	channelID, err := utils.GenerateChannelID()
	if err != nil {
		return nil, apperrors.Internal("failed to generate channel id", err)
	}

	channel := models.Channel{
		ID:          channelID,
		WorkspaceID: workspaceID,
		Name:        trimmedName,
		Description: trimmedDescription,
	}

	if err := repositories.DBS.Postgres.Create(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Channel name already exists")
		}
		return nil, apperrors.Internal("failed to create channel", err)
	}

	return &channel, nil
}

// UpdateChannel edits a channel's name and/or description. The channel must
// belong to the given workspace; a nil field is left unchanged.
func (s *ChannelService) UpdateChannel(workspaceID, channelID string, name, description *string) (*models.Channel, error) {
	channel, err := s.GetChannel(channelID)
	if err != nil {
		return nil, err
	}
	if channel.WorkspaceID != workspaceID {
		return nil, apperrors.NotFound("Channel not found in this workspace")
	}

	updateMap := make(map[string]interface{})

	if name != nil {
		trimmedName, err := s.validateName(*name)
		if err != nil {
			return nil, err
		}

		if !strings.EqualFold(trimmedName, channel.Name) {
			taken, err := s.nameTaken(workspaceID, trimmedName, channel.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.Conflict("Another channel with this name already exists")
			}
		}

		updateMap["name"] = trimmedName
		updateMap["name_key"] = strings.ToLower(trimmedName)
	}

	if description != nil {
		trimmedDescription := strings.TrimSpace(*description)
		if len(trimmedDescription) > ChannelDescriptionMaxLen {
			return nil, apperrors.InvalidArgument("Channel description must be less than 250 characters")
		}
		updateMap["description"] = trimmedDescription
	}

	if len(updateMap) == 0 {
		return nil, apperrors.InvalidArgument("No valid fields provided for update")
	}

	if err := repositories.DBS.Postgres.Model(channel).Updates(updateMap).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Another channel with this name already exists")
		}
		return nil, apperrors.Internal("failed to update channel", err)
	}

	return s.GetChannel(channelID)
}

// FirstChannel returns the oldest channel of a workspace, used as the landing
// channel after an invitation is accepted.
func (s *ChannelService) FirstChannel(workspaceID string) (*models.Channel, error) {
	var channel models.Channel
	err := repositories.DBS.Postgres.
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("workspace has no channels")
		}
		return nil, apperrors.Internal("failed to fetch first channel", err)
	}
	return &channel, nil
}

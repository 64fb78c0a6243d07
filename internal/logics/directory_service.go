package logics

import (
	"context"
	"strings"
	"time"

	"tandem-server/internal/models"

	apperrors "tandem-server/pkg/errors"

	stream "github.com/GetStream/stream-chat-go/v6"
)

// UserDirectory mirrors identity attributes into the external messaging/video
// service's user directory and mints client tokens for it. Message delivery,
// presence and call signaling all live on the external side; this interface
// is the entire local contract.
type UserDirectory interface {
	UpsertUser(ctx context.Context, user *models.User) error
	CreateUserToken(userID string) (string, error)
}

// DirectoryService implements UserDirectory against Stream.
type DirectoryService struct {
	client *stream.Client
}

// NewDirectoryService creates a Stream-backed directory service.
func NewDirectoryService(apiKey, apiSecret string) (*DirectoryService, error) {
	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, apperrors.Internal("failed to create messaging client", err)
	}
	return &DirectoryService{client: client}, nil
}

// UpsertUser pushes the local user record into the messaging directory so
// chat identities stay consistent with the authentication identity.
func (s *DirectoryService) UpsertUser(ctx context.Context, user *models.User) error {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)

	_, err := s.client.UpsertUser(ctx, &stream.User{
		ID:    user.ID,
		Name:  name,
		Image: user.ImageURL,
		Role:  "user",
		ExtraData: map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
		},
	})
	if err != nil {
		return apperrors.Internal("failed to upsert messaging directory user", err)
	}

	return nil
}

// CreateUserToken mints a client token the browser uses to connect its chat
// and video clients.
func (s *DirectoryService) CreateUserToken(userID string) (string, error) {
	token, err := s.client.CreateToken(userID, time.Time{})
	if err != nil {
		return "", apperrors.Internal("failed to create messaging token", err)
	}
	return token, nil
}

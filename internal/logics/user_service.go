package logics

import (
	"errors"

	"tandem-server/internal/models"
	"tandem-server/internal/repositories"

	apperrors "tandem-server/pkg/errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProviderUser is the user object carried in identity-provider webhook events.
type ProviderUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Username       string `json:"username"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// PrimaryEmail returns the first email address on the provider record, or "".
func (u *ProviderUser) PrimaryEmail() string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return u.EmailAddresses[0].EmailAddress
}

// ProviderEvent is the envelope of an identity-provider webhook payload.
type ProviderEvent struct {
	Type string       `json:"type"`
	Data ProviderUser `json:"data"`
}

// Event types this service reacts to. Anything else is accepted and ignored.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
)

// UserService mirrors identity-provider accounts into local user rows.
type UserService struct{}

// NewUserService creates a new instance of UserService
func NewUserService() *UserService {
	return &UserService{}
}

// GetUser retrieves a user by provider id.
func (s *UserService) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := repositories.DBS.Postgres.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("failed to fetch user", err)
	}
	return &user, nil
}

// UpsertFromProvider maps provider fields onto the local user row keyed by
// the stable provider id, creating or updating as needed. rawPayload, when
// non-nil, is kept on the row for sync debugging.
func (s *UserService) UpsertFromProvider(data ProviderUser, rawPayload []byte) (*models.User, error) {
	if data.ID == "" {
		return nil, apperrors.InvalidArgument("provider user id is required")
	}

	firstName := data.FirstName
	if firstName == "" {
		firstName = "anonymous"
	}
	lastName := data.LastName
	if lastName == "" {
		lastName = "user"
	}

	user := models.User{
		ID:        data.ID,
		Email:     data.PrimaryEmail(),
		FirstName: firstName,
		LastName:  lastName,
		Username:  data.Username,
		ImageURL:  data.ImageURL,
	}
	if rawPayload != nil {
		user.ProviderData = datatypes.JSON(rawPayload)
	}

	err := repositories.DBS.Postgres.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "username", "image_url", "provider_data", "updated_at",
		}),
	}).Create(&user).Error
	if err != nil {
		return nil, apperrors.Internal("failed to upsert user", err)
	}

	return &user, nil
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// User mirrors an identity-provider account. Rows are written only by the
// identity sync flow (provider webhooks); this service never deletes them.
type User struct {
	// ID is the stable identity-provider user id.
	ID        string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email     string `gorm:"type:varchar(120);index" json:"email"`
	FirstName string `gorm:"type:varchar(80);" json:"first_name"`
	LastName  string `gorm:"type:varchar(80);" json:"last_name"`
	Username  string `gorm:"type:varchar(80);" json:"username"`
	ImageURL  string `gorm:"type:varchar(500);" json:"image_url"`

	// ProviderData keeps the last raw provider payload for debugging sync issues.
	ProviderData datatypes.JSON `gorm:"type:jsonb" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

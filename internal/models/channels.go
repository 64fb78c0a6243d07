package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Channel is a named conversation space within a workspace.
//
// Name is stored as given; NameKey holds the lowercased copy and carries the
// composite unique index with WorkspaceID, which is what actually enforces
// per-workspace case-insensitive name uniqueness. Application-level existence
// checks before insert are a UX affordance only.
type Channel struct {
	ID          string `gorm:"type:char(9);primaryKey" json:"id"`
	WorkspaceID string `gorm:"type:char(9);not null;uniqueIndex:idx_channel_workspace_name" json:"workspace_id"`
	Name        string `gorm:"type:varchar(80);not null" json:"name"`
	NameKey     string `gorm:"type:varchar(80);not null;uniqueIndex:idx_channel_workspace_name" json:"-"`
	Description string `gorm:"type:varchar(250);" json:"description"`

	Workspace *Workspace `gorm:"foreignKey:WorkspaceID;references:ID" json:"workspace,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Channel) TableName() string {
	return "channels"
}

// BeforeSave keeps NameKey in sync with Name.
func (ch *Channel) BeforeSave(_ *gorm.DB) error {
	ch.NameKey = strings.ToLower(ch.Name)
	return nil
}

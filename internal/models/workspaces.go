package models

import (
	"time"

	"gorm.io/gorm"
)

// Workspace represents a tenant/team container owning channels and memberships.
type Workspace struct {
	ID      string `gorm:"type:char(9);primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(250);not null" json:"name"`
	Image   string `gorm:"type:varchar(500);" json:"image"`
	OwnerID string `gorm:"type:varchar(64);not null;index" json:"owner_id"`

	Owner *User `gorm:"foreignKey:OwnerID;references:ID" json:"owner,omitempty"`

	Channels    []*Channel    `gorm:"foreignKey:WorkspaceID;references:ID" json:"channels,omitempty"`
	Memberships []*Membership `gorm:"foreignKey:WorkspaceID;references:ID" json:"memberships,omitempty"`
	Invitations []*Invitation `gorm:"foreignKey:WorkspaceID;references:ID" json:"invitations,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceUpdate is used for partial updates on a workspace.
type WorkspaceUpdate struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

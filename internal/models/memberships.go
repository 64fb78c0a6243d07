package models

import (
	"time"
)

// Membership roles. The workspace owner holds RoleAdmin; invited users join
// with RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Membership is a user's role-bearing association with a workspace.
// The (user_id, workspace_id) pair is unique at the database level so that
// concurrent joins cannot produce duplicate rows.
type Membership struct {
	ID          string `gorm:"type:char(12);primaryKey" json:"id"`
	UserID      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_membership_user_workspace" json:"user_id"`
	WorkspaceID string `gorm:"type:char(9);not null;uniqueIndex:idx_membership_user_workspace" json:"workspace_id"`
	Role        string `gorm:"type:varchar(50);not null;default:'user'" json:"role"`

	User      *User      `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID;references:ID" json:"workspace,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}

// IsAdmin reports whether this membership carries administrative privileges.
func (m *Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}

package models

import (
	"time"
)

// Invitation is a token-bearing pending offer for an email address to join a
// workspace. Token values are bearer credentials: unique and generated from
// crypto/rand.
//
// Lifecycle: created in batch during bootstrap or workspace edit; resolved at
// most once (AcceptedAt set) or left pending indefinitely. Replacing a
// workspace's invitations deletes only rows where AcceptedAt is null, so
// acceptance records survive re-edits.
type Invitation struct {
	ID           string     `gorm:"type:char(12);primaryKey" json:"id"`
	Email        string     `gorm:"type:varchar(120);not null;index" json:"email"`
	Token        string     `gorm:"type:char(64);not null;uniqueIndex" json:"-"`
	WorkspaceID  string     `gorm:"type:char(9);not null;index" json:"workspace_id"`
	InvitedByID  string     `gorm:"type:varchar(64);not null" json:"invited_by_id"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	AcceptedByID *string    `gorm:"type:varchar(64)" json:"accepted_by_id,omitempty"`

	Workspace *Workspace `gorm:"foreignKey:WorkspaceID;references:ID" json:"workspace,omitempty"`
	InvitedBy *User      `gorm:"foreignKey:InvitedByID;references:ID" json:"invited_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// Pending reports whether the invitation has not been accepted yet.
func (i *Invitation) Pending() bool {
	return i.AcceptedAt == nil
}

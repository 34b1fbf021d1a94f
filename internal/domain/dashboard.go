package domain

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleEditor MemberRole = "editor"
	RoleViewer MemberRole = "viewer"
)

// Valid reports whether the role is one of the known roles.
func (r MemberRole) Valid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanEdit reports whether the role allows mutating dashboard contents.
func (r MemberRole) CanEdit() bool {
	return r == RoleOwner || r == RoleEditor
}

type Dashboard struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	IsPublic    bool      `json:"isPublic" gorm:"not null;default:false"`
	PublicLink  uuid.UUID `json:"publicLink" gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Owner   *User             `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members []DashboardMember `json:"members,omitempty" gorm:"foreignKey:DashboardID;constraint:OnDelete:CASCADE"`
}

// DashboardMember links one user to one dashboard with a role. Every
// dashboard has exactly one owner member, created in the same transaction
// as the dashboard itself.
type DashboardMember struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DashboardID uuid.UUID  `json:"dashboardId" gorm:"type:uuid;not null;uniqueIndex:idx_dashboard_user"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_dashboard_user"`
	Role        MemberRole `json:"role" gorm:"not null"`
	JoinedAt    time.Time  `json:"joinedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

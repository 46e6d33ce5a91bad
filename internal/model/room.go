package model

import (
	"strings"

	"gorm.io/gorm"
)

// Room is a shared household that chores and memberships belong to.
// A room exists only while it has at least one membership; the last
// member leaving deletes it together with its requests and chores.
type Room struct {
	gorm.Model

	// Name is the display name chosen at creation.
	Name string `gorm:"column:name;type:varchar(50);not null"`

	// NormalizedName is the lowercase form backing the case-insensitive
	// uniqueness constraint.
	NormalizedName string `gorm:"column:normalized_name;uniqueIndex;type:varchar(50);not null"`

	// AllowMembersToPost controls whether non-owner members may create chores.
	AllowMembersToPost bool `gorm:"column:allow_members_to_post;not null"`
}

func (Room) TableName() string {
	return "room"
}

// NormalizeRoomName returns the canonical form used for duplicate checks
// and name search.
func NormalizeRoomName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

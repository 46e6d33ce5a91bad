package model

import "gorm.io/gorm"

// Join request types.
const (
	JoinRequestTypeJoin   int8 = 0 // a non-member asking to enter the room
	JoinRequestTypeInvite int8 = 1 // an owner offering membership to a non-member
)

// JoinRequest is a pending entry ticket into a room, created by either the
// joining user (type join) or a room owner (type invite). Accept, decline
// and cancel all delete the row; at most one pending row exists per
// (room, user, type).
type JoinRequest struct {
	gorm.Model
	RoomID   uint   `gorm:"column:room_id;index;not null"`
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null"`
	Type     int8   `gorm:"column:type;not null"`

	// Declined is kept for schema parity with older deployments.
	// Current flows delete requests instead of soft-declining them.
	Declined bool `gorm:"column:declined;not null"`
}

func (JoinRequest) TableName() string {
	return "room_join_request"
}

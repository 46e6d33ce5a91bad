package model

import "gorm.io/gorm"

// RoomMember relates a user to a room, tagged owner or regular.
// A room always keeps at least one owner membership while it exists;
// the engine enforces this on every removal path.
type RoomMember struct {
	gorm.Model
	RoomID   uint   `gorm:"column:room_id;index:idx_room_user,unique;not null"`
	UserUuid string `gorm:"column:user_uuid;index:idx_room_user,unique;index;type:char(20);not null"`
	Owner    bool   `gorm:"column:owner;not null"`
}

func (RoomMember) TableName() string {
	return "room_member"
}

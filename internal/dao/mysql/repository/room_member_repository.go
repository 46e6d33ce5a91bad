// This file implements RoomMemberRepository.
package repository

import (
	"your_chores_server/internal/model"

	"gorm.io/gorm"
)

type roomMemberRepository struct {
	db *gorm.DB
}

// NewRoomMemberRepository creates a RoomMemberRepository backed by gorm.
func NewRoomMemberRepository(db *gorm.DB) RoomMemberRepository {
	return &roomMemberRepository{db: db}
}

func (r *roomMemberRepository) FindByRoomAndUser(roomID uint, userUuid string) (*model.RoomMember, error) {
	var member model.RoomMember
	if err := r.db.Where("room_id = ? AND user_uuid = ?", roomID, userUuid).
		First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "query membership room_id=%d user_uuid=%s", roomID, userUuid)
	}
	return &member, nil
}

func (r *roomMemberRepository) FindByRoomID(roomID uint) ([]model.RoomMember, error) {
	var members []model.RoomMember
	if err := r.db.Where("room_id = ?", roomID).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "query memberships room_id=%d", roomID)
	}
	return members, nil
}

func (r *roomMemberRepository) FindByUserUuid(userUuid string) ([]model.RoomMember, error) {
	var members []model.RoomMember
	if err := r.db.Where("user_uuid = ?", userUuid).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "query memberships user_uuid=%s", userUuid)
	}
	return members, nil
}

// FindMembersWithUserInfo joins memberships with user_info, for the room
// detail projection.
func (r *roomMemberRepository) FindMembersWithUserInfo(roomID uint) ([]RoomMemberWithUserInfo, error) {
	var members []RoomMemberWithUserInfo
	if err := r.db.Table("room_member").
		Select("user_info.uuid as user_uuid, user_info.first_name, user_info.last_name, room_member.owner").
		Joins("LEFT JOIN user_info ON room_member.user_uuid = user_info.uuid").
		Where("room_member.room_id = ? AND room_member.deleted_at IS NULL", roomID).
		Scan(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "query member details room_id=%d", roomID)
	}
	return members, nil
}

func (r *roomMemberRepository) CountByRoomID(roomID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count members room_id=%d", roomID)
	}
	return count, nil
}

func (r *roomMemberRepository) CountByUserUuid(userUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).
		Where("user_uuid = ?", userUuid).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count rooms user_uuid=%s", userUuid)
	}
	return count, nil
}

func (r *roomMemberRepository) CountOwnersByRoomID(roomID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_id = ? AND owner = ?", roomID, true).Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count owners room_id=%d", roomID)
	}
	return count, nil
}

func (r *roomMemberRepository) Create(member *model.RoomMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "create membership")
	}
	return nil
}

func (r *roomMemberRepository) UpdateOwner(roomID uint, userUuid string, owner bool) error {
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_id = ? AND user_uuid = ?", roomID, userUuid).
		Update("owner", owner).Error; err != nil {
		return wrapDBErrorf(err, "update owner flag room_id=%d user_uuid=%s", roomID, userUuid)
	}
	return nil
}

// Delete removes a membership permanently; a departed member must be able
// to rejoin without colliding with a soft-deleted row on the unique index.
func (r *roomMemberRepository) Delete(roomID uint, userUuid string) error {
	if err := r.db.Unscoped().
		Where("room_id = ? AND user_uuid = ?", roomID, userUuid).
		Delete(&model.RoomMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete membership room_id=%d user_uuid=%s", roomID, userUuid)
	}
	return nil
}

func (r *roomMemberRepository) DeleteByRoomID(roomID uint) error {
	if err := r.db.Unscoped().
		Where("room_id = ?", roomID).
		Delete(&model.RoomMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete memberships room_id=%d", roomID)
	}
	return nil
}

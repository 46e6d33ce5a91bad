// This file implements JoinRequestRepository.
package repository

import (
	"your_chores_server/internal/model"

	"gorm.io/gorm"
)

type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository creates a JoinRequestRepository backed by gorm.
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) FindByID(id uint) (*model.JoinRequest, error) {
	var request model.JoinRequest
	if err := r.db.First(&request, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "query join request id=%d", id)
	}
	return &request, nil
}

func (r *joinRequestRepository) FindByRoomUserAndType(roomID uint, userUuid string, reqType int8) (*model.JoinRequest, error) {
	var request model.JoinRequest
	if err := r.db.Where("room_id = ? AND user_uuid = ? AND type = ?", roomID, userUuid, reqType).
		First(&request).Error; err != nil {
		return nil, wrapDBErrorf(err, "query join request room_id=%d user_uuid=%s type=%d", roomID, userUuid, reqType)
	}
	return &request, nil
}

func (r *joinRequestRepository) FindByUserUuid(userUuid string) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	if err := r.db.Where("user_uuid = ?", userUuid).Find(&requests).Error; err != nil {
		return nil, wrapDBErrorf(err, "query join requests user_uuid=%s", userUuid)
	}
	return requests, nil
}

// FindRequestsWithUserInfo joins a room's pending join requests with the
// requesting users' profiles, for the owner-facing request list.
func (r *joinRequestRepository) FindRequestsWithUserInfo(roomID uint) ([]JoinRequestWithUserInfo, error) {
	var requests []JoinRequestWithUserInfo
	if err := r.db.Table("room_join_request").
		Select("room_join_request.id as join_request_id, user_info.uuid as user_uuid, user_info.first_name, user_info.last_name").
		Joins("LEFT JOIN user_info ON room_join_request.user_uuid = user_info.uuid").
		Where("room_join_request.room_id = ? AND room_join_request.type = ? AND room_join_request.deleted_at IS NULL",
			roomID, model.JoinRequestTypeJoin).
		Scan(&requests).Error; err != nil {
		return nil, wrapDBErrorf(err, "query join request details room_id=%d", roomID)
	}
	return requests, nil
}

// FindInvitationsWithRoom joins a user's pending invitations with their
// rooms, for the invitee-facing invitation list.
func (r *joinRequestRepository) FindInvitationsWithRoom(userUuid string) ([]JoinRequestWithRoom, error) {
	var invitations []JoinRequestWithRoom
	if err := r.db.Table("room_join_request").
		Select("room_join_request.id as join_request_id, room.id as room_id, room.name as room_name").
		Joins("LEFT JOIN room ON room_join_request.room_id = room.id").
		Where("room_join_request.user_uuid = ? AND room_join_request.type = ? AND room_join_request.deleted_at IS NULL",
			userUuid, model.JoinRequestTypeInvite).
		Scan(&invitations).Error; err != nil {
		return nil, wrapDBErrorf(err, "query invitation details user_uuid=%s", userUuid)
	}
	return invitations, nil
}

func (r *joinRequestRepository) Create(request *model.JoinRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return wrapDBError(err, "create join request")
	}
	return nil
}

// DeleteByID removes a request permanently. Accept, decline and cancel all
// end here; a deleted request must not block a later identical one.
func (r *joinRequestRepository) DeleteByID(id uint) error {
	if err := r.db.Unscoped().Delete(&model.JoinRequest{}, "id = ?", id).Error; err != nil {
		return wrapDBErrorf(err, "delete join request id=%d", id)
	}
	return nil
}

func (r *joinRequestRepository) DeleteByRoomID(roomID uint) error {
	if err := r.db.Unscoped().
		Where("room_id = ?", roomID).
		Delete(&model.JoinRequest{}).Error; err != nil {
		return wrapDBErrorf(err, "delete join requests room_id=%d", roomID)
	}
	return nil
}

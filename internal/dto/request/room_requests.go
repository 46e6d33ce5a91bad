// This file contains the request bodies for room membership operations.
package request

// CreateRoomRequest creates a room; the creator becomes its first owner.
type CreateRoomRequest struct {
	Name               string `json:"name" binding:"required,min=1,max=50"`
	AllowMembersToPost bool   `json:"allow_members_to_post"`
}

// UpdateRoomRequest changes room settings, owner only.
type UpdateRoomRequest struct {
	RoomId             uint   `json:"room_id" binding:"required"`
	Name               string `json:"name" binding:"required,min=1,max=50"`
	AllowMembersToPost bool   `json:"allow_members_to_post"`
}

// JoinRoomRequest files a join request for the calling user.
type JoinRoomRequest struct {
	RoomId uint `json:"room_id" binding:"required"`
}

// InviteUserRequest invites another user into a room, owner only.
type InviteUserRequest struct {
	RoomId   uint   `json:"room_id" binding:"required"`
	UserUuid string `json:"user_uuid" binding:"required"`
}

// AcceptRequestRequest lets an owner accept a pending join request.
type AcceptRequestRequest struct {
	RoomId        uint `json:"room_id" binding:"required"`
	JoinRequestId uint `json:"join_request_id" binding:"required"`
}

// DeclineRequestRequest lets an owner decline a pending join request.
type DeclineRequestRequest struct {
	RoomId        uint `json:"room_id" binding:"required"`
	JoinRequestId uint `json:"join_request_id" binding:"required"`
}

// AcceptInvitationRequest lets the invited user accept an invitation.
type AcceptInvitationRequest struct {
	JoinRequestId uint `json:"join_request_id" binding:"required"`
}

// DeclineInvitationRequest lets the invited user decline an invitation.
type DeclineInvitationRequest struct {
	JoinRequestId uint `json:"join_request_id" binding:"required"`
}

// CancelRequestRequest lets a user withdraw their own join request.
type CancelRequestRequest struct {
	RoomId uint `json:"room_id" binding:"required"`
}

// CancelInvitationRequest lets an owner withdraw a pending invitation.
type CancelInvitationRequest struct {
	RoomId   uint   `json:"room_id" binding:"required"`
	UserUuid string `json:"user_uuid" binding:"required"`
}

// LeaveRoomRequest removes the caller from a room. A sole owner of a
// room with other members must name an alternative owner.
type LeaveRoomRequest struct {
	RoomId               uint   `json:"room_id" binding:"required"`
	AlternativeOwnerUuid string `json:"alternative_owner_uuid"`
}

// KickUserRequest removes another member from a room, owner only.
type KickUserRequest struct {
	RoomId   uint   `json:"room_id" binding:"required"`
	UserUuid string `json:"user_uuid" binding:"required"`
}

// PromoteMemberRequest grants ownership to a member, owner only.
type PromoteMemberRequest struct {
	RoomId   uint   `json:"room_id" binding:"required"`
	UserUuid string `json:"user_uuid" binding:"required"`
}

// DemoteOwnerRequest revokes ownership from an owner, owner only.
type DemoteOwnerRequest struct {
	RoomId   uint   `json:"room_id" binding:"required"`
	UserUuid string `json:"user_uuid" binding:"required"`
}

// SearchRoomsRequest searches public rooms by name fragment.
type SearchRoomsRequest struct {
	Query string `json:"query" binding:"required,min=1,max=50"`
}

// FindMemberRequest searches users who can still be invited to a room.
type FindMemberRequest struct {
	RoomId uint   `json:"room_id" binding:"required"`
	Query  string `json:"query" binding:"required,min=1,max=50"`
}

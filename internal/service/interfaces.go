// Package service defines the business layer interfaces the handler
// layer calls. Concrete implementations live in the per-domain
// subpackages; the interfaces keep handlers testable against stubs.
package service

import (
	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/dto/respond"
)

// RoomService is the membership engine. Every mutation runs inside one
// database transaction and leaves the room either consistent or
// untouched: a room always has at least one owner while it exists, and
// a room whose last member leaves is deleted together with its pending
// requests and chores.
type RoomService interface {
	// CreateRoom creates a room with the caller as its sole owner.
	CreateRoom(callerUuid string, req request.CreateRoomRequest) (*respond.RoomListItem, error)
	// UpdateRoom changes room name and posting policy, owner only.
	UpdateRoom(callerUuid string, req request.UpdateRoomRequest) error
	// JoinRoom files a join request from the caller to a room.
	JoinRoom(callerUuid string, req request.JoinRoomRequest) error
	// InviteUser files an invitation from a room owner to another user.
	InviteUser(callerUuid string, req request.InviteUserRequest) error
	// AcceptRequest lets an owner turn a pending join request into a
	// membership.
	AcceptRequest(callerUuid string, req request.AcceptRequestRequest) error
	// DeclineRequest lets an owner discard a pending join request.
	DeclineRequest(callerUuid string, req request.DeclineRequestRequest) error
	// AcceptInvitation lets the invited user turn an invitation into a
	// membership.
	AcceptInvitation(callerUuid string, req request.AcceptInvitationRequest) error
	// DeclineInvitation lets the invited user discard an invitation.
	DeclineInvitation(callerUuid string, req request.DeclineInvitationRequest) error
	// CancelRequest lets the caller withdraw their own join request.
	CancelRequest(callerUuid string, req request.CancelRequestRequest) error
	// CancelInvitation lets an owner withdraw a pending invitation.
	CancelInvitation(callerUuid string, req request.CancelInvitationRequest) error
	// LeaveRoom removes the caller from a room. A sole owner leaving a
	// populated room must hand ownership to a named member first.
	LeaveRoom(callerUuid string, req request.LeaveRoomRequest) error
	// KickUser removes another member, owner only.
	KickUser(callerUuid string, req request.KickUserRequest) error
	// PromoteMember grants ownership to a member, owner only.
	PromoteMember(callerUuid string, req request.PromoteMemberRequest) error
	// DemoteOwner revokes ownership, owner only. Demoting the last
	// remaining owner is refused, including self-demotion.
	DemoteOwner(callerUuid string, req request.DemoteOwnerRequest) error

	// GetMyRooms lists the caller's rooms with undone-chore summaries.
	GetMyRooms(callerUuid string) ([]respond.RoomListItem, error)
	// GetRoomById returns the full room view for a member.
	GetRoomById(callerUuid string, roomId uint) (*respond.RoomDetailRespond, error)
	// SearchRooms searches rooms by name and annotates each hit with the
	// caller's relationship to it.
	SearchRooms(callerUuid string, req request.SearchRoomsRequest) ([]respond.RoomSearchItem, error)
	// FindMember searches users an owner could still invite to a room.
	FindMember(callerUuid string, req request.FindMemberRequest) ([]respond.MemberSearchItem, error)
	// GetJoinRequests lists a room's pending join requests, owner only.
	GetJoinRequests(callerUuid string, roomId uint) ([]respond.JoinRequestItem, error)
	// GetMyInvitations lists the caller's pending invitations.
	GetMyInvitations(callerUuid string) ([]respond.InvitationItem, error)
}

// ChoreService manages the chores inside rooms.
type ChoreService interface {
	// CreateChore adds a chore; non-owners need the room's posting
	// permission.
	CreateChore(callerUuid string, req request.CreateChoreRequest) (*respond.ChoreRespond, error)
	// CompleteChore marks a chore done by the caller.
	CompleteChore(callerUuid string, req request.CompleteChoreRequest) (*respond.ChoreRespond, error)
	// GetRoomChores lists a room's chores for a member.
	GetRoomChores(callerUuid string, roomId uint) ([]respond.ChoreRespond, error)
	// GetMyChores lists the chores of every room the caller belongs to.
	GetMyChores(callerUuid string) ([]respond.ChoreRespond, error)
}

// UserService manages account profiles.
type UserService interface {
	// GetUserInfo returns the caller's own profile.
	GetUserInfo(callerUuid string) (*respond.UserInfoRespond, error)
	// ChangeName updates the caller's display name.
	ChangeName(callerUuid string, req request.ChangeNameRequest) error
	// ChangePassword updates the caller's password after verifying the
	// old one.
	ChangePassword(callerUuid string, req request.ChangePasswordRequest) error
}

// AuthService handles registration, login and the refresh-token session.
type AuthService interface {
	// Register creates an account and logs it in.
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	// Login verifies credentials and issues a token pair.
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// Refresh rotates the token pair; the presented refresh token must
	// be the active one for its user.
	Refresh(req request.RefreshRequest) (*respond.TokenPairRespond, error)
	// Logout invalidates the caller's refresh-token session.
	Logout(callerUuid string) error
}

// VersionService reports and publishes the client version.
type VersionService interface {
	// GetAppVersion returns the latest published version record.
	GetAppVersion() (*respond.AppVersionRespond, error)
	// PublishVersion creates a version record, or rewrites the record of
	// an already published version number.
	PublishVersion(req request.PublishVersionRequest) (*respond.AppVersionRespond, error)
}

// Package repository defines the data access layer interfaces and the
// Repositories aggregate. The repository pattern keeps persistence concerns
// out of the service layer; concrete implementations live in the
// per-entity files of this package.
package repository

import (
	"your_chores_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository interfaces ====================

// UserRepository provides access to user records.
type UserRepository interface {
	// FindByUuid looks a user up by uuid.
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUserName looks a user up by login name (case-insensitive).
	FindByUserName(userName string) (*model.UserInfo, error)
	// FindByUuids fetches several users at once.
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// SearchByUserName finds users whose name contains the fragment
	// (case-insensitive).
	SearchByUserName(fragment string) ([]model.UserInfo, error)
	// Create inserts a new user.
	Create(user *model.UserInfo) error
	// Update persists profile changes.
	Update(user *model.UserInfo) error
	// LockByUuid takes a row lock on the user, serializing concurrent
	// per-user capacity checks within the surrounding transaction.
	LockByUuid(uuid string) error
}

// RoomRepository provides access to room records.
type RoomRepository interface {
	// FindByID looks a room up by id.
	FindByID(id uint) (*model.Room, error)
	// LockByID looks a room up and takes a row lock, serializing all
	// membership mutations of that room within the transaction.
	LockByID(id uint) (*model.Room, error)
	// FindByNormalizedName looks a room up by its normalized name.
	FindByNormalizedName(name string) (*model.Room, error)
	// SearchByName finds rooms whose normalized name contains the fragment.
	SearchByName(fragment string) ([]model.Room, error)
	// FindByIDs fetches several rooms at once.
	FindByIDs(ids []uint) ([]model.Room, error)
	// Create inserts a new room.
	Create(room *model.Room) error
	// Update persists room setting changes.
	Update(room *model.Room) error
	// Delete removes a room permanently.
	Delete(id uint) error
}

// RoomMemberWithUserInfo is a membership joined with the member's profile,
// used by the room detail projection.
type RoomMemberWithUserInfo struct {
	UserUuid  string `json:"userUuid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Owner     bool   `json:"owner"`
}

// RoomMemberRepository provides access to room memberships.
type RoomMemberRepository interface {
	// FindByRoomAndUser fetches a single membership.
	FindByRoomAndUser(roomID uint, userUuid string) (*model.RoomMember, error)
	// FindByRoomID lists the memberships of a room.
	FindByRoomID(roomID uint) ([]model.RoomMember, error)
	// FindByUserUuid lists the memberships of a user.
	FindByUserUuid(userUuid string) ([]model.RoomMember, error)
	// FindMembersWithUserInfo lists a room's members joined with their profiles.
	FindMembersWithUserInfo(roomID uint) ([]RoomMemberWithUserInfo, error)
	// CountByRoomID counts a room's members.
	CountByRoomID(roomID uint) (int64, error)
	// CountByUserUuid counts the rooms a user belongs to.
	CountByUserUuid(userUuid string) (int64, error)
	// CountOwnersByRoomID counts a room's owner memberships.
	CountOwnersByRoomID(roomID uint) (int64, error)
	// Create inserts a membership.
	Create(member *model.RoomMember) error
	// UpdateOwner flips the owner flag of a membership.
	UpdateOwner(roomID uint, userUuid string, owner bool) error
	// Delete removes a single membership.
	Delete(roomID uint, userUuid string) error
	// DeleteByRoomID removes all memberships of a room.
	DeleteByRoomID(roomID uint) error
}

// JoinRequestWithUserInfo is a pending request joined with the requesting
// user's profile, for the owner-facing request list.
type JoinRequestWithUserInfo struct {
	JoinRequestID uint   `json:"joinRequestId"`
	UserUuid      string `json:"userUuid"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
}

// JoinRequestWithRoom is a pending invitation joined with its room,
// for the invitee-facing invitation list.
type JoinRequestWithRoom struct {
	JoinRequestID uint   `json:"joinRequestId"`
	RoomID        uint   `json:"roomId"`
	RoomName      string `json:"roomName"`
}

// JoinRequestRepository provides access to pending join requests and invites.
type JoinRequestRepository interface {
	// FindByID looks a request up by id.
	FindByID(id uint) (*model.JoinRequest, error)
	// FindByRoomUserAndType fetches the pending request for a
	// (room, user, type) triple, if any.
	FindByRoomUserAndType(roomID uint, userUuid string, reqType int8) (*model.JoinRequest, error)
	// FindByUserUuid lists all pending requests involving a user.
	FindByUserUuid(userUuid string) ([]model.JoinRequest, error)
	// FindRequestsWithUserInfo lists a room's pending join requests joined
	// with the requesting users' profiles.
	FindRequestsWithUserInfo(roomID uint) ([]JoinRequestWithUserInfo, error)
	// FindInvitationsWithRoom lists a user's pending invitations joined
	// with their rooms.
	FindInvitationsWithRoom(userUuid string) ([]JoinRequestWithRoom, error)
	// Create inserts a request.
	Create(request *model.JoinRequest) error
	// DeleteByID removes a request.
	DeleteByID(id uint) error
	// DeleteByRoomID removes all requests of a room (room deletion cascade).
	DeleteByRoomID(roomID uint) error
}

// ChoreRepository provides access to chores.
type ChoreRepository interface {
	// FindByRoomAndID fetches a chore scoped to its room.
	FindByRoomAndID(roomID uint, choreID uint) (*model.Chore, error)
	// FindByRoomID lists a room's chores.
	FindByRoomID(roomID uint) ([]model.Chore, error)
	// FindByRoomIDs lists the chores of several rooms at once.
	FindByRoomIDs(roomIDs []uint) ([]model.Chore, error)
	// Create inserts a chore.
	Create(chore *model.Chore) error
	// Update persists chore changes.
	Update(chore *model.Chore) error
	// DeleteByRoomID removes all chores of a room (room deletion cascade).
	DeleteByRoomID(roomID uint) error
}

// AppVersionRepository provides access to published client versions.
type AppVersionRepository interface {
	// FindLatest returns the most recently published version.
	FindLatest() (*model.AppVersion, error)
	// FindByVersion returns the row for one version number.
	FindByVersion(version int) (*model.AppVersion, error)
	// Create publishes a new version.
	Create(version *model.AppVersion) error
	// Update rewrites a published version row.
	Update(version *model.AppVersion) error
}

// ==================== Repository aggregate ====================

// Repositories aggregates all repository instances and is the dependency
// injection entry point for the service layer.
type Repositories struct {
	db          *gorm.DB
	User        UserRepository
	Room        RoomRepository
	RoomMember  RoomMemberRepository
	JoinRequest JoinRequestRepository
	Chore       ChoreRepository
	AppVersion  AppVersionRepository
}

// NewRepositories wires all repository implementations to the given
// database handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Room:        NewRoomRepository(db),
		RoomMember:  NewRoomMemberRepository(db),
		JoinRequest: NewJoinRequestRepository(db),
		Chore:       NewChoreRepository(db),
		AppVersion:  NewAppVersionRepository(db),
	}
}

// Transaction runs fn inside a database transaction. fn receives a
// Repositories view bound to the transaction; any error rolls everything
// back, so a membership mutation either fully applies or not at all.
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	// an aggregate assembled without a database runs fn against itself
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

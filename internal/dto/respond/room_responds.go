// This file contains the response bodies for room queries.
package respond

// RoomListItem is one entry of the caller's room overview. HighestUrgency
// is computed over the room's undone chores; -1 means none are open.
type RoomListItem struct {
	RoomId             uint   `json:"room_id"`
	Name               string `json:"name"`
	Owner              bool   `json:"owner"`
	AllowMembersToPost bool   `json:"allow_members_to_post"`
	UndoneChores       int64  `json:"undone_chores"`
	HighestUrgency     int8   `json:"highest_urgency"`
}

// RoomMemberItem describes one member inside a room detail view.
type RoomMemberItem struct {
	UserUuid  string `json:"user_uuid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Owner     bool   `json:"owner"`
}

// RoomDetailRespond is the full view of a single room for a member.
type RoomDetailRespond struct {
	RoomId             uint             `json:"room_id"`
	Name               string           `json:"name"`
	Owner              bool             `json:"owner"`
	AllowMembersToPost bool             `json:"allow_members_to_post"`
	Members            []RoomMemberItem `json:"members"`
	Chores             []ChoreRespond   `json:"chores"`
}

// RoomSearchItem is a public search hit. Status tells the caller how
// they relate to the room already.
type RoomSearchItem struct {
	RoomId     uint   `json:"room_id"`
	Name       string `json:"name"`
	Members    int64  `json:"members"`
	MaxMembers int64  `json:"max_members"`
	Status     string `json:"status"` // none | member | requested | invited
}

// JoinRequestItem is a pending join request shown to a room owner.
type JoinRequestItem struct {
	JoinRequestId uint   `json:"join_request_id"`
	UserUuid      string `json:"user_uuid"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

// InvitationItem is a pending invitation shown to the invited user.
type InvitationItem struct {
	JoinRequestId uint   `json:"join_request_id"`
	RoomId        uint   `json:"room_id"`
	RoomName      string `json:"room_name"`
}

// MemberSearchItem is a user who can still be invited to a room.
type MemberSearchItem struct {
	UserUuid  string `json:"user_uuid"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

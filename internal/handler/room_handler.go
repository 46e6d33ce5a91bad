// This file handles the room membership API.
package handler

import (
	"strconv"

	"your_chores_server/internal/dto/request"
	"your_chores_server/internal/service"
	"your_chores_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// RoomHandler serves the room membership endpoints.
type RoomHandler struct {
	roomService service.RoomService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom handles POST /rooms/create.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	room, err := h.roomService.CreateRoom(callerUuid(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, room)
}

// UpdateRoom handles POST /rooms/update.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req request.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.UpdateRoom(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// JoinRoom handles POST /rooms/join.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req request.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.JoinRoom(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// InviteUser handles POST /rooms/invite.
func (h *RoomHandler) InviteUser(c *gin.Context) {
	var req request.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.InviteUser(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// AcceptRequest handles POST /rooms/requests/accept.
func (h *RoomHandler) AcceptRequest(c *gin.Context) {
	var req request.AcceptRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.AcceptRequest(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeclineRequest handles POST /rooms/requests/decline.
func (h *RoomHandler) DeclineRequest(c *gin.Context) {
	var req request.DeclineRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.DeclineRequest(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CancelRequest handles POST /rooms/requests/cancel.
func (h *RoomHandler) CancelRequest(c *gin.Context) {
	var req request.CancelRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.CancelRequest(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// AcceptInvitation handles POST /rooms/invitations/accept.
func (h *RoomHandler) AcceptInvitation(c *gin.Context) {
	var req request.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.AcceptInvitation(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeclineInvitation handles POST /rooms/invitations/decline.
func (h *RoomHandler) DeclineInvitation(c *gin.Context) {
	var req request.DeclineInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.DeclineInvitation(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CancelInvitation handles POST /rooms/invitations/cancel.
func (h *RoomHandler) CancelInvitation(c *gin.Context) {
	var req request.CancelInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.CancelInvitation(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// LeaveRoom handles POST /rooms/leave.
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	var req request.LeaveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.LeaveRoom(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// KickUser handles POST /rooms/kick.
func (h *RoomHandler) KickUser(c *gin.Context) {
	var req request.KickUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.KickUser(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// PromoteMember handles POST /rooms/promote.
func (h *RoomHandler) PromoteMember(c *gin.Context) {
	var req request.PromoteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.PromoteMember(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DemoteOwner handles POST /rooms/demote.
func (h *RoomHandler) DemoteOwner(c *gin.Context) {
	var req request.DemoteOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomService.DemoteOwner(callerUuid(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetMyRooms handles GET /rooms/my.
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	rooms, err := h.roomService.GetMyRooms(callerUuid(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rooms)
}

// GetRoomById handles GET /rooms/:room_id.
func (h *RoomHandler) GetRoomById(c *gin.Context) {
	roomId, err := parseRoomId(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	room, err := h.roomService.GetRoomById(callerUuid(c), roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, room)
}

// SearchRooms handles POST /rooms/search.
func (h *RoomHandler) SearchRooms(c *gin.Context) {
	var req request.SearchRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rooms, err := h.roomService.SearchRooms(callerUuid(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rooms)
}

// FindMember handles POST /rooms/members/search.
func (h *RoomHandler) FindMember(c *gin.Context) {
	var req request.FindMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	users, err := h.roomService.FindMember(callerUuid(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, users)
}

// GetJoinRequests handles GET /rooms/:room_id/requests.
func (h *RoomHandler) GetJoinRequests(c *gin.Context) {
	roomId, err := parseRoomId(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	requests, err := h.roomService.GetJoinRequests(callerUuid(c), roomId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, requests)
}

// GetMyInvitations handles GET /rooms/invitations/my.
func (h *RoomHandler) GetMyInvitations(c *gin.Context) {
	invitations, err := h.roomService.GetMyInvitations(callerUuid(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, invitations)
}

// parseRoomId reads the room_id path parameter.
func parseRoomId(c *gin.Context) (uint, error) {
	raw := c.Param("room_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errorx.New(errorx.CodeInvalidParam, "Invalid room id")
	}
	return uint(id), nil
}

package router

import (
	"github.com/gin-gonic/gin"

	"your_chores_server/internal/infrastructure/middleware"
)

// RegisterRoomRoutes registers the room membership endpoints.
func (rt *Router) RegisterRoomRoutes(r *gin.Engine) {
	roomGroup := r.Group("/rooms")
	roomGroup.Use(middleware.JWTAuth())
	{
		roomGroup.POST("/create", rt.handlers.Room.CreateRoom)
		roomGroup.POST("/update", rt.handlers.Room.UpdateRoom)
		roomGroup.POST("/join", rt.handlers.Room.JoinRoom)
		roomGroup.POST("/invite", rt.handlers.Room.InviteUser)
		roomGroup.POST("/leave", rt.handlers.Room.LeaveRoom)
		roomGroup.POST("/kick", rt.handlers.Room.KickUser)
		roomGroup.POST("/promote", rt.handlers.Room.PromoteMember)
		roomGroup.POST("/demote", rt.handlers.Room.DemoteOwner)
		roomGroup.POST("/search", rt.handlers.Room.SearchRooms)
		roomGroup.POST("/members/search", rt.handlers.Room.FindMember)

		roomGroup.POST("/requests/accept", rt.handlers.Room.AcceptRequest)
		roomGroup.POST("/requests/decline", rt.handlers.Room.DeclineRequest)
		roomGroup.POST("/requests/cancel", rt.handlers.Room.CancelRequest)

		roomGroup.POST("/invitations/accept", rt.handlers.Room.AcceptInvitation)
		roomGroup.POST("/invitations/decline", rt.handlers.Room.DeclineInvitation)
		roomGroup.POST("/invitations/cancel", rt.handlers.Room.CancelInvitation)
		roomGroup.GET("/invitations/my", rt.handlers.Room.GetMyInvitations)

		roomGroup.GET("/my", rt.handlers.Room.GetMyRooms)
		roomGroup.GET("/:room_id", rt.handlers.Room.GetRoomById)
		roomGroup.GET("/:room_id/requests", rt.handlers.Room.GetJoinRequests)
	}
}

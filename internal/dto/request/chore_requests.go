// This file contains the request bodies for chore operations.
package request

// CreateChoreRequest adds a chore to a room.
type CreateChoreRequest struct {
	RoomId      uint   `json:"room_id" binding:"required"`
	Description string `json:"description" binding:"required,min=1,max=700"`
	Urgency     int8   `json:"urgency" binding:"min=0,max=2"`
}

// CompleteChoreRequest marks a chore as done by the caller.
type CompleteChoreRequest struct {
	RoomId  uint `json:"room_id" binding:"required"`
	ChoreId uint `json:"chore_id" binding:"required"`
}

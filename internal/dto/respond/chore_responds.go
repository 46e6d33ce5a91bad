// This file contains the response bodies for chore queries.
package respond

// ChoreRespond describes one chore of a room. DoerUuid and DoneAt are
// empty while the chore is open.
type ChoreRespond struct {
	ChoreId     uint   `json:"chore_id"`
	RoomId      uint   `json:"room_id"`
	Description string `json:"description"`
	Urgency     int8   `json:"urgency"`
	Done        bool   `json:"done"`
	DoerUuid    string `json:"doer_uuid,omitempty"`
	DoneAt      string `json:"done_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Package mq carries domain events from the service layer to the
// notification gateway. Two broker implementations exist: an in-process
// channel (default) and Kafka for multi-instance deployments; the
// message_mode configuration selects one.
package mq

import "time"

// EventType enumerates the notification events the service layer emits.
type EventType string

const (
	EventJoinRequestReceived EventType = "join_request_received"
	EventInviteReceived      EventType = "invite_received"
	EventRequestAccepted     EventType = "request_accepted"
	EventRequestDeclined     EventType = "request_declined"
	EventInvitationAccepted  EventType = "invitation_accepted"
	EventMemberLeft          EventType = "member_left"
	EventMemberKicked        EventType = "member_kicked"
	EventMemberPromoted      EventType = "member_promoted"
	EventMemberDemoted       EventType = "member_demoted"
	EventRoomDeleted         EventType = "room_deleted"
	EventChoreCreated        EventType = "chore_created"
	EventChoreCompleted      EventType = "chore_completed"
)

// Event is one notification. Recipients lists the user uuids the
// gateway should push it to; the actor is excluded by the publisher.
type Event struct {
	Type       EventType `json:"type"`
	RoomId     uint      `json:"room_id,omitempty"`
	RoomName   string    `json:"room_name,omitempty"`
	ActorUuid  string    `json:"actor_uuid,omitempty"`
	TargetUuid string    `json:"target_uuid,omitempty"`
	Recipients []string  `json:"recipients"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventBroker decouples event producers from the push gateway.
type EventBroker interface {
	// Publish hands an event to the broker. Publishers call this after
	// the surrounding transaction has committed.
	Publish(event *Event) error
	// Events is the stream the notification gateway consumes.
	Events() <-chan *Event
	// Close releases broker resources and closes the event stream.
	Close() error
}

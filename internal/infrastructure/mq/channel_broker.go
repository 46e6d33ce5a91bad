// This file implements the in-process channel broker, the default
// message mode for single-instance deployments.
package mq

import (
	"go.uber.org/zap"

	"your_chores_server/pkg/constants"
)

// ChannelBroker passes events through a buffered channel inside the
// process. No external infrastructure is needed.
type ChannelBroker struct {
	events chan *Event
}

// NewChannelBroker creates the in-process broker.
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		events: make(chan *Event, constants.CHANNEL_SIZE),
	}
}

// Publish enqueues an event. When the buffer is full the event is
// dropped rather than blocking the request path; notifications are
// best effort, the database already holds the state.
func (b *ChannelBroker) Publish(event *Event) error {
	select {
	case b.events <- event:
	default:
		zap.L().Warn("event channel full, dropping event",
			zap.String("type", string(event.Type)),
			zap.Uint("room_id", event.RoomId))
	}
	return nil
}

func (b *ChannelBroker) Events() <-chan *Event {
	return b.events
}

func (b *ChannelBroker) Close() error {
	close(b.events)
	return nil
}

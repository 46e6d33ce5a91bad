// Package handler translates HTTP requests into service calls.
// This file defines the Handlers aggregate and its constructor.
package handler

import (
	"your_chores_server/internal/gateway/notify"
	"your_chores_server/internal/service"
)

// Handlers aggregates all handler instances; the router registers their
// methods.
type Handlers struct {
	Room    *RoomHandler
	Chore   *ChoreHandler
	User    *UserHandler
	Auth    *AuthHandler
	Version *VersionHandler
	Ws      *WsHandler
}

// NewHandlers creates all handler instances with their service
// dependencies.
func NewHandlers(svc *service.Services, hub *notify.Hub) *Handlers {
	return &Handlers{
		Room:    NewRoomHandler(svc.Room),
		Chore:   NewChoreHandler(svc.Chore),
		User:    NewUserHandler(svc.User),
		Auth:    NewAuthHandler(svc.Auth),
		Version: NewVersionHandler(svc.Version),
		Ws:      NewWsHandler(hub),
	}
}

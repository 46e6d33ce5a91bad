// This file wires the service layer together for dependency injection.
package service

import (
	"your_chores_server/internal/dao/mysql/repository"
	"your_chores_server/internal/dao/redis"
	"your_chores_server/internal/infrastructure/mq"
	"your_chores_server/internal/service/auth"
	"your_chores_server/internal/service/chore"
	"your_chores_server/internal/service/room"
	"your_chores_server/internal/service/user"
	"your_chores_server/internal/service/version"
)

// Services aggregates all service instances; the handler layer receives
// this aggregate.
type Services struct {
	Room    RoomService
	Chore   ChoreService
	User    UserService
	Auth    AuthService
	Version VersionService
}

// NewServices creates the service instances and injects their
// dependencies.
func NewServices(repos *repository.Repositories, cache redis.CacheService, broker mq.EventBroker) *Services {
	return &Services{
		Room:    room.NewRoomService(repos, broker),
		Chore:   chore.NewChoreService(repos, broker),
		User:    user.NewUserService(repos),
		Auth:    auth.NewAuthService(repos, cache),
		Version: version.NewVersionService(repos),
	}
}

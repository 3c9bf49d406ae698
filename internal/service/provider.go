// Package service aggregates the business layer. Handlers receive one
// Services value and never construct individual services themselves.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	myredis "github.com/Phadec/Harmony-Chat-sub000/internal/dao/redis"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/auth"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/friend"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/group"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/guard"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/message"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/relationship"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/user"
)

// Services is the dependency-injection aggregate handed to the handlers.
type Services struct {
	Auth         *auth.Service
	User         *user.Service
	Friend       *friend.Service
	Relationship *relationship.Service
	Group        *group.Service
	Message      *message.Service
	Guard        *guard.Guard
	Hub          *chat.Hub
}

// Svc is the global aggregate the handler layer calls into. Set once at
// startup via InitServices.
var Svc *Services

// InitServices builds the global aggregate. Call after the repositories,
// hub, and cache are ready.
func InitServices(repos *mysql.Repositories, hub *chat.Hub, cache myredis.AsyncCacheService) {
	Svc = NewServices(repos, hub, cache)
}

// NewServices wires every service onto the shared repositories, guard,
// hub, and cache. cache may be nil, which disables caching.
func NewServices(repos *mysql.Repositories, hub *chat.Hub, cache myredis.AsyncCacheService) *Services {
	g := guard.NewGuard(repos.Friendship, repos.UserBlock, repos.GroupMember)
	userSvc := user.NewService(repos, hub)
	// Presence follows the registry: online on register, offline once the
	// last session for the user is actually removed.
	hub.OnPresence(func(uuid string, online bool) {
		if err := userSvc.SetPresence(context.Background(), uuid, online); err != nil {
			zap.L().Warn("presence update failed", zap.String("user", uuid), zap.Bool("online", online), zap.Error(err))
		}
	})
	return &Services{
		Auth:         auth.NewService(repos),
		User:         userSvc,
		Friend:       friend.NewService(repos, g, hub, cache),
		Relationship: relationship.NewService(repos, g, cache),
		Group:        group.NewService(repos, g, hub, cache),
		Message:      message.NewService(repos, g, hub, cache),
		Guard:        g,
		Hub:          hub,
	}
}

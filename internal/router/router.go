// Package router registers the HTTP routes, one file per module.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every module's routes onto the engine.
func RegisterRoutes(r *gin.Engine) {
	RegisterAuthRoutes(r)
	RegisterUserRoutes(r)
	RegisterFriendRoutes(r)
	RegisterRelationshipRoutes(r)
	RegisterGroupRoutes(r)
	RegisterMessageRoutes(r)
	RegisterWebSocketRoutes(r)
}

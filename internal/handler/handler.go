package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/middleware"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
)

// authedUserId returns the user uuid the JWT middleware stored.
func authedUserId(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIdKey)
}

// requireSelf rejects requests acting on another user's resources. It
// writes the error response itself; callers just return on false.
func requireSelf(c *gin.Context, resourceOwnerId string) bool {
	if err := service.Svc.Guard.RequireSelf(authedUserId(c), resourceOwnerId); err != nil {
		HandleError(c, err)
		return false
	}
	return true
}

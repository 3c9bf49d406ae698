package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
)

// RegisterHandler starts a registration.
// POST /auth/register
func RegisterHandler(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Auth.Register(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ConfirmRegisterHandler completes a registration with the emailed code.
// POST /auth/confirm
func ConfirmRegisterHandler(c *gin.Context) {
	var req request.ConfirmRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Auth.ConfirmRegister(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LoginHandler authenticates and returns a token pair.
// POST /auth/login
func LoginHandler(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Auth.Login(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LogoutHandler marks the caller offline and drops their live socket.
// POST /auth/logout
func LogoutHandler(c *gin.Context) {
	userId := authedUserId(c)
	if err := service.Svc.Auth.Logout(c.Request.Context(), userId); err != nil {
		HandleError(c, err)
		return
	}
	chat.ClientLogout(service.Svc.Hub, userId)
	HandleSuccess(c, nil)
}

// RefreshTokenHandler exchanges a refresh token for a new pair.
// POST /auth/refresh
func RefreshTokenHandler(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Auth.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

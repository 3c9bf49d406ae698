// Package auth implements registration with confirmation codes, login,
// and token refresh.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/respond"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/constants"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/jwt"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/random"
)

type Service struct {
	repos *mysql.Repositories
}

func NewService(repos *mysql.Repositories) *Service {
	return &Service{repos: repos}
}

// Register creates an unconfirmed registration. The account goes live
// only when the confirmation code arrives within the TTL.
func (s *Service) Register(ctx context.Context, req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := s.repos.User.FindByUsername(ctx, req.Username); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "username already taken")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.repos.PendingUser.FindByUsername(ctx, req.Username); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "registration already pending for this username")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "hash password")
	}

	pending := &model.PendingUser{
		Username:         req.Username,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		TagName:          "@" + strings.ToLower(req.Username),
		Password:         string(hash),
		ConfirmationCode: fmt.Sprintf("%06d", random.GetRandomInt(6)),
	}
	if err := s.repos.PendingUser.Create(ctx, pending); err != nil {
		return nil, err
	}
	// Delivery of the code (mail, SMS) is out of scope; logged for dev.
	zap.L().Info("registration pending",
		zap.String("username", pending.Username),
		zap.String("code", pending.ConfirmationCode))

	return &respond.RegisterRespond{
		Username:  pending.Username,
		ExpiresAt: pending.CreatedAt.Add(constants.PENDING_USER_TTL).Format(time.RFC3339),
	}, nil
}

// ConfirmRegister promotes a pending registration to a live account and
// signs the user in.
func (s *Service) ConfirmRegister(ctx context.Context, req request.ConfirmRegisterRequest) (*respond.LoginRespond, error) {
	pending, err := s.repos.PendingUser.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if pending.ConfirmationCode != req.ConfirmationCode {
		return nil, errorx.New(errorx.CodeInvalidParam, "wrong confirmation code")
	}
	if time.Since(pending.CreatedAt) > constants.PENDING_USER_TTL {
		return nil, errorx.New(errorx.CodeNotFound, "confirmation code expired, register again")
	}

	user := &model.User{
		Uuid:       "U" + random.GetNowAndLenRandomString(11),
		Username:   pending.Username,
		FirstName:  pending.FirstName,
		LastName:   pending.LastName,
		TagName:    pending.TagName,
		Password:   pending.Password,
		ShowStatus: true,
	}
	err = s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		return tx.PendingUser.Delete(ctx, pending.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.loginRespond(user)
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByUsername(ctx, req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeInvalidPassword, "wrong username or password")
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "wrong username or password")
	}
	if err := s.repos.User.UpdateStatus(ctx, user.Uuid, model.StatusOnline); err != nil {
		return nil, err
	}
	user.Status = model.StatusOnline
	return s.loginRespond(user)
}

// Logout marks the user offline. The handler tears down any live socket.
func (s *Service) Logout(ctx context.Context, userId string) error {
	return s.repos.User.UpdateStatus(ctx, userId, model.StatusOffline)
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*respond.TokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}
	if _, err := s.repos.User.FindByUuid(ctx, claims.UserID); err != nil {
		return nil, err
	}
	access, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "issue access token")
	}
	refresh, _, err := jwt.GenerateRefreshToken(claims.UserID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "issue refresh token")
	}
	return &respond.TokenRespond{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) loginRespond(user *model.User) (*respond.LoginRespond, error) {
	access, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "issue access token")
	}
	refresh, _, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "issue refresh token")
	}
	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		TagName:      user.TagName,
		Avatar:       user.Avatar,
		Status:       user.Status,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

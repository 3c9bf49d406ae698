package auth

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	"github.com/Phadec/Harmony-Chat-sub000/internal/dto/request"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/errorx"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("test-secret", 30, 168)
	os.Exit(m.Run())
}

func newTestService(t *testing.T) (*Service, *mysql.Repositories) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.Migrate(db))

	repos := mysql.NewRepositories(db)
	return NewService(repos), repos
}

func registerAndConfirm(t *testing.T, svc *Service, repos *mysql.Repositories, username, password string) string {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Register(ctx, request.RegisterRequest{
		Username: username, Password: password, FirstName: username, LastName: "Tester",
	})
	require.NoError(t, err)

	pending, err := repos.PendingUser.FindByUsername(ctx, username)
	require.NoError(t, err)

	login, err := svc.ConfirmRegister(ctx, request.ConfirmRegisterRequest{
		Username: username, ConfirmationCode: pending.ConfirmationCode,
	})
	require.NoError(t, err)
	return login.Uuid
}

func TestRegisterConfirmLoginFlow(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	uuid := registerAndConfirm(t, svc, repos, "alice", "s3cret-pass")
	assert.NotEmpty(t, uuid)

	// The pending row was consumed.
	_, err := repos.PendingUser.FindByUsername(ctx, "alice")
	assert.True(t, errorx.IsNotFound(err))

	login, err := svc.Login(ctx, request.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, uuid, login.Uuid)
	assert.Equal(t, "@alice", login.TagName)
	assert.Equal(t, model.StatusOnline, login.Status)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	registerAndConfirm(t, svc, repos, "alice", "s3cret-pass")

	_, err := svc.Register(ctx, request.RegisterRequest{
		Username: "alice", Password: "other", FirstName: "alice", LastName: "Clone",
	})
	assert.True(t, errorx.IsCode(err, errorx.CodeUserExist))
}

func TestRegisterRejectsDuplicatePending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, request.RegisterRequest{
		Username: "alice", Password: "s3cret-pass", FirstName: "alice", LastName: "Tester",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, request.RegisterRequest{
		Username: "alice", Password: "s3cret-pass", FirstName: "alice", LastName: "Tester",
	})
	assert.True(t, errorx.IsCode(err, errorx.CodeConflict))
}

func TestConfirmRegisterWrongCode(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, request.RegisterRequest{
		Username: "alice", Password: "s3cret-pass", FirstName: "alice", LastName: "Tester",
	})
	require.NoError(t, err)

	pending, err := repos.PendingUser.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	wrong := "000000"
	if pending.ConfirmationCode == wrong {
		wrong = "000001"
	}

	_, err = svc.ConfirmRegister(ctx, request.ConfirmRegisterRequest{
		Username: "alice", ConfirmationCode: wrong,
	})
	assert.True(t, errorx.IsCode(err, errorx.CodeInvalidParam))
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	registerAndConfirm(t, svc, repos, "alice", "s3cret-pass")

	// Wrong password and unknown username surface the same error, so the
	// response leaks nothing about which part was wrong.
	_, err := svc.Login(ctx, request.LoginRequest{Username: "alice", Password: "nope"})
	assert.True(t, errorx.IsCode(err, errorx.CodeInvalidPassword))

	_, err = svc.Login(ctx, request.LoginRequest{Username: "nobody", Password: "nope"})
	assert.True(t, errorx.IsCode(err, errorx.CodeInvalidPassword))
}

func TestLogoutMarksOffline(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	uuid := registerAndConfirm(t, svc, repos, "alice", "s3cret-pass")
	_, err := svc.Login(ctx, request.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, uuid))
	user, err := repos.User.FindByUuid(ctx, uuid)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOffline, user.Status)
}

func TestRefreshTokenRequiresRefreshKind(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	registerAndConfirm(t, svc, repos, "alice", "s3cret-pass")
	login, err := svc.Login(ctx, request.LoginRequest{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token has no token id and cannot be used to refresh.
	_, err = svc.RefreshToken(ctx, login.AccessToken)
	assert.True(t, errorx.IsCode(err, errorx.CodeUnauthorized))

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.True(t, errorx.IsCode(err, errorx.CodeUnauthorized))
}

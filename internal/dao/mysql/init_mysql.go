package mysql

import (
	"fmt"

	"github.com/Phadec/Harmony-Chat-sub000/internal/config"
	"github.com/Phadec/Harmony-Chat-sub000/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init opens the MySQL connection, migrates the schema and returns the
// repository aggregate. Fatal on failure: the server is useless without its
// store.
func Init() *Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("open mysql failed", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		zap.L().Fatal("auto migrate failed", zap.Error(err))
	}

	return NewRepositories(db)
}

// Migrate creates or updates the schema. Exported so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.PendingUser{},
		&model.Friendship{},
		&model.FriendRequest{},
		&model.UserBlock{},
		&model.Group{},
		&model.GroupMember{},
		&model.Message{},
		&model.MessageReadStatus{},
		&model.UserDeletedMessage{},
	)
}

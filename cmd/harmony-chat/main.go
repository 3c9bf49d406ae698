package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/internal/config"
	dao "github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	myredis "github.com/Phadec/Harmony-Chat-sub000/internal/dao/redis"
	"github.com/Phadec/Harmony-Chat-sub000/internal/handler"
	"github.com/Phadec/Harmony-Chat-sub000/internal/https_server"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/cleanup"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/logger"
	"github.com/Phadec/Harmony-Chat-sub000/internal/infrastructure/mq"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/jwt"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/snowflake"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	conf := config.GetConfig()

	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	repos := dao.Init()
	zap.L().Info("mysql initialized")

	myredis.Init()
	zap.L().Info("redis initialized")

	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translations failed", zap.Error(err))
	}

	var relay *mq.KafkaRelay
	var hub *chat.Hub
	if conf.KafkaConfig.MessageMode == "kafka" {
		relay = mq.NewKafkaRelay(conf.KafkaConfig)
		hub = chat.NewHub(relay)
	} else {
		hub = chat.NewHub(nil)
	}
	go hub.Start()
	if relay != nil {
		go relay.Start(hub)
		zap.L().Info("kafka relay started", zap.String("topic", conf.KafkaConfig.EventTopic))
	}

	service.InitServices(repos, hub, myredis.GetCacheService())
	zap.L().Info("services initialized")

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := cleanup.NewPendingUserSweeper(repos.PendingUser)
	go sweeper.Run(sweepCtx)

	engine := https_server.Init()

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		zap.L().Info("server listening", zap.String("addr", addr))
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")
	stopSweeper()
	if relay != nil {
		relay.Close()
	}
	zap.L().Info("server closed")
}

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"your_chores_server/internal/config"
	dao "your_chores_server/internal/dao/mysql"
	myredis "your_chores_server/internal/dao/redis"
	"your_chores_server/internal/gateway/notify"
	"your_chores_server/internal/handler"
	"your_chores_server/internal/infrastructure/logger"
	"your_chores_server/internal/infrastructure/mq"
	"your_chores_server/internal/server"
	"your_chores_server/internal/service"
	"your_chores_server/pkg/util/jwt"
)

func main() {
	// 1. configuration
	conf := config.GetConfig()

	// 2. logging
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger ready")

	// 3. validator translations
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translations failed", zap.Error(err))
	}

	// 4. stores
	repos := dao.Init()
	zap.L().Info("mysql ready")
	cache := myredis.Init()
	zap.L().Info("redis ready")

	// 5. token signing
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)

	// 6. event broker, channel mode unless kafka is configured
	var broker mq.EventBroker
	if conf.KafkaConfig.MessageMode == "kafka" {
		broker = mq.NewKafkaBroker()
	} else {
		broker = mq.NewChannelBroker()
	}

	// 7. services, push gateway, handlers
	services := service.NewServices(repos, cache, broker)
	hub := notify.NewHub(broker)
	go hub.Run()
	handlers := handler.NewHandlers(services, hub)

	// 8. HTTP server
	engine := server.Init(handlers)
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

	zap.L().Info("shutting down...")
	if err := broker.Close(); err != nil {
		zap.L().Error("close broker", zap.Error(err))
	}
	zap.L().Info("server stopped")
}

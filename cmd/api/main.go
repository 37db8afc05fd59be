package main

import (
	"context"

	"go.uber.org/zap"

	"sozluk/internal/config"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
	"sozluk/internal/repository/redis"
	"sozluk/internal/router"
	"sozluk/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.System.IsProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	pkg.ConfigureJWT(cfg.Security.AccessSecret, cfg.Security.RefreshSecret)

	db, err := mysql.InitDB(cfg.System.DBConn)
	if err != nil {
		logger.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := mysql.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	rdb, err := redis.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}

	// Moderation events drain to Kafka when brokers are configured and
	// to the log otherwise.
	sender := service.LogSender(logger)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			logger.Fatal("kafka producer init failed", zap.Error(err))
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(db, sender, logger).Run(ctx)

	r := router.InitRouter(db, rdb, smtp, logger)
	if err := r.Run(cfg.System.Listen); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

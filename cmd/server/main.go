package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kamatt66/fahrtenbuch-pro-gps/config"
	"github.com/kamatt66/fahrtenbuch-pro-gps/internal/observability"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	redisClient, err := config.NewRedis(cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer func() { _ = redisClient.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	logbookModule, err := logbook.Build(db, redisClient, amqpConn, mqttClient, cfg.OCRServiceURL, cfg.OCRLanguage, logger)
	if err != nil {
		log.Fatalf("logbook module: %v", err)
	}
	defer func() { _ = logbookModule.Close() }()

	if err := logbookModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()

	health := config.NewHealthChecker(db, redisClient, amqpConn, mqttClient)
	health.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logbookModule.RegisterRoutes(r.Group("/api"))

	logger.Info("listening", "port", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}

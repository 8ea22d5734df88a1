package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/sirupsen/logrus"
)

// The worker turns booking lifecycle events into customer notifications.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		logrus.Fatalf("load .env: %v", err)
	}
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.Log)

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingTopic
	}
	if len(cfg.Kafka.Brokers) == 0 || topic == "" {
		log.Fatal("kafka brokers and a topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, log)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.WithFields(logrus.Fields{"topic": topic, "group_id": cfg.Kafka.GroupID}).Info("notification worker started")
	if err := consumer.ConsumeBookingEvents(ctx, sender.Send); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("consumer stopped")
		return
	}
	log.Info("notification worker stopped")
}

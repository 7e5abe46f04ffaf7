package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"snapsentinel/internal/api"
	"snapsentinel/internal/auth"
	"snapsentinel/internal/config"
	"snapsentinel/internal/eventbus"
	"snapsentinel/internal/feed"
	"snapsentinel/internal/logging"
	"snapsentinel/internal/providers"
	"snapsentinel/internal/push"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatal("Logger init failed:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event bus is built once here and handed to every consumer.
	bus := eventbus.New()

	// Alert feed pipeline
	normalizer, err := feed.NewNormalizer(cfg.Format.Timezone, cfg.Format.DateLayout, cfg.Format.TimeLayout)
	if err != nil {
		logger.Errorf("Normalizer init failed: %v", err)
		log.Fatal("Normalizer init failed:", err)
	}
	client := feed.NewClient(cfg.Alerts.APIURL, logger)
	feedSvc := feed.NewService(client, normalizer, bus, logger)

	hub := api.NewHub(logger)
	feedSvc.OnUpdate(func() {
		hub.Broadcast([]byte(`{"event":"feed_updated"}`))
	})
	feedSvc.Start()

	// Visible-notification surface for push banners
	notifier := providers.Multi{&providers.LogNotifier{Logger: logger}}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		notifier = append(notifier, providers.NewTelegramNotifier(
			cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.RatePerSecond, logger))
	}

	// Push bridge on the broadcast topic
	provider := push.NewKafkaProvider([]string{cfg.Kafka.Broker}, cfg.Kafka.GroupID, logger)
	bridge := push.NewBridge(provider, bus, notifier, logger)
	bridge.Start(ctx)

	// Session gate and API server
	sessions := auth.NewStaticProvider(cfg.Auth.Identifier, cfg.Auth.Secret)
	h := api.NewHandler(feedSvc, bus, sessions, hub, logger)
	r := api.NewRouter(logger, cfg, h)
	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := r.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	cancel()
	feedSvc.Stop()
	logger.Infof("Service stopped")
}

package app

import (
	"fmt"

	"classifieds/pkg/cache"
	"classifieds/pkg/config"
	"classifieds/pkg/database"
	"classifieds/pkg/logger"
	"classifieds/pkg/metrics"
	"classifieds/pkg/queue"
	"classifieds/pkg/s3"
	"classifieds/services/listing/internal/model"
)

// NewInfra connects to everything the service needs. Redis, S3 and the event
// broker are optional: a failure is logged and the feature is switched off.
func NewInfra(cfg *config.Config, log *logger.Logger) (Infra, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return Infra{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Postgres schemas come from goose migrations; local SQLite files are
	// created in place.
	if cfg.DBDriver == "sqlite" {
		if err := db.AutoMigrate(model.All()...); err != nil {
			return Infra{}, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	infra := Infra{
		DB:      db,
		Metrics: metrics.NewManager("classifieds"),
	}

	if redisClient, err := cache.NewRedisClient(cfg); err != nil {
		log.Warn("Redis unavailable, caching and rate limiting disabled: %v", err)
	} else {
		infra.Redis = redisClient
	}

	if cfg.AWSAccessKeyID != "" {
		if s3Client, err := s3.NewClient(cfg); err != nil {
			log.Warn("S3 unavailable, image uploads disabled: %v", err)
		} else {
			infra.Media = s3Client
		}
	}

	publisher, err := NewPublisher(cfg, log)
	if err != nil {
		log.Warn("Event broker unavailable, lifecycle events disabled: %v", err)
	} else if publisher != nil {
		infra.Publisher = publisher
	}

	return infra, nil
}

// NewPublisher picks the event transport named by EVENT_BROKER. "none"
// returns a nil publisher.
func NewPublisher(cfg *config.Config, log *logger.Logger) (queue.Publisher, error) {
	switch cfg.EventBroker {
	case "", "none":
		return nil, nil
	case "rabbitmq":
		client, err := queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "nats":
		publisher, err := queue.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to NATS at %s", cfg.NATSURL)
		return publisher, nil
	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.EventBroker)
	}
}

package app

import (
	"context"
	"log"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/database"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	// Redis is optional. When it is down the container still comes up and
	// recommendations are computed on every request.
	redis := cache.NewRedis(cfg.Redis, logger)

	return &Container{Config: cfg, DB: db, Cache: redis, Logger: logger}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("redis close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

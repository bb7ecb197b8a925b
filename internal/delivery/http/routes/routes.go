package routes

import (
	"log"

	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	v1 "skill-match/internal/delivery/http/routes/v1"
	"skill-match/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{cfg: cfg, db: db, cache: redis, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(r.logger).Middleware())

	handler.NewHealthHandler(r.db, r.cache).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.logger)
}

package handler

import (
	"context"

	"skill-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// The cache is optional infrastructure, so its state is reported but never
// fails the check. The database is required.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	status := fiber.StatusOK
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		data["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		data["cache"] = "unavailable"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, response.MessageServiceUnavailable, data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

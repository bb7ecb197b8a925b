package handler

import (
	"errors"
	"log"
	"strconv"

	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc     usecase.RecommendationUsecase
	audit  usecase.AuditUsecase
	logger *log.Logger
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase, audit usecase.AuditUsecase, logger *log.Logger) *RecommendationHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &RecommendationHandler{uc: uc, audit: audit, logger: logger}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs/recommendations/top", h.TopJobMatch)
	r.Get("/jobs/recommendations", h.JobRecommendations)
	r.Get("/users/similar", h.SimilarPeers)
}

func (h *RecommendationHandler) TopJobMatch(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.uc.TopJobMatch(c.Context(), userID)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	h.recordAudit(c, res)
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *RecommendationHandler) JobRecommendations(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.uc.JobRecommendations(c.Context(), userID, parseQueryInt(c, "top_n", 10))
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	h.recordAudit(c, res)
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *RecommendationHandler) SimilarPeers(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.uc.SimilarPeers(c.Context(), userID, parseQueryInt(c, "top_n", 10))
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	h.recordAudit(c, res)
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// The audit trail is best effort. A full table or broken connection must not
// fail the recommendation itself.
func (h *RecommendationHandler) recordAudit(c fiber.Ctx, result any) {
	if h.audit == nil {
		return
	}

	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return
	}
	if err := h.audit.Record(c.Context(), userID, c.IP(), result); err != nil {
		h.logger.Printf("audit record failed for user %s: %v", userID, err)
	}
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapRecommendationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill profile out of sync with catalog", nil, err)
	case errors.Is(err, usecase.ErrDataUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

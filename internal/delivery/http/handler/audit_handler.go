package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuditHandler struct {
	uc usecase.AuditUsecase
}

func NewAuditHandler(uc usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

func (h *AuditHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/audit/history", h.List)
}

func (h *AuditHandler) List(c fiber.Ctx) error {
	if _, ok := middleware.UserIDFromCtx(c); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := parseQueryInt(c, "limit", 10)
	offset := parseQueryInt(c, "offset", 0)

	items, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.AuditRecordResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.AuditRecordResponse{
			ID:        it.ID,
			UserID:    it.UserID,
			Username:  it.Username,
			IPAddress: it.IPAddress,
			Result:    it.Result,
			CreatedAt: it.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

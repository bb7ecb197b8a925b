package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

type createJobRequest struct {
	Title    string      `json:"title"`
	SkillIDs []uuid.UUID `json:"skill_ids"`
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.List)
	r.Post("/jobs", h.Create)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListJobs(c.Context())
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toJobResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateJob(c.Context(), req.Title, req.SkillIDs)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toJobResponse(created))
}

func toJobResponse(it usecase.JobItem) dto.JobResponse {
	skills := make([]dto.SkillResponse, 0, len(it.Skills))
	for _, s := range it.Skills {
		skills = append(skills, dto.SkillResponse{ID: s.ID, Name: s.Name})
	}
	return dto.JobResponse{ID: it.ID, Title: it.Title, Skills: skills}
}

func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown skill", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

package dto

import "github.com/google/uuid"

type JobResponse struct {
	ID     uuid.UUID       `json:"id"`
	Title  string          `json:"title"`
	Skills []SkillResponse `json:"skills"`
}

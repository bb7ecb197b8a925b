package dto

import "github.com/google/uuid"

type AuthUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JobTitle string    `json:"job_title"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	User AuthUserResponse `json:"user"`
	TokenPairResponse
}

type UserProfileResponse struct {
	ID       uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	JobTitle string          `json:"job_title"`
	Skills   []SkillResponse `json:"skills"`
}

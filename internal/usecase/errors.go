package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
	ErrDataUnavailable     = errors.New("data unavailable")
	ErrUserNotFound        = errors.New("user not found")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrUserSkillExists     = errors.New("user already has skill")
	ErrUserSkillNotFound   = errors.New("user does not have skill")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

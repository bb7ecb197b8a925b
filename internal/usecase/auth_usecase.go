package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	JobTitle string
	SkillIDs []uuid.UUID
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUser struct {
	ID       uuid.UUID
	Username string
	Email    string
	JobTitle string
}

type UserProfile struct {
	ID       uuid.UUID
	Username string
	JobTitle string
	Skills   []SkillItem
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (AuthUser, string, string, error)
	Login(ctx context.Context, in LoginInput) (AuthUser, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Me(ctx context.Context, userID uuid.UUID) (UserProfile, error)
}

type Auth struct {
	users  repository.UserRepository
	skills repository.SkillRepository
	jwt    jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, skills repository.SkillRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{users: users, skills: skills, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (AuthUser, string, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return AuthUser{}, "", "", ErrInvalidInput
	}

	if _, err := u.users.GetUserByEmail(ctx, in.Email); err == nil {
		return AuthUser{}, "", "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthUser{}, "", "", ErrInternal
	}

	for _, id := range in.SkillIDs {
		exists, err := u.skills.ExistsByID(ctx, id)
		if err != nil {
			return AuthUser{}, "", "", ErrInternal
		}
		if !exists {
			return AuthUser{}, "", "", ErrSkillNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthUser{}, "", "", ErrInternal
	}

	created, err := u.users.CreateUser(ctx, repository.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		JobTitle:     in.JobTitle,
	}, in.SkillIDs)
	if err != nil {
		return AuthUser{}, "", "", ErrInternal
	}

	return u.issueTokens(created)
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (AuthUser, string, string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return AuthUser{}, "", "", ErrInvalidCredentials
	}

	usr, err := u.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthUser{}, "", "", ErrInvalidCredentials
		}
		return AuthUser{}, "", "", ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)) != nil {
		return AuthUser{}, "", "", ErrInvalidCredentials
	}

	return u.issueTokens(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	_, access, refresh, err := u.issueTokens(usr)
	return access, refresh, err
}

func (u *Auth) Me(ctx context.Context, userID uuid.UUID) (UserProfile, error) {
	if userID == uuid.Nil {
		return UserProfile{}, ErrUnauthorized
	}

	profile, err := u.users.GetUserWithSkills(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return UserProfile{}, ErrUserNotFound
		}
		return UserProfile{}, ErrInternal
	}

	skills := make([]SkillItem, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		skills = append(skills, SkillItem{ID: s.ID, Name: s.Name})
	}
	return UserProfile{
		ID:       profile.ID,
		Username: profile.Username,
		JobTitle: profile.JobTitle,
		Skills:   skills,
	}, nil
}

func (u *Auth) issueTokens(usr repository.User) (AuthUser, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return AuthUser{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthUser{}, "", "", ErrInternal
	}
	return AuthUser{ID: usr.ID, Username: usr.Username, Email: usr.Email, JobTitle: usr.JobTitle}, access, refresh, nil
}

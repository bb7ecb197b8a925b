package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-match/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID   uuid.UUID
	Name string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, name string) (SkillItem, error)
	AddUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
	RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type Skill struct {
	skills repository.SkillRepository
	users  repository.UserRepository
	cache  RecommendationCache
}

func NewSkillUsecase(skills repository.SkillRepository, users repository.UserRepository, cache RecommendationCache) *Skill {
	return &Skill{skills: skills, users: users, cache: cache}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.skills.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name})
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, name string) (SkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}

	created, err := u.skills.CreateSkill(ctx, name)
	if err != nil {
		return SkillItem{}, ErrInternal
	}

	u.invalidate(ctx)
	return SkillItem{ID: created.ID, Name: created.Name}, nil
}

func (u *Skill) AddUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if skillID == uuid.Nil {
		return ErrSkillNotFound
	}

	exists, err := u.skills.ExistsByID(ctx, skillID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrSkillNotFound
	}

	if err := u.users.AddUserSkill(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillExists) {
			return ErrUserSkillExists
		}
		return ErrInternal
	}

	u.invalidate(ctx)
	return nil
}

func (u *Skill) RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}

	exists, err := u.skills.ExistsByID(ctx, skillID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrSkillNotFound
	}

	if err := u.users.RemoveUserSkill(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}

	u.invalidate(ctx)
	return nil
}

// Any skill or profile mutation shifts the universe, so cached scores are
// dropped wholesale rather than refreshed in place.
func (u *Skill) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, "rec:*")
}

package usecase

import (
	"context"
	"strings"

	"skill-match/internal/repository"

	"github.com/google/uuid"
)

type JobItem struct {
	ID     uuid.UUID
	Title  string
	Skills []SkillItem
}

type JobUsecase interface {
	ListJobs(ctx context.Context) ([]JobItem, error)
	CreateJob(ctx context.Context, title string, skillIDs []uuid.UUID) (JobItem, error)
}

type Job struct {
	jobs   repository.JobRepository
	skills repository.SkillRepository
	cache  RecommendationCache
}

func NewJobUsecase(jobs repository.JobRepository, skills repository.SkillRepository, cache RecommendationCache) *Job {
	return &Job{jobs: jobs, skills: skills, cache: cache}
}

func (u *Job) ListJobs(ctx context.Context) ([]JobItem, error) {
	jobs, err := u.jobs.ListJobsWithSkills(ctx, nil)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]JobItem, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobItem(j))
	}
	return out, nil
}

func (u *Job) CreateJob(ctx context.Context, title string, skillIDs []uuid.UUID) (JobItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return JobItem{}, ErrInvalidInput
	}

	for _, id := range skillIDs {
		exists, err := u.skills.ExistsByID(ctx, id)
		if err != nil {
			return JobItem{}, ErrInternal
		}
		if !exists {
			return JobItem{}, ErrSkillNotFound
		}
	}

	created, err := u.jobs.CreateJob(ctx, title, skillIDs)
	if err != nil {
		return JobItem{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, "rec:*")
	}
	return toJobItem(created), nil
}

func toJobItem(j repository.JobWithSkills) JobItem {
	skills := make([]SkillItem, 0, len(j.Skills))
	for _, s := range j.Skills {
		skills = append(skills, SkillItem{ID: s.ID, Name: s.Name})
	}
	return JobItem{ID: j.ID, Title: j.Title, Skills: skills}
}

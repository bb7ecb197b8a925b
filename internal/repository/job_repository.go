package repository

import (
	"context"
	"errors"
	"strings"

	"skill-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobWithSkills struct {
	ID     uuid.UUID
	Title  string
	Skills []Skill
}

type JobRepository interface {
	// ListJobsWithSkills returns the catalog in a stable order. A non-empty
	// titleFilters narrows jobs to those whose title matches any variation,
	// case-insensitive.
	ListJobsWithSkills(ctx context.Context, titleFilters []string) ([]JobWithSkills, error)
	GetJobWithSkills(ctx context.Context, id uuid.UUID) (JobWithSkills, error)
	CreateJob(ctx context.Context, title string, skillIDs []uuid.UUID) (JobWithSkills, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListJobsWithSkills(ctx context.Context, titleFilters []string) ([]JobWithSkills, error) {
	query := `SELECT id, title FROM jobs ORDER BY created_at ASC, id ASC`
	args := []any{}

	filters := normalizeFilters(titleFilters)
	if len(filters) > 0 {
		query = `SELECT id, title FROM jobs WHERE LOWER(title) = ANY($1) ORDER BY created_at ASC, id ASC`
		args = append(args, filters)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobWithSkills, 0)
	for rows.Next() {
		var j JobWithSkills
		if err := rows.Scan(&j.ID, &j.Title); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		skills, err := r.skillsForJob(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Skills = skills
	}
	return out, nil
}

func (r *PostgresJobRepository) GetJobWithSkills(ctx context.Context, id uuid.UUID) (JobWithSkills, error) {
	row := r.db.QueryRow(ctx, `SELECT id, title FROM jobs WHERE id = $1`, id)

	var j JobWithSkills
	if err := row.Scan(&j.ID, &j.Title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobWithSkills{}, ErrJobNotFound
		}
		return JobWithSkills{}, err
	}

	skills, err := r.skillsForJob(ctx, id)
	if err != nil {
		return JobWithSkills{}, err
	}
	j.Skills = skills
	return j, nil
}

func (r *PostgresJobRepository) CreateJob(ctx context.Context, title string, skillIDs []uuid.UUID) (JobWithSkills, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return JobWithSkills{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id := uuid.New()
	_, err = tx.Exec(ctx, `INSERT INTO jobs (id, title) VALUES ($1, $2)`, id, title)
	if err != nil {
		return JobWithSkills{}, err
	}

	for _, skillID := range skillIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO job_skills (id, job_id, skill_id) VALUES ($1, $2, $3)`,
			uuid.New(), id, skillID,
		)
		if err != nil {
			return JobWithSkills{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return JobWithSkills{}, err
	}

	return r.GetJobWithSkills(ctx, id)
}

func (r *PostgresJobRepository) skillsForJob(ctx context.Context, jobID uuid.UUID) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY s.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeFilters(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

package repository

import (
	"context"

	"skill-match/internal/database"

	"github.com/google/uuid"
)

type Skill struct {
	ID   uuid.UUID
	Name string
}

// GetAllSkills supplies the skill universe for similarity scoring. It is read
// per request so that the "neither has" count always reflects current data.
type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]Skill, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CreateSkill(ctx context.Context, name string) (Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
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

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string) (Skill, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name) VALUES ($1, $2)
		 ON CONFLICT (name) DO NOTHING`,
		id, name,
	)
	if err != nil {
		return Skill{}, err
	}

	row := r.db.QueryRow(ctx, `SELECT id, name FROM skills WHERE name = $1 LIMIT 1`, name)
	var s Skill
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		return Skill{}, err
	}
	return s, nil
}

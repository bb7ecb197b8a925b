package repository

import (
	"context"
	"errors"

	"skill-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserSkillExists   = errors.New("user already has skill")
	ErrUserSkillNotFound = errors.New("user does not have skill")
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	JobTitle     string
}

type UserProfile struct {
	ID       uuid.UUID
	Username string
	JobTitle string
	Skills   []Skill
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User, skillIDs []uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserWithSkills(ctx context.Context, id uuid.UUID) (UserProfile, error)
	ListUsersWithSkills(ctx context.Context, excluding uuid.UUID) ([]UserProfile, error)
	AddUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
	RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u User, skillIDs []uuid.UUID) (User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return User{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, job_title)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.JobTitle,
	)
	if err != nil {
		return User{}, err
	}

	for _, skillID := range skillIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO user_skills (id, user_id, skill_id) VALUES ($1, $2, $3)`,
			uuid.New(), u.ID, skillID,
		)
		if err != nil {
			return User{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, job_title FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, job_title FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserWithSkills(ctx context.Context, id uuid.UUID) (UserProfile, error) {
	u, err := r.GetUserByID(ctx, id)
	if err != nil {
		return UserProfile{}, err
	}

	skills, err := r.skillsForUser(ctx, id)
	if err != nil {
		return UserProfile{}, err
	}

	return UserProfile{ID: u.ID, Username: u.Username, JobTitle: u.JobTitle, Skills: skills}, nil
}

func (r *PostgresUserRepository) ListUsersWithSkills(ctx context.Context, excluding uuid.UUID) ([]UserProfile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, job_title FROM users WHERE id <> $1 ORDER BY username ASC`,
		excluding,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserProfile, 0)
	for rows.Next() {
		var p UserProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.JobTitle); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		skills, err := r.skillsForUser(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Skills = skills
	}
	return out, nil
}

func (r *PostgresUserRepository) AddUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, skill_id) DO NOTHING`,
		uuid.New(), userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillExists
	}
	return nil
}

func (r *PostgresUserRepository) RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *PostgresUserRepository) skillsForUser(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
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

func scanUser(row database.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.JobTitle); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

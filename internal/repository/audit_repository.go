package repository

import (
	"context"
	"time"

	"skill-match/internal/database"

	"github.com/google/uuid"
)

type AuditRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	IPAddress string
	Result    []byte
	CreatedAt time.Time
}

type AuditRepository interface {
	Insert(ctx context.Context, userID uuid.UUID, ipAddress string, result []byte) error
	List(ctx context.Context, limit, offset int) ([]AuditRecord, error)
}

type PostgresAuditRepository struct {
	db database.DB
}

func NewPostgresAuditRepository(db database.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

func (r *PostgresAuditRepository) Insert(ctx context.Context, userID uuid.UUID, ipAddress string, result []byte) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_history (id, user_id, ip_address, recommendation_result)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, ipAddress, result,
	)
	return err
}

func (r *PostgresAuditRepository) List(ctx context.Context, limit, offset int) ([]AuditRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.user_id, u.username, a.ip_address, a.recommendation_result, a.created_at
		 FROM audit_history a
		 JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AuditRecord, 0)
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Username, &rec.IPAddress, &rec.Result, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

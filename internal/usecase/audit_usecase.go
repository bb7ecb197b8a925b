package usecase

import (
	"context"
	"encoding/json"
	"time"

	"skill-match/internal/repository"

	"github.com/google/uuid"
)

type AuditEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	IPAddress string
	Result    json.RawMessage
	CreatedAt time.Time
}

// Audit persists recommendation output on behalf of the HTTP caller. Failures
// are reported to the caller, who records them best-effort.
type AuditUsecase interface {
	Record(ctx context.Context, userID uuid.UUID, ipAddress string, result any) error
	List(ctx context.Context, limit, offset int) ([]AuditEntry, error)
}

type Audit struct {
	repo repository.AuditRepository
}

func NewAuditUsecase(repo repository.AuditRepository) *Audit {
	return &Audit{repo: repo}
}

func (u *Audit) Record(ctx context.Context, userID uuid.UUID, ipAddress string, result any) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return ErrInternal
	}
	if err := u.repo.Insert(ctx, userID, ipAddress, payload); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Audit) List(ctx context.Context, limit, offset int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	items, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]AuditEntry, 0, len(items))
	for _, it := range items {
		out = append(out, AuditEntry{
			ID:        it.ID,
			UserID:    it.UserID,
			Username:  it.Username,
			IPAddress: it.IPAddress,
			Result:    json.RawMessage(it.Result),
			CreatedAt: it.CreatedAt,
		})
	}
	return out, nil
}

package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditRecordResponse struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Username  string          `json:"username"`
	IPAddress string          `json:"ip_address"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a training session.
type SessionState string

const (
	StateRunning SessionState = "running"
	StateClosed  SessionState = "closed"
)

// Session is one training run owned by a single agent. EndedAt is set if and
// only if State is StateClosed; a closed session is never mutated again.
type Session struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	ScenarioID int64        `json:"scenario_id"`
	State      SessionState `json:"state"`
	StartedAt  time.Time    `json:"started_at"`
	EndedAt    *time.Time   `json:"ended_at,omitempty"`
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	ListRecent(ctx context.Context, limit int) ([]Session, error)
}

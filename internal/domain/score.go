package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Score is the final evaluation of a session: a breakdown of named
// sub-scores and their sum. A session has at most one score, created at the
// same transaction boundary that closes the session.
type Score struct {
	ID        uuid.UUID      `json:"id"`
	SessionID uuid.UUID      `json:"session_id"`
	Breakdown map[string]int `json:"breakdown"`
	Total     int            `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
}

// ScoreRepository defines the interface for score storage
type ScoreRepository interface {
	// CreateAndCloseSession inserts the score and transitions the session to
	// closed with endedAt, both within a single transaction. Setting closed
	// on an already-closed session is a no-op at this layer; the lifecycle
	// guard above is what rejects replays.
	CreateAndCloseSession(ctx context.Context, score *Score, endedAt time.Time) error
}

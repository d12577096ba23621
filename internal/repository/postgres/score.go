package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScoreRepository implements domain.ScoreRepository
type ScoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

// CreateAndCloseSession inserts the score and closes the session in one
// transaction. The UPDATE is retry-safe: writing closed over closed changes
// nothing.
func (r *ScoreRepository) CreateAndCloseSession(ctx context.Context, score *domain.Score, endedAt time.Time) error {
	breakdownJSON, err := json.Marshal(score.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertScore := `
		INSERT INTO scores (id, session_id, breakdown, total, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, insertScore,
		score.ID,
		score.SessionID,
		breakdownJSON,
		score.Total,
		score.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}

	closeSession := `
		UPDATE sessions
		SET state = $1, ended_at = $2
		WHERE id = $3
	`
	if _, err := tx.Exec(ctx, closeSession, domain.StateClosed, endedAt, score.SessionID); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit score transaction: %w", err)
	}
	return nil
}

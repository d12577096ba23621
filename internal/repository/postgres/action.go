package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActionRepository implements domain.ActionRepository
type ActionRepository struct {
	pool *pgxpool.Pool
}

// NewActionRepository creates a new action repository
func NewActionRepository(pool *pgxpool.Pool) *ActionRepository {
	return &ActionRepository{pool: pool}
}

// Create appends one immutable action record.
func (r *ActionRepository) Create(ctx context.Context, action *domain.Action) error {
	query := `
		INSERT INTO actions (id, session_id, kind, amount_cents, approved, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var metadataJSON []byte
	if action.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(action.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx, query,
		action.ID,
		action.SessionID,
		action.Kind,
		action.AmountCents,
		action.Approved,
		metadataJSON,
		action.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create action: %w", err)
	}
	return nil
}

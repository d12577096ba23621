package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository implements domain.StatsRepository
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// KPIs computes the trainer dashboard aggregates: average score, total cost
// of approved actions, and session resolution counts.
func (r *StatsRepository) KPIs(ctx context.Context) (*domain.KPIs, error) {
	var k domain.KPIs

	var avg float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(AVG(total), 0) FROM scores`).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average score: %w", err)
	}
	k.AvgScore = int(math.Round(avg))

	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM actions WHERE approved`,
	).Scan(&k.CostCents)
	if err != nil {
		return nil, fmt.Errorf("failed to compute action cost: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE state = $1), COUNT(*)
		FROM sessions
	`, domain.StateClosed).Scan(&k.Resolved, &k.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	if k.Total > 0 {
		k.ResolutionRate = int(math.Round(float64(k.Resolved) / float64(k.Total) * 100))
	}

	return &k, nil
}

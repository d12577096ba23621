package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScenarioRepository implements domain.ScenarioRepository
type ScenarioRepository struct {
	pool *pgxpool.Pool
}

// NewScenarioRepository creates a new scenario repository
func NewScenarioRepository(pool *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{pool: pool}
}

func (r *ScenarioRepository) Get(ctx context.Context, id int64) (*domain.Scenario, error) {
	query := `
		SELECT id, title, persona, mode, difficulty, policy_id
		FROM scenarios
		WHERE id = $1
	`
	var s domain.Scenario
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Title,
		&s.Persona,
		&s.Mode,
		&s.Difficulty,
		&s.PolicyID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return &s, nil
}

// GetPolicy returns the policy attached to a scenario, or nil when the
// scenario has none.
func (r *ScenarioRepository) GetPolicy(ctx context.Context, scenarioID int64) (*domain.Policy, error) {
	query := `
		SELECT p.id, p.name, p.rules
		FROM policies p
		JOIN scenarios s ON s.policy_id = p.id
		WHERE s.id = $1
	`
	var p domain.Policy
	var rulesJSON []byte
	err := r.pool.QueryRow(ctx, query, scenarioID).Scan(
		&p.ID,
		&p.Name,
		&rulesJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &p.Rules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal policy rules: %w", err)
		}
	}
	return &p, nil
}

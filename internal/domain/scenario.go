package domain

import "context"

// Scenario is a static training case definition. Read-only at runtime.
type Scenario struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Persona    string `json:"persona"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
	PolicyID   *int64 `json:"policy_id,omitempty"`
}

// Policy rule keys understood by the evaluator.
const RuleMaxDiscountPercent = "max_discount_percent"

// Policy is a named mapping of rule keys to numeric values bounding what
// remediation actions an agent may take.
type Policy struct {
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Rules map[string]float64 `json:"rules"`
}

// MaxDiscountPercent returns the discount cap rule if present.
func (p *Policy) MaxDiscountPercent() (float64, bool) {
	if p == nil || p.Rules == nil {
		return 0, false
	}
	v, ok := p.Rules[RuleMaxDiscountPercent]
	return v, ok
}

// ScenarioRepository defines the interface for scenario and policy storage
type ScenarioRepository interface {
	Get(ctx context.Context, id int64) (*Scenario, error)
	// GetPolicy returns the policy attached to a scenario, or nil when the
	// scenario has none. A missing policy is not an error.
	GetPolicy(ctx context.Context, scenarioID int64) (*Policy, error)
}

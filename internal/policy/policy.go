// Package policy evaluates remediation rules against a scenario's policy.
package policy

import (
	"math"

	"github.com/evansarr33/sav-simulateur/internal/domain"
)

// Defaults are the fallback values applied when a scenario carries no policy
// or a rule is absent. They are injected once from configuration; call sites
// must not duplicate them.
type Defaults struct {
	// DiscountPercent is the cap applied when no policy sets one.
	DiscountPercent float64
	// BasketCents stands in for the order total until a real cart source is
	// wired; it stays a parameter so that source can be substituted without
	// changing the evaluator's contract.
	BasketCents int64
}

// Evaluator computes the allowed envelope for a proposed action.
type Evaluator struct {
	defaults Defaults
}

// NewEvaluator creates an evaluator with the given defaults.
func NewEvaluator(defaults Defaults) *Evaluator {
	return &Evaluator{defaults: defaults}
}

// BasketCents returns the injected basket amount for a session.
func (e *Evaluator) BasketCents() int64 {
	return e.defaults.BasketCents
}

// DiscountCeiling returns the maximum discount in minor units for the given
// basket, and the percentage used. A nil policy or a policy without a
// discount rule falls back to the default percentage.
//
// ceiling = floor(basket * pct / 100), deterministic for given inputs.
func (e *Evaluator) DiscountCeiling(p *domain.Policy, basketCents int64) (int64, float64) {
	pct := e.defaults.DiscountPercent
	if v, ok := p.MaxDiscountPercent(); ok {
		pct = v
	}
	ceiling := int64(math.Floor(float64(basketCents) * pct / 100))
	return ceiling, pct
}
